//go:build windows

package windows

import (
	"fmt"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"

	"github.com/winauto/windows-mcp/internal/model"
	"github.com/winauto/windows-mcp/internal/platform"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procEnumDisplayMonitors      = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW          = user32.NewProc("GetMonitorInfoW")
)

const (
	gwlStyle   int32 = -16
	gwlExStyle int32 = -20

	wsVisible      = 0x10000000
	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000

	monitorInfoFPrimary = 1
)

// Reader enumerates windows and monitors via user32 and walks UI Automation
// element trees via COM.
type Reader struct {
	uia *uiaClient
}

// NewReader creates the Windows read backend. The UI Automation client is
// initialized lazily on the first tree request.
func NewReader() *Reader {
	return &Reader{uia: newUIAClient()}
}

type rawWindow struct {
	handle uintptr
	title  string
	pid    int
	bounds model.RECT
}

// Enumeration callbacks are created once: syscall.NewCallback never releases
// its thunks and the process-wide limit is small. Results are collected in
// package state guarded by enumMu.
var (
	enumMu       sync.Mutex
	enumWindows  []rawWindow
	enumMonitors []model.Monitor

	windowEnumCallback = syscall.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			return 1
		}
		if getWindowLong(hwnd, gwlStyle)&wsVisible == 0 {
			return 1
		}
		exStyle := getWindowLong(hwnd, gwlExStyle)
		if exStyle&wsExToolWindow != 0 && exStyle&wsExAppWindow == 0 {
			return 1
		}
		title := windowText(hwnd)
		if title == "" {
			return 1
		}
		var rect windows.Rect
		if err := getWindowRect(hwnd, &rect); err != nil {
			return 1
		}
		var pid uint32
		procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		enumWindows = append(enumWindows, rawWindow{
			handle: hwnd,
			title:  title,
			pid:    int(pid),
			bounds: model.RECT{
				Left:   int(rect.Left),
				Top:    int(rect.Top),
				Right:  int(rect.Right),
				Bottom: int(rect.Bottom),
			},
		})
		return 1
	})

	monitorEnumCallback = syscall.NewCallback(func(hmonitor uintptr, _ uintptr, _ uintptr, _ uintptr) uintptr {
		var info monitorInfo
		info.Size = uint32(unsafe.Sizeof(info))
		if ok, _, _ := procGetMonitorInfoW.Call(hmonitor, uintptr(unsafe.Pointer(&info))); ok == 0 {
			return 1
		}
		enumMonitors = append(enumMonitors, model.Monitor{
			Index: len(enumMonitors),
			Name:  windows.UTF16ToString(info.DeviceRaw[:]),
			Bounds: model.RECT{
				Left:   int(info.Monitor.Left),
				Top:    int(info.Monitor.Top),
				Right:  int(info.Monitor.Right),
				Bottom: int(info.Monitor.Bottom),
			},
			WorkArea: model.RECT{
				Left:   int(info.Work.Left),
				Top:    int(info.Work.Top),
				Right:  int(info.Work.Right),
				Bottom: int(info.Work.Bottom),
			},
			Primary: info.Flags&monitorInfoFPrimary != 0,
		})
		return 1
	})
)

// ListWindows returns visible top-level application windows. Tool windows
// without the app-window override style are skipped, matching what the
// taskbar shows.
func (r *Reader) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	foreground, _, _ := procGetForegroundWindow.Call()

	enumMu.Lock()
	enumWindows = nil
	ret, _, err := procEnumWindows.Call(windowEnumCallback, 0)
	raw := enumWindows
	enumWindows = nil
	enumMu.Unlock()
	if ret == 0 {
		return nil, fmt.Errorf("window enumeration failed: %w", err)
	}

	appFilter := strings.ToLower(strings.TrimSpace(opts.App))
	appNames := map[int]string{}
	var out []model.Window
	for _, w := range raw {
		if opts.PID != 0 && w.pid != opts.PID {
			continue
		}
		app, ok := appNames[w.pid]
		if !ok {
			app = processName(w.pid)
			appNames[w.pid] = app
		}
		if appFilter != "" && !strings.Contains(strings.ToLower(app), appFilter) &&
			!strings.Contains(strings.ToLower(w.title), appFilter) {
			continue
		}
		out = append(out, model.Window{
			Handle:  w.handle,
			Title:   w.title,
			App:     app,
			PID:     w.pid,
			Bounds:  [4]int{w.bounds.Left, w.bounds.Top, w.bounds.Width(), w.bounds.Height()},
			Focused: w.handle == foreground,
		})
	}
	return out, nil
}

// ForegroundWindow returns the handle of the window holding input focus.
func (r *Reader) ForegroundWindow() (uintptr, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return 0, fmt.Errorf("no foreground window")
	}
	return hwnd, nil
}

// WindowRect returns a window's screen bounds.
func (r *Reader) WindowRect(handle uintptr) (model.RECT, error) {
	if handle == 0 {
		return model.RECT{}, fmt.Errorf("window handle is required")
	}
	var rect windows.Rect
	if err := getWindowRect(handle, &rect); err != nil {
		return model.RECT{}, err
	}
	return model.RECT{
		Left:   int(rect.Left),
		Top:    int(rect.Top),
		Right:  int(rect.Right),
		Bottom: int(rect.Bottom),
	}, nil
}

type monitorInfo struct {
	Size      uint32
	Monitor   windows.Rect
	Work      windows.Rect
	Flags     uint32
	DeviceRaw [32]uint16
}

// ListMonitors returns attached displays in enumeration order.
func (r *Reader) ListMonitors() ([]model.Monitor, error) {
	enumMu.Lock()
	enumMonitors = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, monitorEnumCallback, 0)
	monitors := enumMonitors
	enumMonitors = nil
	enumMu.Unlock()
	if ret == 0 {
		return nil, fmt.Errorf("monitor enumeration failed: %w", err)
	}
	return monitors, nil
}

func getWindowLong(hwnd uintptr, index int32) uintptr {
	ret, _, _ := procGetWindowLongW.Call(hwnd, uintptr(index))
	return ret
}

func getWindowRect(handle uintptr, rect *windows.Rect) error {
	ret, _, err := procGetWindowRect.Call(handle, uintptr(unsafe.Pointer(rect)))
	if ret == 0 {
		return fmt.Errorf("failed to read bounds of window %d: %w", handle, err)
	}
	return nil
}

func windowText(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func processName(pid int) string {
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := proc.Name()
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(name, ".exe")
}
