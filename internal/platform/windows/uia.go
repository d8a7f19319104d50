//go:build windows

package windows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"

	"github.com/winauto/windows-mcp/internal/model"
)

var (
	clsidCUIAutomation = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation   = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
)

const sFalse = 0x00000001

// controlTypeNames maps UIA control type IDs to the short names used in
// element listings and control-type filters.
var controlTypeNames = map[int32]string{
	50000: "Button",
	50001: "Calendar",
	50002: "CheckBox",
	50003: "ComboBox",
	50004: "Edit",
	50005: "Hyperlink",
	50006: "Image",
	50007: "ListItem",
	50008: "List",
	50009: "Menu",
	50010: "MenuBar",
	50011: "MenuItem",
	50012: "ProgressBar",
	50013: "RadioButton",
	50014: "ScrollBar",
	50015: "Slider",
	50016: "Spinner",
	50017: "StatusBar",
	50018: "Tab",
	50019: "TabItem",
	50020: "Text",
	50021: "ToolBar",
	50022: "ToolTip",
	50023: "Tree",
	50024: "TreeItem",
	50025: "Custom",
	50026: "Group",
	50027: "Thumb",
	50028: "DataGrid",
	50029: "DataItem",
	50030: "Document",
	50031: "SplitButton",
	50032: "Window",
	50033: "Pane",
	50034: "Header",
	50035: "HeaderItem",
	50036: "Table",
	50037: "TitleBar",
	50038: "Separator",
}

func controlTypeName(id int32) string {
	if name, ok := controlTypeNames[id]; ok {
		return name
	}
	return fmt.Sprintf("ControlType%d", id)
}

// uiaClient holds a lazily-created UI Automation COM instance. All tree
// fetches are serialized through mu; the client joins the multithreaded
// apartment so any calling goroutine thread may use it.
type uiaClient struct {
	mu     sync.Mutex
	auto   *uiAutomation
	walker *uiaTreeWalker
}

func newUIAClient() *uiaClient {
	return &uiaClient{}
}

// connect creates the CUIAutomation instance and control-view walker on
// first use. Callers must hold mu.
func (c *uiaClient) connect() error {
	if c.auto != nil {
		return nil
	}
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return fmt.Errorf("COM initialization failed: %w", err)
		}
	}
	unk, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return fmt.Errorf("failed to create UI Automation instance: %w", err)
	}
	auto := (*uiAutomation)(unsafe.Pointer(unk))
	walker, err := auto.controlViewWalker()
	if err != nil {
		auto.Release()
		return fmt.Errorf("failed to create control-view walker: %w", err)
	}
	c.auto = auto
	c.walker = walker
	return nil
}

// WindowTree returns the accessibility tree of a window down to maxDepth
// levels, the window element itself counting as level one. Elements are
// returned unfiltered so callers can prune without losing subtrees whose
// containers would not match a filter.
func (r *Reader) WindowTree(ctx context.Context, handle uintptr, maxDepth int) ([]model.Element, error) {
	if handle == 0 {
		return nil, fmt.Errorf("window handle is required")
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	monitors, _ := r.ListMonitors()

	c := r.uia
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.connect(); err != nil {
		return nil, err
	}
	root, err := c.auto.elementFromHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("no accessibility tree for window %d: %w", handle, err)
	}
	defer root.Release()

	el, err := c.buildElement(ctx, root, handle, monitors, 1, maxDepth)
	if err != nil {
		return nil, err
	}
	return []model.Element{el}, nil
}

// buildElement reads one element's properties and recurses into its
// control-view children while depth < maxDepth.
func (c *uiaClient) buildElement(ctx context.Context, raw *uiaElement, handle uintptr, monitors []model.Monitor, depth, maxDepth int) (model.Element, error) {
	if err := ctx.Err(); err != nil {
		return model.Element{}, err
	}

	el := model.Element{
		ControlType:  controlTypeName(raw.currentControlType()),
		Name:         raw.currentName(),
		AutomationID: raw.currentAutomationID(),
	}
	if runtimeID, err := raw.runtimeID(); err == nil {
		el.ElementID = model.FormatElementID(handle, joinRuntimeID(runtimeID))
	}
	left, top, right, bottom := raw.currentBoundingRectangle()
	el.Bounds = [4]int{left, top, right - left, bottom - top}
	if right > left && bottom > top && !raw.currentIsOffscreen() {
		cx, cy := left+(right-left)/2, top+(bottom-top)/2
		el.Clickable = &model.ClickablePoint{
			X:       cx,
			Y:       cy,
			Monitor: monitorIndexAt(monitors, cx, cy),
		}
	}

	if depth >= maxDepth {
		return el, nil
	}
	child, err := c.walker.firstChild(raw)
	if err != nil {
		return el, nil
	}
	for child != nil {
		childEl, err := c.buildElement(ctx, child, handle, monitors, depth+1, maxDepth)
		if err != nil {
			child.Release()
			return model.Element{}, err
		}
		el.Children = append(el.Children, childEl)
		next, err := c.walker.nextSibling(child)
		child.Release()
		if err != nil {
			break
		}
		child = next
	}
	return el, nil
}

func joinRuntimeID(ids []int32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, "-")
}

func monitorIndexAt(monitors []model.Monitor, x, y int) int {
	for _, m := range monitors {
		if m.Bounds.Contains(x, y) {
			return m.Index
		}
	}
	return 0
}

// COM interface shims. Method fields mirror the vtable layout of the
// uiautomationclient.h interfaces; only the methods this package calls have
// typed wrappers.

type uiAutomation struct {
	ole.IUnknown
}

type uiAutomationVtbl struct {
	ole.IUnknownVtbl
	CompareElements             uintptr
	CompareRuntimeIds           uintptr
	GetRootElement              uintptr
	ElementFromHandle           uintptr
	ElementFromPoint            uintptr
	GetFocusedElement           uintptr
	GetRootElementBuildCache    uintptr
	ElementFromHandleBuildCache uintptr
	ElementFromPointBuildCache  uintptr
	GetFocusedElementBuildCache uintptr
	CreateTreeWalker            uintptr
	GetControlViewWalker        uintptr
	GetContentViewWalker        uintptr
	GetRawViewWalker            uintptr
}

func (a *uiAutomation) vtbl() *uiAutomationVtbl {
	return (*uiAutomationVtbl)(unsafe.Pointer(a.RawVTable))
}

func (a *uiAutomation) elementFromHandle(hwnd uintptr) (*uiaElement, error) {
	var el *uiaElement
	hr, _, _ := syscall.SyscallN(a.vtbl().ElementFromHandle,
		uintptr(unsafe.Pointer(a)), hwnd, uintptr(unsafe.Pointer(&el)))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	if el == nil {
		return nil, fmt.Errorf("no element for window handle %d", hwnd)
	}
	return el, nil
}

func (a *uiAutomation) controlViewWalker() (*uiaTreeWalker, error) {
	var walker *uiaTreeWalker
	hr, _, _ := syscall.SyscallN(a.vtbl().GetControlViewWalker,
		uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(&walker)))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	return walker, nil
}

type uiaTreeWalker struct {
	ole.IUnknown
}

type uiaTreeWalkerVtbl struct {
	ole.IUnknownVtbl
	GetParentElement          uintptr
	GetFirstChildElement      uintptr
	GetLastChildElement       uintptr
	GetNextSiblingElement     uintptr
	GetPreviousSiblingElement uintptr
}

func (w *uiaTreeWalker) vtbl() *uiaTreeWalkerVtbl {
	return (*uiaTreeWalkerVtbl)(unsafe.Pointer(w.RawVTable))
}

// firstChild returns nil with a nil error when the element has no children.
func (w *uiaTreeWalker) firstChild(el *uiaElement) (*uiaElement, error) {
	var child *uiaElement
	hr, _, _ := syscall.SyscallN(w.vtbl().GetFirstChildElement,
		uintptr(unsafe.Pointer(w)), uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&child)))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	return child, nil
}

// nextSibling returns nil with a nil error when el is its parent's last child.
func (w *uiaTreeWalker) nextSibling(el *uiaElement) (*uiaElement, error) {
	var sibling *uiaElement
	hr, _, _ := syscall.SyscallN(w.vtbl().GetNextSiblingElement,
		uintptr(unsafe.Pointer(w)), uintptr(unsafe.Pointer(el)), uintptr(unsafe.Pointer(&sibling)))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	return sibling, nil
}

type uiaElement struct {
	ole.IUnknown
}

type uiaElementVtbl struct {
	ole.IUnknownVtbl
	SetFocus                       uintptr
	GetRuntimeId                   uintptr
	FindFirst                      uintptr
	FindAll                        uintptr
	FindFirstBuildCache            uintptr
	FindAllBuildCache              uintptr
	BuildUpdatedCache              uintptr
	GetCurrentPropertyValue        uintptr
	GetCurrentPropertyValueEx      uintptr
	GetCachedPropertyValue         uintptr
	GetCachedPropertyValueEx       uintptr
	GetCurrentPatternAs            uintptr
	GetCachedPatternAs             uintptr
	GetCurrentPattern              uintptr
	GetCachedPattern               uintptr
	GetCurrentProcessId            uintptr
	GetCurrentControlType          uintptr
	GetCurrentLocalizedControlType uintptr
	GetCurrentName                 uintptr
	GetCurrentAcceleratorKey       uintptr
	GetCurrentAccessKey            uintptr
	GetCurrentHasKeyboardFocus     uintptr
	GetCurrentIsKeyboardFocusable  uintptr
	GetCurrentIsEnabled            uintptr
	GetCurrentAutomationId         uintptr
	GetCurrentClassName            uintptr
	GetCurrentHelpText             uintptr
	GetCurrentCulture              uintptr
	GetCurrentIsControlElement     uintptr
	GetCurrentIsContentElement     uintptr
	GetCurrentIsPassword           uintptr
	GetCurrentNativeWindowHandle   uintptr
	GetCurrentItemType             uintptr
	GetCurrentIsOffscreen          uintptr
	GetCurrentOrientation          uintptr
	GetCurrentFrameworkId          uintptr
	GetCurrentIsRequiredForForm    uintptr
	GetCurrentItemStatus           uintptr
	GetCurrentBoundingRectangle    uintptr
}

func (e *uiaElement) vtbl() *uiaElementVtbl {
	return (*uiaElementVtbl)(unsafe.Pointer(e.RawVTable))
}

func (e *uiaElement) bstrProperty(method uintptr) string {
	var bstr *uint16
	hr, _, _ := syscall.SyscallN(method,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&bstr)))
	if hr != 0 || bstr == nil {
		return ""
	}
	s := ole.BstrToString(bstr)
	ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return s
}

func (e *uiaElement) currentName() string {
	return e.bstrProperty(e.vtbl().GetCurrentName)
}

func (e *uiaElement) currentAutomationID() string {
	return e.bstrProperty(e.vtbl().GetCurrentAutomationId)
}

func (e *uiaElement) currentControlType() int32 {
	var id int32
	syscall.SyscallN(e.vtbl().GetCurrentControlType,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&id)))
	return id
}

func (e *uiaElement) currentIsOffscreen() bool {
	var offscreen int32
	hr, _, _ := syscall.SyscallN(e.vtbl().GetCurrentIsOffscreen,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&offscreen)))
	return hr == 0 && offscreen != 0
}

func (e *uiaElement) currentBoundingRectangle() (left, top, right, bottom int) {
	var rect struct{ Left, Top, Right, Bottom int32 }
	hr, _, _ := syscall.SyscallN(e.vtbl().GetCurrentBoundingRectangle,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&rect)))
	if hr != 0 {
		return 0, 0, 0, 0
	}
	return int(rect.Left), int(rect.Top), int(rect.Right), int(rect.Bottom)
}

// runtimeID returns the element's runtime identifier, stable for the
// element's lifetime within its process.
func (e *uiaElement) runtimeID() ([]int32, error) {
	var sa *ole.SafeArray
	hr, _, _ := syscall.SyscallN(e.vtbl().GetRuntimeId,
		uintptr(unsafe.Pointer(e)), uintptr(unsafe.Pointer(&sa)))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	if sa == nil {
		return nil, fmt.Errorf("element has no runtime id")
	}
	conv := ole.SafeArrayConversion{Array: sa}
	values := conv.ToValueArray()
	conv.Release()
	ids := make([]int32, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int32:
			ids = append(ids, n)
		case int64:
			ids = append(ids, int32(n))
		case int:
			ids = append(ids, int32(n))
		}
	}
	return ids, nil
}
