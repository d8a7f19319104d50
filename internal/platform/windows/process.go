//go:build windows

package windows

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/winauto/windows-mcp/internal/model"
)

// ProcessManager lists and launches processes via gopsutil and os/exec.
type ProcessManager struct{}

// NewProcessManager creates the Windows process backend.
func NewProcessManager() *ProcessManager {
	return &ProcessManager{}
}

// List returns running processes. A non-empty nameFilter keeps only processes
// whose image name contains it, case-insensitively.
func (p *ProcessManager) List(nameFilter string) ([]model.ProcessInfo, error) {
	pids, err := process.Pids()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}
	filter := strings.ToLower(strings.TrimSpace(nameFilter))
	var out []model.ProcessInfo
	for _, pid := range pids {
		proc, err := process.NewProcess(pid)
		if err != nil {
			continue
		}
		name, err := proc.Name()
		if err != nil || name == "" {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		// Exe can fail for system processes the caller cannot open.
		path, _ := proc.Exe()
		out = append(out, model.ProcessInfo{
			PID:  int(pid),
			Name: name,
			Path: path,
		})
	}
	return out, nil
}

// Launch starts an executable detached from the server and returns its PID.
// It does not wait for the process to create a window.
func (p *ProcessManager) Launch(path string, args []string) (model.ProcessInfo, error) {
	if strings.TrimSpace(path) == "" {
		return model.ProcessInfo{}, fmt.Errorf("executable path is required")
	}
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return model.ProcessInfo{}, fmt.Errorf("failed to launch %q: %w", path, err)
	}
	info := model.ProcessInfo{
		PID:  cmd.Process.Pid,
		Name: cmd.Path,
		Path: cmd.Path,
	}
	// Reap the child when it exits so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return info, nil
}
