//go:build windows

package windows

import "github.com/winauto/windows-mcp/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		reader := NewReader()
		return &platform.Provider{
			Reader:        reader,
			Inputter:      NewInputter(),
			WindowManager: NewWindowManager(),
			Screenshotter: NewScreenshotter(reader),
			Processes:     NewProcessManager(),
		}, nil
	}
}
