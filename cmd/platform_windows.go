//go:build windows

package cmd

// Blank import links the Windows backend in so its init() registers
// platform.NewProviderFunc.
import _ "github.com/winauto/windows-mcp/internal/platform/windows"
