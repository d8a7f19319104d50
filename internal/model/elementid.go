package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ElementID encodes a window handle and an automation runtime id as an opaque
// string handle: "window:<hwnd>:runtime:<runtime-id>". The runtime id segment
// is provider-defined and treated as opaque text.
func FormatElementID(handle uintptr, runtimeID string) string {
	return fmt.Sprintf("window:%d:runtime:%s", handle, runtimeID)
}

// ParseElementID splits an element id back into its window handle and runtime
// id. Malformed ids produce an error rather than a zero handle.
func ParseElementID(id string) (handle uintptr, runtimeID string, err error) {
	parts := strings.SplitN(id, ":", 4)
	if len(parts) != 4 || parts[0] != "window" || parts[2] != "runtime" {
		return 0, "", fmt.Errorf("malformed element id %q: expected window:<id>:runtime:<id>", id)
	}
	h, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed element id %q: %w", id, err)
	}
	return uintptr(h), parts[3], nil
}
