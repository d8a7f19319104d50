//go:build windows

package windows

import (
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/winauto/windows-mcp/internal/platform"
)

// Inputter sends synthetic mouse and keyboard events via robotgo.
type Inputter struct{}

// NewInputter creates the Windows input backend.
func NewInputter() *Inputter {
	return &Inputter{}
}

func (i *Inputter) MouseMove(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (i *Inputter) MouseClick(button platform.MouseButton, double bool) error {
	robotgo.Click(button.String(), double)
	return nil
}

func (i *Inputter) MouseClickAt(x, y int, button platform.MouseButton, double bool) error {
	robotgo.Move(x, y)
	robotgo.Click(button.String(), double)
	return nil
}

func (i *Inputter) MouseDrag(fromX, fromY, toX, toY int) error {
	robotgo.Move(fromX, fromY)
	robotgo.DragSmooth(toX, toY)
	return nil
}

func (i *Inputter) MouseScroll(direction string, amount int, x, y int) error {
	switch direction {
	case "up", "down", "left", "right":
	default:
		return fmt.Errorf("unknown scroll direction: %q", direction)
	}
	if amount <= 0 {
		amount = 3
	}
	if x != 0 || y != 0 {
		robotgo.Move(x, y)
	}
	robotgo.ScrollDir(amount, direction)
	return nil
}

func (i *Inputter) MousePosition() (int, int) {
	return robotgo.Location()
}

// TypeText types literal text. A positive delay inserts a pause between
// characters for applications that drop fast synthetic input.
func (i *Inputter) TypeText(text string, delay time.Duration) error {
	if delay <= 0 {
		robotgo.TypeStr(text)
		return nil
	}
	for _, r := range text {
		robotgo.TypeStr(string(r))
		time.Sleep(delay)
	}
	return nil
}

// TapKey presses a key combo like "ctrl+shift+s" or a single key like "enter".
func (i *Inputter) TapKey(combo string) error {
	key, modifiers, err := platform.ParseKeyCombo(combo)
	if err != nil {
		return err
	}
	args := make([]interface{}, len(modifiers))
	for n, m := range modifiers {
		args[n] = m
	}
	return robotgo.KeyTap(key, args...)
}
