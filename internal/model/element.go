package model

// ClickablePoint is a screen-space point an element can be clicked at,
// together with the index of the monitor it falls on.
type ClickablePoint struct {
	X       int `yaml:"x"       json:"x"`
	Y       int `yaml:"y"       json:"y"`
	Monitor int `yaml:"monitor" json:"monitor"`
}

// Element represents a node in a window's UI Automation tree.
// Bounds are [x, y, width, height] in screen pixels. ElementID is an opaque
// handle back into the automation provider in the form
// "window:<hwnd>:runtime:<runtime-id>".
type Element struct {
	ControlType  string          `yaml:"controlType"              json:"controlType"`
	Name         string          `yaml:"name,omitempty"           json:"name,omitempty"`
	AutomationID string          `yaml:"automationId,omitempty"   json:"automationId,omitempty"`
	ElementID    string          `yaml:"elementId,omitempty"      json:"elementId,omitempty"`
	Bounds       [4]int          `yaml:"bounds"                   json:"bounds"`
	Clickable    *ClickablePoint `yaml:"clickablePoint,omitempty" json:"clickablePoint,omitempty"`
	Children     []Element       `yaml:"children,omitempty"       json:"children,omitempty"`
}
