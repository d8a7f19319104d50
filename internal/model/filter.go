package model

import "strings"

// DefaultInteractiveTypes is the control-type filter applied when the caller
// supplies none: the set of types an agent can usefully interact with.
var DefaultInteractiveTypes = []string{
	"Button", "Edit", "CheckBox", "RadioButton", "ComboBox", "List",
	"ListItem", "Tab", "TabItem", "MenuItem", "Hyperlink", "Slider",
	"Spinner", "TreeItem", "Document",
}

// ParseControlTypes parses a comma-separated control-type filter into a
// case-folded lookup set. An empty filter yields the default interactive set.
func ParseControlTypes(filter string) map[string]bool {
	types := DefaultInteractiveTypes
	if strings.TrimSpace(filter) != "" {
		types = strings.Split(filter, ",")
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t != "" {
			set[strings.ToLower(t)] = true
		}
	}
	return set
}

// IsOnScreen reports whether an element's bounds describe something actually
// visible: larger than 5x5 pixels and not flung to the far negative
// coordinates hidden elements report. Modest negative coordinates are allowed
// for monitors extending left or above the primary origin.
func IsOnScreen(bounds [4]int) bool {
	return bounds[2] > 5 && bounds[3] > 5 && bounds[0] >= -10000 && bounds[1] >= -10000
}

// FilterInteractive keeps elements whose control type is in the given set and
// that are visible on screen, preserving flattened (pre-order) sequence.
func FilterInteractive(elements []FlatElement, types map[string]bool) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		if !types[strings.ToLower(el.ControlType)] {
			continue
		}
		if !IsOnScreen(el.Bounds) {
			continue
		}
		result = append(result, el)
	}
	return result
}

// Truncate caps the list at max elements. A max of 0 or less means unbounded.
func Truncate(elements []FlatElement, max int) []FlatElement {
	if max > 0 && len(elements) > max {
		return elements[:max]
	}
	return elements
}
