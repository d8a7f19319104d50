package model

// FlatElement is the read-only flat projection of an Element: same fields,
// no children. Keeping the projection as a distinct type prevents accidental
// re-traversal of a tree that has already been flattened.
type FlatElement struct {
	ControlType  string          `yaml:"controlType"              json:"controlType"`
	Name         string          `yaml:"name,omitempty"           json:"name,omitempty"`
	AutomationID string          `yaml:"automationId,omitempty"   json:"automationId,omitempty"`
	ElementID    string          `yaml:"elementId,omitempty"      json:"elementId,omitempty"`
	Bounds       [4]int          `yaml:"bounds"                   json:"bounds"`
	Clickable    *ClickablePoint `yaml:"clickablePoint,omitempty" json:"clickablePoint,omitempty"`
}

// FlattenElements converts a tree of elements into a flat list via pre-order
// traversal: each node before its children, children in original order.
func FlattenElements(elements []Element) []FlatElement {
	var result []FlatElement
	for _, el := range elements {
		flattenRecursive(el, &result)
	}
	return result
}

func flattenRecursive(el Element, result *[]FlatElement) {
	*result = append(*result, FlatElement{
		ControlType:  el.ControlType,
		Name:         el.Name,
		AutomationID: el.AutomationID,
		ElementID:    el.ElementID,
		Bounds:       el.Bounds,
		Clickable:    el.Clickable,
	})
	for _, child := range el.Children {
		flattenRecursive(child, result)
	}
}
