package platform

import (
	"fmt"
	"strings"
)

// modifierNames maps combo segments to robotgo modifier names.
var modifierNames = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"win":     "cmd",
	"windows": "cmd",
	"cmd":     "cmd",
}

// keyAliases maps friendly key names to robotgo key names.
var keyAliases = map[string]string{
	"return":   "enter",
	"esc":      "escape",
	"del":      "delete",
	"ins":      "insert",
	"pgup":     "pageup",
	"pgdn":     "pagedown",
	"printscr": "printscreen",
}

// ParseKeyCombo splits a combo like "ctrl+shift+s" into the final key and its
// modifiers, normalized to robotgo names. The last segment is the key; all
// preceding segments must be modifiers.
func ParseKeyCombo(combo string) (key string, modifiers []string, err error) {
	parts := strings.Split(combo, "+")
	if combo == "" || len(parts) == 0 {
		return "", nil, fmt.Errorf("empty key combo")
	}

	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return "", nil, fmt.Errorf("invalid key combo %q", combo)
		}
		if i == len(parts)-1 {
			if alias, ok := keyAliases[p]; ok {
				p = alias
			}
			key = p
			continue
		}
		mod, ok := modifierNames[p]
		if !ok {
			return "", nil, fmt.Errorf("invalid key combo %q: %q is not a modifier", combo, p)
		}
		modifiers = append(modifiers, mod)
	}
	return key, modifiers, nil
}
