package server

// Tool argument maps come from decoded JSON, so numbers arrive as float64.
// These helpers normalize lookup and defaulting across handlers.

// StringParam returns the string value for key, or def when absent or not a
// string.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// IntParam returns the integer value for key, accepting float64 and int, or
// def when absent.
func IntParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		case int64:
			return int(n)
		}
	}
	return def
}

// BoolParam returns the boolean value for key, or def when absent or not a
// boolean.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// FloatParam returns the float value for key, accepting float64 and int, or
// def when absent.
func FloatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}
