package tool

import "encoding/json"

// Argument maps arrive as loosely typed JSON values. These helpers extract
// typed values and apply defaults in one place, which is the canonical
// location for invocation defaults in this server.

func stringArg(args map[string]any, key, fallback string) string {
	if value, ok := args[key]; ok {
		if s, ok := value.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func intArg(args map[string]any, key string, fallback int) int {
	switch value := args[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		// encoding/json decodes all numbers into float64.
		return int(value)
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}
