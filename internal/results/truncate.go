package results

import "fmt"

// Truncate returns v with every string longer than maxLen cut down and
// suffixed with the number of dropped characters. Maps and slices are copied,
// never mutated. maxLen <= 0 disables truncation.
func Truncate(v any, maxLen int) any {
	if maxLen <= 0 {
		return v
	}
	switch val := v.(type) {
	case string:
		return truncateString(val, maxLen)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Truncate(item, maxLen)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Truncate(item, maxLen)
		}
		return out
	default:
		return v
	}
}

// TruncateRows applies Truncate to each row.
func TruncateRows(rows []map[string]any, maxLen int) []map[string]any {
	if maxLen <= 0 {
		return rows
	}
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = Truncate(r, maxLen).(map[string]any)
	}
	return out
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	remaining := len(runes) - maxLen
	return string(runes[:maxLen]) + fmt.Sprintf("... (%d more chars)", remaining)
}
