package graph

// ============================================================================
// Row Helpers
// ============================================================================
// Both remote backends deliver rows as string-keyed maps: the bolt driver via
// record.AsMap(), the Query API via positional zipping of fields and values.

func getString(row map[string]any, key string) string {
	val, ok := row[key]
	if !ok || val == nil {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func getFloat64(row map[string]any, key string) float64 {
	val, ok := row[key]
	if !ok || val == nil {
		return 0.0
	}
	if f, ok := val.(float64); ok {
		return f
	}
	if i, ok := val.(int64); ok {
		return float64(i)
	}
	return 0.0
}

func getStringSlice(row map[string]any, key string) []string {
	val, ok := row[key]
	if !ok || val == nil {
		return []string{}
	}
	if slice, ok := val.([]any); ok {
		result := make([]string, 0, len(slice))
		for _, v := range slice {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return []string{}
}
