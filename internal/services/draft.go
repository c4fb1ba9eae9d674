package services

import "strings"

// Helpers for coercing the loosely-typed JSON draft coming back from the
// extraction service. Missing fields default to empty values, list fields
// holding anything other than a list are treated as empty, and non-object
// list entries are skipped. Coercion never fails.

func draftString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func draftStringList(m map[string]interface{}, key string) []string {
	out := []string{}
	items, ok := m[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func draftObjectList(m map[string]interface{}, key string) []map[string]interface{} {
	out := []map[string]interface{}{}
	items, ok := m[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

func draftObject(m map[string]interface{}, key string) map[string]interface{} {
	if obj, ok := m[key].(map[string]interface{}); ok {
		return obj
	}
	return map[string]interface{}{}
}
