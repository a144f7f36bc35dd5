package services

import "porto/internal/models"

// pickFields copies the allowed keys out of a raw update payload. Keys map
// one-to-one to column names, so anything outside the whitelist is dropped
// before it reaches the query builder.
func pickFields(data map[string]interface{}, allowed ...string) map[string]interface{} {
	fields := make(map[string]interface{})
	for _, key := range allowed {
		if value, ok := data[key]; ok {
			fields[key] = value
		}
	}
	return fields
}

// toStringList converts a decoded JSON value into a StringList so list
// columns serialize through their driver.Valuer. Non-string elements are
// skipped.
func toStringList(value interface{}) models.StringList {
	switch v := value.(type) {
	case models.StringList:
		return v
	case []string:
		return models.StringList(v)
	case []interface{}:
		list := make(models.StringList, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return list
	default:
		return models.StringList{}
	}
}
