package persistence

import "strings"

// ValidateSortField validates a sort field against a whitelist of allowed
// fields. Unknown fields fall back to the default so user-supplied sort
// parameters can never reach the SQL string.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	field := strings.ToLower(strings.TrimSpace(sortField))
	if allowedFields[field] {
		return field
	}
	return defaultField
}
