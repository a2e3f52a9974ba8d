package request

import "strings"

// trimmedOrNil drops blank optional strings so "" and absent mean the same.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
