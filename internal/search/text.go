package search

import "strings"

// deref returns the pointed-to string, or "" and false for nil.
func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

// foldTerm is the single place search terms are prepared for comparison.
func foldTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// containsFold reports whether the trimmed term occurs in s, ignoring case.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), foldTerm(term))
}

// equalFold compares two codes ignoring case and surrounding whitespace.
func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
