package repository

import "strings"

func requireID(op string, id int64, what string) error {
	if id <= 0 {
		return invalidArgument(op, idKey(id), what+" id must be positive")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isCode reports whether s is exactly n upper-case letters, or letters and
// digits when digits is set.
func isCode(s string, n int, digits bool) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case digits && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
