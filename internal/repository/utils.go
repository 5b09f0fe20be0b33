package repository

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// cleanText trims surrounding space and drops invalid UTF-8 sequences,
// which Postgres would otherwise reject on insert.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}
	return result.String()
}

func cellNumber(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
