package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that cannot be offered as a download.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes name safe for a download header or a single path
// segment: separators become "_", control characters are dropped and
// traversal names are rejected.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || strings.Trim(s, ".") == "" || strings.Contains(s, "..") {
		return "", ErrInvalidFileName
	}
	return s, nil
}

// Slug turns text into a file name fragment: whitespace runs become "_" and
// anything other than letters, digits, "-", "_" and "+" is dropped.
func Slug(text string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(text) {
		switch {
		case unicode.IsSpace(r):
			pendingSep = true
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '+':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
