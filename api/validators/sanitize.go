package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString collapses whitespace runs to single spaces, drops control
// characters and caps the result at maxLen runes. maxLen <= 0 disables the cap.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}), " ")
	if maxLen <= 0 || utf8.RuneCountInString(cleaned) <= maxLen {
		return cleaned
	}
	return strings.TrimRightFunc(string([]rune(cleaned)[:maxLen]), unicode.IsSpace)
}
