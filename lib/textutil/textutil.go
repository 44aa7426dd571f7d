package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a label and drops all whitespace so that
// "Grey ", "grey" and "G rey" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	return StripWhitespace(name)
}

// StripWhitespace removes every whitespace character, including the ones
// in the middle of the string.
func StripWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(text, "")
}

// LeftPad pads `text` on the left with `pad` until it is at least `width`
// runes long. Longer input is returned unchanged.
func LeftPad(text string, pad rune, width int) string {
	missing := width - len([]rune(text))
	if missing <= 0 {
		return text
	}
	return strings.Repeat(string(pad), missing) + text
}
