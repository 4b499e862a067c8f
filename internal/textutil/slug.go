package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxLength = 50
	slugFallback  = "video"
)

// Slugify converts a user-supplied topic into a filename-safe token.
// The input is NFKD-normalized with combining marks removed, characters
// outside word characters, whitespace, and hyphens are stripped, and runs of
// whitespace or hyphens collapse to a single underscore. The result is
// truncated to 50 characters. Empty results fall back to "video" so the
// generated path is never empty or path-breaking.
func Slugify(topic string) string {
	decomposed := norm.NFKD.String(strings.TrimSpace(topic))

	var b strings.Builder
	b.Grow(len(decomposed))
	pendingSeparator := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining marks left over from decomposition.
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			if pendingSeparator && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSeparator = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingSeparator = true
		default:
			// Stripped outright, without acting as a separator.
		}
	}

	slug := b.String()
	if runes := []rune(slug); len(runes) > slugMaxLength {
		slug = string(runes[:slugMaxLength])
	}
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return slugFallback
	}
	return slug
}

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a display name.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}
