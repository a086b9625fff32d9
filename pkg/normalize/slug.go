package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugTransform decomposes accented characters and strips the combining
// marks, so "Café" becomes "Cafe" before ASCII folding.
var slugTransform = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slug derives a URL-safe slug from a display name: transliterates where
// practical, lower-cases, replaces runs of non [a-z0-9] characters with a
// single hyphen and trims leading/trailing hyphens. Stable for the same
// input. Returns "" when nothing sluggable remains.
func Slug(text string) string {
	folded, _, err := transform.String(slugTransform, text)
	if err != nil {
		folded = text
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress leading hyphen
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
