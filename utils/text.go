package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldable covers the Latin ligatures (U+FB00-FB06) and full-width digits
// (U+FF10-FF19) some challan generators embed. Everything else, full-width
// punctuation included, reaches the patterns untouched.
var foldable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFB00, Hi: 0xFB06, Stride: 1},
		{Lo: 0xFF10, Hi: 0xFF19, Stride: 1},
	},
}

// NormalizeText flattens extracted PDF text for pattern matching.
// Ligatures and full-width digits are NFKC-folded, then every whitespace run
// (newlines included) collapses to a single space.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}
	folded, _, err := transform.String(runes.If(runes.In(foldable), norm.NFKC, nil), raw)
	if err != nil {
		folded = raw
	}
	return strings.Join(strings.Fields(folded), " ")
}
