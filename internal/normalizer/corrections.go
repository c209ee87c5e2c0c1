package normalizer

import (
	"strings"

	"golang.org/x/text/width"
)

// ocrReplacements fixes known scanner artifacts that survive extraction from
// crawled page text and screenshots. Applied after full-width narrowing.
var ocrReplacements = []struct{ old, new string }{
	{"〇", "0"},
	{"ℓ", "l"},
	{"ⅹ", "x"},
	{"Ⅰ", "I"},
	{"―", "-"},
	{"–", "-"},
}

// Correct applies the deterministic character correction pass: full-width
// digits and latin letters are narrowed to ASCII, then known single-character
// OCR confusions are replaced. The pass is idempotent.
func Correct(text string) string {
	out := width.Narrow.String(text)
	for _, r := range ocrReplacements {
		out = strings.ReplaceAll(out, r.old, r.new)
	}
	return out
}
