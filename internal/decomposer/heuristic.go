package decomposer

// syllablePrefixes is the closed alphabet of two-syllable prefixes taken from
// known treatment names. A raw term whose first four syllables split into two
// distinct members is flagged as a compound candidate for curation; the
// heuristic never decomposes on its own.
var syllablePrefixes = map[string]bool{
	"써마": true, // 써마지
	"울쎄": true, // 울쎄라
	"울써": true, // blended 울쎄라+써마지 leading pair
	"슈링": true, // 슈링크
	"슈써": true, // blended 슈링크+써마지 leading pair
	"인모": true, // 인모드
	"올리": true, // 올리지오
	"리프": true, // 리프테라
	"리쥬": true, // 리쥬란
	"피코": true, // 피코토닝
}

// looksCompound reports whether text structurally resembles a blend of two
// known treatment-name prefixes.
func looksCompound(text string) bool {
	runes := []rune(text)
	if len(runes) < 4 {
		return false
	}
	a := string(runes[0:2])
	b := string(runes[2:4])
	return a != b && syllablePrefixes[a] && syllablePrefixes[b]
}
