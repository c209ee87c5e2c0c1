package dictionary

import "github.com/growthdesk/clinic-intel/internal/model"

// SeedEntries is the built-in canonical device/treatment dictionary used when
// no store is configured. Curated entries in the store take the same shape.
func SeedEntries() []model.DictionaryEntry {
	return []model.DictionaryEntry{
		{StandardName: "써마지", Category: "RF_LIFTING", BaseUnitType: "shot", Aliases: []string{"써마지FLX", "thermage", "써마지flx", "덴마크써마지"}},
		{StandardName: "울쎄라", Category: "HIFU_RF", BaseUnitType: "line", Aliases: []string{"ulthera", "울세라", "울쎄라리프팅"}},
		{StandardName: "슈링크", Category: "HIFU_RF", BaseUnitType: "line", Aliases: []string{"shurink", "슈링크유니버스", "슈링크리프팅"}},
		{StandardName: "인모드", Category: "RF_LIFTING", BaseUnitType: "session", Aliases: []string{"inmode", "인모드리프팅", "인모드fx"}},
		{StandardName: "올리지오", Category: "RF_LIFTING", BaseUnitType: "shot", Aliases: []string{"oligio", "올리지오x"}},
		{StandardName: "리프테라", Category: "HIFU_RF", BaseUnitType: "line", Aliases: []string{"liftera", "리프테라v"}},
		{StandardName: "보톡스", Category: "INJECTION", BaseUnitType: "unit", Aliases: []string{"botox", "보툴리눔"}},
		{StandardName: "필러", Category: "INJECTION", BaseUnitType: "cc", Aliases: []string{"filler", "히알루론산필러"}},
		{StandardName: "리쥬란", Category: "INJECTION", BaseUnitType: "cc", Aliases: []string{"rejuran", "리쥬란힐러"}},
		{StandardName: "피코토닝", Category: "LASER", BaseUnitType: "session", Aliases: []string{"피코레이저", "pico"}},
	}
}

// SeedCompounds is the built-in static compound table: blended marketing
// terms mapped to their constituent canonical names.
func SeedCompounds() []model.CompoundEntry {
	return []model.CompoundEntry{
		{CompoundName: "울써마", DecomposedTo: []string{"울쎄라", "써마지"}, ScoringNote: "counts toward both HIFU and RF axes"},
		{CompoundName: "슈써마", DecomposedTo: []string{"슈링크", "써마지"}, ScoringNote: "counts toward both HIFU and RF axes"},
		{CompoundName: "울슈링", DecomposedTo: []string{"울쎄라", "슈링크"}, ScoringNote: "dual HIFU package"},
		{CompoundName: "인올리", DecomposedTo: []string{"인모드", "올리지오"}, ScoringNote: "dual RF package"},
	}
}
