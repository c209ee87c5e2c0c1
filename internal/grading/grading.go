// Package grading combines five axis scores into a composite sales-readiness
// score and a discrete grade.
package grading

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Grade thresholds. Fixed design constants, not configurable per call.
const (
	thresholdS = 80
	thresholdA = 65
	thresholdB = 45

	// minDataQuality is the data-quality gate: entities below it are
	// excluded from grading regardless of score.
	minDataQuality = 50
)

// DefaultWeights is the fallback weight set used when no configuration is
// active. Sums to 100.
func DefaultWeights() model.WeightSet {
	return model.WeightSet{
		EquipmentSynergy:  25,
		EquipmentAge:      20,
		RevenueImpact:     30,
		CompetitiveEdge:   15,
		PurchaseReadiness: 10,
	}
}

// ValidateWeights checks a weight set for activation. Weights must be
// non-negative and sum to exactly 100; violations are rejected, never
// corrected. This is a configuration-time precondition, not a score-time
// guard.
func ValidateWeights(w model.WeightSet) error {
	for _, v := range []int{
		w.EquipmentSynergy, w.EquipmentAge, w.RevenueImpact,
		w.CompetitiveEdge, w.PurchaseReadiness,
	} {
		if v < 0 {
			return eris.Errorf("grading: weight must be >= 0, got %d", v)
		}
	}
	if sum := w.Sum(); sum != 100 {
		return eris.Errorf("grading: weights must sum to 100, got %d", sum)
	}
	return nil
}

// TotalScore computes the weight-normalized linear combination of the axis
// scores, rounded to the nearest integer. Weights are expected to sum to 100
// by upstream validation.
func TotalScore(s model.ScoreSet, w model.WeightSet) int {
	sum := s.EquipmentSynergy*w.EquipmentSynergy +
		s.EquipmentAge*w.EquipmentAge +
		s.RevenueImpact*w.RevenueImpact +
		s.CompetitiveEdge*w.CompetitiveEdge +
		s.PurchaseReadiness*w.PurchaseReadiness
	return int(math.Round(float64(sum) / 100))
}

// GradeFor maps a composite score and data quality to a grade. The
// data-quality gate takes absolute precedence: entities with too little
// underlying data are excluded even at a perfect score.
func GradeFor(totalScore, dataQuality int) model.Grade {
	switch {
	case dataQuality < minDataQuality:
		return model.GradeExclude
	case totalScore >= thresholdS:
		return model.GradeS
	case totalScore >= thresholdA:
		return model.GradeA
	case totalScore >= thresholdB:
		return model.GradeB
	default:
		return model.GradeC
	}
}
