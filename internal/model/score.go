package model

// ScoreSet holds the five axis scores (0-100 each) for one entity/product pair.
type ScoreSet struct {
	EquipmentSynergy  int `json:"equipment_synergy"`
	EquipmentAge      int `json:"equipment_age"`
	RevenueImpact     int `json:"revenue_impact"`
	CompetitiveEdge   int `json:"competitive_edge"`
	PurchaseReadiness int `json:"purchase_readiness"`
}

// WeightSet holds the per-axis weights. An active weight set must sum to
// exactly 100; that invariant is enforced when the set is activated, not at
// score time.
type WeightSet struct {
	EquipmentSynergy  int `json:"equipment_synergy" yaml:"equipment_synergy"`
	EquipmentAge      int `json:"equipment_age" yaml:"equipment_age"`
	RevenueImpact     int `json:"revenue_impact" yaml:"revenue_impact"`
	CompetitiveEdge   int `json:"competitive_edge" yaml:"competitive_edge"`
	PurchaseReadiness int `json:"purchase_readiness" yaml:"purchase_readiness"`
}

// Sum returns the total of all axis weights.
func (w WeightSet) Sum() int {
	return w.EquipmentSynergy + w.EquipmentAge + w.RevenueImpact +
		w.CompetitiveEdge + w.PurchaseReadiness
}

// Grade is the sales-priority tier derived from a composite score.
// Ordering by priority: S > A > B > C. Exclude means the entity had too
// little underlying data to evaluate, regardless of score.
type Grade string

const (
	GradeS       Grade = "S"
	GradeA       Grade = "A"
	GradeB       Grade = "B"
	GradeC       Grade = "C"
	GradeExclude Grade = "EXCLUDE"
)

// MatchScore is a scored (entity, product) pair handed to the lead generator.
type MatchScore struct {
	ID             string   `json:"id"`
	EntityID       string   `json:"entity_id"`
	ProductID      string   `json:"product_id"`
	TotalScore     int      `json:"total_score"`
	Grade          Grade    `json:"grade"`
	TopPitchPoints []string `json:"top_pitch_points,omitempty"`
}
