package model

import "time"

// ItemType distinguishes equipment inventory from treatment menu items.
type ItemType string

const (
	ItemEquipment ItemType = "EQUIPMENT"
	ItemTreatment ItemType = "TREATMENT"
)

// ChangeType is the direction of a detected inventory/menu delta.
type ChangeType string

const (
	ChangeAdded   ChangeType = "ADDED"
	ChangeRemoved ChangeType = "REMOVED"
)

// EquipmentChange is one detected delta produced by the change-detection
// collaborator. Consumed read-only by the signal classifier.
type EquipmentChange struct {
	ID           string     `json:"id"`
	EntityID     string     `json:"entity_id"`
	ItemType     ItemType   `json:"item_type"`
	ChangeType   ChangeType `json:"change_type"`
	ItemName     string     `json:"item_name"`
	StandardName string     `json:"standard_name,omitempty"`
}

// SignalRule is a per-product trigger rule supplied externally.
// Trigger names map to a fixed (change type, item type) pair; unknown
// triggers are skipped by the classifier.
type SignalRule struct {
	Trigger       string   `json:"trigger" yaml:"trigger"`
	MatchKeywords []string `json:"match_keywords" yaml:"match_keywords"`
	Priority      int      `json:"priority" yaml:"priority"`
	TitleTmpl     string   `json:"title_template" yaml:"title_template"`
	DescTmpl      string   `json:"description_template" yaml:"description_template"`
	RelatedAngle  string   `json:"related_angle" yaml:"related_angle"`
}

// SignalStatus is the workflow state of a sales signal.
type SignalStatus string

const SignalStatusNew SignalStatus = "NEW"

// SalesSignal is a prioritized notification that a detected change matches a
// product-specific sales trigger. Created once, never mutated.
type SalesSignal struct {
	ID             string       `json:"id"`
	EntityID       string       `json:"entity_id"`
	ProductID      string       `json:"product_id"`
	SignalType     string       `json:"signal_type"`
	Priority       int          `json:"priority"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	RelatedAngle   string       `json:"related_angle,omitempty"`
	SourceChangeID string       `json:"source_change_id,omitempty"`
	Status         SignalStatus `json:"status"`
	DetectedAt     time.Time    `json:"detected_at"`
}
