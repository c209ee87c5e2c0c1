// Package model defines the core domain types for the clinic intelligence pipeline.
package model

import "time"

// MatchSource describes how a raw keyword resolved against the dictionary.
type MatchSource string

const (
	MatchByStandard MatchSource = "standard"
	MatchByAlias    MatchSource = "alias"
)

// DictionaryEntry is one canonical keyword (equipment or treatment name).
// Aliases resolve to StandardName; StandardName is unique across active entries.
type DictionaryEntry struct {
	ID           string   `json:"id,omitempty"`
	StandardName string   `json:"standard_name"`
	Category     string   `json:"category"`
	BaseUnitType string   `json:"base_unit_type"`
	Aliases      []string `json:"aliases"`
}

// CompoundEntry maps a blended marketing term to its constituent canonical names.
type CompoundEntry struct {
	ID           string   `json:"id,omitempty"`
	CompoundName string   `json:"compound_name"`
	DecomposedTo []string `json:"decomposed_to"`
	ScoringNote  string   `json:"scoring_note,omitempty"`
}

// CandidateStatus is the curation state of a discovered compound candidate.
type CandidateStatus string

const (
	CandidatePending  CandidateStatus = "pending"
	CandidateApproved CandidateStatus = "approved"
	CandidateRejected CandidateStatus = "rejected"
)

// CompoundCandidate is an unresolved compound-like string awaiting curation.
// DiscoveryCount increments on repeat sightings of the same raw text.
type CompoundCandidate struct {
	ID             string          `json:"id"`
	RawText        string          `json:"raw_text"`
	Inferred       []string        `json:"inferred,omitempty"`
	Confidence     float64         `json:"confidence"`
	DiscoveryCount int             `json:"discovery_count"`
	FirstEntityID  string          `json:"first_entity_id,omitempty"`
	Status         CandidateStatus `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NormalizedItem is the per-keyword result of normalization. Unresolved
// keywords carry an empty StandardName and MatchedBy.
type NormalizedItem struct {
	Original     string      `json:"original"`
	StandardName string      `json:"standard_name,omitempty"`
	Category     string      `json:"category,omitempty"`
	BaseUnitType string      `json:"base_unit_type,omitempty"`
	MatchedBy    MatchSource `json:"matched_by,omitempty"`
}

// Resolved reports whether the item matched a dictionary entry.
func (n NormalizedItem) Resolved() bool { return n.StandardName != "" }

// DecompositionSource identifies which resolution step produced a result.
type DecompositionSource string

const (
	DecompSourceDictionary DecompositionSource = "dictionary"
	DecompSourceDB         DecompositionSource = "db"
	DecompSourceCandidate  DecompositionSource = "regex_candidate"
)

// DecompositionResult is the outcome of one compound-term decomposition.
// Confidence is binary: 1 for a resolved dictionary/store match, 0 otherwise.
type DecompositionResult struct {
	Original    string              `json:"original"`
	Decomposed  []string            `json:"decomposed,omitempty"`
	Source      DecompositionSource `json:"source,omitempty"`
	Confidence  float64             `json:"confidence"`
	ScoringNote string              `json:"scoring_note,omitempty"`
}

// Resolved reports whether the term decomposed into canonical names.
func (d DecompositionResult) Resolved() bool { return len(d.Decomposed) > 0 }
