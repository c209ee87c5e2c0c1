package model

import "time"

// Lead is an outbound sales lead. At most one lead exists per
// (entity, product) pair; creation is gated on grade and contact data.
type Lead struct {
	ID            string    `json:"id"`
	EntityID      string    `json:"entity_id"`
	ProductID     string    `json:"product_id"`
	MatchScoreID  string    `json:"match_score_id"`
	Grade         Grade     `json:"grade"`
	Priority      int       `json:"priority"`
	ContactEmail  string    `json:"contact_email"`
	InterestLevel string    `json:"interest_level"`
	Stage         string    `json:"stage"`
	Note          string    `json:"note,omitempty"`
	EmailsSent    int       `json:"emails_sent"`
	EmailsOpened  int       `json:"emails_opened"`
	Replies       int       `json:"replies"`
	CreatedAt     time.Time `json:"created_at"`
}

// LeadActivity is one append-only activity-log record attached to a lead.
type LeadActivity struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Kind      string    `json:"kind"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
