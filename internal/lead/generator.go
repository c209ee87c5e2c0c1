// Package lead turns qualifying match scores into outbound sales leads.
package lead

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Lead priorities by grade.
const (
	priorityGradeS = 100
	priorityGradeA = 50
)

// Store is the persistence surface the generator depends on.
type Store interface {
	// GetContactEmail returns the entity's contact email, or "" when none
	// is known.
	GetContactEmail(ctx context.Context, entityID string) (string, error)

	// FindLead returns the existing lead for an (entity, product) pair, or
	// (nil, nil) when none exists.
	FindLead(ctx context.Context, entityID, productID string) (*model.Lead, error)

	// InsertLead persists a new lead.
	InsertLead(ctx context.Context, lead *model.Lead) error

	// InsertActivity appends one activity-log record.
	InsertActivity(ctx context.Context, activity *model.LeadActivity) error
}

// Result reports the outcome of a lead-creation attempt.
type Result struct {
	Created bool   `json:"created"`
	LeadID  string `json:"lead_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Generator creates leads from match scores, enforcing the grade gate,
// the contact-data gate, and at-most-one-lead-per-(entity, product).
type Generator struct {
	store Store
	now   func() time.Time
}

// NewGenerator builds a Generator over the given store.
func NewGenerator(store Store) *Generator {
	return &Generator{store: store, now: time.Now}
}

// TryCreateLead evaluates the gates in order and creates a lead when all
// pass. A lead that already exists for the (entity, product) pair is an
// idempotent no-op returning the existing lead id. An insert failure is
// surfaced in the result reason: silently dropping a qualifying lead would
// corrupt business-critical state.
func (g *Generator) TryCreateLead(ctx context.Context, ms model.MatchScore) (Result, error) {
	if ms.Grade != model.GradeS && ms.Grade != model.GradeA {
		return Result{Reason: fmt.Sprintf("grade %s below lead threshold", ms.Grade)}, nil
	}

	email, err := g.store.GetContactEmail(ctx, ms.EntityID)
	if err != nil {
		return Result{Reason: err.Error()}, err
	}
	if email == "" {
		return Result{Reason: "entity has no contact email"}, nil
	}

	existing, err := g.store.FindLead(ctx, ms.EntityID, ms.ProductID)
	if err != nil {
		return Result{Reason: err.Error()}, err
	}
	if existing != nil {
		return Result{LeadID: existing.ID, Reason: "lead already exists"}, nil
	}

	priority := priorityGradeA
	if ms.Grade == model.GradeS {
		priority = priorityGradeS
	}

	l := &model.Lead{
		ID:            uuid.New().String(),
		EntityID:      ms.EntityID,
		ProductID:     ms.ProductID,
		MatchScoreID:  ms.ID,
		Grade:         ms.Grade,
		Priority:      priority,
		ContactEmail:  email,
		InterestLevel: "cold",
		Stage:         "new",
		CreatedAt:     g.now().UTC(),
	}
	if len(ms.TopPitchPoints) > 0 {
		l.Note = "Top pitch points: " + strings.Join(ms.TopPitchPoints, "; ")
	}

	if err := g.store.InsertLead(ctx, l); err != nil {
		return Result{Reason: err.Error()}, err
	}

	activity := &model.LeadActivity{
		ID:        uuid.New().String(),
		LeadID:    l.ID,
		Kind:      "auto_created",
		Detail:    fmt.Sprintf("lead auto-created from match score %s (grade %s)", ms.ID, ms.Grade),
		CreatedAt: l.CreatedAt,
	}
	if err := g.store.InsertActivity(ctx, activity); err != nil {
		// The lead itself is durable; a missing log line is not worth
		// failing the creation over.
		zap.L().Warn("lead: activity log insert failed",
			zap.String("lead_id", l.ID),
			zap.Error(err),
		)
	}

	zap.L().Info("lead: created",
		zap.String("lead_id", l.ID),
		zap.String("entity_id", ms.EntityID),
		zap.String("product_id", ms.ProductID),
		zap.String("grade", string(ms.Grade)),
		zap.Int("priority", priority),
	)
	return Result{Created: true, LeadID: l.ID}, nil
}
