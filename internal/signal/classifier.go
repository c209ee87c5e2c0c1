// Package signal turns detected inventory/menu changes into prioritized
// sales signals by matching them against per-product trigger rules.
package signal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/outcome"
)

// trigger targets: closed mapping from rule trigger names to the
// (change type, item type) pair they select. Unrecognized triggers are
// skipped.
type target struct {
	change model.ChangeType
	item   model.ItemType
}

var triggerTargets = map[string]target{
	"equipment_added":   {model.ChangeAdded, model.ItemEquipment},
	"equipment_removed": {model.ChangeRemoved, model.ItemEquipment},
	"treatment_added":   {model.ChangeAdded, model.ItemTreatment},
	"treatment_removed": {model.ChangeRemoved, model.ItemTreatment},
}

// Store persists classified signal batches. Persistence is best-effort.
type Store interface {
	InsertSignals(ctx context.Context, signals []model.SalesSignal) error
}

// Classifier matches change lists against product signal rules.
type Classifier struct {
	store Store // nil disables persistence
	now   func() time.Time
}

// NewClassifier builds a Classifier. store may be nil.
func NewClassifier(store Store) *Classifier {
	return &Classifier{store: store, now: time.Now}
}

// Classify emits one signal per (rule, matching change) pair. A single change
// may produce multiple signals when it satisfies multiple rules. The computed
// list is always returned; a storage failure on the persistence side effect
// degrades rather than failing, because the signals remain useful to
// same-process downstream logic.
func (c *Classifier) Classify(ctx context.Context, changes []model.EquipmentChange, productID string, rules []model.SignalRule) ([]model.SalesSignal, outcome.Outcome) {
	var signals []model.SalesSignal
	detectedAt := c.now().UTC()

	for _, rule := range rules {
		tgt, ok := triggerTargets[rule.Trigger]
		if !ok {
			zap.L().Debug("signal: skipping unrecognized trigger", zap.String("trigger", rule.Trigger))
			continue
		}

		for _, ch := range changes {
			if ch.ChangeType != tgt.change || ch.ItemType != tgt.item {
				continue
			}
			if !matchesKeywords(rule.MatchKeywords, ch.StandardName, ch.ItemName) {
				continue
			}

			signals = append(signals, model.SalesSignal{
				ID:             uuid.New().String(),
				EntityID:       ch.EntityID,
				ProductID:      productID,
				SignalType:     string(tgt.item) + "_" + string(tgt.change),
				Priority:       rule.Priority,
				Title:          renderTemplate(rule.TitleTmpl, ch.ItemName),
				Description:    renderTemplate(rule.DescTmpl, ch.ItemName),
				RelatedAngle:   rule.RelatedAngle,
				SourceChangeID: ch.ID,
				Status:         model.SignalStatusNew,
				DetectedAt:     detectedAt,
			})
		}
	}

	out := outcome.Ok()
	if c.store != nil && len(signals) > 0 {
		if err := c.store.InsertSignals(ctx, signals); err != nil {
			zap.L().Warn("signal: persistence degraded",
				zap.Int("signals", len(signals)),
				zap.Error(err),
			)
			out = outcome.Degraded(err)
		}
	}

	zap.L().Info("signal: classification complete",
		zap.String("product_id", productID),
		zap.Int("changes", len(changes)),
		zap.Int("rules", len(rules)),
		zap.Int("signals", len(signals)),
	)
	return signals, out
}

// matchesKeywords reports whether any keyword appears as a
// whitespace-stripped, case-insensitive substring of the standardized or raw
// item name. Stripping defends against inconsistent spacing in source text.
func matchesKeywords(keywords []string, standardName, itemName string) bool {
	std := squash(standardName)
	raw := squash(itemName)
	for _, kw := range keywords {
		k := squash(kw)
		if k == "" {
			continue
		}
		if strings.Contains(std, k) || strings.Contains(raw, k) {
			return true
		}
	}
	return false
}

// squash lowercases and removes all whitespace.
func squash(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// renderTemplate substitutes the literal {{item_name}} placeholder with the
// change's raw item name.
func renderTemplate(tmpl, itemName string) string {
	return strings.ReplaceAll(tmpl, "{{item_name}}", itemName)
}
