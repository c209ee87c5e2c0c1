package dictionary

import (
	"context"
	"strings"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// Static is an in-memory dictionary provider. It backs the offline resolution
// steps and never fails.
type Static struct {
	entries   []model.DictionaryEntry
	compounds []model.CompoundEntry
}

// NewStatic builds a Static provider over the given tables. Slice order is
// preserved; matching is first-entry-wins.
func NewStatic(entries []model.DictionaryEntry, compounds []model.CompoundEntry) *Static {
	return &Static{entries: entries, compounds: compounds}
}

// Entries returns the canonical keyword entries in insertion order.
func (s *Static) Entries(_ context.Context) ([]model.DictionaryEntry, error) {
	return s.entries, nil
}

// CompoundEntries returns the canonical compound decompositions.
func (s *Static) CompoundEntries(_ context.Context) ([]model.CompoundEntry, error) {
	return s.compounds, nil
}

// FindCompound looks up a compound by exact or containment match.
func (s *Static) FindCompound(_ context.Context, text string) (*model.CompoundEntry, error) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil, nil
	}
	for i := range s.compounds {
		name := strings.ToLower(s.compounds[i].CompoundName)
		if name == needle || strings.Contains(needle, name) {
			return &s.compounds[i], nil
		}
	}
	return nil, nil
}

// Source identifies static matches as dictionary hits.
func (s *Static) Source() model.DecompositionSource {
	return model.DecompSourceDictionary
}
