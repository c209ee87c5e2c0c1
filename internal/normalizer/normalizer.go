// Package normalizer maps raw extracted keyword strings to canonical
// dictionary entries.
package normalizer

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
	"github.com/growthdesk/clinic-intel/internal/model"
)

// aliasRef is one alias flattened out of its entry for global ordering.
type aliasRef struct {
	alias string // lowered
	entry int    // index into entries
}

// Normalizer resolves raw keywords against an immutable dictionary snapshot.
type Normalizer struct {
	entries []model.DictionaryEntry
	// aliases is sorted longest-first (stable, so equal lengths keep entry
	// order) so a short alias never shadows a longer, more specific one.
	aliases []aliasRef
	// lowered standard names, same order as entries.
	standards []string
}

// New builds a Normalizer over the given entries. Entry order is preserved;
// matching is first-hit-wins.
func New(entries []model.DictionaryEntry) *Normalizer {
	n := &Normalizer{entries: entries}
	n.standards = make([]string, len(entries))
	for i, e := range entries {
		n.standards[i] = strings.ToLower(e.StandardName)
		for _, a := range e.Aliases {
			n.aliases = append(n.aliases, aliasRef{alias: strings.ToLower(a), entry: i})
		}
	}
	sort.SliceStable(n.aliases, func(i, j int) bool {
		return utf8.RuneCountInString(n.aliases[i].alias) > utf8.RuneCountInString(n.aliases[j].alias)
	})
	return n
}

// NewFromProvider loads the dictionary snapshot from a provider.
func NewFromProvider(ctx context.Context, p dictionary.Provider) (*Normalizer, error) {
	entries, err := p.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// Normalize resolves one raw keyword. Empty input yields an unresolved item
// with no error. Standard names are checked before aliases.
func (n *Normalizer) Normalize(text string) model.NormalizedItem {
	item := model.NormalizedItem{Original: text}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return item
	}
	haystack := strings.ToLower(Correct(trimmed))

	for i, std := range n.standards {
		if std != "" && strings.Contains(haystack, std) {
			return n.resolved(item, i, model.MatchByStandard)
		}
	}
	for _, ref := range n.aliases {
		if ref.alias != "" && strings.Contains(haystack, ref.alias) {
			return n.resolved(item, ref.entry, model.MatchByAlias)
		}
	}
	return item
}

func (n *Normalizer) resolved(item model.NormalizedItem, entry int, by model.MatchSource) model.NormalizedItem {
	e := n.entries[entry]
	item.StandardName = e.StandardName
	item.Category = e.Category
	item.BaseUnitType = e.BaseUnitType
	item.MatchedBy = by
	return item
}

// BatchResult aggregates a NormalizeAll run. Items is sized to the input;
// Unmatched holds the subset that did not resolve, in input order.
type BatchResult struct {
	Items     []model.NormalizedItem `json:"items"`
	MatchRate float64                `json:"match_rate"`
	Unmatched []model.NormalizedItem `json:"unmatched,omitempty"`
}

// NormalizeAll resolves a batch of raw keywords across the given number of
// workers. Per-item work is independent; the aggregate is deterministic
// regardless of execution order.
func (n *Normalizer) NormalizeAll(ctx context.Context, texts []string, workers int) BatchResult {
	items := make([]model.NormalizedItem, len(texts))
	if len(texts) == 0 {
		return BatchResult{Items: items}
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range texts {
		g.Go(func() error {
			items[i] = n.Normalize(t)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; lookup misses are not errors

	var matched int
	var unmatched []model.NormalizedItem
	for _, it := range items {
		if it.Resolved() {
			matched++
		} else {
			unmatched = append(unmatched, it)
		}
	}
	return BatchResult{
		Items:     items,
		MatchRate: float64(matched) / float64(len(texts)),
		Unmatched: unmatched,
	}
}

// ExtractKnownKeywords finds every dictionary entry whose standard name or
// any alias occurs anywhere in the given text, deduplicated by standard name.
// Results are in dictionary order.
func (n *Normalizer) ExtractKnownKeywords(text string) []string {
	haystack := strings.ToLower(Correct(text))
	if strings.TrimSpace(haystack) == "" {
		return nil
	}

	var found []string
	for i, e := range n.entries {
		hit := strings.Contains(haystack, n.standards[i])
		if !hit {
			for _, a := range e.Aliases {
				if strings.Contains(haystack, strings.ToLower(a)) {
					hit = true
					break
				}
			}
		}
		if hit {
			found = append(found, e.StandardName)
		}
	}
	return found
}
