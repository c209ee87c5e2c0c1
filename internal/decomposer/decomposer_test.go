package decomposer

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
	"github.com/growthdesk/clinic-intel/internal/model"
)

type fakeRegistry struct {
	recorded map[string]int
	err      error
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{recorded: make(map[string]int)}
}

func (f *fakeRegistry) RecordCandidate(_ context.Context, rawText, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.recorded[rawText]++
	return nil
}

type failingResolver struct{}

func (failingResolver) FindCompound(context.Context, string) (*model.CompoundEntry, error) {
	return nil, eris.New("store unavailable")
}

func (failingResolver) Source() model.DecompositionSource { return model.DecompSourceDB }

func staticChain() *dictionary.Chain {
	return dictionary.NewChain(dictionary.NewStatic(dictionary.SeedEntries(), dictionary.SeedCompounds()))
}

func TestDecompose_StaticDictionaryHit(t *testing.T) {
	d := New(staticChain(), newFakeRegistry())

	res, out := d.Decompose(context.Background(), "울써마", "clinic-1")
	assert.False(t, out.Degraded)
	assert.True(t, res.Resolved())
	assert.Equal(t, []string{"울쎄라", "써마지"}, res.Decomposed)
	assert.Equal(t, model.DecompSourceDictionary, res.Source)
	assert.Equal(t, 1.0, res.Confidence)
	assert.NotEmpty(t, res.ScoringNote)
}

func TestDecompose_EmptyInput(t *testing.T) {
	reg := newFakeRegistry()
	d := New(staticChain(), reg)

	res, out := d.Decompose(context.Background(), "   ", "clinic-1")
	assert.False(t, out.Degraded)
	assert.False(t, res.Resolved())
	assert.Empty(t, reg.recorded)
}

func TestDecompose_HeuristicRegistersCandidate(t *testing.T) {
	reg := newFakeRegistry()
	d := New(staticChain(), reg)

	// Two known device prefixes back to back, but no curated mapping.
	res, out := d.Decompose(context.Background(), "슈링리쥬", "clinic-7")
	assert.False(t, out.Degraded)
	assert.False(t, res.Resolved())
	assert.Equal(t, model.DecompSourceCandidate, res.Source)
	assert.Zero(t, res.Confidence)
	assert.Equal(t, 1, reg.recorded["슈링리쥬"])
}

func TestDecompose_NonCompoundNotRegistered(t *testing.T) {
	reg := newFakeRegistry()
	d := New(staticChain(), reg)

	res, out := d.Decompose(context.Background(), "보톡스", "clinic-1")
	assert.False(t, out.Degraded)
	assert.False(t, res.Resolved())
	assert.Empty(t, res.Source)
	assert.Empty(t, reg.recorded)
}

func TestDecompose_RegistryFailureDegrades(t *testing.T) {
	reg := newFakeRegistry()
	reg.err = eris.New("db down")
	d := New(staticChain(), reg)

	res, out := d.Decompose(context.Background(), "슈링리쥬", "clinic-1")
	assert.True(t, out.Degraded)
	assert.Error(t, out.Err)
	assert.Equal(t, model.DecompSourceCandidate, res.Source)
}

func TestDecompose_ResolverFailureFallsThrough(t *testing.T) {
	// Failing store first, static second: the static hit still resolves but
	// the outcome records the degradation.
	chain := dictionary.NewChain(
		failingResolver{},
		dictionary.NewStatic(nil, dictionary.SeedCompounds()),
	)
	d := New(chain, newFakeRegistry())

	res, out := d.Decompose(context.Background(), "울써마", "clinic-1")
	assert.True(t, out.Degraded)
	assert.True(t, res.Resolved())
	assert.Equal(t, model.DecompSourceDictionary, res.Source)
}

func TestDecompose_NilRegistry(t *testing.T) {
	d := New(staticChain(), nil)

	res, out := d.Decompose(context.Background(), "슈링리쥬", "clinic-1")
	assert.False(t, out.Degraded)
	assert.Equal(t, model.DecompSourceCandidate, res.Source)
}

func TestDecomposeAll_DedupesCandidates(t *testing.T) {
	reg := newFakeRegistry()
	d := New(staticChain(), reg)

	batch, out := d.DecomposeAll(context.Background(), []string{
		"울써마", "슈링리쥬", "보톡스", "슈링리쥬",
	}, "clinic-3", 2)

	assert.False(t, out.Degraded)
	require.Len(t, batch.Results, 4)
	assert.Equal(t, []string{"슈링리쥬"}, batch.NewCandidates)
	// Both sightings hit the registry; dedup applies to the report only.
	assert.Equal(t, 2, reg.recorded["슈링리쥬"])
}

func TestDecomposeAll_Empty(t *testing.T) {
	d := New(staticChain(), newFakeRegistry())

	batch, out := d.DecomposeAll(context.Background(), nil, "", 4)
	assert.False(t, out.Degraded)
	assert.Empty(t, batch.Results)
	assert.Empty(t, batch.NewCandidates)
}

func TestLooksCompound(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"써마울쎄", true},  // 써마 + 울쎄, distinct known prefixes
		{"써마써마", false}, // repeated pair
		{"울써", false},   // too short
		{"가나다라", false}, // no known prefixes
		{"슈링리쥬", true},  // 슈링 + 리쥬
		{"thermage", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, looksCompound(tt.text))
		})
	}
}
