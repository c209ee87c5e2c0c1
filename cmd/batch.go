package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/growthdesk/clinic-intel/internal/grading"
	"github.com/growthdesk/clinic-intel/internal/lead"
	"github.com/growthdesk/clinic-intel/internal/model"
	"github.com/growthdesk/clinic-intel/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a batch of entities from a JSON file",
	Long: `Scores each record in the input file concurrently using the active weight
set, persists the results, and optionally creates leads for qualifying grades.

The input is a JSON array of records:
  [{"entity_id": "...", "product_id": "...",
    "scores": {"equipment_synergy": 70, "equipment_age": 60,
               "revenue_impact": 90, "competitive_edge": 50,
               "purchase_readiness": 40},
    "pitch_points": ["..."]}]

Example:
  clinic-intel score batch --file candidates.json --create-leads`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("file", "", "path to the batch input JSON (required)")
	f.Int("workers", 4, "concurrent scoring workers")
	f.Bool("create-leads", false, "create leads for qualifying grades")
	_ = batchCmd.MarkFlagRequired("file")
	scoreCmd.AddCommand(batchCmd)
}

type batchRecord struct {
	EntityID    string         `json:"entity_id"`
	ProductID   string         `json:"product_id"`
	Scores      model.ScoreSet `json:"scores"`
	PitchPoints []string       `json:"pitch_points"`
}

type batchOutcome struct {
	model.MatchScore
	Lead *lead.Result `json:"lead,omitempty"`
	Err  string       `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("file")
	workers, _ := cmd.Flags().GetInt("workers")
	createLeads, _ := cmd.Flags().GetBool("create-leads")

	records, err := readBatchFile(path)
	if err != nil {
		return err
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	weights, version, err := st.GetActiveWeights(ctx)
	if err != nil {
		return eris.Wrap(err, "batch: load weights")
	}
	zap.L().Info("batch: scoring started",
		zap.Int("records", len(records)),
		zap.Int("workers", workers),
		zap.String("weights_version", version),
	)

	outcomes := make([]batchOutcome, len(records))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rec := range records {
		g.Go(func() error {
			out := scoreRecord(gctx, st, rec, weights, createLeads)
			mu.Lock()
			outcomes[i] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for _, out := range outcomes {
		if out.Err != "" {
			failed++
		}
	}
	zap.L().Info("batch: scoring complete", zap.Int("records", len(records)), zap.Int("failed", failed))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomes)
}

func scoreRecord(ctx context.Context, st store.Store, rec batchRecord, weights model.WeightSet, createLead bool) batchOutcome {
	dataQuality, err := st.GetDataQuality(ctx, rec.EntityID)
	if err != nil {
		return batchOutcome{
			MatchScore: model.MatchScore{EntityID: rec.EntityID, ProductID: rec.ProductID},
			Err:        err.Error(),
		}
	}

	total := grading.TotalScore(rec.Scores, weights)
	ms := model.MatchScore{
		EntityID:       rec.EntityID,
		ProductID:      rec.ProductID,
		TotalScore:     total,
		Grade:          grading.GradeFor(total, dataQuality),
		TopPitchPoints: rec.PitchPoints,
	}
	out := batchOutcome{MatchScore: ms}

	if err := st.SaveMatchScore(ctx, &ms); err != nil {
		out.Err = err.Error()
		return out
	}
	out.MatchScore = ms

	if createLead {
		res, err := lead.NewGenerator(st).TryCreateLead(ctx, ms)
		if err != nil {
			out.Err = err.Error()
			return out
		}
		out.Lead = &res
	}
	return out
}

func readBatchFile(path string) ([]batchRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read input file %s", path)
	}
	var records []batchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, eris.Wrapf(err, "batch: parse input file %s", path)
	}
	if len(records) == 0 {
		return nil, eris.New("batch: input file has no records")
	}
	return records, nil
}
