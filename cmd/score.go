package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/grading"
	"github.com/growthdesk/clinic-intel/internal/lead"
	"github.com/growthdesk/clinic-intel/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute a composite sales-readiness score and grade",
	Long: `Combines the five axis scores with the active weight set into a composite
0-100 score and a grade (S/A/B/C, or EXCLUDE below the data-quality gate).

Axis scores are produced upstream; pass them via flags. Data quality is read
from the store unless overridden.

Examples:
  clinic-intel score --entity clinic-042 --product thermage-flx \
    --synergy 70 --age 60 --revenue 90 --edge 50 --readiness 40

  # Persist the result and create a lead when the grade qualifies
  clinic-intel score --entity clinic-042 --product thermage-flx \
    --synergy 85 --age 80 --revenue 90 --edge 70 --readiness 75 \
    --save --create-lead`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("entity", "", "entity id (required)")
	f.String("product", "", "product id (required)")
	f.Int("synergy", 0, "equipment synergy axis score (0-100)")
	f.Int("age", 0, "equipment age axis score (0-100)")
	f.Int("revenue", 0, "revenue impact axis score (0-100)")
	f.Int("edge", 0, "competitive edge axis score (0-100)")
	f.Int("readiness", 0, "purchase readiness axis score (0-100)")
	f.Int("data-quality", -1, "data quality override (default: read from store)")
	f.StringSlice("pitch", nil, "top pitch points attached to a created lead")
	f.Bool("save", false, "persist the match score")
	f.Bool("create-lead", false, "create a lead when the grade qualifies")
	_ = scoreCmd.MarkFlagRequired("entity")
	_ = scoreCmd.MarkFlagRequired("product")

	weightsShowCmd.AddCommand(weightsActivateCmd)
	scoreCmd.AddCommand(weightsShowCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entityID, _ := cmd.Flags().GetString("entity")
	productID, _ := cmd.Flags().GetString("product")
	dataQuality, _ := cmd.Flags().GetInt("data-quality")
	pitch, _ := cmd.Flags().GetStringSlice("pitch")
	save, _ := cmd.Flags().GetBool("save")
	createLead, _ := cmd.Flags().GetBool("create-lead")

	scores := model.ScoreSet{}
	scores.EquipmentSynergy, _ = cmd.Flags().GetInt("synergy")
	scores.EquipmentAge, _ = cmd.Flags().GetInt("age")
	scores.RevenueImpact, _ = cmd.Flags().GetInt("revenue")
	scores.CompetitiveEdge, _ = cmd.Flags().GetInt("edge")
	scores.PurchaseReadiness, _ = cmd.Flags().GetInt("readiness")

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	weights, version, err := st.GetActiveWeights(ctx)
	if err != nil {
		return eris.Wrap(err, "score: load weights")
	}

	if dataQuality < 0 {
		dataQuality, err = st.GetDataQuality(ctx, entityID)
		if err != nil {
			return eris.Wrap(err, "score: load data quality")
		}
	}

	total := grading.TotalScore(scores, weights)
	grade := grading.GradeFor(total, dataQuality)

	ms := model.MatchScore{
		EntityID:       entityID,
		ProductID:      productID,
		TotalScore:     total,
		Grade:          grade,
		TopPitchPoints: pitch,
	}

	zap.L().Info("score: computed",
		zap.String("entity_id", entityID),
		zap.String("product_id", productID),
		zap.String("weights_version", version),
		zap.Int("total_score", total),
		zap.String("grade", string(grade)),
	)

	if save {
		if err := st.SaveMatchScore(ctx, &ms); err != nil {
			return err
		}
	}

	output := struct {
		model.MatchScore
		DataQuality int          `json:"data_quality"`
		Lead        *lead.Result `json:"lead,omitempty"`
	}{MatchScore: ms, DataQuality: dataQuality}

	if createLead {
		res, err := lead.NewGenerator(st).TryCreateLead(ctx, ms)
		if err != nil {
			zap.L().Error("score: lead creation failed", zap.Error(err))
		}
		output.Lead = &res
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

var weightsShowCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the active weight set",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		weights, version, err := st.GetActiveWeights(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Version string          `json:"version"`
			Weights model.WeightSet `json:"weights"`
		}{version, weights})
	},
}

var weightsActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Validate and activate a weight set",
	Long: `Activates a new weight set version. Weights must be non-negative and sum
to exactly 100; violations are rejected.

Example:
  clinic-intel score weights activate --version q3-aggressive \
    --synergy 30 --age 15 --revenue 30 --edge 15 --readiness 10`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		version, _ := cmd.Flags().GetString("version")

		w := model.WeightSet{}
		w.EquipmentSynergy, _ = cmd.Flags().GetInt("synergy")
		w.EquipmentAge, _ = cmd.Flags().GetInt("age")
		w.RevenueImpact, _ = cmd.Flags().GetInt("revenue")
		w.CompetitiveEdge, _ = cmd.Flags().GetInt("edge")
		w.PurchaseReadiness, _ = cmd.Flags().GetInt("readiness")

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ActivateWeights(ctx, w, version); err != nil {
			return err
		}
		zap.L().Info("score: weight set activated", zap.String("version", version))
		return nil
	},
}

func init() {
	f := weightsActivateCmd.Flags()
	f.String("version", "", "weight set version label (required)")
	f.Int("synergy", 0, "equipment synergy weight")
	f.Int("age", 0, "equipment age weight")
	f.Int("revenue", 0, "revenue impact weight")
	f.Int("edge", 0, "competitive edge weight")
	f.Int("readiness", 0, "purchase readiness weight")
	_ = weightsActivateCmd.MarkFlagRequired("version")
}
