package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/competitor"
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors <entity-id>",
	Short: "List nearby competitors for a clinic",
	Long: `Finds active clinics in the same district within the configured radius,
sorted by distance, with their tracked modern equipment and menu size.

Example:
  clinic-intel competitors clinic-042 --radius 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runCompetitors,
}

func init() {
	competitorsCmd.Flags().Float64("radius", 0, "search radius in km (default: configured value)")
	rootCmd.AddCommand(competitorsCmd)
}

func runCompetitors(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radius, _ := cmd.Flags().GetFloat64("radius")
	if radius <= 0 {
		radius = cfg.Competitor.RadiusKm
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	analyzer := competitor.NewAnalyzer(st, cfg.Competitor.TrackedCategory, cfg.Competitor.RecencyYears)
	result, err := analyzer.FindCompetitorsByID(ctx, args[0], radius, time.Now())
	if err != nil {
		return err
	}
	if result == nil {
		zap.L().Warn("competitors: entity has no usable location", zap.String("entity_id", args[0]))
	}

	zap.L().Info("competitors: analysis complete",
		zap.String("entity_id", args[0]),
		zap.Float64("radius_km", radius),
		zap.Int("found", len(result)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
