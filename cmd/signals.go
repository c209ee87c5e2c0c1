package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/model"
	sig "github.com/growthdesk/clinic-intel/internal/signal"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Classify detected changes into sales signals",
	Long: `Matches equipment and treatment-menu changes against a product's trigger
rules and emits prioritized sales signals. Rules come from a YAML file;
changes come from a JSON file produced by change detection.

Example:
  clinic-intel signals --rules rules/thermage-flx.yaml --changes changes.json`,
	RunE: runSignals,
}

func init() {
	f := signalsCmd.Flags()
	f.String("rules", "", "path to the product rules YAML (required)")
	f.String("changes", "", "path to the detected-changes JSON (required)")
	f.Bool("dry-run", false, "classify without persisting signals")
	_ = signalsCmd.MarkFlagRequired("rules")
	_ = signalsCmd.MarkFlagRequired("changes")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rulesPath, _ := cmd.Flags().GetString("rules")
	changesPath, _ := cmd.Flags().GetString("changes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	productID, rules, err := sig.LoadRulesFile(rulesPath)
	if err != nil {
		return err
	}

	changes, err := readChanges(changesPath)
	if err != nil {
		return err
	}

	var classifier *sig.Classifier
	if dryRun {
		classifier = sig.NewClassifier(nil)
	} else {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		classifier = sig.NewClassifier(st)
	}

	signals, out := classifier.Classify(ctx, changes, productID, rules)
	if out.Degraded {
		zap.L().Warn("signals: persisted with degradation", zap.Error(out.Err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(signals)
}

func readChanges(path string) ([]model.EquipmentChange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "signals: read changes file %s", path)
	}
	var changes []model.EquipmentChange
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil, eris.Wrapf(err, "signals: parse changes file %s", path)
	}
	return changes, nil
}
