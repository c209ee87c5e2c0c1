package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/decomposer"
)

var decomposeCmd = &cobra.Command{
	Use:   "decompose [term ...]",
	Short: "Decompose composite treatment terms into canonical names",
	Long: `Attempts to split blended marketing terms (e.g. 울써마) into their
constituent canonical names, resolving against the static compound table and
the curated store. Unresolved compound-like terms are registered as
candidates for curation.

Examples:
  clinic-intel decompose 울써마
  clinic-intel decompose --file unmatched.txt --entity clinic-042`,
	RunE: runDecompose,
}

func init() {
	f := decomposeCmd.Flags()
	f.String("file", "", "read terms from file, one per line")
	f.String("entity", "", "origin entity id recorded on new candidates")
	f.Bool("seed", false, "resolve offline against the built-in tables only")

	rootCmd.AddCommand(decomposeCmd)
}

func runDecompose(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	file, _ := cmd.Flags().GetString("file")
	entityID, _ := cmd.Flags().GetString("entity")
	useSeed, _ := cmd.Flags().GetBool("seed")

	terms := args
	if file != "" {
		fromFile, err := readLines(file)
		if err != nil {
			return err
		}
		terms = append(terms, fromFile...)
	}
	if len(terms) == 0 {
		return eris.New("decompose: no terms given")
	}

	var dec *decomposer.Decomposer
	if useSeed {
		dec = decomposer.New(compoundChain(nil), nil)
	} else {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		dec = decomposer.New(compoundChain(st), st)
	}

	result, out := dec.DecomposeAll(ctx, terms, entityID, cfg.Normalizer.Workers)
	if out.Degraded {
		zap.L().Warn("decompose: batch degraded", zap.Error(out.Err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
