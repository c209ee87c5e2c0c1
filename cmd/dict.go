package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage the keyword dictionary",
}

var dictImportCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Import curated dictionary entries from an XLSX workbook",
	Long: `Upserts dictionary entries and compound mappings from a curated workbook.
Existing standard names are updated in place; imports never delete.

Example:
  clinic-intel dict import dictionary.xlsx --entry-sheet entries`,
	Args: cobra.ExactArgs(1),
	RunE: runDictImport,
}

var dictSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in starter dictionary into the store",
	RunE:  runDictSeed,
}

func init() {
	f := dictImportCmd.Flags()
	f.String("entry-sheet", "entries", "sheet name for dictionary entries")
	f.String("compound-sheet", "compounds", "sheet name for compound mappings")
	f.Int("skip-rows", 1, "header rows to skip")
	dictCmd.AddCommand(dictImportCmd, dictSeedCmd)
	rootCmd.AddCommand(dictCmd)
}

func runDictImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entrySheet, _ := cmd.Flags().GetString("entry-sheet")
	compoundSheet, _ := cmd.Flags().GetString("compound-sheet")
	skipRows, _ := cmd.Flags().GetInt("skip-rows")

	entries, compounds, err := dictionary.ImportXLSX(args[0], dictionary.ImportOptions{
		EntrySheet:    entrySheet,
		CompoundSheet: compoundSheet,
		SkipRows:      skipRows,
	})
	if err != nil {
		return err
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	nEntries, err := st.UpsertDictionaryEntries(ctx, entries)
	if err != nil {
		return err
	}
	nCompounds, err := st.UpsertCompoundEntries(ctx, compounds)
	if err != nil {
		return err
	}

	zap.L().Info("dict: import complete",
		zap.String("workbook", args[0]),
		zap.Int("entries", nEntries),
		zap.Int("compounds", nCompounds),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Entries   int `json:"entries"`
		Compounds int `json:"compounds"`
	}{nEntries, nCompounds})
}

func runDictSeed(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	nEntries, err := st.UpsertDictionaryEntries(ctx, dictionary.SeedEntries())
	if err != nil {
		return err
	}
	nCompounds, err := st.UpsertCompoundEntries(ctx, dictionary.SeedCompounds())
	if err != nil {
		return err
	}

	zap.L().Info("dict: seed loaded", zap.Int("entries", nEntries), zap.Int("compounds", nCompounds))
	return nil
}
