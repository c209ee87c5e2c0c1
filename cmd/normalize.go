package main

import (
	"bufio"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/growthdesk/clinic-intel/internal/normalizer"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [keyword ...]",
	Short: "Normalize raw keywords against the canonical dictionary",
	Long: `Normalizes raw extracted keyword strings (equipment/treatment names) to
canonical dictionary entries. Unmatched keywords are reported separately for
downstream decomposition.

Examples:
  # Normalize keywords given on the command line
  clinic-intel normalize 써마지FLX 울쎄라리프팅

  # Normalize one keyword per line from a file, using the built-in dictionary
  clinic-intel normalize --file keywords.txt --seed

  # Extract every known keyword occurring anywhere in a text file
  clinic-intel normalize --extract --file page.txt`,
	RunE: runNormalize,
}

func init() {
	f := normalizeCmd.Flags()
	f.String("file", "", "read keywords from file, one per line (or full text with --extract)")
	f.Bool("seed", false, "use the built-in seed dictionary instead of the store")
	f.Bool("extract", false, "full-text scan: report every known keyword in the input")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	file, _ := cmd.Flags().GetString("file")
	useSeed, _ := cmd.Flags().GetBool("seed")
	extract, _ := cmd.Flags().GetBool("extract")

	provider, st, err := dictionaryProvider(ctx, useSeed)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	norm, err := normalizer.NewFromProvider(ctx, provider)
	if err != nil {
		return eris.Wrap(err, "normalize: load dictionary")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if extract {
		if file == "" {
			return eris.New("normalize: --extract requires --file")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return eris.Wrapf(err, "normalize: read %s", file)
		}
		return enc.Encode(norm.ExtractKnownKeywords(string(data)))
	}

	keywords := args
	if file != "" {
		fromFile, err := readLines(file)
		if err != nil {
			return err
		}
		keywords = append(keywords, fromFile...)
	}
	if len(keywords) == 0 {
		return eris.New("normalize: no keywords given")
	}

	result := norm.NormalizeAll(ctx, keywords, cfg.Normalizer.Workers)
	zap.L().Info("normalize: batch complete",
		zap.Int("total", len(keywords)),
		zap.Int("unmatched", len(result.Unmatched)),
		zap.Float64("match_rate", result.MatchRate),
	)
	return enc.Encode(result)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "scan %s", path)
	}
	return lines, nil
}
