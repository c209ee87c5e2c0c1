package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/growthdesk/clinic-intel/internal/dictionary"
	"github.com/growthdesk/clinic-intel/internal/normalizer"
	"github.com/growthdesk/clinic-intel/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the pipeline over JSON: normalization, saved scores, competitor
analysis, and signal classification. Shuts down gracefully on SIGINT/SIGTERM.

Example:
  clinic-intel serve --port 8080`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default: configured value)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	norm, err := normalizer.NewFromProvider(ctx, dictionary.NewStoreProvider(st))
	if err != nil {
		return err
	}

	return server.New(st, norm, *cfg).ListenAndServe(ctx)
}
