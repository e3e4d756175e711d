package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/smeltwise/lcaops/internal/fallback"
	"github.com/smeltwise/lcaops/internal/store"
)

var verifyFlags struct {
	noCreate bool
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a stored model artifact loads; create a fallback if none do",
	Long: "Probes the configured candidate artifact paths in order and reports the\n" +
		"first that loads and validates. When every candidate fails, a synthetic\n" +
		"fallback artifact is built and saved so the application can still start.",
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyFlags.noCreate, "no-create", false,
		"Only probe; exit 1 instead of creating a fallback when nothing loads")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	path, art := store.LoadFirstAvailable(cfg.Store.CandidatePaths())
	if art != nil {
		fmt.Fprintf(out, "Working model found: %s\n", path)
		return nil
	}

	if verifyFlags.noCreate {
		return fmt.Errorf("no working model artifact found under %s", cfg.Store.Dir)
	}

	slog.Warn("no working models found, creating fallback", "dir", cfg.Store.Dir)
	art, err := fallback.Build(buildConfig())
	if err != nil {
		return fmt.Errorf("build fallback model: %w", err)
	}
	dest := cfg.Store.FallbackPath()
	if err := store.Save(art, dest); err != nil {
		return fmt.Errorf("save fallback model: %w", err)
	}

	fmt.Fprintf(out, "No working models found; fallback saved to %s\n", dest)
	return nil
}
