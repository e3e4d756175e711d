package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/smeltwise/lcaops/internal/fallback"
	"github.com/smeltwise/lcaops/internal/forest"
	"github.com/smeltwise/lcaops/internal/store"
)

var fallbackFlags struct {
	out     string
	samples int
	trees   int
	seed    int64
}

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Build a synthetic fallback model artifact and save it",
	Long: "Fits label encoders and multi-output regressors against synthetic data\n" +
		"and writes a complete artifact the serving application can load. Used at\n" +
		"deploy time when the trained model files are unavailable.",
	RunE: runFallback,
}

func init() {
	f := fallbackCmd.Flags()
	f.StringVarP(&fallbackFlags.out, "out", "o", "", "Output path (default: <model-dir>/railway_fallback_model.json)")
	f.IntVar(&fallbackFlags.samples, "samples", 0, "Synthetic training rows (default from config)")
	f.IntVar(&fallbackFlags.trees, "trees", 0, "Trees per regressor (default from config)")
	f.Int64Var(&fallbackFlags.seed, "seed", 0, "Random seed (default from config)")
}

func runFallback(cmd *cobra.Command, _ []string) error {
	out := fallbackFlags.out
	if out == "" {
		out = cfg.Store.RailwayPath()
	}

	art, err := fallback.Build(buildConfig())
	if err != nil {
		return fmt.Errorf("build fallback model: %w", err)
	}
	if err := store.Save(art, out); err != nil {
		return fmt.Errorf("save fallback model: %w", err)
	}

	slog.Info("fallback model saved", "path", out)
	fmt.Fprintf(cmd.OutOrStdout(), "Fallback model saved to %s\n", out)
	return nil
}

// buildConfig merges config-file/env defaults with command-line overrides.
func buildConfig() fallback.Config {
	bc := fallback.Config{
		Samples: cfg.Fallback.Samples,
		Seed:    cfg.Fallback.Seed,
		Forest:  forest.Config{Trees: cfg.Fallback.Trees},
	}
	if fallbackFlags.samples > 0 {
		bc.Samples = fallbackFlags.samples
	}
	if fallbackFlags.trees > 0 {
		bc.Forest.Trees = fallbackFlags.trees
	}
	if fallbackFlags.seed != 0 {
		bc.Seed = fallbackFlags.seed
	}
	return bc
}
