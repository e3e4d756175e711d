package main

import (
	"github.com/spf13/cobra"

	"github.com/smeltwise/lcaops/internal/config"
	"github.com/smeltwise/lcaops/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
}

// cfg is resolved once in the persistent pre-run and shared by subcommands.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "lcaops",
	Short: "Deployment support for the LCA prediction service",
	Long: "lcaops ships the deploy-time glue around the metals LCA prediction service:\n" +
		"synthetic fallback model generation, artifact verification, and a readiness gate.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if rootFlags.configPath != "" {
			cfg, err = config.LoadFile(rootFlags.configPath)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Load()
		}
		if rootFlags.logLevel != "" {
			cfg.LogLevel = rootFlags.logLevel
		}
		logging.Init(cfg.LogLevel)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to a YAML config file (env vars still apply)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(fallbackCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.Version = version
}
