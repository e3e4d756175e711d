package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smeltwise/lcaops/internal/health"
)

var healthFlags struct {
	url      string
	attempts int
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Poll the application readiness endpoint",
	Long: "Issues bounded-timeout GETs against the readiness endpoint until it\n" +
		"answers HTTP 200 or the attempt budget runs out. Exits 0 when healthy,\n" +
		"1 on timeout, so supervisors can use it as a finite readiness gate.",
	RunE: runHealth,
}

func init() {
	f := healthCmd.Flags()
	f.StringVar(&healthFlags.url, "url", "", "Endpoint URL (default: http://localhost:<port><path> from config)")
	f.IntVar(&healthFlags.attempts, "attempts", 0, "Attempt budget (default from config)")
}

func runHealth(cmd *cobra.Command, _ []string) error {
	url := healthFlags.url
	if url == "" {
		url = cfg.Health.URL()
	}
	attempts := cfg.Health.Attempts
	if healthFlags.attempts > 0 {
		attempts = healthFlags.attempts
	}

	p := health.New(url,
		health.WithMaxAttempts(attempts),
		health.WithInterval(cfg.Health.Interval),
		health.WithTimeout(cfg.Health.Timeout),
	)
	if !p.Poll(cmd.Context()) {
		return fmt.Errorf("health check failed after %d attempts: %s", attempts, url)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Health check passed: %s\n", url)
	return nil
}
