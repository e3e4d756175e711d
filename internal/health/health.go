// Package health polls an HTTP readiness endpoint until it answers 200 or
// an attempt budget runs out. It is the readiness gate a deployment
// supervisor runs after starting the serving application.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultMaxAttempts = 30
	defaultInterval    = 2 * time.Second
	defaultTimeout     = 5 * time.Second
)

// Option configures a Poller.
type Option func(*Poller)

// WithMaxAttempts sets the attempt budget. Default: 30.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) { p.maxAttempts = n }
}

// WithInterval sets the sleep between attempts. Default: 2s.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

// WithTimeout sets the per-request timeout. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) { p.client.Timeout = d }
}

// Poller issues bounded-timeout GETs against one URL. The worst-case wall
// time is maxAttempts * (timeout + interval), so callers can treat Poll
// as a finite readiness gate.
type Poller struct {
	url         string
	maxAttempts int
	interval    time.Duration
	client      *http.Client
}

// New creates a poller for the given URL.
func New(url string, opts ...Option) *Poller {
	p := &Poller{
		url:         url,
		maxAttempts: defaultMaxAttempts,
		interval:    defaultInterval,
		client:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll GETs the URL once per attempt until it returns HTTP 200. Connection
// errors, timeouts, and non-200 statuses all count as failed attempts.
// Returns false when the budget is exhausted or ctx is canceled; it never
// returns an error past this boundary.
func (p *Poller) Poll(ctx context.Context) bool {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if attempt > 1 {
			t := time.NewTimer(p.interval)
			select {
			case <-ctx.Done():
				t.Stop()
				slog.Warn("health check canceled", "url", p.url, "attempt", attempt)
				return false
			case <-t.C:
			}
		}

		if p.probe(ctx, attempt) {
			slog.Info("health check passed", "url", p.url, "attempt", attempt)
			return true
		}
	}
	slog.Error("health check failed", "url", p.url, "attempts", p.maxAttempts)
	return false
}

// probe performs one GET, reporting success only on HTTP 200.
func (p *Poller) probe(ctx context.Context, attempt int) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		slog.Warn("health check attempt failed", "attempt", attempt, "max", p.maxAttempts, "error", err)
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("health check attempt failed", "attempt", attempt, "max", p.maxAttempts, "error", err)
		return false
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("health check attempt failed", "attempt", attempt, "max", p.maxAttempts, "status", resp.StatusCode)
		return false
	}
	return true
}
