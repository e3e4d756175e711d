package lcaops

import "time"

type options struct {
	modelDir   string
	candidates []string
	samples    int
	trees      int
	seed       int64

	healthURL      string
	healthAttempts int
	healthInterval time.Duration
	healthTimeout  time.Duration
}

// Option configures the package-level operations.
type Option func(*options)

// WithModelDir sets the directory probed for artifacts and used for
// fallback output. Default: "models".
func WithModelDir(dir string) Option {
	return func(o *options) { o.modelDir = dir }
}

// WithCandidates sets the artifact basenames probed in order.
func WithCandidates(names ...string) Option {
	return func(o *options) { o.candidates = names }
}

// WithSamples sets the synthetic training row count. Default: 1000.
func WithSamples(n int) Option {
	return func(o *options) { o.samples = n }
}

// WithTrees sets the trees per regressor. Default: 50.
func WithTrees(n int) Option {
	return func(o *options) { o.trees = n }
}

// WithSeed sets the generation seed. Default: 42.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithHealthURL sets the readiness endpoint polled by WaitHealthy.
// Default: http://localhost:8501/_stcore/health.
func WithHealthURL(url string) Option {
	return func(o *options) { o.healthURL = url }
}

// WithHealthAttempts sets the poll attempt budget. Default: 30.
func WithHealthAttempts(n int) Option {
	return func(o *options) { o.healthAttempts = n }
}

// WithHealthInterval sets the sleep between poll attempts. Default: 2s.
func WithHealthInterval(d time.Duration) Option {
	return func(o *options) { o.healthInterval = d }
}

// WithHealthTimeout sets the per-request timeout. Default: 5s.
func WithHealthTimeout(d time.Duration) Option {
	return func(o *options) { o.healthTimeout = d }
}

func defaultOptions() options {
	return options{
		modelDir: "models",
		candidates: []string{
			"corrected_optimized_dual_target_model.json",
			"clean_optimized_dual_target_model.json",
			"lca_model.json",
			"final_optimized_lca_model.json",
		},
		healthURL:      "http://localhost:8501/_stcore/health",
		healthAttempts: 30,
		healthInterval: 2 * time.Second,
		healthTimeout:  5 * time.Second,
	}
}

func resolve(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
