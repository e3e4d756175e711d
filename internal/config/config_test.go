package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvKeys = []string{
	"LCAOPS_MODEL_DIR", "LCAOPS_CANDIDATE_MODELS",
	"LCAOPS_RAILWAY_FALLBACK_FILE", "LCAOPS_FALLBACK_FILE",
	"LCAOPS_SAMPLES", "LCAOPS_TREES", "LCAOPS_SEED",
	"LCAOPS_HEALTH_PORT", "LCAOPS_HEALTH_PATH", "LCAOPS_HEALTH_ATTEMPTS",
	"LCAOPS_HEALTH_INTERVAL", "LCAOPS_HEALTH_TIMEOUT",
	"LCAOPS_LOG_LEVEL", "PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "models", cfg.Store.Dir)
	assert.Equal(t, "railway_fallback_model.json", cfg.Store.RailwayFile)
	assert.Equal(t, "fallback_model.json", cfg.Store.FallbackFile)
	assert.Len(t, cfg.Store.Candidates, 4)
	assert.Equal(t, 1000, cfg.Fallback.Samples)
	assert.Equal(t, 50, cfg.Fallback.Trees)
	assert.Equal(t, int64(42), cfg.Fallback.Seed)
	assert.Equal(t, 8501, cfg.Health.Port)
	assert.Equal(t, "/_stcore/health", cfg.Health.Path)
	assert.Equal(t, 30, cfg.Health.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Health.Interval)
	assert.Equal(t, 5*time.Second, cfg.Health.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LCAOPS_MODEL_DIR", "/data/models")
	t.Setenv("LCAOPS_CANDIDATE_MODELS", "a.json, b.json ,")
	t.Setenv("LCAOPS_SAMPLES", "250")
	t.Setenv("LCAOPS_HEALTH_INTERVAL", "500ms")

	cfg := Load()

	assert.Equal(t, "/data/models", cfg.Store.Dir)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.Store.Candidates)
	assert.Equal(t, 250, cfg.Fallback.Samples)
	assert.Equal(t, 500*time.Millisecond, cfg.Health.Interval)
}

func TestLoadPlatformPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	assert.Equal(t, 9000, Load().Health.Port)

	// Explicit health port wins over PORT.
	t.Setenv("LCAOPS_HEALTH_PORT", "7000")
	assert.Equal(t, 7000, Load().Health.Port)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LCAOPS_SAMPLES", "lots")
	t.Setenv("LCAOPS_HEALTH_INTERVAL", "soon")

	cfg := Load()
	assert.Equal(t, 1000, cfg.Fallback.Samples)
	assert.Equal(t, 2*time.Second, cfg.Health.Interval)
}

func TestCandidatePaths(t *testing.T) {
	s := StoreConfig{Dir: "models", Candidates: []string{"a.json", "b.json"}}
	assert.Equal(t, []string{
		filepath.Join("models", "a.json"),
		filepath.Join("models", "b.json"),
	}, s.CandidatePaths())
}

func TestHealthURL(t *testing.T) {
	h := HealthConfig{Port: 8501, Path: "/_stcore/health"}
	assert.Equal(t, "http://localhost:8501/_stcore/health", h.URL())
}

func TestLoadFileOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lcaops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  dir: /srv/models
fallback:
  samples: 300
health:
  port: 9999
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/models", cfg.Store.Dir)
	assert.Equal(t, 300, cfg.Fallback.Samples)
	assert.Equal(t, 9999, cfg.Health.Port)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "fallback_model.json", cfg.Store.FallbackFile)
	assert.Equal(t, 30, cfg.Health.Attempts)
}

func TestLoadFileDurationOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lcaops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
health:
  interval: 500ms
  timeout: 1s
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Health.Interval)
	assert.Equal(t, time.Second, cfg.Health.Timeout)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 30, cfg.Health.Attempts)
}

func TestLoadFileBadDuration(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lcaops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
health:
  interval: soon
`), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: ["), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
