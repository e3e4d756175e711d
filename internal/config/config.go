// Package config loads lcaops settings from environment variables, with
// an optional YAML file overlay for deployments that ship a config file
// alongside the binary.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all lcaops configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Fallback FallbackConfig `yaml:"fallback"`
	Health   HealthConfig   `yaml:"health"`
	LogLevel string         `yaml:"log_level"`
}

// StoreConfig locates model artifacts on disk.
type StoreConfig struct {
	// Dir is the directory holding model artifacts.
	Dir string `yaml:"dir"`
	// Candidates are artifact basenames probed in order by verify.
	Candidates []string `yaml:"candidates"`
	// RailwayFile is the basename the fallback command writes.
	RailwayFile string `yaml:"railway_file"`
	// FallbackFile is the basename verify writes when no candidate loads.
	FallbackFile string `yaml:"fallback_file"`
}

// CandidatePaths returns the full candidate paths in probe order.
func (s StoreConfig) CandidatePaths() []string {
	paths := make([]string, len(s.Candidates))
	for i, name := range s.Candidates {
		paths[i] = filepath.Join(s.Dir, name)
	}
	return paths
}

// RailwayPath returns the full path of the deploy-time fallback artifact.
func (s StoreConfig) RailwayPath() string {
	return filepath.Join(s.Dir, s.RailwayFile)
}

// FallbackPath returns the full path of the verify-time fallback artifact.
func (s StoreConfig) FallbackPath() string {
	return filepath.Join(s.Dir, s.FallbackFile)
}

// FallbackConfig controls synthetic fallback generation.
type FallbackConfig struct {
	Samples int   `yaml:"samples"`
	Trees   int   `yaml:"trees"`
	Seed    int64 `yaml:"seed"`
}

// HealthConfig controls the readiness poller.
type HealthConfig struct {
	Port     int           `yaml:"port"`
	Path     string        `yaml:"path"`
	Attempts int           `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// URL returns the full readiness endpoint URL.
func (h HealthConfig) URL() string {
	return fmt.Sprintf("http://localhost:%d%s", h.Port, h.Path)
}

// UnmarshalYAML decodes durations from strings ("2s", "500ms") so config
// files use the same syntax the environment variables accept; yaml.v3 on
// its own would only take raw nanosecond integers. Absent or zero keys
// keep the values already loaded from the environment.
func (h *HealthConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Port     int    `yaml:"port"`
		Path     string `yaml:"path"`
		Attempts int    `yaml:"attempts"`
		Interval string `yaml:"interval"`
		Timeout  string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Port != 0 {
		h.Port = raw.Port
	}
	if raw.Path != "" {
		h.Path = raw.Path
	}
	if raw.Attempts != 0 {
		h.Attempts = raw.Attempts
	}
	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("health.interval: %w", err)
		}
		h.Interval = d
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("health.timeout: %w", err)
		}
		h.Timeout = d
	}
	return nil
}

var defaultCandidates = []string{
	"corrected_optimized_dual_target_model.json",
	"clean_optimized_dual_target_model.json",
	"lca_model.json",
	"final_optimized_lca_model.json",
}

// Load reads configuration from environment variables with sensible
// defaults. The health port also honors the platform-provided PORT.
func Load() Config {
	return Config{
		Store: StoreConfig{
			Dir:          getenv("LCAOPS_MODEL_DIR", "models"),
			Candidates:   getenvList("LCAOPS_CANDIDATE_MODELS", defaultCandidates),
			RailwayFile:  getenv("LCAOPS_RAILWAY_FALLBACK_FILE", "railway_fallback_model.json"),
			FallbackFile: getenv("LCAOPS_FALLBACK_FILE", "fallback_model.json"),
		},
		Fallback: FallbackConfig{
			Samples: getenvInt("LCAOPS_SAMPLES", 1000),
			Trees:   getenvInt("LCAOPS_TREES", 50),
			Seed:    int64(getenvInt("LCAOPS_SEED", 42)),
		},
		Health: HealthConfig{
			Port:     getenvInt("LCAOPS_HEALTH_PORT", getenvInt("PORT", 8501)),
			Path:     getenv("LCAOPS_HEALTH_PATH", "/_stcore/health"),
			Attempts: getenvInt("LCAOPS_HEALTH_ATTEMPTS", 30),
			Interval: getenvDuration("LCAOPS_HEALTH_INTERVAL", 2*time.Second),
			Timeout:  getenvDuration("LCAOPS_HEALTH_TIMEOUT", 5*time.Second),
		},
		LogLevel: getenv("LCAOPS_LOG_LEVEL", "info"),
	}
}

// LoadFile starts from Load and overlays values from a YAML file. Keys
// absent from the file keep their env/default values.
func LoadFile(path string) (Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// getenvList parses a comma-separated env var, trimming whitespace.
func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
