// Package store persists model artifacts as JSON files and probes
// candidate paths for a loadable artifact. I/O and decode failures are
// reported to the caller, never fatal: a deploy script decides what a
// missing or corrupt artifact means.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smeltwise/lcaops/internal/artifact"
)

// Save serializes the artifact to path, creating the parent directory if
// needed. The file is written to a temp name in the same directory and
// renamed, so a crash mid-write never leaves a partial artifact behind.
func Save(art *artifact.Artifact, path string) error {
	if err := art.Validate(); err != nil {
		return fmt.Errorf("store: refusing to save invalid artifact: %w", err)
	}
	data, err := json.Marshal(art)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	// CreateTemp opens 0600; widen so a serving process running under a
	// different user can read the artifact.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename to %s: %w", path, err)
	}
	return nil
}

// Load reads and validates one artifact. Absent, corrupt, and
// schema-incompatible files all surface as errors.
func Load(path string) (*artifact.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	var art artifact.Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}
	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("store: %s: %w", path, err)
	}
	return &art, nil
}

// LoadFirstAvailable probes paths in order and returns the first artifact
// that loads and validates, along with its path. Failing candidates are
// logged and skipped. Returns ("", nil) when no candidate loads.
func LoadFirstAvailable(paths []string) (string, *artifact.Artifact) {
	for _, p := range paths {
		art, err := Load(p)
		if err != nil {
			slog.Warn("artifact candidate skipped", "path", p, "error", err)
			continue
		}
		slog.Info("artifact loaded", "path", p)
		return p, art
	}
	return "", nil
}
