package lcaops

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/smeltwise/lcaops/internal/artifact"
	"github.com/smeltwise/lcaops/internal/fallback"
	"github.com/smeltwise/lcaops/internal/forest"
	"github.com/smeltwise/lcaops/internal/health"
	"github.com/smeltwise/lcaops/internal/store"
)

// Report describes the artifact an operation settled on.
// This is the stable public type — the artifact's internal representation
// may evolve independently without breaking consumers.
type Report struct {
	Path         string // where the artifact lives
	ModelVersion string // metadata model_version, if present
	ArtifactID   string // metadata artifact_id, if present
	Fallback     bool   // true when the artifact was generated, not found
}

// Verify probes the candidate artifact paths and reports the first that
// loads and validates. It never creates anything; an error means no
// candidate loaded.
func Verify(opts ...Option) (Report, error) {
	o := resolve(opts)
	path, art := store.LoadFirstAvailable(candidatePaths(o))
	if art == nil {
		return Report{}, fmt.Errorf("lcaops: no working model artifact under %s", o.modelDir)
	}
	return report(path, art, false), nil
}

// EnsureArtifact probes the candidate paths and, when none load, builds a
// synthetic fallback and saves it as fallback_model.json in the model dir.
// The returned Report says which path now holds a loadable artifact.
func EnsureArtifact(opts ...Option) (Report, error) {
	o := resolve(opts)
	if path, art := store.LoadFirstAvailable(candidatePaths(o)); art != nil {
		return report(path, art, false), nil
	}

	cfg := fallback.Config{
		Samples: o.samples,
		Seed:    o.seed,
		Forest:  forest.Config{Trees: o.trees},
	}
	art, err := fallback.Build(cfg)
	if err != nil {
		return Report{}, fmt.Errorf("lcaops: %w", err)
	}
	dest := filepath.Join(o.modelDir, "fallback_model.json")
	if err := store.Save(art, dest); err != nil {
		return Report{}, fmt.Errorf("lcaops: %w", err)
	}
	return report(dest, art, true), nil
}

// WaitHealthy polls the readiness endpoint until it answers HTTP 200 or
// the attempt budget runs out. Returns true when the endpoint is healthy.
func WaitHealthy(ctx context.Context, opts ...Option) bool {
	o := resolve(opts)
	p := health.New(o.healthURL,
		health.WithMaxAttempts(o.healthAttempts),
		health.WithInterval(o.healthInterval),
		health.WithTimeout(o.healthTimeout),
	)
	return p.Poll(ctx)
}

func candidatePaths(o options) []string {
	paths := make([]string, len(o.candidates))
	for i, name := range o.candidates {
		paths[i] = filepath.Join(o.modelDir, name)
	}
	return paths
}

func report(path string, art *artifact.Artifact, isFallback bool) Report {
	r := Report{Path: path, Fallback: isFallback}
	if v, ok := art.Metadata[artifact.MetaModelVersion].(string); ok {
		r.ModelVersion = v
	}
	if id, ok := art.Metadata[artifact.MetaArtifactID].(string); ok {
		r.ArtifactID = id
	}
	return r
}
