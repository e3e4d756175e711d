// Package fallback assembles a fully fitted placeholder artifact from
// synthetic data. It is used at deploy time when no trained model artifact
// is available, so the serving application can start with a structurally
// compatible (if semantically meaningless) model.
package fallback

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/smeltwise/lcaops/internal/artifact"
	"github.com/smeltwise/lcaops/internal/forest"
	"github.com/smeltwise/lcaops/internal/synth"
)

// BestModelName keys the authoritative circularity model in the artifact.
const BestModelName = "RandomForest"

// ModelVersion tags generated fallback artifacts.
const ModelVersion = "railway_fallback_v1.0"

// Config controls fallback generation. Zero values take defaults.
type Config struct {
	Samples int           // synthetic training rows (default 1000)
	Seed    int64         // random seed (default 42)
	Forest  forest.Config // estimator settings
}

const (
	defaultSamples = 1000
	defaultSeed    = 42
)

func (c Config) withDefaults() Config {
	if c.Samples <= 0 {
		c.Samples = defaultSamples
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	return c
}

// Build returns a complete, fitted artifact. Encoders are fit over the
// fixed category sets, both regressors are fit against one synthetic
// dataset, and metadata marks the artifact as a generated fallback.
// Any fitting error propagates — a partially fitted artifact is never
// returned.
func Build(cfg Config) (*artifact.Artifact, error) {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	encoders := map[string]*artifact.LabelEncoder{
		artifact.EncoderMetal:       artifact.NewLabelEncoder(artifact.Metals),
		artifact.EncoderProcessType: artifact.NewLabelEncoder(artifact.ProcessTypes),
		artifact.EncoderEndOfLife:   artifact.NewLabelEncoder(artifact.EndOfLifeOptions),
	}

	recycledCode, err := encoders[artifact.EncoderProcessType].Transform("Recycled")
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}

	ds, err := synth.Generate(cfg.Samples, recycledCode, rng)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}

	envModel, err := forest.Fit(ds.X, ds.YEnv, cfg.Forest, rng)
	if err != nil {
		return nil, fmt.Errorf("fallback: fit environmental model: %w", err)
	}
	circModel, err := forest.Fit(ds.X, ds.YCirc, cfg.Forest, rng)
	if err != nil {
		return nil, fmt.Errorf("fallback: fit circularity model: %w", err)
	}

	art := &artifact.Artifact{
		ModelType:          artifact.ModelType,
		EnvironmentalModel: envModel,
		CircularityModels: map[string]*forest.Forest{
			BestModelName: circModel,
		},
		CircularityBestModel: BestModelName,
		LabelEncoders:        encoders,
		Metadata: map[string]any{
			artifact.MetaModelVersion:     ModelVersion,
			artifact.MetaFeatureAlignment: "corrected",
			artifact.MetaFeaturesCount:    artifact.FeatureCount,
			artifact.MetaCreatedBy:        "railway_deployment_fallback",
			artifact.MetaDescription:      "Synthetic fallback model generated at deploy time when trained models are unavailable",
			artifact.MetaArtifactID:       uuid.NewString(),
			artifact.MetaCreatedAt:        time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("fallback: built artifact failed validation: %w", err)
	}
	return art, nil
}
