// Package artifact defines the persisted model bundle consumed by the LCA
// serving application: fitted regressors, label encoders, and metadata.
// The JSON key names are a fixed contract — the serving side looks them up
// by name, so they must not change.
package artifact

import (
	"fmt"

	"github.com/smeltwise/lcaops/internal/forest"
)

// ModelType tags the artifact schema version understood by the serving app.
const ModelType = "optimized_dual_target"

// FeatureCount is the input vector length every regressor consumes:
// 3 categorical codes followed by 10 continuous/engineered features.
const FeatureCount = 13

// EnvironmentalOutputs and CircularityOutputs are the per-model output
// counts (energy/emissions/water and index/recycled%/reuse respectively).
const (
	EnvironmentalOutputs = 3
	CircularityOutputs   = 3
)

// Encoder names and their closed category sets. The serving application
// sends these exact strings; the sets are fixed, not extensible.
const (
	EncoderMetal       = "Metal"
	EncoderProcessType = "Process_Type"
	EncoderEndOfLife   = "End_of_Life"
)

var (
	Metals           = []string{"Aluminium", "Steel", "Copper", "Zinc", "Lead", "Nickel", "Tin", "Gold"}
	ProcessTypes     = []string{"Primary", "Recycled", "Hybrid"}
	EndOfLifeOptions = []string{"Recycled", "Landfilled", "Reused"}
)

// Metadata keys present in every generated fallback artifact.
const (
	MetaModelVersion     = "model_version"
	MetaFeatureAlignment = "feature_alignment"
	MetaFeaturesCount    = "features_count"
	MetaCreatedBy        = "created_by"
	MetaDescription      = "description"
	MetaArtifactID       = "artifact_id"
	MetaCreatedAt        = "created_at"
)

// Artifact is the serialized unit: one environmental model, one or more
// circularity models keyed by name, the label encoders, and free-form
// metadata. Built once, persisted write-once, never updated in place.
type Artifact struct {
	ModelType            string                    `json:"model_type"`
	EnvironmentalModel   *forest.Forest            `json:"environmental_model"`
	CircularityModels    map[string]*forest.Forest `json:"circularity_models"`
	CircularityBestModel string                    `json:"circularity_best_model"`
	LabelEncoders        map[string]*LabelEncoder  `json:"label_encoders"`
	Metadata             map[string]any            `json:"metadata"`
}

// BestCircularityModel resolves the authoritative circularity regressor.
func (a *Artifact) BestCircularityModel() (*forest.Forest, error) {
	m, ok := a.CircularityModels[a.CircularityBestModel]
	if !ok {
		return nil, fmt.Errorf("artifact: best model %q not in circularity_models", a.CircularityBestModel)
	}
	return m, nil
}

// Validate checks the schema invariants: tag, fitted models with the right
// shapes, a resolvable best-model key, and the three fixed encoders.
func (a *Artifact) Validate() error {
	if a.ModelType != ModelType {
		return fmt.Errorf("artifact: model_type %q, want %q", a.ModelType, ModelType)
	}
	if err := validateModel("environmental_model", a.EnvironmentalModel, EnvironmentalOutputs); err != nil {
		return err
	}
	if len(a.CircularityModels) == 0 {
		return fmt.Errorf("artifact: circularity_models is empty")
	}
	for name, m := range a.CircularityModels {
		if err := validateModel("circularity_models."+name, m, CircularityOutputs); err != nil {
			return err
		}
	}
	if _, ok := a.CircularityModels[a.CircularityBestModel]; !ok {
		return fmt.Errorf("artifact: circularity_best_model %q not in circularity_models", a.CircularityBestModel)
	}

	expected := map[string][]string{
		EncoderMetal:       Metals,
		EncoderProcessType: ProcessTypes,
		EncoderEndOfLife:   EndOfLifeOptions,
	}
	for name, classes := range expected {
		enc, ok := a.LabelEncoders[name]
		if !ok || enc == nil {
			return fmt.Errorf("artifact: missing label encoder %q", name)
		}
		if !enc.HasClasses(classes) {
			return fmt.Errorf("artifact: encoder %q categories %v, want %v", name, enc.Classes(), classes)
		}
	}
	return nil
}

func validateModel(name string, m *forest.Forest, outputs int) error {
	if !m.Fitted() {
		return fmt.Errorf("artifact: %s is not fitted", name)
	}
	if m.Features() != FeatureCount {
		return fmt.Errorf("artifact: %s consumes %d features, want %d", name, m.Features(), FeatureCount)
	}
	if m.Outputs() != outputs {
		return fmt.Errorf("artifact: %s produces %d outputs, want %d", name, m.Outputs(), outputs)
	}
	return nil
}
