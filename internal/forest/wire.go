package forest

import (
	"encoding/json"
	"fmt"
)

// forestWire is the on-disk JSON shape of a Forest.
type forestWire struct {
	NFeatures int    `json:"n_features"`
	NOutputs  int    `json:"n_outputs"`
	Trees     []tree `json:"trees"`
}

// MarshalJSON encodes the fitted forest as flat per-tree arrays.
func (f *Forest) MarshalJSON() ([]byte, error) {
	if !f.Fitted() {
		return nil, fmt.Errorf("forest: cannot encode unfitted forest")
	}
	return json.Marshal(forestWire{
		NFeatures: f.nFeatures,
		NOutputs:  f.nOutputs,
		Trees:     f.trees,
	})
}

// UnmarshalJSON decodes a serialized forest, rejecting structurally
// inconsistent data instead of predicting from it.
func (f *Forest) UnmarshalJSON(data []byte) error {
	var w forestWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("forest: decode: %w", err)
	}
	if w.NFeatures <= 0 || w.NOutputs <= 0 {
		return fmt.Errorf("forest: invalid dimensions %dx%d", w.NFeatures, w.NOutputs)
	}
	if len(w.Trees) == 0 {
		return fmt.Errorf("forest: no trees")
	}
	for ti := range w.Trees {
		if err := validateTree(&w.Trees[ti], w.NFeatures, w.NOutputs); err != nil {
			return fmt.Errorf("forest: tree %d: %w", ti, err)
		}
	}
	f.nFeatures = w.NFeatures
	f.nOutputs = w.NOutputs
	f.trees = w.Trees
	return nil
}

func validateTree(t *tree, nFeatures, nOutputs int) error {
	n := len(t.Feature)
	if n == 0 {
		return fmt.Errorf("empty")
	}
	if len(t.Threshold) != n || len(t.Left) != n || len(t.Right) != n || len(t.Value) != n {
		return fmt.Errorf("ragged node arrays")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nOutputs {
			return fmt.Errorf("node %d has %d outputs, want %d", i, len(t.Value[i]), nOutputs)
		}
		if t.Feature[i] == leafMarker {
			continue
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
		if t.Left[i] <= i || t.Left[i] >= n || t.Right[i] <= i || t.Right[i] >= n {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
	}
	return nil
}
