// Package forest implements a multi-output regression random forest.
// It is the estimator behind the fallback artifact's environmental and
// circularity models: each tree is fit on a bootstrap sample with
// variance-reduction splits, and predictions average over trees.
package forest

import (
	"fmt"
	"math/rand"
)

// Config holds fitting parameters. Zero values take defaults.
type Config struct {
	Trees    int // number of trees (default 50)
	MaxDepth int // maximum tree depth (default 8)
	MinLeaf  int // minimum samples per leaf (default 5)
}

const (
	defaultTrees    = 50
	defaultMaxDepth = 8
	defaultMinLeaf  = 5
)

func (c Config) withDefaults() Config {
	if c.Trees <= 0 {
		c.Trees = defaultTrees
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.MinLeaf <= 0 {
		c.MinLeaf = defaultMinLeaf
	}
	return c
}

// Forest is a fitted multi-output regression forest.
// The zero value is unfitted; obtain instances via Fit or JSON decoding.
type Forest struct {
	trees     []tree
	nFeatures int
	nOutputs  int
}

// Fit trains a forest on X (n × features) and Y (n × outputs).
// Tree structure is fully determined by the caller's rng, so two calls
// with identically seeded sources produce identical forests.
func Fit(X, Y [][]float64, cfg Config, rng *rand.Rand) (*Forest, error) {
	cfg = cfg.withDefaults()

	if len(X) == 0 {
		return nil, fmt.Errorf("forest: no training samples")
	}
	if len(Y) != len(X) {
		return nil, fmt.Errorf("forest: %d samples but %d target rows", len(X), len(Y))
	}
	nFeatures := len(X[0])
	nOutputs := len(Y[0])
	if nFeatures == 0 || nOutputs == 0 {
		return nil, fmt.Errorf("forest: empty feature or target vectors")
	}
	for i := range X {
		if len(X[i]) != nFeatures {
			return nil, fmt.Errorf("forest: row %d has %d features, want %d", i, len(X[i]), nFeatures)
		}
		if len(Y[i]) != nOutputs {
			return nil, fmt.Errorf("forest: target row %d has %d outputs, want %d", i, len(Y[i]), nOutputs)
		}
	}

	f := &Forest{
		trees:     make([]tree, 0, cfg.Trees),
		nFeatures: nFeatures,
		nOutputs:  nOutputs,
	}
	for t := 0; t < cfg.Trees; t++ {
		// Bootstrap sample: n draws with replacement.
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = rng.Intn(len(X))
		}
		f.trees = append(f.trees, growTree(X, Y, idx, cfg))
	}
	return f, nil
}

// Predict returns the per-output mean of all tree predictions for x.
func (f *Forest) Predict(x []float64) ([]float64, error) {
	if !f.Fitted() {
		return nil, fmt.Errorf("forest: not fitted")
	}
	if len(x) != f.nFeatures {
		return nil, fmt.Errorf("forest: input has %d features, want %d", len(x), f.nFeatures)
	}
	out := make([]float64, f.nOutputs)
	for i := range f.trees {
		leaf := f.trees[i].predict(x)
		for j, v := range leaf {
			out[j] += v
		}
	}
	inv := 1.0 / float64(len(f.trees))
	for j := range out {
		out[j] *= inv
	}
	return out, nil
}

// Fitted reports whether the forest holds at least one trained tree.
func (f *Forest) Fitted() bool {
	return f != nil && len(f.trees) > 0
}

// Features returns the expected input vector length.
func (f *Forest) Features() int { return f.nFeatures }

// Outputs returns the number of predicted values.
func (f *Forest) Outputs() int { return f.nOutputs }

// Trees returns the number of trees in the ensemble.
func (f *Forest) Trees() int { return len(f.trees) }
