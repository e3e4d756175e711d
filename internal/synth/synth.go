// Package synth generates synthetic feature and target matrices for
// fitting fallback models. The output is statistically plausible, not
// semantically meaningful — it exists so the serving application has a
// structurally valid model to load when no trained artifact is present.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/smeltwise/lcaops/internal/artifact"
)

// Feature column layout. Columns 0-2 hold categorical codes; 3-6 are
// rescaled continuous features; 7-12 are engineered features in [0,1).
const (
	ColMetal       = 0
	ColProcessType = 1
	ColEndOfLife   = 2
	ColTransportKM = 3
	ColCostPerKG   = 4
	ColProductLife = 5
	ColWasteRatio  = 6
)

// Continuous feature scale factors: transport distance 0-2000 km,
// unit cost 0-20, product lifetime 0-30 years, waste ratio 0-5.
var colScale = map[int]float64{
	ColTransportKM: 2000,
	ColCostPerKG:   20,
	ColProductLife: 30,
	ColWasteRatio:  5,
}

// Dataset holds one generated batch: features plus environmental
// (energy, emissions, water) and circularity (index, recycled content %,
// reuse potential) targets.
type Dataset struct {
	X     [][]float64
	YEnv  [][]float64
	YCirc [][]float64
}

// Generate produces n rows consistent with the artifact schema's category
// and range invariants. recycledCode is the Process_Type code meaning
// "Recycled"; rows carrying it get scaled-down environmental targets and
// raised circularity baselines. All randomness flows through rng, so a
// seeded source reproduces the dataset exactly.
func Generate(n int, recycledCode int, rng *rand.Rand) (Dataset, error) {
	if n <= 0 {
		return Dataset{}, fmt.Errorf("synth: sample count must be positive, got %d", n)
	}
	if recycledCode < 0 || recycledCode >= len(artifact.ProcessTypes) {
		return Dataset{}, fmt.Errorf("synth: recycled code %d out of range [0,%d)", recycledCode, len(artifact.ProcessTypes))
	}

	ds := Dataset{
		X:     make([][]float64, n),
		YEnv:  make([][]float64, n),
		YCirc: make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		row := make([]float64, artifact.FeatureCount)
		row[ColMetal] = float64(rng.Intn(len(artifact.Metals)))
		row[ColProcessType] = float64(rng.Intn(len(artifact.ProcessTypes)))
		row[ColEndOfLife] = float64(rng.Intn(len(artifact.EndOfLifeOptions)))
		for c := ColTransportKM; c < artifact.FeatureCount; c++ {
			v := rng.Float64()
			if scale, ok := colScale[c]; ok {
				v *= scale
			}
			row[c] = v
		}
		ds.X[i] = row

		recycled := int(row[ColProcessType]) == recycledCode
		ds.YEnv[i] = envTargets(rng, recycled)
		ds.YCirc[i] = circTargets(rng, recycled)
	}
	return ds, nil
}

// envTargets samples energy (MJ/kg), emissions (kgCO2/kg), and water (L/kg)
// around process-dependent baselines, floored to stay strictly positive.
func envTargets(rng *rand.Rand, recycled bool) []float64 {
	factor := 1.0
	if recycled {
		factor = 0.3
	}
	energy := rng.NormFloat64()*15 + 50*factor
	emissions := rng.NormFloat64()*2 + 5*factor
	water := rng.NormFloat64()*8 + 20*factor
	return []float64{
		max(1, energy),
		max(0.1, emissions),
		max(0.5, water),
	}
}

// circTargets samples circularity index, recycled content %, and reuse
// potential, clamped to their declared ranges.
func circTargets(rng *rand.Rand, recycled bool) []float64 {
	base := 0.3
	content := 20.0
	if recycled {
		base = 0.8
		content = 70.0
	}
	index := rng.NormFloat64()*0.1 + base
	recycledContent := rng.NormFloat64()*15 + content
	reuse := rng.NormFloat64()*0.1 + base
	return []float64{
		clamp(index, 0, 1),
		clamp(recycledContent, 0, 100),
		clamp(reuse, 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
