package forest

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dataset returns a small regression problem with a learnable structure:
// output 0 tracks feature 0, output 1 tracks feature 1.
func dataset(n int, rng *rand.Rand) (X, Y [][]float64) {
	X = make([][]float64, n)
	Y = make([][]float64, n)
	for i := 0; i < n; i++ {
		a := rng.Float64()
		b := rng.Float64()
		X[i] = []float64{a, b, rng.Float64()}
		Y[i] = []float64{10 * a, 5 * b}
	}
	return X, Y
}

func TestFitAndPredict(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	X, Y := dataset(300, rng)

	f, err := Fit(X, Y, Config{Trees: 20}, rng)
	require.NoError(t, err)
	require.True(t, f.Fitted())
	assert.Equal(t, 3, f.Features())
	assert.Equal(t, 2, f.Outputs())
	assert.Equal(t, 20, f.Trees())

	// A high-feature-0 input should predict a clearly larger output 0
	// than a low-feature-0 input.
	hi, err := f.Predict([]float64{0.9, 0.5, 0.5})
	require.NoError(t, err)
	lo, err := f.Predict([]float64{0.1, 0.5, 0.5})
	require.NoError(t, err)
	assert.Greater(t, hi[0], lo[0]+3.0)
}

func TestFitDeterministic(t *testing.T) {
	build := func() []byte {
		rng := rand.New(rand.NewSource(42))
		X, Y := dataset(200, rng)
		f, err := Fit(X, Y, Config{Trees: 10}, rng)
		require.NoError(t, err)
		data, err := json.Marshal(f)
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, build(), build())
}

func TestFitRejectsMalformedInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		X, Y [][]float64
	}{
		{"empty", nil, nil},
		{"length mismatch", [][]float64{{1, 2}}, nil},
		{"ragged features", [][]float64{{1, 2}, {1}}, [][]float64{{1}, {1}}},
		{"ragged targets", [][]float64{{1, 2}, {3, 4}}, [][]float64{{1}, {1, 2}}},
		{"empty rows", [][]float64{{}}, [][]float64{{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.X, tt.Y, Config{}, rng)
			assert.Error(t, err)
		})
	}
}

func TestPredictRejectsWrongWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	X, Y := dataset(50, rng)
	f, err := Fit(X, Y, Config{Trees: 3}, rng)
	require.NoError(t, err)

	_, err = f.Predict([]float64{1, 2})
	assert.Error(t, err)

	var unfitted Forest
	_, err = unfitted.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	X, Y := dataset(100, rng)
	f, err := Fit(X, Y, Config{Trees: 5}, rng)
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back Forest
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Fitted())
	assert.Equal(t, f.Features(), back.Features())
	assert.Equal(t, f.Outputs(), back.Outputs())

	x := []float64{0.3, 0.6, 0.1}
	want, err := f.Predict(x)
	require.NoError(t, err)
	got, err := back.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnmarshalRejectsCorruptForest(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"no trees", `{"n_features":3,"n_outputs":2,"trees":[]}`},
		{"bad dims", `{"n_features":0,"n_outputs":2,"trees":[{"feature":[-1],"threshold":[0],"left":[-1],"right":[-1],"value":[[1,2]]}]}`},
		{"ragged nodes", `{"n_features":3,"n_outputs":2,"trees":[{"feature":[-1,-1],"threshold":[0],"left":[-1],"right":[-1],"value":[[1,2]]}]}`},
		{"wrong outputs", `{"n_features":3,"n_outputs":2,"trees":[{"feature":[-1],"threshold":[0],"left":[-1],"right":[-1],"value":[[1]]}]}`},
		{"feature out of range", `{"n_features":3,"n_outputs":2,"trees":[{"feature":[5],"threshold":[0],"left":[-1],"right":[-1],"value":[[1,2]]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Forest
			assert.Error(t, json.Unmarshal([]byte(tt.data), &f))
		})
	}
}

func TestMarshalUnfitted(t *testing.T) {
	var f Forest
	_, err := json.Marshal(&f)
	assert.Error(t, err)
}
