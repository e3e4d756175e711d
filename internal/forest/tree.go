package forest

import "sort"

// tree is a regression tree stored as flat parallel arrays, one entry per
// node. Feature[i] == leafMarker marks node i as a leaf; Value[i] holds the
// per-output mean of the training samples that reached it.
type tree struct {
	Feature   []int       `json:"feature"`
	Threshold []float64   `json:"threshold"`
	Left      []int       `json:"left"`
	Right     []int       `json:"right"`
	Value     [][]float64 `json:"value"`
}

const leafMarker = -1

func (t *tree) predict(x []float64) []float64 {
	node := 0
	for t.Feature[node] != leafMarker {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.Left[node]
		} else {
			node = t.Right[node]
		}
	}
	return t.Value[node]
}

// growTree builds a CART regression tree over the sample indices idx.
// Splits minimize the summed per-output squared error of the two children.
func growTree(X, Y [][]float64, idx []int, cfg Config) tree {
	b := &treeBuilder{X: X, Y: Y, cfg: cfg, nOutputs: len(Y[0])}
	b.grow(idx, 0)
	return b.t
}

type treeBuilder struct {
	X, Y     [][]float64
	cfg      Config
	nOutputs int
	t        tree
}

// grow appends a node for the samples idx and returns its index.
func (b *treeBuilder) grow(idx []int, depth int) int {
	node := len(b.t.Feature)
	b.t.Feature = append(b.t.Feature, leafMarker)
	b.t.Threshold = append(b.t.Threshold, 0)
	b.t.Left = append(b.t.Left, leafMarker)
	b.t.Right = append(b.t.Right, leafMarker)
	b.t.Value = append(b.t.Value, b.mean(idx))

	if depth >= b.cfg.MaxDepth || len(idx) < 2*b.cfg.MinLeaf {
		return node
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.cfg.MinLeaf || len(right) < b.cfg.MinLeaf {
		return node
	}

	b.t.Feature[node] = feature
	b.t.Threshold[node] = threshold
	b.t.Left[node] = b.grow(left, depth+1)
	b.t.Right[node] = b.grow(right, depth+1)
	return node
}

func (b *treeBuilder) mean(idx []int) []float64 {
	m := make([]float64, b.nOutputs)
	for _, i := range idx {
		for j, v := range b.Y[i] {
			m[j] += v
		}
	}
	inv := 1.0 / float64(len(idx))
	for j := range m {
		m[j] *= inv
	}
	return m
}

// bestSplit scans every feature with a sorted sweep, tracking running sums
// and squared sums per output so each candidate threshold is O(outputs).
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	nOut := b.nOutputs

	// Total sums over the node.
	totSum := make([]float64, nOut)
	totSq := make([]float64, nOut)
	for _, i := range idx {
		for j, v := range b.Y[i] {
			totSum[j] += v
			totSq[j] += v * v
		}
	}
	parentSSE := sse(totSum, totSq, float64(n))
	if parentSSE <= 1e-12 {
		return 0, 0, false // node is already pure
	}

	order := make([]int, n)
	copy(order, idx)

	best := parentSSE
	leftSum := make([]float64, nOut)
	leftSq := make([]float64, nOut)

	for f := 0; f < len(b.X[0]); f++ {
		sort.Slice(order, func(a, c int) bool {
			return b.X[order[a]][f] < b.X[order[c]][f]
		})
		for j := 0; j < nOut; j++ {
			leftSum[j] = 0
			leftSq[j] = 0
		}
		for k := 0; k < n-1; k++ {
			i := order[k]
			for j, v := range b.Y[i] {
				leftSum[j] += v
				leftSq[j] += v * v
			}
			// Can't split between equal feature values.
			if b.X[order[k]][f] == b.X[order[k+1]][f] {
				continue
			}
			nl := float64(k + 1)
			nr := float64(n - k - 1)
			if int(nl) < b.cfg.MinLeaf || int(nr) < b.cfg.MinLeaf {
				continue
			}
			total := 0.0
			for j := 0; j < nOut; j++ {
				rSum := totSum[j] - leftSum[j]
				rSq := totSq[j] - leftSq[j]
				total += sseOne(leftSum[j], leftSq[j], nl) + sseOne(rSum, rSq, nr)
			}
			if total < best {
				best = total
				feature = f
				threshold = (b.X[order[k]][f] + b.X[order[k+1]][f]) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// sse computes the summed squared error around the mean for all outputs.
func sse(sum, sq []float64, n float64) float64 {
	total := 0.0
	for j := range sum {
		total += sseOne(sum[j], sq[j], n)
	}
	return total
}

func sseOne(sum, sq, n float64) float64 {
	return sq - sum*sum/n
}
