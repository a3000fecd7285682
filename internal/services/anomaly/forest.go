package anomaly

import (
	"math"
	"math/rand"
)

// isolationForest is an ensemble of random partitioning trees. Points that
// isolate with few splits across the ensemble score close to 1 and are the
// anomaly candidates. The forest is fully determined by its seed.
type isolationForest struct {
	trees     []*isoNode
	subsample int
}

type isoNode struct {
	feature int
	split   float64
	left    *isoNode
	right   *isoNode
	size    int
}

const (
	forestTrees       = 100
	forestMaxSubset   = 256
	minSplittableSize = 2
)

func fitForest(data [][]float64, seed int64) *isolationForest {
	rng := rand.New(rand.NewSource(seed))
	sub := len(data)
	if sub > forestMaxSubset {
		sub = forestMaxSubset
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sub))))

	f := &isolationForest{subsample: sub}
	for t := 0; t < forestTrees; t++ {
		sample := make([][]float64, 0, sub)
		for _, idx := range rng.Perm(len(data))[:sub] {
			sample = append(sample, data[idx])
		}
		f.trees = append(f.trees, buildIsoTree(sample, 0, maxDepth, rng))
	}
	return f
}

func buildIsoTree(data [][]float64, depth, maxDepth int, rng *rand.Rand) *isoNode {
	if len(data) < minSplittableSize || depth >= maxDepth {
		return &isoNode{size: len(data)}
	}
	feature := rng.Intn(len(data[0]))
	lo, hi := data[0][feature], data[0][feature]
	for _, row := range data[1:] {
		if row[feature] < lo {
			lo = row[feature]
		}
		if row[feature] > hi {
			hi = row[feature]
		}
	}
	if lo == hi {
		return &isoNode{size: len(data)}
	}
	split := lo + rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, row := range data {
		if row[feature] < split {
			left = append(left, row)
		} else {
			right = append(right, row)
		}
	}
	return &isoNode{
		feature: feature,
		split:   split,
		left:    buildIsoTree(left, depth+1, maxDepth, rng),
		right:   buildIsoTree(right, depth+1, maxDepth, rng),
		size:    len(data),
	}
}

// score returns the anomaly score in (0, 1): 2^(-E[h]/c(n)) where E[h] is
// the mean path length over the ensemble and c(n) the expected path length
// of an unsuccessful BST search.
func (f *isolationForest) score(row []float64) float64 {
	var total float64
	for _, tree := range f.trees {
		total += pathLength(tree, row, 0)
	}
	avg := total / float64(len(f.trees))
	return math.Pow(2, -avg/avgPathLength(f.subsample))
}

func pathLength(node *isoNode, row []float64, depth int) float64 {
	if node.left == nil {
		return float64(depth) + avgPathLength(node.size)
	}
	if row[node.feature] < node.split {
		return pathLength(node.left, row, depth+1)
	}
	return pathLength(node.right, row, depth+1)
}

// avgPathLength is c(n): 2*H(n-1) - 2*(n-1)/n with H the harmonic number.
func avgPathLength(n int) float64 {
	if n <= 1 {
		return 0
	}
	h := math.Log(float64(n-1)) + 0.5772156649
	return 2*h - 2*float64(n-1)/float64(n)
}
