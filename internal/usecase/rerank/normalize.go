package rerank

import (
	"math"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// buildNormalizer returns a pure function mapping raw BM25 values into
// [0,1]. It is constructed once per batch from that batch's raw values only
// and captures no mutable state.
//
// sigmoid is independent of batch composition and produces consistent
// scales across batches. minmax rescales against the batch-local extremes,
// trading cross-batch consistency for within-batch contrast; a degenerate
// batch (min == max) normalizes every value to 0.
func buildNormalizer(values []float64, method domrank.NormalizeMethod) func(float64) float64 {
	if method != domrank.NormalizeMinMax {
		return sigmoid
	}

	if len(values) == 0 {
		return func(float64) float64 { return 0 }
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return func(float64) float64 { return 0 }
	}
	span := max - min
	return func(v float64) float64 {
		return (v - min) / span
	}
}

// sigmoid maps any finite value into (0,1).
func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
