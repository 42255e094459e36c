package rerank

// Breakdown exposes the raw signals behind a fused score, attached to
// results when debug output is requested.
type Breakdown struct {
	Semantic  float64
	BM25Raw   float64
	BM25Norm  float64
	Exact     float64
	Recency   float64
	Method    NormalizeMethod
	Weights   Weights
	WeightSum float64
}

// Ranked is a candidate augmented with its fused score.
type Ranked struct {
	Candidate
	RerankScore float64
	BM25Raw     float64
	Breakdown   *Breakdown
}
