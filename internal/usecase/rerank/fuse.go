package rerank

import (
	"sort"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// fuseLinear combines the signals as a weighted sum. With in-range signals
// and weights summing near 1 the result stays within [0,1], but no clamping
// is applied.
func fuseLinear(sig rawSignals, bm25Norm float64, w domrank.Weights) float64 {
	return sig.semantic*w.Semantic +
		bm25Norm*w.Lexical +
		sig.exact*w.Exact +
		sig.recency*w.Recency
}

// fuseLogistic combines the signals through the learned logistic model,
// yielding a score strictly within (0,1).
func fuseLogistic(sig rawSignals, bm25Norm float64, m domrank.ModelCoefficients) float64 {
	z := sig.semantic*m.Semantic +
		bm25Norm*m.BM25 +
		sig.exact*m.Exact +
		sig.recency*m.Recency +
		m.Bias
	return sigmoid(z)
}

// selectTopN sorts by fused score descending and truncates to n. The sort
// is stable, so candidates with equal scores keep their original input
// order.
func selectTopN(ranked []domrank.Ranked, n int) []domrank.Ranked {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RerankScore > ranked[j].RerankScore
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
