package rerank

import (
	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// tokenizeFunc tokenizes a chunk of text with the invocation's settings.
type tokenizeFunc func(text string) []string

// globalStats holds corpus-wide statistics from the pre-pass over the full
// candidate set. df counts, per query token, the number of distinct
// documents containing it. Only query tokens are tracked: DF is only ever
// looked up for query tokens during IDF computation.
type globalStats struct {
	df map[string]int
}

// collectGlobalStats tokenizes every candidate and builds the global
// document-frequency map. This must run over the entire candidate set
// before any batch-scoped work: a batch-local DF would bias IDF toward
// batch-local term distributions.
func collectGlobalStats(queryTokens []string, candidates []domrank.Candidate, tok tokenizeFunc) globalStats {
	distinct := make([]string, 0, len(queryTokens))
	for qt := range tokenSet(queryTokens) {
		distinct = append(distinct, qt)
	}

	stats := globalStats{df: make(map[string]int, len(distinct))}
	for _, c := range candidates {
		set := tokenSet(tok(c.Chunk))
		for _, qt := range distinct {
			if _, ok := set[qt]; ok {
				stats.df[qt]++
			}
		}
	}
	return stats
}
