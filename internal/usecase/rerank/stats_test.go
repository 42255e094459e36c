package rerank

import (
	"testing"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

func testTokenizer() tokenizeFunc {
	stop := newStopwordSet(nil)
	return func(text string) []string { return tokenize(text, 2, stop) }
}

func chunks(texts ...string) []domrank.Candidate {
	out := make([]domrank.Candidate, len(texts))
	for i, tx := range texts {
		out[i] = domrank.Candidate{Chunk: tx}
	}
	return out
}

func TestCollectGlobalStats_CountsDistinctDocuments(t *testing.T) {
	docs := chunks(
		"alpha beta gamma",
		"alpha alpha delta", // repeated term still counts once
		"epsilon zeta",
	)
	stats := collectGlobalStats([]string{"alpha", "zeta", "missing"}, docs, testTokenizer())

	if got := stats.df["alpha"]; got != 2 {
		t.Errorf("df[alpha] = %d, want 2", got)
	}
	if got := stats.df["zeta"]; got != 1 {
		t.Errorf("df[zeta] = %d, want 1", got)
	}
	if got := stats.df["missing"]; got != 0 {
		t.Errorf("df[missing] = %d, want 0", got)
	}
}

func TestCollectGlobalStats_IgnoresNonQueryTokens(t *testing.T) {
	docs := chunks("alpha beta", "beta gamma")
	stats := collectGlobalStats([]string{"alpha"}, docs, testTokenizer())

	if _, ok := stats.df["beta"]; ok {
		t.Error("df tracked a non-query token")
	}
	if len(stats.df) != 1 {
		t.Errorf("df has %d entries, want 1", len(stats.df))
	}
}

func TestCollectGlobalStats_DuplicateQueryTokens(t *testing.T) {
	docs := chunks("alpha beta")
	stats := collectGlobalStats([]string{"alpha", "alpha"}, docs, testTokenizer())

	if got := stats.df["alpha"]; got != 1 {
		t.Errorf("df[alpha] = %d, want 1 (duplicates must not double-count)", got)
	}
}
