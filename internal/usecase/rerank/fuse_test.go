package rerank

import (
	"math"
	"testing"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

func TestFuseLinear(t *testing.T) {
	sig := rawSignals{semantic: 0.8, exact: 0.5, recency: 1.0}
	w := domrank.Weights{Semantic: 0.7, Lexical: 0.25, Exact: 0.10, Recency: 0.05}
	got := fuseLinear(sig, 0.6, w)
	want := 0.8*0.7 + 0.6*0.25 + 0.5*0.10 + 1.0*0.05
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %f, want %f", got, want)
	}
}

func TestFuseLogistic_StrictBounds(t *testing.T) {
	m := domrank.ModelCoefficients{Semantic: 5, BM25: -3, Exact: 2, Recency: 1, Bias: -0.5}
	extremes := []rawSignals{
		{semantic: 1e3, exact: 1, recency: 1},
		{semantic: -1e3, exact: 0, recency: 0},
		{},
	}
	for _, sig := range extremes {
		got := fuseLogistic(sig, 1, m)
		if got <= 0 || got >= 1 {
			t.Errorf("fuseLogistic(%+v) = %g, want strictly within (0,1)", sig, got)
		}
	}
}

func TestSelectTopN_SortsAndTruncates(t *testing.T) {
	ranked := []domrank.Ranked{
		{RerankScore: 0.2},
		{RerankScore: 0.9},
		{RerankScore: 0.5},
	}
	got := selectTopN(ranked, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].RerankScore != 0.9 || got[1].RerankScore != 0.5 {
		t.Errorf("wrong order: %v", []float64{got[0].RerankScore, got[1].RerankScore})
	}
}

func TestSelectTopN_StableTieBreak(t *testing.T) {
	ranked := []domrank.Ranked{
		{Candidate: domrank.Candidate{Chunk: "first"}, RerankScore: 0.5},
		{Candidate: domrank.Candidate{Chunk: "second"}, RerankScore: 0.5},
		{Candidate: domrank.Candidate{Chunk: "third"}, RerankScore: 0.5},
	}
	got := selectTopN(ranked, 3)
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Chunk != want {
			t.Errorf("position %d: got %q, want %q (input order must break ties)", i, got[i].Chunk, want)
		}
	}
}

func TestSelectTopN_FewerThanN(t *testing.T) {
	ranked := []domrank.Ranked{{RerankScore: 0.1}}
	if got := selectTopN(ranked, 5); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}
