package rerank

import (
	"math"
	"time"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// BM25 parameters (standard values).
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// sentinelAgeDays is the age assigned to documents whose timestamp is
// missing or unparseable, pushing their recency score toward zero.
const sentinelAgeDays = 999

// rawSignals is the per-document signal set before normalization and fusion.
type rawSignals struct {
	semantic float64
	bm25     float64
	exact    float64
	recency  float64
}

// docTokens is the batch-local tokenization of one candidate.
type docTokens struct {
	tf     map[string]int
	set    map[string]struct{}
	length int // raw token count; floored at 1 inside BM25
}

func newDocTokens(tokens []string) docTokens {
	return docTokens{
		tf:     termFrequencies(tokens),
		set:    tokenSet(tokens),
		length: len(tokens),
	}
}

// semanticScore returns the externally supplied relevance when external-score
// mode is on (0 when absent), otherwise the cosine similarity between the
// query embedding and the document embedding.
func semanticScore(c domrank.Candidate, queryEmbedding []float64, useExternal bool) float64 {
	if useExternal {
		if c.Score == nil || math.IsNaN(*c.Score) {
			return 0
		}
		return *c.Score
	}
	return cosineSimilarity(queryEmbedding, c.Embedding)
}

// cosineSimilarity computes (a·b)/(‖a‖‖b‖). Empty, mismatched-length, or
// zero-norm vectors yield 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// bm25Score sums the BM25 contribution of every query token over the
// document, with idf(t) = ln((corpusSize+1)/df) and document length
// normalized against the batch average length.
func bm25Score(doc docTokens, queryTokens []string, df map[string]int, corpusSize int, batchAvgLen float64) float64 {
	if batchAvgLen < 1 {
		batchAvgLen = 1
	}
	docLen := doc.length
	if docLen < 1 {
		docLen = 1
	}
	var score float64
	for _, qt := range queryTokens {
		tf := doc.tf[qt]
		if tf == 0 {
			continue
		}
		d := df[qt]
		if d == 0 {
			d = 1
		}
		idf := math.Log(float64(corpusSize+1) / float64(d))
		tfF := float64(tf)
		norm := 1 - bm25B + bm25B*(float64(docLen)/batchAvgLen)
		score += idf * tfF * (bm25K1 + 1) / (tfF + bm25K1*norm)
	}
	return score
}

// exactOverlap is the fraction of distinct query tokens present anywhere in
// the document token set. Callers guard the zero-query-token case upstream;
// the check here keeps the division safe regardless.
func exactOverlap(queryTokens []string, doc docTokens) float64 {
	distinct := tokenSet(queryTokens)
	if len(distinct) == 0 {
		return 0
	}
	matched := 0
	for qt := range distinct {
		if _, ok := doc.set[qt]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(distinct))
}

// recencyScore applies exponential decay to the document age in days:
// exp(-age/halfLife). Missing or unparseable timestamps get the sentinel
// age; future timestamps count as age zero.
func recencyScore(c domrank.Candidate, now time.Time, halfLifeDays float64) float64 {
	ageDays := float64(sentinelAgeDays)
	if t, ok := c.ParsedTime(); ok {
		ageDays = now.Sub(t).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
	}
	return math.Exp(-ageDays / halfLifeDays)
}
