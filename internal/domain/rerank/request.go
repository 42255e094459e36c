package rerank

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/rerankd/internal/domain"
)

// Request is a validated re-ranking invocation.
type Request struct {
	query          string
	queryEmbedding []float64
	candidates     []Candidate
}

// NewRequest validates and builds a re-ranking request.
// The query embedding may be empty (semantic scores fall back to 0 unless
// external scores are enabled), but the candidate list may not.
func NewRequest(query string, queryEmbedding []float64, candidates []Candidate) (Request, error) {
	if len(candidates) == 0 {
		return Request{}, domain.ErrInputMissing
	}
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrSchemaInvalid)
	}
	return Request{
		query:          query,
		queryEmbedding: queryEmbedding,
		candidates:     candidates,
	}, nil
}

// Query returns the query text.
func (r *Request) Query() string { return r.query }

// QueryEmbedding returns the query embedding vector (may be empty).
func (r *Request) QueryEmbedding() []float64 { return r.queryEmbedding }

// Candidates returns the candidate documents in their original order.
func (r *Request) Candidates() []Candidate { return r.candidates }
