package rerank

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// Service runs the re-ranking pipeline: tokenize, collect corpus
// statistics, score, normalize per batch, fuse, select top-N. Stateless
// across invocations.
type Service struct {
	defaults domrank.Options
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a re-ranking service with the given option defaults.
func New(defaults domrank.Options, logger *zap.Logger) *Service {
	defaults.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{defaults: defaults, logger: logger, now: time.Now}
}

// WithClock overrides the time source (used by tests for recency scoring).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Defaults returns the service-level option defaults, for per-request
// override merging at the transport layer.
func (s *Service) Defaults() domrank.Options { return s.defaults }

// Response carries the ranked results plus non-fatal diagnostics.
type Response struct {
	Results  []domrank.Ranked
	Warnings []string
}

// Rerank re-scores the request candidates and returns the top-N by fused
// score. Two passes: a full pre-pass builds the global document-frequency
// map, then sequential batches are scored, normalized batch-locally, and
// fused. An empty query-token set or candidate list yields an empty result,
// not an error.
func (s *Service) Rerank(ctx context.Context, req domrank.Request, opts domrank.Options) (Response, error) {
	opts.ApplyDefaults()

	var model domrank.ModelCoefficients
	if opts.UseModel {
		m, err := opts.ModelCoefficients()
		if err != nil {
			return Response{}, err
		}
		model = m
	}

	stopwords := newStopwordSet(opts.CustomStopwordList())
	tok := func(text string) []string {
		return tokenize(text, opts.MinTokenLength, stopwords)
	}

	resp := Response{Results: []domrank.Ranked{}}

	queryTokens := tok(req.Query())
	if len(queryTokens) == 0 {
		resp.Warnings = append(resp.Warnings, "query produced no tokens after filtering; nothing to rank")
		s.logger.Warn("query produced no tokens after filtering", zap.String("query", req.Query()))
		return resp, nil
	}

	if !opts.UseModel && !opts.Weights.Balanced() {
		warning := fmt.Sprintf("fusion weights sum to %.3f, expected close to 1.0", opts.Weights.Sum())
		resp.Warnings = append(resp.Warnings, warning)
		s.logger.Warn("unbalanced fusion weights", zap.Float64("sum", opts.Weights.Sum()))
	}

	candidates := req.Candidates()
	corpusSize := len(candidates)
	now := s.now()

	// Pass 1: global DF over the entire candidate set.
	stats := collectGlobalStats(queryTokens, candidates, tok)

	pool := s.newPool(opts.Workers)
	if pool != nil {
		defer pool.Release()
	}

	// Pass 2: sequential batches.
	ranked := make([]domrank.Ranked, 0, corpusSize)
	for start := 0; start < corpusSize; start += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return Response{}, err
		}
		end := min(start+opts.BatchSize, corpusSize)
		batch := candidates[start:end]

		toks := make([]docTokens, len(batch))
		forEach(pool, len(batch), func(i int) {
			toks[i] = newDocTokens(tok(batch[i].Chunk))
		})

		var totalLen int
		for _, dt := range toks {
			totalLen += dt.length
		}
		avgLen := float64(totalLen) / float64(len(batch))

		sigs := make([]rawSignals, len(batch))
		forEach(pool, len(batch), func(i int) {
			c := batch[i]
			sigs[i] = rawSignals{
				semantic: semanticScore(c, req.QueryEmbedding(), opts.UseExternalScore),
				bm25:     bm25Score(toks[i], queryTokens, stats.df, corpusSize, avgLen),
				exact:    exactOverlap(queryTokens, toks[i]),
				recency:  recencyScore(c, now, opts.RecencyHalfLifeDays),
			}
		})

		raw := make([]float64, len(batch))
		for i := range sigs {
			raw[i] = sigs[i].bm25
		}
		normalize := buildNormalizer(raw, opts.NormalizeMethod)

		for i, c := range batch {
			bm25Norm := normalize(sigs[i].bm25)
			var score float64
			if opts.UseModel {
				score = fuseLogistic(sigs[i], bm25Norm, model)
			} else {
				score = fuseLinear(sigs[i], bm25Norm, opts.Weights)
			}
			r := domrank.Ranked{Candidate: c, RerankScore: score, BM25Raw: sigs[i].bm25}
			if opts.Debug {
				r.Breakdown = &domrank.Breakdown{
					Semantic:  sigs[i].semantic,
					BM25Raw:   sigs[i].bm25,
					BM25Norm:  bm25Norm,
					Exact:     sigs[i].exact,
					Recency:   sigs[i].recency,
					Method:    opts.NormalizeMethod,
					Weights:   opts.Weights,
					WeightSum: opts.Weights.Sum(),
				}
			}
			ranked = append(ranked, r)
		}
	}

	resp.Results = selectTopN(ranked, opts.TopN)

	s.logger.Debug("rerank complete",
		zap.Int("candidates", corpusSize),
		zap.Int("returned", len(resp.Results)),
		zap.Int("query_tokens", len(queryTokens)),
		zap.String("normalize_method", string(opts.NormalizeMethod)),
	)
	return resp, nil
}

// newPool creates a worker pool when per-batch parallelism is requested.
// Pool creation failure degrades to sequential scoring.
func (s *Service) newPool(workers int) *ants.Pool {
	if workers <= 1 {
		return nil
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		s.logger.Warn("worker pool unavailable, scoring sequentially", zap.Error(err))
		return nil
	}
	return pool
}

// forEach runs fn for every index, on the pool when one is available and
// inline otherwise. Each fn writes only its own indexed slot, so parallel
// execution stays deterministic.
func forEach(pool *ants.Pool, n int, fn func(int)) {
	if pool == nil {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		task := i
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(task)
		}); err != nil {
			fn(task)
			wg.Done()
		}
	}
	wg.Wait()
}
