package rerank

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/rerankd/internal/domain"
)

// Option defaults.
const (
	DefaultTopN                = 5
	DefaultBatchSize           = 200
	DefaultRecencyHalfLifeDays = 60
	DefaultMinTokenLength      = 2
	DefaultWorkers             = 1

	// weightSumTolerance is how far the weight sum may drift from 1.0
	// before a warning is emitted.
	weightSumTolerance = 0.1
)

// NormalizeMethod selects the BM25 batch-normalization strategy.
type NormalizeMethod string

const (
	// NormalizeSigmoid maps raw scores through a logistic curve. Stable
	// across batches, the default.
	NormalizeSigmoid NormalizeMethod = "sigmoid"
	// NormalizeMinMax rescales against the batch-local min and max.
	// Adaptive within a batch, not comparable across batches.
	NormalizeMinMax NormalizeMethod = "minmax"
)

// IsValid reports whether the method is a known normalization strategy.
func (m NormalizeMethod) IsValid() bool {
	return m == NormalizeSigmoid || m == NormalizeMinMax
}

// Weights holds the linear fusion weights for the four relevance signals.
type Weights struct {
	Semantic float64
	Lexical  float64
	Exact    float64
	Recency  float64
}

// DefaultWeights returns the stock fusion weights.
func DefaultWeights() Weights {
	return Weights{Semantic: 0.7, Lexical: 0.25, Exact: 0.10, Recency: 0.05}
}

// Sum returns the total of the four weights.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Lexical + w.Exact + w.Recency
}

// Balanced reports whether the weight sum is close enough to 1.0.
// A small epsilon keeps float accumulation from tripping the boundary.
func (w Weights) Balanced() bool {
	return math.Abs(w.Sum()-1.0) <= weightSumTolerance+1e-9
}

// ModelCoefficients are the learned logistic-fusion coefficients.
type ModelCoefficients struct {
	Semantic float64
	BM25     float64
	Exact    float64
	Recency  float64
	Bias     float64
}

// Options holds every knob recognized by the re-ranking pipeline.
type Options struct {
	TopN                int
	BatchSize           int
	Weights             Weights
	UseExternalScore    bool
	RecencyHalfLifeDays float64
	MinTokenLength      int
	NormalizeMethod     NormalizeMethod
	CustomStopwords     string // comma-separated, case-insensitive
	UseModel            bool
	ModelWeights        string // 5 comma-separated numbers when UseModel is set
	Debug               bool
	Workers             int // per-batch scoring parallelism, 1 = sequential
}

// DefaultOptions returns the documented option defaults.
func DefaultOptions() Options {
	o := Options{}
	o.ApplyDefaults()
	return o
}

// ApplyDefaults replaces missing or out-of-range numeric values with their
// documented defaults. Invalid values never fail an invocation.
func (o *Options) ApplyDefaults() {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Weights.Semantic < 0 || math.IsNaN(o.Weights.Semantic) {
		o.Weights.Semantic = DefaultWeights().Semantic
	}
	if o.Weights.Lexical < 0 || math.IsNaN(o.Weights.Lexical) {
		o.Weights.Lexical = DefaultWeights().Lexical
	}
	if o.Weights.Exact < 0 || math.IsNaN(o.Weights.Exact) {
		o.Weights.Exact = DefaultWeights().Exact
	}
	if o.Weights.Recency < 0 || math.IsNaN(o.Weights.Recency) {
		o.Weights.Recency = DefaultWeights().Recency
	}
	if o.Weights == (Weights{}) {
		o.Weights = DefaultWeights()
	}
	if o.RecencyHalfLifeDays <= 0 || math.IsNaN(o.RecencyHalfLifeDays) {
		o.RecencyHalfLifeDays = DefaultRecencyHalfLifeDays
	}
	if o.MinTokenLength <= 0 {
		o.MinTokenLength = DefaultMinTokenLength
	}
	if o.NormalizeMethod == "" || !o.NormalizeMethod.IsValid() {
		o.NormalizeMethod = NormalizeSigmoid
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
}

// Validate checks the options that cannot be silently defaulted.
// Only the learned-model configuration is fatal; everything else
// falls back per ApplyDefaults.
func (o Options) Validate() error {
	if o.UseModel {
		if _, err := o.ModelCoefficients(); err != nil {
			return err
		}
	}
	return nil
}

// ModelCoefficients parses the comma-separated model weights.
// Exactly five numeric values are required: semantic, bm25, exact,
// recency, bias.
func (o Options) ModelCoefficients() (ModelCoefficients, error) {
	parts := strings.Split(o.ModelWeights, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return ModelCoefficients{}, fmt.Errorf(
				"%w: model weight %q is not a number", domain.ErrModelConfigInvalid, p)
		}
		values = append(values, v)
	}
	if len(values) != 5 {
		return ModelCoefficients{}, fmt.Errorf(
			"%w: expected 5 model weights (semantic, bm25, exact, recency, bias), got %d",
			domain.ErrModelConfigInvalid, len(values))
	}
	return ModelCoefficients{
		Semantic: values[0],
		BM25:     values[1],
		Exact:    values[2],
		Recency:  values[3],
		Bias:     values[4],
	}, nil
}

// CustomStopwordList splits the comma-separated custom stopwords,
// lowercased and trimmed. Empty entries are dropped.
func (o Options) CustomStopwordList() []string {
	if o.CustomStopwords == "" {
		return nil
	}
	parts := strings.Split(o.CustomStopwords, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}
