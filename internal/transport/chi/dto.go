package chi

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/rerankd/internal/domain"
	domrank "github.com/kailas-cloud/rerankd/internal/domain/rerank"
)

// rerankRequestDTO is the wire shape of a rerank invocation. Fields are kept
// as raw JSON so type mismatches surface as schema errors instead of silent
// zero values.
type rerankRequestDTO struct {
	Query          json.RawMessage `json:"query"`
	QueryEmbedding json.RawMessage `json:"query_embedding"`
	Items          json.RawMessage `json:"items"`
	Options        *optionsDTO     `json:"options"`
}

// itemDTO is one candidate on the wire: a nested data object carrying the
// chunk plus arbitrary caller fields that pass through untouched.
type itemDTO struct {
	Data map[string]any `json:"data"`
}

// optionsDTO carries per-request option overrides. Pointer fields
// distinguish "not sent" from explicit zero values.
type optionsDTO struct {
	TopN                *int     `json:"top_n"`
	BatchSize           *int     `json:"batch_size"`
	SemanticWeight      *float64 `json:"semantic_weight"`
	LexicalWeight       *float64 `json:"lexical_weight"`
	ExactWeight         *float64 `json:"exact_weight"`
	RecencyWeight       *float64 `json:"recency_weight"`
	UseExternalScore    *bool    `json:"use_external_score"`
	RecencyHalfLifeDays *float64 `json:"recency_half_life_days"`
	MinTokenLength      *int     `json:"min_token_length"`
	NormalizeMethod     *string  `json:"normalize_method"`
	CustomStopwords     *string  `json:"custom_stopwords"`
	UseModel            *bool    `json:"use_model"`
	ModelWeights        *string  `json:"model_weights"`
	Debug               *bool    `json:"debug"`
	Workers             *int     `json:"workers"`
}

// apply overlays the non-nil overrides onto the base options.
func (o *optionsDTO) apply(base domrank.Options) domrank.Options {
	if o == nil {
		return base
	}
	if o.TopN != nil {
		base.TopN = *o.TopN
	}
	if o.BatchSize != nil {
		base.BatchSize = *o.BatchSize
	}
	if o.SemanticWeight != nil {
		base.Weights.Semantic = *o.SemanticWeight
	}
	if o.LexicalWeight != nil {
		base.Weights.Lexical = *o.LexicalWeight
	}
	if o.ExactWeight != nil {
		base.Weights.Exact = *o.ExactWeight
	}
	if o.RecencyWeight != nil {
		base.Weights.Recency = *o.RecencyWeight
	}
	if o.UseExternalScore != nil {
		base.UseExternalScore = *o.UseExternalScore
	}
	if o.RecencyHalfLifeDays != nil {
		base.RecencyHalfLifeDays = *o.RecencyHalfLifeDays
	}
	if o.MinTokenLength != nil {
		base.MinTokenLength = *o.MinTokenLength
	}
	if o.NormalizeMethod != nil {
		base.NormalizeMethod = domrank.NormalizeMethod(*o.NormalizeMethod)
	}
	if o.CustomStopwords != nil {
		base.CustomStopwords = *o.CustomStopwords
	}
	if o.UseModel != nil {
		base.UseModel = *o.UseModel
	}
	if o.ModelWeights != nil {
		base.ModelWeights = *o.ModelWeights
	}
	if o.Debug != nil {
		base.Debug = *o.Debug
	}
	if o.Workers != nil {
		base.Workers = *o.Workers
	}
	base.ApplyDefaults()
	return base
}

// toDomain validates the wire payload and builds the domain request and
// effective options. Schema violations map to the domain error taxonomy.
func (dto *rerankRequestDTO) toDomain(defaults domrank.Options) (domrank.Request, domrank.Options, error) {
	opts := dto.Options.apply(defaults)

	if len(dto.Items) == 0 || string(dto.Items) == "null" {
		return domrank.Request{}, opts, domain.ErrInputMissing
	}
	var items []itemDTO
	if err := json.Unmarshal(dto.Items, &items); err != nil {
		return domrank.Request{}, opts, fmt.Errorf("%w: items must be an array", domain.ErrSchemaInvalid)
	}
	if len(items) == 0 {
		return domrank.Request{}, opts, domain.ErrInputMissing
	}

	if len(dto.Query) == 0 || string(dto.Query) == "null" {
		return domrank.Request{}, opts, fmt.Errorf("%w: query is required", domain.ErrSchemaInvalid)
	}
	var query string
	if err := json.Unmarshal(dto.Query, &query); err != nil {
		return domrank.Request{}, opts, fmt.Errorf("%w: query must be a string", domain.ErrSchemaInvalid)
	}

	if len(dto.QueryEmbedding) == 0 || string(dto.QueryEmbedding) == "null" {
		return domrank.Request{}, opts, fmt.Errorf("%w: query_embedding must be an array", domain.ErrSchemaInvalid)
	}
	var embedding []float64
	if err := json.Unmarshal(dto.QueryEmbedding, &embedding); err != nil {
		return domrank.Request{}, opts, fmt.Errorf("%w: query_embedding must be an array of numbers", domain.ErrSchemaInvalid)
	}

	candidates := make([]domrank.Candidate, len(items))
	for i, it := range items {
		candidates[i] = candidateFromItem(it)
	}

	req, err := domrank.NewRequest(query, embedding, candidates)
	if err != nil {
		return domrank.Request{}, opts, err
	}
	return req, opts, nil
}

// candidateFromItem extracts the typed candidate fields from the loose data
// object. Missing or mistyped optional fields fall back, never fail.
func candidateFromItem(it itemDTO) domrank.Candidate {
	c := domrank.Candidate{Fields: it.Data}
	if it.Data == nil {
		return c
	}
	if chunk, ok := it.Data["chunk"].(string); ok {
		c.Chunk = chunk
	}
	if raw, ok := it.Data["embedding"].([]any); ok {
		c.Embedding = floatsFromAny(raw)
	}
	if score, ok := it.Data["score"].(float64); ok {
		c.Score = &score
	}
	if ts, ok := it.Data["timestamp"]; ok {
		c.Timestamp = ts
	}
	return c
}

// floatsFromAny converts a decoded JSON array into floats, dropping
// non-numeric entries.
func floatsFromAny(raw []any) []float64 {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// rankedToItem rebuilds the wire item: the original data fields plus the
// computed score fields (and the debug breakdown when present).
func rankedToItem(r domrank.Ranked) map[string]any {
	data := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		data[k] = v
	}
	data["rerank_score"] = r.RerankScore
	data["bm25_raw"] = r.BM25Raw
	if b := r.Breakdown; b != nil {
		data["breakdown"] = map[string]any{
			"semantic":         b.Semantic,
			"bm25_raw":         b.BM25Raw,
			"bm25_norm":        b.BM25Norm,
			"exact":            b.Exact,
			"recency":          b.Recency,
			"normalize_method": string(b.Method),
			"weights": map[string]any{
				"semantic": b.Weights.Semantic,
				"lexical":  b.Weights.Lexical,
				"exact":    b.Weights.Exact,
				"recency":  b.Weights.Recency,
				"sum":      b.WeightSum,
			},
		}
	}
	return map[string]any{"data": data}
}
