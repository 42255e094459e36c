// Package rerankd provides an HTTP client for the rerankd re-ranking API.
package rerankd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the rerankd SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a rerankd Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("rerankd: base URL required")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Item is one candidate document: a data object carrying at least "chunk"
// plus any caller fields, echoed back augmented with the computed scores.
type Item struct {
	Data map[string]any `json:"data"`
}

// RerankScore reads the fused score from a result item.
func (it Item) RerankScore() float64 {
	f, _ := it.Data["rerank_score"].(float64)
	return f
}

// BM25Raw reads the pre-normalization BM25 score from a result item.
func (it Item) BM25Raw() float64 {
	f, _ := it.Data["bm25_raw"].(float64)
	return f
}

// Chunk reads the document text from a result item.
func (it Item) Chunk() string {
	s, _ := it.Data["chunk"].(string)
	return s
}

// RerankOptions are per-request overrides of the server defaults.
// Nil fields keep the server-side value.
type RerankOptions struct {
	TopN                *int     `json:"top_n,omitempty"`
	BatchSize           *int     `json:"batch_size,omitempty"`
	SemanticWeight      *float64 `json:"semantic_weight,omitempty"`
	LexicalWeight       *float64 `json:"lexical_weight,omitempty"`
	ExactWeight         *float64 `json:"exact_weight,omitempty"`
	RecencyWeight       *float64 `json:"recency_weight,omitempty"`
	UseExternalScore    *bool    `json:"use_external_score,omitempty"`
	RecencyHalfLifeDays *float64 `json:"recency_half_life_days,omitempty"`
	MinTokenLength      *int     `json:"min_token_length,omitempty"`
	NormalizeMethod     *string  `json:"normalize_method,omitempty"`
	CustomStopwords     *string  `json:"custom_stopwords,omitempty"`
	UseModel            *bool    `json:"use_model,omitempty"`
	ModelWeights        *string  `json:"model_weights,omitempty"`
	Debug               *bool    `json:"debug,omitempty"`
	Workers             *int     `json:"workers,omitempty"`
}

// Response is a successful rerank invocation: ranked items plus any
// non-fatal diagnostics the pipeline emitted.
type Response struct {
	Results  []Item
	Warnings []string
}

// errorMarker is the boundary-contract failure shape: a single result
// element flagged with error=true instead of an HTTP error status.
type errorMarker struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// Rerank re-scores items against the query and returns the server's top-N.
// The query embedding may be empty; pass opts nil to use server defaults.
// Error-marker results from the boundary contract surface as Go errors.
func (c *Client) Rerank(
	ctx context.Context, query string, queryEmbedding []float64, items []Item, opts *RerankOptions,
) (Response, error) {
	if queryEmbedding == nil {
		queryEmbedding = []float64{}
	}
	payload := map[string]any{
		"query":           query,
		"query_embedding": queryEmbedding,
		"items":           items,
	}
	if opts != nil {
		payload["options"] = opts
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("rerankd: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/rerank", bytes.NewReader(body),
	)
	if err != nil {
		return Response{}, fmt.Errorf("rerankd: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpc.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("rerankd: request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		var apiErr errorMarker
		_ = json.NewDecoder(httpResp.Body).Decode(&apiErr)
		return Response{}, fmt.Errorf("rerankd: HTTP %d: %s", httpResp.StatusCode, apiErr.Message)
	}

	var raw struct {
		Results  []json.RawMessage `json:"results"`
		Warnings []string          `json:"warnings"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&raw); err != nil {
		return Response{}, fmt.Errorf("rerankd: decode response: %w", err)
	}

	// Boundary contract: failures arrive as a single error-marker result.
	if len(raw.Results) == 1 {
		var marker errorMarker
		if err := json.Unmarshal(raw.Results[0], &marker); err == nil && marker.Error {
			return Response{}, fmt.Errorf("rerankd: %s", marker.Message)
		}
	}

	resp := Response{Warnings: raw.Warnings, Results: make([]Item, len(raw.Results))}
	for i, r := range raw.Results {
		if err := json.Unmarshal(r, &resp.Results[i]); err != nil {
			return Response{}, fmt.Errorf("rerankd: decode result %d: %w", i, err)
		}
	}
	return resp, nil
}
