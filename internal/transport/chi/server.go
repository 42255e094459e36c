package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rerankd/internal/metrics"
	"github.com/kailas-cloud/rerankd/internal/version"
	rerankuc "github.com/kailas-cloud/rerankd/internal/usecase/rerank"
)

// Server exposes the re-ranking pipeline over HTTP.
type Server struct {
	rerank *rerankuc.Service
	logger *zap.Logger
}

// NewServer creates the HTTP API server.
func NewServer(rerank *rerankuc.Service, logger *zap.Logger) *Server {
	return &Server{rerank: rerank, logger: logger}
}

// Mount registers the API routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/v1/rerank", s.Rerank)
	r.Get("/healthz", s.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Rerank handles POST /v1/rerank.
//
// The endpoint never surfaces pipeline failures as HTTP errors: validation
// and processing failures come back as 200 with a single error-marker
// result, so orchestration pipelines embedding this service can always
// consume the response as a result list. The only transport-level failure
// is an undecodable body.
func (s *Server) Rerank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var dto rerankRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, opts, err := dto.toDomain(s.rerank.Defaults())
	if err != nil {
		s.writeBoundaryError(w, start, 0, err)
		return
	}

	resp, err := s.rerank.Rerank(r.Context(), req, opts)
	if err != nil {
		s.writeBoundaryError(w, start, len(req.Candidates()), err)
		return
	}

	items := make([]map[string]any, len(resp.Results))
	for i, res := range resp.Results {
		items[i] = rankedToItem(res)
	}

	metrics.ObserveRerank(len(req.Candidates()), time.Since(start), false)
	writeJSON(w, http.StatusOK, map[string]any{
		"results":  items,
		"warnings": resp.Warnings,
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}

// writeBoundaryError converts any pipeline error into the single-element
// error-marker result demanded by the boundary contract.
func (s *Server) writeBoundaryError(w http.ResponseWriter, start time.Time, candidates int, err error) {
	s.logger.Warn("rerank invocation failed", zap.Error(err))
	metrics.ObserveRerank(candidates, time.Since(start), true)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": []map[string]any{
			{"error": true, "message": err.Error()},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": true, "message": msg})
}
