// Package chi exposes the QA and recommendation pipelines over HTTP.
package chi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/service"
)

// Server handles the HTTP API.
type Server struct {
	svc    *service.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server over the service facade.
func NewServer(svc *service.Service, logger *zap.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Routes mounts the API endpoints on the router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/qa", s.handleQA)
	r.Post("/recommend", s.handleRecommend)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type qaRequest struct {
	Question string `json:"question"`
}

type recommendRequest struct {
	Symptoms       []string `json:"symptoms"`
	AdditionalInfo string   `json:"additional_info"`
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	writeJSON(w, http.StatusOK, s.svc.Answer(r.Context(), req.Question))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	symptoms := cleanSymptoms(req.Symptoms)
	if len(symptoms) == 0 {
		writeError(w, http.StatusBadRequest, "Symptoms are required")
		return
	}

	writeJSON(w, http.StatusOK, s.svc.Recommend(r.Context(), symptoms, req.AdditionalInfo))
}

// handleHealth always answers 200; the body carries the status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Health(r.Context()))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// cleanSymptoms trims entries and drops the empty ones.
func cleanSymptoms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
