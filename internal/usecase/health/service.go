// Package health reports service readiness: which pipelines have
// their artifacts loaded and, when configured, whether the cache
// answers a ping.
package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	StatusHealthy = "healthy"
	StatusPartial = "partial"

	modelLoaded    = "loaded"
	modelNotLoaded = "not loaded"
)

// Report is the health endpoint payload.
type Report struct {
	QAModel             string `json:"qa_model"`
	RecommendationModel string `json:"recommendation_model"`
	Cache               string `json:"cache,omitempty"`
	ServiceStatus       string `json:"service_status"`
	Version             string `json:"version,omitempty"`
	Timestamp           string `json:"timestamp"`
}

// Service aggregates pipeline readiness into one report.
type Service struct {
	qa        Pipeline
	recommend Pipeline
	cache     CachePinger
	version   string
	logger    *zap.Logger
}

// New creates the health service. cache may be nil when no cache is configured.
func New(qa, recommend Pipeline, cache CachePinger, version string, logger *zap.Logger) *Service {
	return &Service{qa: qa, recommend: recommend, cache: cache, version: version, logger: logger}
}

// Check reports "healthy" when both pipelines are ready, "partial"
// otherwise. Cache connectivity is informational and never degrades
// the status.
func (s *Service) Check(ctx context.Context) Report {
	qaReady := s.qa != nil && s.qa.Ready()
	recReady := s.recommend != nil && s.recommend.Ready()

	status := StatusPartial
	if qaReady && recReady {
		status = StatusHealthy
	}

	report := Report{
		QAModel:             loadedLabel(qaReady),
		RecommendationModel: loadedLabel(recReady),
		ServiceStatus:       status,
		Version:             s.version,
		Timestamp:           time.Now().Format(time.RFC3339),
	}

	if s.cache != nil {
		report.Cache = "ok"
		if err := s.cache.Ping(ctx); err != nil {
			s.logger.Warn("Cache ping failed", zap.Error(err))
			report.Cache = "error"
		}
	}

	return report
}

func loadedLabel(ready bool) string {
	if ready {
		return modelLoaded
	}
	return modelNotLoaded
}
