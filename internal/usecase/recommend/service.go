// Package recommend implements the drug-recommendation pipeline:
// extract known entities from the symptom text, expand them through the
// medical knowledge graph, and score the drug table by symptom overlap.
// Like the QA pipeline it never returns an error to the caller.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/artifacts"
	"github.com/medassist-ai/medassist/internal/domain"
	"github.com/medassist-ai/medassist/internal/metrics"
)

const (
	defaultTopK        = 10
	neighborsPerNode   = 5
	maxRelatedConcepts = 10
)

const unavailableDisclaimer = "The Medicine Recommendation service is currently unavailable. " +
	"Please consult a healthcare professional."

// Service is the recommendation pipeline. The entity table and graph
// are optional enrichments; only the drug table is required for the
// pipeline to be Ready.
type Service struct {
	entities []artifacts.Entity
	graph    *domain.Graph
	drugs    []domain.DrugRecord
	topK     int
	logger   *zap.Logger
}

// New creates the recommendation pipeline.
func New(entities []artifacts.Entity, graph *domain.Graph, drugs []domain.DrugRecord, logger *zap.Logger) *Service {
	return &Service{
		entities: entities,
		graph:    graph,
		drugs:    drugs,
		topK:     defaultTopK,
		logger:   logger,
	}
}

// WithTopK overrides the maximum number of returned medications.
func (s *Service) WithTopK(k int) *Service {
	if k > 0 {
		s.topK = k
	}
	return s
}

// Ready reports whether the drug table is loaded.
func (s *Service) Ready() bool {
	return s.drugs != nil
}

// Recommend scores the drug table against the given symptoms. The note
// is accepted for API compatibility but does not influence scoring.
// Recommend never returns an error: failures degrade the result.
func (s *Service) Recommend(ctx context.Context, symptoms []string, note string) (res domain.RecommendationResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recommendation pipeline panic", zap.Any("panic", r), zap.Stack("stacktrace"))
			res = domain.RecommendationResult{
				Error:             fmt.Sprintf("%v", r),
				Medications:       []domain.Recommendation{},
				ExtractedEntities: []string{},
				RelatedConcepts:   []string{},
				Disclaimer:        domain.ErrorDisclaimer,
				Timestamp:         time.Now().Format(time.RFC3339),
			}
		}
		status := "ok"
		if res.Error != "" {
			status = "degraded"
		}
		metrics.PipelineRequestsTotal.WithLabelValues("recommend", status).Inc()
		metrics.PipelineRequestDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{
			Error:             err.Error(),
			Medications:       []domain.Recommendation{},
			ExtractedEntities: []string{},
			RelatedConcepts:   []string{},
			Disclaimer:        domain.ErrorDisclaimer,
			Timestamp:         time.Now().Format(time.RFC3339),
		}
	}

	if !s.Ready() {
		return domain.RecommendationResult{
			Error:             "Recommendation model not available",
			Medications:       []domain.Recommendation{},
			ExtractedEntities: []string{},
			RelatedConcepts:   []string{},
			Disclaimer:        unavailableDisclaimer,
			Timestamp:         time.Now().Format(time.RFC3339),
		}
	}

	if note != "" {
		s.logger.Debug("Ignoring free-text note", zap.Int("len", len(note)))
	}

	entities := s.extractEntities(symptoms)
	concepts := s.relatedConcepts(entities)
	meds := s.scoreDrugs(symptoms)

	return domain.RecommendationResult{
		Medications:       meds,
		ExtractedEntities: entities,
		RelatedConcepts:   concepts,
		TotalFound:        len(meds),
		Disclaimer:        domain.RecommendationDisclaimer,
		Timestamp:         time.Now().Format(time.RFC3339),
	}
}

// extractEntities returns the known entities whose lowercased name
// occurs as a substring of the joined symptom text, first occurrence
// order, no duplicates.
func (s *Service) extractEntities(symptoms []string) []string {
	found := []string{}
	if len(s.entities) == 0 {
		return found
	}

	text := strings.ToLower(strings.Join(symptoms, " "))
	seen := make(map[string]struct{})
	for _, e := range s.entities {
		name := strings.ToLower(e.Entity)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		if strings.Contains(text, name) {
			seen[name] = struct{}{}
			found = append(found, name)
		}
	}
	return found
}

// relatedConcepts expands entities one hop through the knowledge
// graph. Each entity is matched against every node by substring (node
// ID or any attribute value, lowercased); up to neighborsPerNode
// neighbors are taken per matching node, capped at maxRelatedConcepts
// overall, duplicates removed in first-occurrence order.
func (s *Service) relatedConcepts(entities []string) []string {
	concepts := []string{}
	if s.graph == nil {
		return concepts
	}

	seen := make(map[string]struct{})
	for _, entity := range entities {
		for _, node := range s.graph.Nodes() {
			if !nodeMatches(node, entity) {
				continue
			}
			neighbors := s.graph.Neighbors(node.ID)
			if len(neighbors) > neighborsPerNode {
				neighbors = neighbors[:neighborsPerNode]
			}
			for _, n := range neighbors {
				if _, dup := seen[n]; dup {
					continue
				}
				seen[n] = struct{}{}
				concepts = append(concepts, n)
				if len(concepts) == maxRelatedConcepts {
					return concepts
				}
			}
		}
	}
	return concepts
}

func nodeMatches(n domain.Node, entity string) bool {
	if strings.Contains(strings.ToLower(n.ID), entity) {
		return true
	}
	for _, v := range n.Attrs {
		if strings.Contains(strings.ToLower(v), entity) {
			return true
		}
	}
	return false
}

// scoreDrugs matches each symptom as a substring of the drug's
// indication or name. The score is the fraction of symptoms that
// matched; ties keep table order.
func (s *Service) scoreDrugs(symptoms []string) []domain.Recommendation {
	if len(symptoms) == 0 {
		return []domain.Recommendation{}
	}

	var matches []domain.Recommendation
	for _, d := range s.drugs {
		count := 0
		for _, sym := range symptoms {
			sym = strings.ToLower(strings.TrimSpace(sym))
			if strings.Contains(d.Indication, sym) || strings.Contains(d.Name, sym) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		matches = append(matches, domain.Recommendation{
			DrugName:    d.Name,
			Indication:  d.Indication,
			SideEffects: d.SideEffects,
			Score:       float64(count) / float64(len(symptoms)),
			Dosage:      d.Dosage,
			Route:       d.Route,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > s.topK {
		matches = matches[:s.topK]
	}

	for i := range matches {
		matches[i].Warnings = domain.RecommendationWarnings()
		matches[i].Confidence = domain.ConfidenceBucket(matches[i].Score)
	}
	if matches == nil {
		matches = []domain.Recommendation{}
	}
	return matches
}
