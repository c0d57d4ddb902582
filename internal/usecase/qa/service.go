// Package qa implements the question-answering pipeline: encode the
// question, retrieve the nearest passages, and ask the hosted
// generative model for an educational answer. Every failure degrades
// to an apologetic answer; nothing propagates to the caller.
package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
	"github.com/medassist-ai/medassist/internal/metrics"
)

const (
	retrieveTopK        = 5
	contextPassages     = 3
	generatedConfidence = 0.85
)

const (
	unavailableAnswer = "The Medical Q&A service is currently unavailable. Please try again later."
	noProviderAnswer  = "I apologize, but the AI service is not available at the moment. " +
		"Please check the configuration."
	generationFailedAnswer = "I apologize, but I encountered an error while processing your question. " +
		"Please try again or consult a healthcare professional."
)

const promptTemplate = `
You are a knowledgeable medical AI assistant. Based on the provided medical context, please answer the following question accurately and educationally.

IMPORTANT DISCLAIMERS:
- This is for educational purposes only
- Always recommend consulting healthcare professionals
- Do not provide specific medical diagnoses
- Focus on general medical knowledge and information

Context:
%s

Question: %s

Please provide a comprehensive, educational answer that includes:
1. Direct answer to the question
2. Relevant medical background information
3. Important considerations or warnings
4. Recommendation to consult healthcare professionals

Answer:`

// Service is the QA pipeline. embed, idx, and gen may each be nil; a
// missing encoder or index makes the pipeline not Ready, a missing
// generator degrades answers to a retrieval-only stub.
type Service struct {
	embed  domain.Embedder
	idx    Retriever
	docs   []string
	gen    domain.Generator
	logger *zap.Logger
}

// New creates the QA pipeline.
func New(embed domain.Embedder, idx Retriever, docs []string, gen domain.Generator, logger *zap.Logger) *Service {
	return &Service{embed: embed, idx: idx, docs: docs, gen: gen, logger: logger}
}

// Ready reports whether the encoder and retrieval artifacts are loaded.
func (s *Service) Ready() bool {
	return s.embed != nil && s.idx != nil && len(s.docs) > 0
}

// Answer processes a medical question. It never returns an error: any
// failure is absorbed into an apologetic Answer.
func (s *Service) Answer(ctx context.Context, question string) (ans domain.Answer) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("QA pipeline panic", zap.Any("panic", r), zap.Stack("stacktrace"))
			ans = domain.Answer{
				Error:      fmt.Sprintf("%v", r),
				Answer:     generationFailedAnswer + domain.AnswerDisclaimer,
				Confidence: 0,
				Sources:    []string{},
			}
		}
		status := "ok"
		if ans.Error != "" {
			status = "degraded"
		}
		metrics.PipelineRequestsTotal.WithLabelValues("qa", status).Inc()
		metrics.PipelineRequestDuration.WithLabelValues("qa").Observe(time.Since(start).Seconds())
	}()

	if !s.Ready() {
		return domain.Answer{
			Error:      "QA model not available",
			Answer:     unavailableAnswer,
			Confidence: 0,
			Sources:    []string{},
		}
	}

	passages := s.retrieveContext(ctx, question)
	ans = s.generate(ctx, question, passages)
	ans.Answer += domain.AnswerDisclaimer
	return ans
}

// retrieveContext encodes the question and fetches the nearest
// passages. Retrieval failures produce an empty context, not an error:
// the generative step still runs.
func (s *Service) retrieveContext(ctx context.Context, question string) []string {
	res, err := s.embed.Embed(ctx, question)
	if err != nil {
		s.logger.Warn("Failed to encode question", zap.Error(err))
		return nil
	}

	hits := s.idx.Search(res.Embedding, retrieveTopK)

	var passages []string
	for _, h := range hits {
		if h.ID >= 0 && h.ID < len(s.docs) {
			passages = append(passages, s.docs[h.ID])
		}
	}
	return passages
}

func (s *Service) generate(ctx context.Context, question string, passages []string) domain.Answer {
	sources := passages
	if len(sources) > contextPassages {
		sources = sources[:contextPassages]
	}
	if sources == nil {
		sources = []string{}
	}

	if s.gen == nil {
		return domain.Answer{
			Answer:     noProviderAnswer,
			Confidence: 0,
			Sources:    sources,
		}
	}

	contextText := "No relevant context found."
	if len(sources) > 0 {
		contextText = strings.Join(sources, "\n\n")
	}

	text, err := s.gen.Complete(ctx, fmt.Sprintf(promptTemplate, contextText, question))
	if err != nil {
		s.logger.Error("Failed to generate answer", zap.Error(err))
		return domain.Answer{
			Answer:     generationFailedAnswer,
			Confidence: 0,
			Sources:    sources,
		}
	}

	return domain.Answer{
		Answer:     text,
		Confidence: generatedConfidence,
		Sources:    sources,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}
