// Package service is the facade over the QA and recommendation
// pipelines. Requests are executed by a small fixed pool of workers so
// that slow provider calls from one surface (HTTP, CLI) cannot
// monopolize the process; callers block on a per-request result
// channel.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
	"github.com/medassist-ai/medassist/internal/usecase/health"
	"github.com/medassist-ai/medassist/internal/usecase/qa"
	"github.com/medassist-ai/medassist/internal/usecase/recommend"
)

const poolSize = 2

// Service dispatches pipeline work onto the worker pool. Health checks
// bypass the pool: they must answer even when the workers are busy.
type Service struct {
	qa        *qa.Service
	recommend *recommend.Service
	health    *health.Service
	logger    *zap.Logger

	tasks chan func()
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// New creates the facade and starts the workers.
func New(qaSvc *qa.Service, recSvc *recommend.Service, healthSvc *health.Service, logger *zap.Logger) *Service {
	s := &Service{
		qa:        qaSvc,
		recommend: recSvc,
		health:    healthSvc,
		logger:    logger,
		tasks:     make(chan func()),
		quit:      make(chan struct{}),
	}
	for i := 0; i < poolSize; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		select {
		case task := <-s.tasks:
			task()
		case <-s.quit:
			return
		}
	}
}

// dispatch hands the task to a worker, or runs it on the calling
// goroutine once the pool has been shut down.
func (s *Service) dispatch(task func()) {
	select {
	case s.tasks <- task:
	case <-s.quit:
		task()
	}
}

// Answer runs the QA pipeline on the pool and blocks until it finishes.
func (s *Service) Answer(ctx context.Context, question string) domain.Answer {
	out := make(chan domain.Answer, 1)
	s.dispatch(func() { out <- s.qa.Answer(ctx, question) })
	return <-out
}

// Recommend runs the recommendation pipeline on the pool and blocks
// until it finishes.
func (s *Service) Recommend(ctx context.Context, symptoms []string, note string) domain.RecommendationResult {
	out := make(chan domain.RecommendationResult, 1)
	s.dispatch(func() { out <- s.recommend.Recommend(ctx, symptoms, note) })
	return <-out
}

// Health reports readiness directly, without going through the pool.
func (s *Service) Health(ctx context.Context) health.Report {
	return s.health.Check(ctx)
}

// Shutdown stops the workers and waits for in-flight work to finish.
// Calls arriving afterwards run on the caller's goroutine.
func (s *Service) Shutdown() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
