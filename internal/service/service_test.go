package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
	"github.com/medassist-ai/medassist/internal/usecase/health"
	"github.com/medassist-ai/medassist/internal/usecase/qa"
	"github.com/medassist-ai/medassist/internal/usecase/recommend"
)

func newTestFacade() *Service {
	logger := zap.NewNop()
	qaSvc := qa.New(nil, nil, nil, nil, logger)
	recSvc := recommend.New(nil, nil, []domain.DrugRecord{
		{Name: "paracetamol", Indication: "fever relief"},
	}, logger)
	healthSvc := health.New(qaSvc, recSvc, nil, "test", logger)
	return New(qaSvc, recSvc, healthSvc, logger)
}

func TestAnswer_ThroughPool(t *testing.T) {
	svc := newTestFacade()
	defer svc.Shutdown()

	ans := svc.Answer(context.Background(), "what is fever")

	// QA artifacts are absent, so the stub response comes back.
	if !strings.Contains(ans.Answer, "currently unavailable") {
		t.Errorf("unexpected answer: %q", ans.Answer)
	}
}

func TestRecommend_ThroughPool(t *testing.T) {
	svc := newTestFacade()
	defer svc.Shutdown()

	res := svc.Recommend(context.Background(), []string{"fever"}, "")

	if len(res.Medications) != 1 || res.Medications[0].DrugName != "paracetamol" {
		t.Errorf("unexpected medications: %v", res.Medications)
	}
}

func TestRecommend_ConcurrentCallers(t *testing.T) {
	svc := newTestFacade()
	defer svc.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := svc.Recommend(context.Background(), []string{"fever"}, "")
			if res.TotalFound != 1 {
				t.Errorf("expected 1 match, got %d", res.TotalFound)
			}
		}()
	}
	wg.Wait()
}

func TestHealth_BypassesPool(t *testing.T) {
	svc := newTestFacade()
	defer svc.Shutdown()

	report := svc.Health(context.Background())

	if report.ServiceStatus != health.StatusPartial {
		t.Errorf("expected partial (qa not loaded), got %q", report.ServiceStatus)
	}
	if report.RecommendationModel != "loaded" {
		t.Errorf("expected recommendation loaded, got %q", report.RecommendationModel)
	}
}

func TestShutdown_Idempotent(t *testing.T) {
	svc := newTestFacade()
	svc.Shutdown()
	svc.Shutdown()
}

func TestCallsAfterShutdownStillServe(t *testing.T) {
	svc := newTestFacade()
	svc.Shutdown()

	res := svc.Recommend(context.Background(), []string{"fever"}, "")
	if res.TotalFound != 1 {
		t.Errorf("expected inline execution after shutdown, got %d", res.TotalFound)
	}
}
