package health

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type readiness bool

func (r readiness) Ready() bool { return bool(r) }

type pinger struct{ err error }

func (p pinger) Ping(_ context.Context) error { return p.err }

func TestCheck_Healthy(t *testing.T) {
	svc := New(readiness(true), readiness(true), nil, "1.2.3", zap.NewNop())

	report := svc.Check(context.Background())

	if report.ServiceStatus != StatusHealthy {
		t.Errorf("expected healthy, got %q", report.ServiceStatus)
	}
	if report.QAModel != "loaded" || report.RecommendationModel != "loaded" {
		t.Errorf("unexpected model states: %q / %q", report.QAModel, report.RecommendationModel)
	}
	if report.Cache != "" {
		t.Errorf("expected no cache field without a pinger, got %q", report.Cache)
	}
	if report.Version != "1.2.3" {
		t.Errorf("unexpected version: %q", report.Version)
	}
	if report.Timestamp == "" {
		t.Error("expected timestamp")
	}
}

func TestCheck_Partial(t *testing.T) {
	svc := New(readiness(true), readiness(false), nil, "", zap.NewNop())

	report := svc.Check(context.Background())

	if report.ServiceStatus != StatusPartial {
		t.Errorf("expected partial, got %q", report.ServiceStatus)
	}
	if report.RecommendationModel != "not loaded" {
		t.Errorf("unexpected recommendation state: %q", report.RecommendationModel)
	}
}

func TestCheck_NilPipelineIsNotLoaded(t *testing.T) {
	svc := New(nil, readiness(true), nil, "", zap.NewNop())

	report := svc.Check(context.Background())

	if report.ServiceStatus != StatusPartial {
		t.Errorf("expected partial, got %q", report.ServiceStatus)
	}
	if report.QAModel != "not loaded" {
		t.Errorf("unexpected qa state: %q", report.QAModel)
	}
}

func TestCheck_CacheDoesNotAffectStatus(t *testing.T) {
	svc := New(readiness(true), readiness(true), pinger{err: errors.New("refused")}, "", zap.NewNop())

	report := svc.Check(context.Background())

	if report.ServiceStatus != StatusHealthy {
		t.Errorf("cache failures must not degrade status, got %q", report.ServiceStatus)
	}
	if report.Cache != "error" {
		t.Errorf("expected cache error, got %q", report.Cache)
	}
}

func TestCheck_CacheOK(t *testing.T) {
	svc := New(readiness(true), readiness(true), pinger{}, "", zap.NewNop())

	if report := svc.Check(context.Background()); report.Cache != "ok" {
		t.Errorf("expected cache ok, got %q", report.Cache)
	}
}
