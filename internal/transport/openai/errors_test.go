package openai

import (
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/medassist-ai/medassist/internal/domain"
)

func TestParseAPIError_RequestErrorWithDetail(t *testing.T) {
	src := &openai.RequestError{
		HTTPStatusCode: 422,
		Body:           []byte(`{"detail":"input too long"}`),
	}
	err := parseAPIError(src, domain.ErrEmbeddingProviderError)

	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Errorf("expected embedding sentinel, got %v", err)
	}
	if got := err.Error(); got != "provider error 422: input too long: embedding provider error" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestParseAPIError_APIError(t *testing.T) {
	src := &openai.APIError{HTTPStatusCode: 429, Message: "rate limit"}
	err := parseAPIError(src, domain.ErrGenerationProviderError)

	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Errorf("expected generation sentinel, got %v", err)
	}
}

func TestParseAPIError_Unknown(t *testing.T) {
	err := parseAPIError(errors.New("dial tcp: refused"), domain.ErrGenerationProviderError)
	if !errors.Is(err, domain.ErrGenerationProviderError) {
		t.Errorf("expected sentinel wrapping, got %v", err)
	}
}

func TestExtractDetail(t *testing.T) {
	if got := extractDetail([]byte(`{"detail":"boom"}`)); got != "boom" {
		t.Errorf("expected detail, got %q", got)
	}
	if got := extractDetail([]byte(`not json`)); got != "" {
		t.Errorf("expected empty for malformed body, got %q", got)
	}
}
