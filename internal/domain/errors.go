package domain

import "errors"

var (
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a generative model provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrModelNotLoaded signals that a pipeline's backing artifacts are unavailable.
	ErrModelNotLoaded = errors.New("model not loaded")
)
