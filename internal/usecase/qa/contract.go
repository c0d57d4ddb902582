package qa

import "github.com/medassist-ai/medassist/internal/index"

// Retriever returns the positions of the nearest corpus vectors, best
// first, in the index's native ordering.
type Retriever interface {
	Search(query []float32, topK int) []index.Result
}
