// Package index provides an exact nearest-neighbor index over
// fixed-length vectors. Search is a full linear scan by cosine
// similarity; the corpus is loaded once and never mutated, so no
// locking is needed.
package index

import (
	"fmt"
	"math"
	"sort"
)

// Result is one search hit: the corpus position and its similarity.
type Result struct {
	ID    int
	Score float64
}

// Flat is an in-memory exact index.
type Flat struct {
	dim  int
	vecs [][]float32
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	return &Flat{dim: dim}, nil
}

// Add appends a vector to the index.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vec), f.dim)
	}
	f.vecs = append(f.vecs, vec)
	return nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vecs) }

// Dimensions returns the vector dimension.
func (f *Flat) Dimensions() int { return f.dim }

// Search returns the topK most similar vectors, best first.
// Ties keep corpus order; a short corpus returns fewer results.
func (f *Flat) Search(query []float32, topK int) []Result {
	if len(query) != f.dim || topK <= 0 {
		return nil
	}

	results := make([]Result, 0, len(f.vecs))
	for i, v := range f.vecs {
		results = append(results, Result{ID: i, Score: cosineSimilarity(query, v)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
