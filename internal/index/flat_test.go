package index

import "testing"

func TestNewFlat_InvalidDim(t *testing.T) {
	if _, err := NewFlat(0); err == nil {
		t.Fatal("expected error for zero dimension")
	}
}

func TestAdd_DimMismatch(t *testing.T) {
	f, err := NewFlat(3)
	if err != nil {
		t.Fatalf("NewFlat: %v", err)
	}
	if err := f.Add([]float32{1, 2}); err == nil {
		t.Fatal("expected error for dimension mismatch")
	}
}

func TestSearch_OrderedByScore(t *testing.T) {
	f, _ := NewFlat(2)
	vecs := [][]float32{
		{1, 0},  // identical direction to query
		{0, 1},  // orthogonal
		{1, 1},  // in between
		{-1, 0}, // opposite
	}
	for _, v := range vecs {
		if err := f.Add(v); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	results := f.Search([]float32{1, 0}, 4)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	wantOrder := []int{0, 2, 1, 3}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("position %d: expected id %d, got %d", i, want, results[i].ID)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestSearch_TopKTruncation(t *testing.T) {
	f, _ := NewFlat(2)
	for i := 0; i < 10; i++ {
		_ = f.Add([]float32{float32(i + 1), 1})
	}

	results := f.Search([]float32{1, 0}, 5)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
}

func TestSearch_ShortCorpus(t *testing.T) {
	f, _ := NewFlat(2)
	_ = f.Add([]float32{1, 0})

	results := f.Search([]float32{1, 0}, 5)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != 0 {
		t.Errorf("expected id 0, got %d", results[0].ID)
	}
}

func TestSearch_BadQuery(t *testing.T) {
	f, _ := NewFlat(3)
	_ = f.Add([]float32{1, 0, 0})

	if got := f.Search([]float32{1, 0}, 5); got != nil {
		t.Errorf("expected nil for mismatched query, got %v", got)
	}
	if got := f.Search([]float32{1, 0, 0}, 0); got != nil {
		t.Errorf("expected nil for topK=0, got %v", got)
	}
}

func TestSearch_ZeroVector(t *testing.T) {
	f, _ := NewFlat(2)
	_ = f.Add([]float32{0, 0})
	_ = f.Add([]float32{1, 0})

	results := f.Search([]float32{1, 0}, 2)
	if results[0].ID != 1 {
		t.Errorf("expected non-zero vector first, got id %d", results[0].ID)
	}
	if results[1].Score != 0 {
		t.Errorf("expected zero score for zero vector, got %f", results[1].Score)
	}
}
