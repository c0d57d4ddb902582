package domain

import "testing"

func TestConfidenceBucket(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "High"},
		{0.8, "High"},
		{0.79, "Medium"},
		{0.5, "Medium"},
		{0.49, "Low"},
		{0, "Low"},
	}
	for _, c := range cases {
		if got := ConfidenceBucket(c.score); got != c.want {
			t.Errorf("ConfidenceBucket(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestGraph_Neighbors(t *testing.T) {
	g := NewGraph()
	g.AddNode("fever", map[string]string{"label": "Symptom"})
	g.AddNode("paracetamol", map[string]string{"label": "Drug"})
	g.AddEdge("fever", "paracetamol")
	g.AddEdge("fever", "infection")

	if g.Order() != 3 {
		t.Fatalf("expected 3 nodes, got %d", g.Order())
	}

	nbrs := g.Neighbors("fever")
	if len(nbrs) != 2 || nbrs[0] != "paracetamol" || nbrs[1] != "infection" {
		t.Errorf("unexpected neighbors: %v", nbrs)
	}

	// Edge is undirected.
	back := g.Neighbors("paracetamol")
	if len(back) != 1 || back[0] != "fever" {
		t.Errorf("expected reverse neighbor, got %v", back)
	}
}

func TestGraph_AddNodeMergesAttrs(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b") // creates "a" with nil attrs
	g.AddNode("a", map[string]string{"label": "Concept"})

	if g.Order() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.Order())
	}
	if g.Nodes()[0].Attrs["label"] != "Concept" {
		t.Errorf("expected merged attr, got %v", g.Nodes()[0].Attrs)
	}
}
