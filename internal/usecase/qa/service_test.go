package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
	"github.com/medassist-ai/medassist/internal/index"
)

// --- Mocks ---

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockRetriever struct {
	hits []index.Result
}

func (m *mockRetriever) Search(_ []float32, _ int) []index.Result {
	return m.hits
}

type mockGenerator struct {
	text   string
	err    error
	prompt string
}

func (m *mockGenerator) Complete(_ context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func testDocs() []string {
	return []string{
		"Q: What is fever? A: An elevated body temperature.",
		"Q: What causes headaches? A: Many things, including tension.",
		"Q: What is aspirin? A: A common analgesic.",
		"Q: What is hypertension? A: High blood pressure.",
		"Q: What is diabetes? A: A metabolic disorder.",
		"Q: What is asthma? A: A chronic airway condition.",
	}
}

func newTestService(emb domain.Embedder, ret Retriever, docs []string, gen domain.Generator) *Service {
	return New(emb, ret, docs, gen, zap.NewNop())
}

// --- Tests ---

func TestAnswer_Success(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1, 0}}
	ret := &mockRetriever{hits: []index.Result{
		{ID: 0, Score: 0.9}, {ID: 1, Score: 0.8}, {ID: 2, Score: 0.7},
		{ID: 3, Score: 0.6}, {ID: 4, Score: 0.5},
	}}
	gen := &mockGenerator{text: "Fever is an elevated body temperature."}
	svc := newTestService(emb, ret, testDocs(), gen)

	ans := svc.Answer(context.Background(), "What is fever?")

	if ans.Error != "" {
		t.Fatalf("unexpected error field: %q", ans.Error)
	}
	if ans.Confidence != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", ans.Confidence)
	}
	if len(ans.Sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(ans.Sources))
	}
	if ans.Sources[0] != testDocs()[0] {
		t.Errorf("expected best-first sources, got %q", ans.Sources[0])
	}
	if !strings.HasPrefix(ans.Answer, gen.text) {
		t.Errorf("expected generated text first, got %q", ans.Answer)
	}
	if !strings.Contains(ans.Answer, "Medical Disclaimer") {
		t.Errorf("expected disclaimer appended, got %q", ans.Answer)
	}
	if ans.Timestamp == "" {
		t.Error("expected timestamp on success")
	}
}

func TestAnswer_PromptCarriesContextAndQuestion(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1, 0}}
	ret := &mockRetriever{hits: []index.Result{{ID: 2, Score: 0.9}}}
	gen := &mockGenerator{text: "ok"}
	svc := newTestService(emb, ret, testDocs(), gen)

	svc.Answer(context.Background(), "What is aspirin?")

	if !strings.Contains(gen.prompt, testDocs()[2]) {
		t.Errorf("expected retrieved passage in prompt:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "Question: What is aspirin?") {
		t.Errorf("expected question in prompt:\n%s", gen.prompt)
	}
}

func TestAnswer_NotReady(t *testing.T) {
	svc := newTestService(nil, nil, nil, &mockGenerator{text: "ok"})

	ans := svc.Answer(context.Background(), "anything")

	if ans.Error != "QA model not available" {
		t.Errorf("unexpected error field: %q", ans.Error)
	}
	if !strings.Contains(ans.Answer, "currently unavailable") {
		t.Errorf("expected unavailability notice, got %q", ans.Answer)
	}
	if ans.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", ans.Confidence)
	}
	if ans.Sources == nil || len(ans.Sources) != 0 {
		t.Errorf("expected empty non-nil sources, got %v", ans.Sources)
	}
}

func TestAnswer_NoGenerator(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1, 0}}
	ret := &mockRetriever{hits: []index.Result{{ID: 0, Score: 0.9}, {ID: 1, Score: 0.8}}}
	svc := newTestService(emb, ret, testDocs(), nil)

	ans := svc.Answer(context.Background(), "What is fever?")

	if ans.Error != "" {
		t.Fatalf("degraded answer must not carry an error field, got %q", ans.Error)
	}
	if ans.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", ans.Confidence)
	}
	if len(ans.Sources) != 2 {
		t.Errorf("expected retrieved sources to survive, got %v", ans.Sources)
	}
	if !strings.Contains(ans.Answer, "AI service is not available") {
		t.Errorf("unexpected answer: %q", ans.Answer)
	}
	if !strings.Contains(ans.Answer, "Medical Disclaimer") {
		t.Error("expected disclaimer on degraded answer too")
	}
	if ans.Timestamp != "" {
		t.Error("degraded answer must not carry a timestamp")
	}
}

func TestAnswer_GeneratorError(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1, 0}}
	ret := &mockRetriever{hits: []index.Result{{ID: 0, Score: 0.9}}}
	gen := &mockGenerator{err: errors.New("rate limited")}
	svc := newTestService(emb, ret, testDocs(), gen)

	ans := svc.Answer(context.Background(), "What is fever?")

	if ans.Confidence != 0 {
		t.Errorf("expected confidence 0, got %v", ans.Confidence)
	}
	if !strings.Contains(ans.Answer, "I encountered an error") {
		t.Errorf("unexpected answer: %q", ans.Answer)
	}
	if len(ans.Sources) != 1 {
		t.Errorf("expected sources to survive generation failure, got %v", ans.Sources)
	}
}

func TestAnswer_EmbedErrorStillGenerates(t *testing.T) {
	emb := &mockEmbedder{err: errors.New("provider down")}
	gen := &mockGenerator{text: "general answer"}
	svc := newTestService(emb, &mockRetriever{}, testDocs(), gen)

	ans := svc.Answer(context.Background(), "What is fever?")

	if ans.Confidence != 0.85 {
		t.Errorf("retrieval failure must not block generation, got confidence %v", ans.Confidence)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("expected no sources, got %v", ans.Sources)
	}
	if !strings.Contains(gen.prompt, "No relevant context found.") {
		t.Errorf("expected empty-context placeholder in prompt:\n%s", gen.prompt)
	}
}

func TestAnswer_SkipsOutOfRangeHits(t *testing.T) {
	emb := &mockEmbedder{vec: []float32{1, 0}}
	ret := &mockRetriever{hits: []index.Result{{ID: 99, Score: 0.9}, {ID: 1, Score: 0.8}}}
	gen := &mockGenerator{text: "ok"}
	svc := newTestService(emb, ret, testDocs(), gen)

	ans := svc.Answer(context.Background(), "q")

	if len(ans.Sources) != 1 || ans.Sources[0] != testDocs()[1] {
		t.Errorf("expected out-of-range hit dropped, got %v", ans.Sources)
	}
}
