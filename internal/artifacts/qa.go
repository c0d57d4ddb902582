package artifacts

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/index"
)

// QAArtifacts holds the question-answering retrieval artifacts.
// Index is nil when the vector index could not be loaded; Documents is
// nil when the encoded passages are missing.
type QAArtifacts struct {
	Index     *index.Flat
	Documents []string
}

type qaMeta struct {
	Dimensions int `json:"dimensions"`
	Count      int `json:"count"`
}

// LoadQA loads the vector index (meta.json + vectors.bin) and the
// encoded passages (documents.jsonl) from dir, best-effort.
func LoadQA(dir string, logger *zap.Logger) *QAArtifacts {
	a := &QAArtifacts{}

	idx, err := loadIndex(dir)
	if err != nil {
		logger.Warn("Vector index unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.Index = idx
	}

	docs, err := loadDocuments(filepath.Join(dir, "documents.jsonl"))
	if err != nil {
		logger.Warn("Encoded documents unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.Documents = docs
	}

	return a
}

func loadIndex(dir string) (*index.Flat, error) {
	metaData, err := os.ReadFile(filepath.Clean(filepath.Join(dir, "meta.json")))
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	var meta qaMeta
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}

	raw, err := os.ReadFile(filepath.Clean(filepath.Join(dir, "vectors.bin")))
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}

	vecs, err := bytesToVectors(raw, meta.Dimensions)
	if err != nil {
		return nil, err
	}
	if meta.Count > 0 && len(vecs) != meta.Count {
		return nil, fmt.Errorf("vector count %d does not match meta count %d", len(vecs), meta.Count)
	}

	idx, err := index.NewFlat(meta.Dimensions)
	if err != nil {
		return nil, err
	}
	for _, v := range vecs {
		if err := idx.Add(v); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func loadDocuments(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open documents: %w", err)
	}
	defer f.Close()

	var docs []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var doc struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &doc); err != nil {
			return nil, fmt.Errorf("parse document line %d: %w", line, err)
		}
		docs = append(docs, doc.Text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan documents: %w", err)
	}
	return docs, nil
}
