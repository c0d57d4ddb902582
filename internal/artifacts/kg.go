package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
)

// Entity is one row of the NER entity table.
type Entity struct {
	Entity string
	Label  string
}

// SparseMatrix is a CSR sparse term matrix. Loaded for completeness;
// the pipelines do not consume it.
type SparseMatrix struct {
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	Indptr  []int32   `json:"indptr"`
	Indices []int32   `json:"indices"`
	Data    []float64 `json:"data"`
}

// KGArtifacts holds the knowledge-graph and recommendation artifacts.
// Each field is nil when its file could not be loaded.
type KGArtifacts struct {
	Graph         *domain.Graph
	Entities      []Entity
	ClusterLabels []int32
	TermMatrix    *SparseMatrix
}

// LoadKG loads the knowledge graph, NER entity table, cluster labels,
// and sparse term matrix from dir, best-effort.
func LoadKG(dir string, logger *zap.Logger) *KGArtifacts {
	a := &KGArtifacts{}

	g, err := loadGraphML(filepath.Join(dir, "medical_kg.graphml"))
	if err != nil {
		logger.Warn("Knowledge graph unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.Graph = g
	}

	ents, err := loadEntities(filepath.Join(dir, "ner_entities.csv"))
	if err != nil {
		logger.Warn("NER entities unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.Entities = ents
	}

	labels, err := loadClusterLabels(filepath.Join(dir, "kmeans_labels.bin"))
	if err != nil {
		logger.Warn("Cluster labels unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.ClusterLabels = labels
	}

	tm, err := loadTermMatrix(filepath.Join(dir, "tfidf_matrix.json"))
	if err != nil {
		logger.Warn("Term matrix unavailable", zap.String("dir", dir), zap.Error(err))
	} else {
		a.TermMatrix = tm
	}

	return a
}

func loadClusterLabels(path string) ([]int32, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	labels, err := bytesToInt32s(raw)
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func loadTermMatrix(path string) (*SparseMatrix, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read term matrix: %w", err)
	}
	var m SparseMatrix
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse term matrix: %w", err)
	}
	if len(m.Indices) != len(m.Data) {
		return nil, fmt.Errorf("term matrix indices/data length mismatch: %d vs %d", len(m.Indices), len(m.Data))
	}
	return &m, nil
}
