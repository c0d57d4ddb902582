// Package artifacts loads the precomputed retrieval artifacts from
// disk at startup. Every artifact is optional: a missing or malformed
// file logs a warning and leaves the corresponding capability nil, it
// never fails startup. No cross-artifact consistency validation is
// performed.
package artifacts

import (
	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
)

// Store holds everything loaded from disk. Read-only after Load.
type Store struct {
	QA    *QAArtifacts
	KG    *KGArtifacts
	Drugs []domain.DrugRecord
}

// Load reads all artifacts best-effort from the configured paths.
func Load(qaDir, kgDir, drugsCSV string, logger *zap.Logger) *Store {
	s := &Store{
		QA:    LoadQA(qaDir, logger),
		KG:    LoadKG(kgDir, logger),
		Drugs: LoadDrugs(drugsCSV, logger),
	}

	stats := s.Stats()
	fields := make([]zap.Field, 0, len(stats))
	for _, name := range statNames {
		fields = append(fields, zap.Bool(name, stats[name]))
	}
	logger.Info("Artifacts loaded", fields...)
	return s
}

var statNames = []string{
	"vector_index",
	"documents",
	"knowledge_graph",
	"ner_entities",
	"cluster_labels",
	"term_matrix",
	"drug_table",
}

// Stats reports which artifacts loaded, by name.
func (s *Store) Stats() map[string]bool {
	return map[string]bool{
		"vector_index":    s.QA.Index != nil,
		"documents":       s.QA.Documents != nil,
		"knowledge_graph": s.KG.Graph != nil,
		"ner_entities":    s.KG.Entities != nil,
		"cluster_labels":  s.KG.ClusterLabels != nil,
		"term_matrix":     s.KG.TermMatrix != nil,
		"drug_table":      s.Drugs != nil,
	}
}
