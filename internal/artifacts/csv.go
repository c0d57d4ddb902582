package artifacts

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/medassist-ai/medassist/internal/domain"
)

// LoadDrugs loads the drug side-effects table, best-effort.
// Drug names are trimmed and lowercased, indications lowercased, and
// missing dosage/route filled with their advisory defaults, matching
// the cleanup the scoring step expects.
func LoadDrugs(path string, logger *zap.Logger) []domain.DrugRecord {
	records, err := loadDrugsCSV(path)
	if err != nil {
		logger.Warn("Drug table unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return records
}

func loadDrugsCSV(path string) ([]domain.DrugRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open drug table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := columnIndex(header)

	var records []domain.DrugRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec := domain.DrugRecord{
			Name:        strings.ToLower(strings.TrimSpace(field(row, cols, "drug_name"))),
			Indication:  strings.ToLower(field(row, cols, "indication")),
			SideEffects: field(row, cols, "side_effects"),
			Dosage:      field(row, cols, "dosage"),
			Route:       field(row, cols, "route"),
		}
		if rec.Dosage == "" {
			rec.Dosage = "Consult physician"
		}
		if rec.Route == "" {
			rec.Route = "As prescribed"
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []domain.DrugRecord{}
	}
	return records, nil
}

func loadEntities(path string) ([]Entity, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open entity table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := columnIndex(header)

	var entities []Entity
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		entities = append(entities, Entity{
			Entity: field(row, cols, "entity"),
			Label:  field(row, cols, "label"),
		})
	}
	if entities == nil {
		entities = []Entity{}
	}
	return entities, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
