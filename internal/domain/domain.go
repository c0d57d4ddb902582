// Package domain holds the value objects shared by the QA and
// recommendation pipelines. Everything here is constructed per request
// or loaded once at startup; nothing is mutated afterwards.
package domain

// Answer is the QA pipeline output.
type Answer struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Timestamp  string   `json:"timestamp,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// DrugRecord is one row of the drug side-effects table.
type DrugRecord struct {
	Name        string
	Indication  string
	SideEffects string
	Dosage      string
	Route       string
}

// Recommendation is a single scored drug candidate.
type Recommendation struct {
	DrugName    string   `json:"drug_name"`
	Indication  string   `json:"indication"`
	SideEffects string   `json:"side_effects"`
	Score       float64  `json:"score"`
	Dosage      string   `json:"dosage"`
	Route       string   `json:"route"`
	Warnings    []string `json:"warnings"`
	Confidence  string   `json:"confidence"`
}

// RecommendationResult is the recommendation pipeline output.
type RecommendationResult struct {
	Medications       []Recommendation `json:"medications"`
	ExtractedEntities []string         `json:"extracted_entities"`
	RelatedConcepts   []string         `json:"related_concepts"`
	TotalFound        int              `json:"total_found"`
	Disclaimer        string           `json:"disclaimer"`
	Timestamp         string           `json:"timestamp"`
	Error             string           `json:"error,omitempty"`
}

// ConfidenceBucket maps an overlap score to a coarse confidence label.
func ConfidenceBucket(score float64) string {
	switch {
	case score >= 0.8:
		return "High"
	case score >= 0.5:
		return "Medium"
	default:
		return "Low"
	}
}
