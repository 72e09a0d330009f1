package oracle

import (
	"context"

	"github.com/personacore/sentinel/pkg/domain"
)

// Classification is the content-classification oracle's verdict for one
// piece of text.
type Classification struct {
	Score      float64  `json:"score"`
	Categories []string `json:"categories"`
}

// ComplianceReport is the compliance analyzer's verdict.
type ComplianceReport struct {
	AgeRating       domain.AgeRating `json:"age_rating"`
	ComplianceFlags []string         `json:"compliance_flags"`
	Language        string           `json:"language"`
	Summary         string           `json:"summary"`
}

// Classifier is the external content-classification capability. When the
// oracle is not configured, the fallback implementation is wired instead;
// call sites never nil-check.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// ComplianceAnalyzer is the external compliance/age-rating capability,
// with the same fail-open contract as Classifier.
type ComplianceAnalyzer interface {
	AnalyzeCompliance(ctx context.Context, text, contentType string) (*ComplianceReport, error)
}

// NeutralClassification is the fail-open default used whenever the
// classification oracle is absent or errors.
func NeutralClassification() *Classification {
	return &Classification{Score: 0.1, Categories: []string{}}
}
