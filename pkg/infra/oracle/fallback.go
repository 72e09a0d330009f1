package oracle

import (
	"context"
	"strings"

	"github.com/personacore/sentinel/pkg/domain"
)

// fallbackClassifier stands in when no classification oracle is
// configured. It always returns the neutral default.
type fallbackClassifier struct{}

func NewFallbackClassifier() Classifier {
	return fallbackClassifier{}
}

func (fallbackClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	return NeutralClassification(), nil
}

var (
	adultKeywords     = []string{"explicit", "nsfw", "nude", "sexual", "porn"}
	violenceKeywords  = []string{"kill", "murder", "weapon", "blood", "gore", "assault"}
	profanityKeywords = []string{"damn", "hell", "crap", "bastard"}
)

// keywordComplianceAnalyzer is the deterministic age-rating fallback used
// when the compliance analyzer is absent or failing.
type keywordComplianceAnalyzer struct{}

func NewKeywordComplianceAnalyzer() ComplianceAnalyzer {
	return keywordComplianceAnalyzer{}
}

func (keywordComplianceAnalyzer) AnalyzeCompliance(ctx context.Context, text, contentType string) (*ComplianceReport, error) {
	lowered := strings.ToLower(text)

	report := &ComplianceReport{
		AgeRating:       domain.AgeRatingAllAges,
		ComplianceFlags: []string{},
		Summary:         "keyword-based fallback analysis",
	}

	if containsAny(lowered, adultKeywords) {
		report.AgeRating = domain.AgeRatingAdultsOnly
		report.ComplianceFlags = append(report.ComplianceFlags, "adult_content")
	} else if containsAny(lowered, violenceKeywords) {
		report.AgeRating = domain.AgeRatingMature
		report.ComplianceFlags = append(report.ComplianceFlags, "violence")
	} else if containsAny(lowered, profanityKeywords) {
		report.AgeRating = domain.AgeRatingTeen
		report.ComplianceFlags = append(report.ComplianceFlags, "profanity")
	}

	return report, nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
