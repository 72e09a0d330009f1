package detector

import (
	"context"
	"strings"
	"time"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/types"
)

const (
	spamMinMessages      = 5
	rapidMessagesPerHour = 10
	duplicateRatioLimit  = 0.5
	linkRatioLimit       = 0.7
	spamSampleSize       = 50
)

type spamDetector struct{}

func NewSpamDetector() Detector {
	return spamDetector{}
}

func (spamDetector) Name() string {
	return "spam"
}

func (spamDetector) Detect(ctx context.Context, in Input) (*types.ThreatIndicator, error) {
	if len(in.Messages) < spamMinMessages {
		return nil, nil
	}

	hourAgo := time.Now().Add(-time.Hour)
	rapidCount := 0
	for _, m := range in.Messages {
		if m.CreatedAt.After(hourAgo) {
			rapidCount++
		}
	}
	rapid := rapidCount > rapidMessagesPerHour

	sample := in.Messages
	if len(sample) > spamSampleSize {
		sample = sample[:spamSampleSize]
	}

	seen := make(map[string]int, len(sample))
	maxDuplicates := 0
	linkCount := 0
	for _, m := range sample {
		normalized := strings.ToLower(strings.TrimSpace(m.Content))
		seen[normalized]++
		if seen[normalized] > maxDuplicates {
			maxDuplicates = seen[normalized]
		}
		if strings.Contains(normalized, "http://") || strings.Contains(normalized, "https://") {
			linkCount++
		}
	}
	duplicateRatio := float64(maxDuplicates) / float64(len(sample))
	linkRatio := float64(linkCount) / float64(len(sample))

	repetitive := duplicateRatio > duplicateRatioLimit
	linkSpam := linkRatio > linkRatioLimit

	if !rapid && !repetitive && !linkSpam {
		return nil, nil
	}

	severity := domain.SeverityMedium
	if rapid && repetitive {
		severity = domain.SeverityHigh
	}

	reasons := make([]string, 0, 3)
	if rapid {
		reasons = append(reasons, "rapid_messaging")
	}
	if repetitive {
		reasons = append(reasons, "repetitive_content")
	}
	if linkSpam {
		reasons = append(reasons, "link_spam")
	}

	return &types.ThreatIndicator{
		Type:       domain.IndicatorSpamPattern,
		Severity:   severity,
		Confidence: 0.8,
		Evidence: map[string]interface{}{
			"message_count":   len(in.Messages),
			"rapid_count":     rapidCount,
			"duplicate_ratio": duplicateRatio,
			"link_ratio":      linkRatio,
			"reasons":         reasons,
		},
	}, nil
}
