package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/infra/httpx"
)

type ComplianceConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type httpComplianceAnalyzer struct {
	client  httpx.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	config  ComplianceConfig
}

type complianceRequest struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type"`
}

type complianceResponse struct {
	AgeRating       string   `json:"age_rating"`
	ComplianceFlags []string `json:"compliance_flags"`
	Language        string   `json:"language"`
	Summary         string   `json:"summary"`
}

func NewHTTPComplianceAnalyzer(
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	config ComplianceConfig,
) ComplianceAnalyzer {
	if client == nil {
		client = &http.Client{}
	}
	return &httpComplianceAnalyzer{
		client:  client,
		breaker: breaker,
		logger:  logger,
		config:  config,
	}
}

func (c *httpComplianceAnalyzer) AnalyzeCompliance(ctx context.Context, text, contentType string) (*ComplianceReport, error) {
	payload, err := json.Marshal(complianceRequest{Text: text, ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compliance request: %w", err)
	}

	var body []byte
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewBuffer(payload))
		if err != nil {
			return fmt.Errorf("failed to create compliance request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send compliance request: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read compliance response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("compliance analyzer returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var decoded complianceResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal compliance response: %w", err)
	}

	rating := domain.AgeRating(decoded.AgeRating)
	switch rating {
	case domain.AgeRatingAllAges, domain.AgeRatingTeen, domain.AgeRatingMature, domain.AgeRatingAdultsOnly:
	default:
		rating = domain.AgeRatingAllAges
	}

	return &ComplianceReport{
		AgeRating:       rating,
		ComplianceFlags: decoded.ComplianceFlags,
		Language:        decoded.Language,
		Summary:         decoded.Summary,
	}, nil
}
