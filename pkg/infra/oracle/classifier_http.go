package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/infra/httpx"
)

// ClassifierConfig configures the HTTP content-classification adapter.
type ClassifierConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type httpClassifier struct {
	client  httpx.Client
	breaker httpx.CircuitBreaker
	logger  *logrus.Logger
	config  ClassifierConfig
}

type classifyRequest struct {
	Input []classifyInput `json:"input"`
	Model string          `json:"model,omitempty"`
}

type classifyInput struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type classifyResponse struct {
	Results []struct {
		Flagged        bool               `json:"flagged"`
		Categories     map[string]bool    `json:"categories"`
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

// NewHTTPClassifier builds the real classification adapter. The breaker
// trips after repeated failures so outages degrade to the fallback path
// instead of stacking timeouts.
func NewHTTPClassifier(
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	config ClassifierConfig,
) Classifier {
	if client == nil {
		client = &http.Client{}
	}
	return &httpClassifier{
		client:  client,
		breaker: breaker,
		logger:  logger,
		config:  config,
	}
}

func (c *httpClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	payload, err := json.Marshal(classifyRequest{
		Input: []classifyInput{{Type: "text", Text: text}},
		Model: c.config.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classification request: %w", err)
	}

	var body []byte
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewBuffer(payload))
		if err != nil {
			return fmt.Errorf("failed to create classification request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to send classification request: %w", err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read classification response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("classification oracle returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var decoded classifyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classification response: %w", err)
	}

	result := &Classification{Categories: []string{}}
	for _, r := range decoded.Results {
		for category, flagged := range r.Categories {
			if flagged {
				result.Categories = append(result.Categories, category)
			}
		}
		for _, score := range r.CategoryScores {
			if score > result.Score {
				result.Score = score
			}
		}
	}
	return result, nil
}
