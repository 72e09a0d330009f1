package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/personacore/sentinel/pkg/infra/oracle"
)

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (*oracle.Classification, error) {
	args := m.Called(ctx, text)
	result, ok := args.Get(0).(*oracle.Classification)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *oracle.Classification, got %T", args.Get(0))
	}
	return result, args.Error(1)
}

type MockComplianceAnalyzer struct {
	mock.Mock
}

func (m *MockComplianceAnalyzer) AnalyzeCompliance(ctx context.Context, text, contentType string) (*oracle.ComplianceReport, error) {
	args := m.Called(ctx, text, contentType)
	result, ok := args.Get(0).(*oracle.ComplianceReport)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *oracle.ComplianceReport, got %T", args.Get(0))
	}
	return result, args.Error(1)
}
