package expense

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestSuggestCategoryUseCase(t *testing.T) {
	tests := []struct {
		name             string
		suggested        string
		expectedCategory entity.Category
	}{
		{name: "known category", suggested: "transport", expectedCategory: entity.CategoryTransport},
		{name: "case insensitive", suggested: " Bills ", expectedCategory: entity.CategoryBills},
		{name: "unknown falls back to other", suggested: "groceries", expectedCategory: entity.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggester := &fakeSuggester{
				available:  true,
				suggestion: &adapter.CategorySuggestion{Category: tt.suggested, Confidence: 0.8},
			}
			amount := decimal.RequireFromString("12.5")

			output, err := NewSuggestCategoryUseCase(suggester).Execute(context.Background(), SuggestCategoryInput{
				Description: "Uber ride home",
				Amount:      &amount,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Category != tt.expectedCategory {
				t.Errorf("expected %s, got %s", tt.expectedCategory, output.Category)
			}
			if suggester.lastReq.Amount != "12.50" {
				t.Errorf("expected amount 12.50, got %s", suggester.lastReq.Amount)
			}
			if len(suggester.lastReq.Categories) != len(entity.AllCategories()) {
				t.Errorf("expected full category catalog, got %d", len(suggester.lastReq.Categories))
			}
		})
	}
}

func TestSuggestCategoryUseCase_Errors(t *testing.T) {
	tests := []struct {
		name         string
		suggester    adapter.CategorySuggester
		description  string
		expectedCode domainerror.AIErrorCode
	}{
		{
			name:         "empty description",
			suggester:    &fakeSuggester{available: true},
			description:  "  ",
			expectedCode: domainerror.ErrCodeEmptyDescription,
		},
		{
			name:         "no suggester configured",
			suggester:    nil,
			description:  "Coffee",
			expectedCode: domainerror.ErrCodeAIServiceUnavailable,
		},
		{
			name:         "suggester unavailable",
			suggester:    &fakeSuggester{available: false},
			description:  "Coffee",
			expectedCode: domainerror.ErrCodeAIServiceUnavailable,
		},
		{
			name:         "provider rate limited",
			suggester:    &fakeSuggester{available: true, err: errors.New("googleapi: Error 429: Resource exhausted")},
			description:  "Coffee",
			expectedCode: domainerror.ErrCodeAIRateLimited,
		},
		{
			name:         "provider timeout",
			suggester:    &fakeSuggester{available: true, err: context.DeadlineExceeded},
			description:  "Coffee",
			expectedCode: domainerror.ErrCodeAITimeout,
		},
		{
			name:         "provider failure",
			suggester:    &fakeSuggester{available: true, err: errors.New("invalid response")},
			description:  "Coffee",
			expectedCode: domainerror.ErrCodeAIProviderFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSuggestCategoryUseCase(tt.suggester).Execute(context.Background(), SuggestCategoryInput{Description: tt.description})
			var aiErr *domainerror.AIError
			if !errors.As(err, &aiErr) {
				t.Fatalf("expected AIError, got %v", err)
			}
			if aiErr.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, aiErr.Code)
			}
		})
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode domainerror.AIErrorCode
		sentinel     error
	}{
		{name: "context canceled", err: context.Canceled, expectedCode: domainerror.ErrCodeAITimeout, sentinel: context.Canceled},
		{name: "quota", err: errors.New("quota exceeded"), expectedCode: domainerror.ErrCodeAIRateLimited, sentinel: domainerror.ErrAIRateLimited},
		{name: "dial error", err: errors.New("dial tcp: connection refused"), expectedCode: domainerror.ErrCodeAIServiceUnavailable, sentinel: domainerror.ErrAIServiceUnavailable},
		{name: "unknown", err: errors.New("something odd"), expectedCode: domainerror.ErrCodeAIProviderFailure, sentinel: domainerror.ErrAIProviderFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := classifyError(tt.err)
			if classified.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, classified.Code)
			}
			if !errors.Is(classified, tt.sentinel) {
				t.Errorf("expected error to wrap %v", tt.sentinel)
			}
		})
	}
}
