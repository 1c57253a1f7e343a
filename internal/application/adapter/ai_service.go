package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategorySuggestionRequest describes an expense to be classified.
type CategorySuggestionRequest struct {
	Description string
	Amount      string
	Categories  []entity.CategoryInfo
}

// CategorySuggestion is the provider's answer. Category may be outside the
// closed set and must be validated by the caller.
type CategorySuggestion struct {
	Category   string
	Confidence float64
	Reasoning  string
}

// CategorySuggester defines the interface for AI category suggestions.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, request *CategorySuggestionRequest) (*CategorySuggestion, error)

	// IsAvailable checks if the AI service is available and properly configured.
	IsAvailable() bool
}
