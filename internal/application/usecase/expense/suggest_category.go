package expense

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	Description string
	Amount      *decimal.Decimal
}

// SuggestCategoryOutput represents the output of a category suggestion.
type SuggestCategoryOutput struct {
	Category   entity.Category
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase asks the AI service to classify an expense description.
type SuggestCategoryUseCase struct {
	suggester adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance. suggester may be nil.
func NewSuggestCategoryUseCase(suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		suggester: suggester,
	}
}

// Execute performs the category suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewAIError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, domainerror.NewAIError(
			domainerror.ErrCodeAIServiceUnavailable,
			"category suggestions are not available",
			domainerror.ErrAIServiceUnavailable,
		)
	}

	request := &adapter.CategorySuggestionRequest{
		Description: description,
		Categories:  entity.CategoryCatalog(),
	}
	if input.Amount != nil {
		request.Amount = input.Amount.StringFixed(2)
	}

	suggestion, err := uc.suggester.SuggestCategory(ctx, request)
	if err != nil {
		slog.Warn("Category suggestion failed", "error", err)
		return nil, classifyError(err)
	}

	category, ok := entity.ParseCategory(suggestion.Category)
	if !ok {
		slog.Debug("AI suggested unknown category, falling back",
			"suggested", suggestion.Category,
			"fallback", entity.CategoryOther,
		)
		category = entity.CategoryOther
	}

	return &SuggestCategoryOutput{
		Category:   category,
		Confidence: suggestion.Confidence,
		Reasoning:  suggestion.Reasoning,
	}, nil
}

// classifyError maps a provider error to an AIError code.
func classifyError(err error) *domainerror.AIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domainerror.NewAIError(domainerror.ErrCodeAITimeout, "category suggestion timed out", err)
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "resource exhausted") {
		return domainerror.NewAIError(
			domainerror.ErrCodeAIRateLimited,
			"category suggestion rate limit reached, try again later",
			errors.Join(domainerror.ErrAIRateLimited, err),
		)
	}

	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "dial") || strings.Contains(errStr, "unavailable") ||
		strings.Contains(errStr, "503") {
		return domainerror.NewAIError(
			domainerror.ErrCodeAIServiceUnavailable,
			"category suggestion service is temporarily unavailable",
			errors.Join(domainerror.ErrAIServiceUnavailable, err),
		)
	}

	return domainerror.NewAIError(
		domainerror.ErrCodeAIProviderFailure,
		"category suggestion failed",
		errors.Join(domainerror.ErrAIProviderFailure, err),
	)
}
