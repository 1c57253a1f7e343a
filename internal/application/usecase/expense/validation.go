// Package expense contains expense-related use cases.
package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for expense descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for expense notes.
	MaxNotesLength = 1000
)

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			"description is required",
			nil,
		)
	}
	if len(description) > MaxDescriptionLength {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return description, nil
}

func validateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must not be negative",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return nil
}

func validateDate(date time.Time) error {
	if date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"date is required",
			domainerror.ErrInvalidExpenseDate,
		)
	}
	return nil
}

func parseCategory(value string) (entity.Category, error) {
	category, ok := entity.ParseCategory(value)
	if !ok {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category must be one of: %s", categoryNames()),
			domainerror.ErrInvalidCategory,
		)
	}
	return category, nil
}

func parseCurrency(value string) (string, error) {
	currency, ok := entity.NormalizeCurrency(value)
	if !ok {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCurrency,
			"currency must be a three-letter code",
			domainerror.ErrInvalidCurrency,
		)
	}
	return currency, nil
}

func categoryNames() string {
	categories := entity.AllCategories()
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = string(category)
	}
	return strings.Join(names, ", ")
}

func expenseNotFound() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		"expense not found",
		domainerror.ErrExpenseNotFound,
	)
}
