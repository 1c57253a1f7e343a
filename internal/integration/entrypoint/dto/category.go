package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/category"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	Category     string `json:"category"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	ExpenseCount int    `json:"expense_count"`
	PeriodTotal  string `json:"period_total"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts a list of CategoryOutput to CategoryListResponse.
func ToCategoryListResponse(outputs []*category.CategoryOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(outputs))
	for i, output := range outputs {
		categories[i] = CategoryResponse{
			Category:     string(output.Category),
			Name:         output.Name,
			Color:        output.Color,
			Icon:         output.Icon,
			ExpenseCount: output.ExpenseCount,
			PeriodTotal:  output.PeriodTotal.StringFixed(2),
		}
	}
	return CategoryListResponse{Categories: categories}
}
