package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/stats"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// MonthlyStatsResponse represents the aggregate of one calendar month.
type MonthlyStatsResponse struct {
	Year           int               `json:"year"`
	Month          int               `json:"month"`
	TotalAmount    string            `json:"total_amount"`
	RecordCount    int               `json:"record_count"`
	CategoryTotals map[string]string `json:"category_totals"`
	PeriodStart    time.Time         `json:"period_start"`
	PeriodEnd      time.Time         `json:"period_end"`
}

// BudgetAlertResponse represents a month's spending against the budget.
type BudgetAlertResponse struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Currency       string  `json:"currency"`
	TotalAmount    string  `json:"total_amount"`
	MonthlyLimit   string  `json:"monthly_limit"`
	PercentageUsed float64 `json:"percentage_used"`
	IsAlert        bool    `json:"is_alert"`
	AlertMessage   string  `json:"alert_message,omitempty"`
}

// MonthlyPatternResponse is one month of a spending pattern series.
type MonthlyPatternResponse struct {
	Month          string            `json:"month"`
	Total          string            `json:"total"`
	CategoryTotals map[string]string `json:"category_totals"`
}

// SpendingPatternsResponse represents the spending pattern series.
type SpendingPatternsResponse struct {
	Months      int                      `json:"months"`
	Order       string                   `json:"order"`
	WindowStart time.Time                `json:"window_start"`
	WindowEnd   time.Time                `json:"window_end"`
	Patterns    []MonthlyPatternResponse `json:"patterns"`
}

// ToMonthlyStatsResponse converts a GetMonthlyStatsOutput to a MonthlyStatsResponse.
func ToMonthlyStatsResponse(output *stats.GetMonthlyStatsOutput) MonthlyStatsResponse {
	aggregate := output.Aggregate
	return MonthlyStatsResponse{
		Year:           output.Year,
		Month:          output.Month,
		TotalAmount:    aggregate.TotalAmount.StringFixed(2),
		RecordCount:    aggregate.RecordCount,
		CategoryTotals: toCategoryTotals(aggregate.TotalsByCategory),
		PeriodStart:    aggregate.PeriodStart,
		PeriodEnd:      aggregate.PeriodEnd,
	}
}

// ToBudgetAlertResponse converts a GetBudgetAlertOutput to a BudgetAlertResponse.
func ToBudgetAlertResponse(output *stats.GetBudgetAlertOutput) BudgetAlertResponse {
	alert := output.Alert
	return BudgetAlertResponse{
		Year:           output.Year,
		Month:          output.Month,
		Currency:       output.Currency,
		TotalAmount:    alert.TotalAmount.StringFixed(2),
		MonthlyLimit:   alert.MonthlyLimit.StringFixed(2),
		PercentageUsed: alert.PercentageUsed.Round(1).InexactFloat64(),
		IsAlert:        alert.IsAlert,
		AlertMessage:   alert.AlertMessage,
	}
}

// ToSpendingPatternsResponse converts a GetSpendingPatternsOutput to a SpendingPatternsResponse.
func ToSpendingPatternsResponse(output *stats.GetSpendingPatternsOutput) SpendingPatternsResponse {
	patterns := make([]MonthlyPatternResponse, len(output.Patterns))
	for i, p := range output.Patterns {
		patterns[i] = MonthlyPatternResponse{
			Month:          p.MonthKey,
			Total:          p.Total.StringFixed(2),
			CategoryTotals: toCategoryTotals(p.TotalsByCategory),
		}
	}
	return SpendingPatternsResponse{
		Months:      output.Months,
		Order:       string(output.Order),
		WindowStart: output.WindowStart,
		WindowEnd:   output.WindowEnd,
		Patterns:    patterns,
	}
}

func toCategoryTotals(totals map[entity.Category]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(totals))
	for category, amount := range totals {
		out[string(category)] = amount.StringFixed(2)
	}
	return out
}
