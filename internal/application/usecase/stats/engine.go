// Package stats contains the expense aggregation engine and the statistics use cases built on it.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// DefaultPatternWindow is the number of months covered when no window is requested.
	DefaultPatternWindow = 6
	// MaxPatternWindow is the largest accepted pattern window, in months.
	MaxPatternWindow = 60

	// MinYear and MaxYear bound the accepted calendar years.
	MinYear = 1970
	MaxYear = 9999
)

var (
	// alertThresholdPercent is the share of the budget at which an alert is raised.
	alertThresholdPercent = decimal.NewFromInt(90)
	hundred               = decimal.NewFromInt(100)
)

// PatternOrder selects how spending patterns are ordered.
type PatternOrder string

const (
	// PatternOrderLexical sorts by the textual month key, so "2024-10" precedes "2024-9".
	PatternOrderLexical PatternOrder = "lexical"
	// PatternOrderChronological sorts by calendar month.
	PatternOrderChronological PatternOrder = "chronological"
)

// ParsePatternOrder maps a request value to a PatternOrder. Empty means lexical.
func ParsePatternOrder(s string) (PatternOrder, error) {
	switch PatternOrder(s) {
	case "", PatternOrderLexical:
		return PatternOrderLexical, nil
	case PatternOrderChronological:
		return PatternOrderChronological, nil
	default:
		return "", domainerror.NewStatsError(
			domainerror.ErrCodeInvalidPatternOrder,
			"order must be 'lexical' or 'chronological'",
			domainerror.ErrInvalidPatternOrder,
		)
	}
}

// MonthBounds returns the first and last instant of a calendar month in UTC.
// The last instant is the final nanosecond of the month.
func MonthBounds(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// ValidateYearMonth rejects years outside MinYear..MaxYear and months outside 1..12.
func ValidateYearMonth(year, month int) error {
	if year < MinYear || year > MaxYear {
		return domainerror.NewStatsError(
			domainerror.ErrCodeInvalidYear,
			fmt.Sprintf("year must be between %d and %d", MinYear, MaxYear),
			domainerror.ErrInvalidYear,
		)
	}
	if month < 1 || month > 12 {
		return domainerror.NewStatsError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	return nil
}

// ValidateWindow rejects pattern windows outside 1..MaxPatternWindow months.
func ValidateWindow(months int) error {
	if months < 1 || months > MaxPatternWindow {
		return domainerror.NewStatsError(
			domainerror.ErrCodeInvalidWindow,
			fmt.Sprintf("months must be between 1 and %d", MaxPatternWindow),
			domainerror.ErrInvalidWindow,
		)
	}
	return nil
}

// ComputeMonthlyAggregate sums the records dated within the month, inclusive of
// both bounds, and groups the sums by category. Records outside the month are ignored.
func ComputeMonthlyAggregate(records []*entity.Expense, year int, month time.Month) *entity.MonthlyAggregate {
	start, end := MonthBounds(year, month)

	aggregate := &entity.MonthlyAggregate{
		TotalAmount:      decimal.Zero,
		TotalsByCategory: make(map[entity.Category]decimal.Decimal),
		PeriodStart:      start,
		PeriodEnd:        end,
	}

	for _, record := range records {
		if record == nil || !withinInclusive(record.Date, start, end) {
			continue
		}
		aggregate.TotalAmount = aggregate.TotalAmount.Add(record.Amount)
		aggregate.RecordCount++
		aggregate.TotalsByCategory[record.Category] = aggregate.TotalsByCategory[record.Category].Add(record.Amount)
	}

	return aggregate
}

// BudgetAlertFor evaluates a monthly aggregate against a budget limit.
// A non-positive limit is a configuration error.
func BudgetAlertFor(aggregate *entity.MonthlyAggregate, monthlyLimit decimal.Decimal) (*entity.BudgetAlert, error) {
	if !monthlyLimit.IsPositive() {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"monthly budget limit must be greater than zero",
			domainerror.ErrInvalidBudgetLimit,
		)
	}

	total := decimal.Zero
	if aggregate != nil {
		total = aggregate.TotalAmount
	}

	percentage := total.Mul(hundred).Div(monthlyLimit)
	alert := &entity.BudgetAlert{
		TotalAmount:    total,
		MonthlyLimit:   monthlyLimit,
		PercentageUsed: percentage,
		IsAlert:        percentage.GreaterThanOrEqual(alertThresholdPercent),
	}
	if alert.IsAlert {
		alert.AlertMessage = fmt.Sprintf("Warning: You've used %s%% of your monthly budget!", percentage.StringFixed(1))
	}

	return alert, nil
}

// ComputeBudgetAlert aggregates the month and evaluates it against the limit.
func ComputeBudgetAlert(records []*entity.Expense, year int, month time.Month, monthlyLimit decimal.Decimal) (*entity.BudgetAlert, error) {
	return BudgetAlertFor(ComputeMonthlyAggregate(records, year, month), monthlyLimit)
}

// PatternWindow returns the inclusive window ending at now and starting
// windowMonths calendar months earlier.
func PatternWindow(windowMonths int, now time.Time) (start, end time.Time) {
	end = now.UTC()
	start = end.AddDate(0, -windowMonths, 0)
	return start, end
}

// ComputeSpendingPatterns groups the records inside the window by calendar month.
// Only months with at least one record appear. The result is sorted by month key
// as text.
func ComputeSpendingPatterns(records []*entity.Expense, windowMonths int, now time.Time) []entity.MonthlyPattern {
	start, end := PatternWindow(windowMonths, now)

	byKey := make(map[string]*entity.MonthlyPattern)
	for _, record := range records {
		if record == nil || !withinInclusive(record.Date, start, end) {
			continue
		}
		date := record.Date.UTC()
		key := MonthKey(date.Year(), date.Month())

		pattern, ok := byKey[key]
		if !ok {
			pattern = &entity.MonthlyPattern{
				MonthKey:         key,
				Year:             date.Year(),
				Month:            date.Month(),
				Total:            decimal.Zero,
				TotalsByCategory: make(map[entity.Category]decimal.Decimal),
			}
			byKey[key] = pattern
		}
		pattern.Total = pattern.Total.Add(record.Amount)
		pattern.TotalsByCategory[record.Category] = pattern.TotalsByCategory[record.Category].Add(record.Amount)
	}

	patterns := make([]entity.MonthlyPattern, 0, len(byKey))
	for _, pattern := range byKey {
		patterns = append(patterns, *pattern)
	}
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].MonthKey < patterns[j].MonthKey
	})

	return patterns
}

// SortPatternsChronologically returns a copy of patterns ordered by calendar month.
func SortPatternsChronologically(patterns []entity.MonthlyPattern) []entity.MonthlyPattern {
	sorted := make([]entity.MonthlyPattern, len(patterns))
	copy(sorted, patterns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})
	return sorted
}

// MonthKey formats a month as "YYYY-M" with a 1-based, unpadded month.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%d", year, int(month))
}

func withinInclusive(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
