package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyAggregate summarizes one owner's expenses for a calendar month.
// TotalsByCategory only holds categories with at least one record.
type MonthlyAggregate struct {
	TotalAmount      decimal.Decimal
	RecordCount      int
	TotalsByCategory map[Category]decimal.Decimal
	PeriodStart      time.Time
	PeriodEnd        time.Time
}

// BudgetAlert compares a month's spending against the owner's budget limit.
// AlertMessage is empty unless IsAlert is set.
type BudgetAlert struct {
	TotalAmount    decimal.Decimal
	MonthlyLimit   decimal.Decimal
	PercentageUsed decimal.Decimal
	IsAlert        bool
	AlertMessage   string
}

// MonthlyPattern is one entry of a spending pattern series.
// Year and Month are kept alongside the textual key for ordering.
type MonthlyPattern struct {
	MonthKey         string
	Year             int
	Month            time.Month
	Total            decimal.Decimal
	TotalsByCategory map[Category]decimal.Decimal
}
