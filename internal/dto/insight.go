package dto

import "github.com/shopspring/decimal"

type InsightRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// CategoryStat aggregates one category inside the insight window.
// PercentUsed is nil when the category has no limit set.
type CategoryStat struct {
	Category    string          `json:"category"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	PercentUsed *float64        `json:"percent_used"`
}

type InsightStats struct {
	TimeframeDays    int             `json:"timeframe_days"`
	SinceDate        string          `json:"since_date"`
	Today            string          `json:"today"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	TotalBudgetLimit decimal.Decimal `json:"total_budget_limit"`
	TransactionCount int             `json:"transaction_count"`
	Categories       []CategoryStat  `json:"categories"`
}

type InsightResponse struct {
	Success       bool         `json:"success"`
	TimeframeDays int          `json:"timeframe_days"`
	Stats         InsightStats `json:"stats"`
	Insights      []string     `json:"insights"`
}
