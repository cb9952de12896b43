package dto

import "github.com/shopspring/decimal"

type CreateCategoryRequest struct {
	UserID       string          `json:"user_id" validate:"required,uuid"`
	CategoryName string          `json:"category_name" validate:"required"`
	LimitAmount  decimal.Decimal `json:"limit_amount" validate:"required"`
}

type UpdateCategoryRequest struct {
	LimitAmount decimal.Decimal `json:"limit_amount" validate:"required"`
}

// CategoryStatus carries the usage band for one budget category.
// Status is "ok", "approaching" (>=70% of limit) or "exceeded" (>=100%).
type CategoryStatus struct {
	ID           string          `json:"id"`
	CategoryName string          `json:"category_name"`
	LimitAmount  decimal.Decimal `json:"limit_amount"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
	PercentUsed  *float64        `json:"percent_used"`
	Status       string          `json:"status"`
}

type CategoryListResponse struct {
	Success    bool             `json:"success"`
	Categories []CategoryStatus `json:"categories"`
}

type CategoryResponse struct {
	Success  bool           `json:"success"`
	Category CategoryStatus `json:"category"`
}
