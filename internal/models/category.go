package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryGroceries     Category = "groceries"
	CategoryDining        Category = "dining"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryUtilities     Category = "utilities"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryRent          Category = "rent"
	CategorySubscriptions Category = "subscriptions"
	CategoryTravel        Category = "travel"
	CategoryIncome        Category = "income"
	CategoryOther         Category = "other"
)

// ValidCategories is the closed set of permitted transaction categories.
var ValidCategories = []Category{
	CategoryGroceries,
	CategoryDining,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealth,
	CategoryEducation,
	CategoryRent,
	CategorySubscriptions,
	CategoryTravel,
	CategoryIncome,
	CategoryOther,
}

// IsValidCategory reports whether name is exactly one of the permitted
// categories. Matching is case sensitive: "Groceries" is not valid.
func IsValidCategory(name string) bool {
	for _, c := range ValidCategories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// NormalizeCategory returns name unchanged when it is a valid category and
// "other" for everything else, including the empty string.
func NormalizeCategory(name string) Category {
	if IsValidCategory(name) {
		return Category(name)
	}
	return CategoryOther
}

type BudgetCategory struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	CategoryName string          `db:"category_name"`
	LimitAmount  decimal.Decimal `db:"limit_amount"`
	// SpentAmount is a denormalized cache, overwritten on every recompute.
	// Transactions are the source of truth.
	SpentAmount decimal.Decimal `db:"spent_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
