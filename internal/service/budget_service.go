package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/models"
	"instabudget/internal/utils"
)

const (
	StatusOK          = "ok"
	StatusApproaching = "approaching"
	StatusExceeded    = "exceeded"
)

var (
	approachingThreshold = decimal.NewFromFloat(0.7)
	exceededThreshold    = decimal.NewFromInt(1)
)

type BudgetService struct {
	categories   CategoryStore
	transactions TransactionStore
	profiles     ProfileStore
	clock        utils.Clock
	logger       *zap.Logger
}

func NewBudgetService(categories CategoryStore, transactions TransactionStore, profiles ProfileStore, clock utils.Clock, logger *zap.Logger) *BudgetService {
	return &BudgetService{
		categories:   categories,
		transactions: transactions,
		profiles:     profiles,
		clock:        clock,
		logger:       logger,
	}
}

// SpentForCategory sums transaction totals for one category. Matching is
// case-insensitive, date bounds are inclusive, nil bounds mean all time.
func SpentForCategory(categoryName string, txs []*models.Transaction, start, end *string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Category == nil || !strings.EqualFold(*tx.Category, categoryName) {
			continue
		}
		if start != nil && tx.TransactionDate < *start {
			continue
		}
		if end != nil && tx.TransactionDate > *end {
			continue
		}
		total = total.Add(tx.TotalAmount)
	}
	return total
}

// EvaluateBudget classifies spend against a limit. PercentUsed is nil when
// no limit is set, and an exceeded budget never reports approaching.
func EvaluateBudget(spent, limit decimal.Decimal) (status string, percentUsed *float64) {
	if limit.IsZero() {
		return StatusOK, nil
	}

	ratio := spent.Div(limit)
	percent, _ := ratio.Round(3).Float64()
	percentUsed = &percent

	switch {
	case ratio.GreaterThanOrEqual(exceededThreshold):
		return StatusExceeded, percentUsed
	case ratio.GreaterThanOrEqual(approachingThreshold):
		return StatusApproaching, percentUsed
	default:
		return StatusOK, percentUsed
	}
}

// List returns the caller's budget categories with spend recomputed over
// the current cycle window and written back to the cache column.
func (s *BudgetService) List(ctx context.Context, userID uuid.UUID) ([]dto.CategoryStatus, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.CycleStartDate == nil || profile.CycleEndDate == nil {
		return nil, &ValidationError{Message: "Budget cycle is not configured"}
	}

	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget categories: %w", err)
	}

	txs, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	statuses := make([]dto.CategoryStatus, 0, len(categories))
	for _, category := range categories {
		spent := SpentForCategory(category.CategoryName, txs, profile.CycleStartDate, profile.CycleEndDate)
		if !spent.Equal(category.SpentAmount) {
			if err := s.categories.UpdateSpent(ctx, category.ID, spent); err != nil {
				return nil, fmt.Errorf("failed to update spent amount: %w", err)
			}
		}

		status, percentUsed := EvaluateBudget(spent, category.LimitAmount)
		statuses = append(statuses, dto.CategoryStatus{
			ID:           category.ID.String(),
			CategoryName: category.CategoryName,
			LimitAmount:  category.LimitAmount,
			SpentAmount:  spent,
			PercentUsed:  percentUsed,
			Status:       status,
		})
	}

	return statuses, nil
}

func (s *BudgetService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryStatus, error) {
	name := strings.ToLower(strings.TrimSpace(req.CategoryName))
	if !models.IsValidCategory(name) {
		return nil, &ValidationError{Message: "Unknown category", Details: req.CategoryName}
	}
	if req.LimitAmount.IsNegative() {
		return nil, &ValidationError{Message: "Limit must not be negative"}
	}

	exists, err := s.categories.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if exists {
		return nil, &ValidationError{Message: "Budget for this category already exists", Details: name}
	}

	now := s.clock.Now()
	category := &models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: name,
		LimitAmount:  req.LimitAmount,
		SpentAmount:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create budget category: %w", err)
	}

	status, percentUsed := EvaluateBudget(decimal.Zero, category.LimitAmount)
	return &dto.CategoryStatus{
		ID:           category.ID.String(),
		CategoryName: category.CategoryName,
		LimitAmount:  category.LimitAmount,
		SpentAmount:  decimal.Zero,
		PercentUsed:  percentUsed,
		Status:       status,
	}, nil
}

func (s *BudgetService) UpdateLimit(ctx context.Context, userID, id uuid.UUID, limit decimal.Decimal) (*dto.CategoryStatus, error) {
	if limit.IsNegative() {
		return nil, &ValidationError{Message: "Limit must not be negative"}
	}

	category, err := s.ownedCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// The cached spend may predate recent transactions, re-derive it over
	// the current cycle window before classifying against the new limit.
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	txs, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	spent := SpentForCategory(category.CategoryName, txs, profile.CycleStartDate, profile.CycleEndDate)
	if !spent.Equal(category.SpentAmount) {
		if err := s.categories.UpdateSpent(ctx, id, spent); err != nil {
			return nil, fmt.Errorf("failed to update spent amount: %w", err)
		}
	}

	if err := s.categories.UpdateLimit(ctx, id, limit); err != nil {
		return nil, fmt.Errorf("failed to update limit: %w", err)
	}

	status, percentUsed := EvaluateBudget(spent, limit)
	return &dto.CategoryStatus{
		ID:           category.ID.String(),
		CategoryName: category.CategoryName,
		LimitAmount:  limit,
		SpentAmount:  spent,
		PercentUsed:  percentUsed,
		Status:       status,
	}, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedCategory(ctx, userID, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget category: %w", err)
	}
	return nil
}

func (s *BudgetService) ownedCategory(ctx context.Context, userID, id uuid.UUID) (*models.BudgetCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if category.UserID != userID {
		return nil, ErrNotFound
	}
	return category, nil
}
