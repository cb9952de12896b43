package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/models"
	"instabudget/internal/utils"
)

func createCategoryReq(name, limit string) *dto.CreateCategoryRequest {
	amt, _ := decimal.NewFromString(limit)
	return &dto.CreateCategoryRequest{CategoryName: name, LimitAmount: amt}
}

func txWith(userID uuid.UUID, category, date, amount string) *models.Transaction {
	amt, _ := decimal.NewFromString(amount)
	c := category
	return &models.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     amt,
		Currency:        "USD",
		Category:        &c,
		TransactionDate: date,
		Items:           "[]",
	}
}

func TestSpentForCategoryCaseInsensitive(t *testing.T) {
	userID := uuid.New()
	txs := []*models.Transaction{
		txWith(userID, "dining", "2025-06-01", "10"),
		txWith(userID, "Dining", "2025-06-02", "5"),
		txWith(userID, "DINING", "2025-06-03", "2.50"),
		txWith(userID, "groceries", "2025-06-03", "100"),
	}

	spent := SpentForCategory("dining", txs, nil, nil)
	assert.Equal(t, "17.5", spent.String())
}

func TestSpentForCategoryInclusiveBounds(t *testing.T) {
	userID := uuid.New()
	txs := []*models.Transaction{
		txWith(userID, "dining", "2025-05-31", "1"),
		txWith(userID, "dining", "2025-06-01", "2"),
		txWith(userID, "dining", "2025-06-15", "4"),
		txWith(userID, "dining", "2025-06-30", "8"),
		txWith(userID, "dining", "2025-07-01", "16"),
	}

	start, end := "2025-06-01", "2025-06-30"
	spent := SpentForCategory("dining", txs, &start, &end)
	assert.Equal(t, "14", spent.String())

	// Summing twice changes nothing.
	again := SpentForCategory("dining", txs, &start, &end)
	assert.True(t, spent.Equal(again))
}

func TestSpentForCategorySkipsUncategorized(t *testing.T) {
	userID := uuid.New()
	tx := txWith(userID, "dining", "2025-06-01", "10")
	tx.Category = nil

	spent := SpentForCategory("dining", []*models.Transaction{tx}, nil, nil)
	assert.True(t, spent.IsZero())
}

func TestEvaluateBudgetBands(t *testing.T) {
	tests := []struct {
		name       string
		spent      string
		limit      string
		wantStatus string
	}{
		{"well under", "10", "100", StatusOK},
		{"just under warning", "69.99", "100", StatusOK},
		{"at warning threshold", "70", "100", StatusApproaching},
		{"under limit", "99.99", "100", StatusApproaching},
		{"at limit", "100", "100", StatusExceeded},
		{"over limit", "150", "100", StatusExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spent, _ := decimal.NewFromString(tt.spent)
			limit, _ := decimal.NewFromString(tt.limit)
			status, percent := EvaluateBudget(spent, limit)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, percent)
		})
	}
}

func TestEvaluateBudgetZeroLimit(t *testing.T) {
	status, percent := EvaluateBudget(decimal.NewFromInt(50), decimal.Zero)
	assert.Equal(t, StatusOK, status)
	assert.Nil(t, percent)
}

func TestBudgetListRecomputesSpend(t *testing.T) {
	userID := uuid.New()
	start, end := "2025-06-01", "2025-07-01"
	profiles := &stubProfileStore{profile: &models.Profile{
		UserID:          userID,
		CycleStartDate:  &start,
		CycleEndDate:    &end,
		BudgetAutoRenew: true,
	}}

	category := &models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: "dining",
		LimitAmount:  decimal.NewFromInt(100),
		SpentAmount:  decimal.Zero,
	}
	categories := newStubCategoryStore(category)

	transactions := &stubTransactionStore{txs: []*models.Transaction{
		txWith(userID, "dining", "2025-06-10", "50"),
		txWith(userID, "Dining", "2025-06-20", "30"),
		txWith(userID, "dining", "2025-05-20", "999"),
	}}

	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)}
	svc := NewBudgetService(categories, transactions, profiles, clock, zap.NewNop())

	statuses, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	assert.Equal(t, "80", statuses[0].SpentAmount.String())
	assert.Equal(t, StatusApproaching, statuses[0].Status)
	require.NotNil(t, statuses[0].PercentUsed)
	assert.InDelta(t, 0.8, *statuses[0].PercentUsed, 0.0001)

	// Write-back of the recomputed cache.
	assert.True(t, categories.spentUpdates[category.ID].Equal(decimal.NewFromInt(80)))
}

func TestBudgetListRequiresCycle(t *testing.T) {
	userID := uuid.New()
	profiles := &stubProfileStore{profile: &models.Profile{UserID: userID}}
	clock := &utils.MockClock{FixedNow: time.Now()}
	svc := NewBudgetService(newStubCategoryStore(), &stubTransactionStore{}, profiles, clock, zap.NewNop())

	_, err := svc.List(context.Background(), userID)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Budget cycle is not configured", vErr.Message)
}

func TestBudgetCreateRejectsUnknownCategory(t *testing.T) {
	userID := uuid.New()
	clock := &utils.MockClock{FixedNow: time.Now()}
	svc := NewBudgetService(newStubCategoryStore(), &stubTransactionStore{}, &stubProfileStore{}, clock, zap.NewNop())

	_, err := svc.Create(context.Background(), userID, createCategoryReq("fast-food", "100"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Unknown category", vErr.Message)
}

func TestBudgetCreateRejectsDuplicate(t *testing.T) {
	userID := uuid.New()
	existing := &models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: "dining",
		LimitAmount:  decimal.NewFromInt(100),
	}
	clock := &utils.MockClock{FixedNow: time.Now()}
	svc := NewBudgetService(newStubCategoryStore(existing), &stubTransactionStore{}, &stubProfileStore{}, clock, zap.NewNop())

	_, err := svc.Create(context.Background(), userID, createCategoryReq("Dining", "50"))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Budget for this category already exists", vErr.Message)
}

func TestBudgetCreateNormalizesName(t *testing.T) {
	userID := uuid.New()
	categories := newStubCategoryStore()
	clock := &utils.MockClock{FixedNow: time.Now()}
	svc := NewBudgetService(categories, &stubTransactionStore{}, &stubProfileStore{}, clock, zap.NewNop())

	created, err := svc.Create(context.Background(), userID, createCategoryReq(" Groceries ", "400"))
	require.NoError(t, err)
	assert.Equal(t, "groceries", created.CategoryName)
	require.Len(t, categories.created, 1)
}

func TestBudgetUpdateLimitRecomputesSpend(t *testing.T) {
	userID := uuid.New()
	start, end := "2025-06-01", "2025-07-01"
	profiles := &stubProfileStore{profile: &models.Profile{
		UserID:          userID,
		CycleStartDate:  &start,
		CycleEndDate:    &end,
		BudgetAutoRenew: true,
	}}

	// Cache says nothing was spent, the transactions say 90.
	category := &models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: "dining",
		LimitAmount:  decimal.NewFromInt(200),
		SpentAmount:  decimal.Zero,
	}
	categories := newStubCategoryStore(category)

	transactions := &stubTransactionStore{txs: []*models.Transaction{
		txWith(userID, "dining", "2025-06-10", "60"),
		txWith(userID, "dining", "2025-06-20", "30"),
		txWith(userID, "dining", "2025-05-20", "500"),
	}}

	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)}
	svc := NewBudgetService(categories, transactions, profiles, clock, zap.NewNop())

	updated, err := svc.UpdateLimit(context.Background(), userID, category.ID, decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.Equal(t, "90", updated.SpentAmount.String())
	assert.Equal(t, StatusExceeded, updated.Status)
	require.NotNil(t, updated.PercentUsed)
	assert.InDelta(t, 1.8, *updated.PercentUsed, 0.0001)

	assert.True(t, categories.spentUpdates[category.ID].Equal(decimal.NewFromInt(90)))
	assert.True(t, categories.limitUpdates[category.ID].Equal(decimal.NewFromInt(50)))
}

func TestBudgetDeleteChecksOwnership(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	category := &models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       owner,
		CategoryName: "dining",
	}
	clock := &utils.MockClock{FixedNow: time.Now()}
	svc := NewBudgetService(newStubCategoryStore(category), &stubTransactionStore{}, &stubProfileStore{}, clock, zap.NewNop())

	err := svc.Delete(context.Background(), other, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
