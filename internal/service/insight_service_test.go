package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instabudget/internal/models"
	"instabudget/internal/utils"
)

func TestInsightAggregatesWindow(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	transactions := &stubTransactionStore{txs: []*models.Transaction{
		txWith(userID, "dining", "2025-06-20", "40"),
		txWith(userID, "dining", "2025-06-01", "10"),
		// Outside the trailing 30-day window.
		txWith(userID, "dining", "2025-04-01", "500"),
	}}
	categories := newStubCategoryStore(&models.BudgetCategory{
		ID:           uuid.New(),
		UserID:       userID,
		CategoryName: "dining",
		LimitAmount:  decimal.NewFromInt(100),
	})
	ai := &stubAIClient{textResponse: `{"insights": ["You spent half your dining budget in one visit."]}`}
	clock := &utils.MockClock{FixedNow: now}

	svc := NewInsightService(ai, categories, transactions, clock, zap.NewNop())
	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 30, resp.TimeframeDays)
	assert.Equal(t, "2025-05-31", resp.Stats.SinceDate)
	assert.Equal(t, "2025-06-30", resp.Stats.Today)
	assert.Equal(t, "50", resp.Stats.TotalSpent.String())
	assert.Equal(t, 2, resp.Stats.TransactionCount)
	require.Len(t, resp.Stats.Categories, 1)
	assert.Equal(t, "50", resp.Stats.Categories[0].Spent.String())
	require.NotNil(t, resp.Stats.Categories[0].PercentUsed)
	assert.InDelta(t, 0.5, *resp.Stats.Categories[0].PercentUsed, 0.0001)
	require.Len(t, resp.Insights, 1)

	// The prompt carries the stats JSON the model is asked to ground on.
	require.Len(t, ai.prompts, 1)
	assert.True(t, strings.Contains(ai.prompts[0], `"total_spent":50`))
}

func TestInsightParsesFencedAnswer(t *testing.T) {
	userID := uuid.New()
	ai := &stubAIClient{textResponse: "```json\n{\"insights\": [\"a\", \"b\"]}\n```"}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)}

	svc := NewInsightService(ai, newStubCategoryStore(), &stubTransactionStore{}, clock, zap.NewNop())
	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, resp.Insights)
}

func TestInsightRejectsEmptyInsights(t *testing.T) {
	ai := &stubAIClient{textResponse: `{"insights": []}`}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)}

	svc := NewInsightService(ai, newStubCategoryStore(), &stubTransactionStore{}, clock, zap.NewNop())
	_, err := svc.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAIUnusable)
}

func TestInsightRejectsUnparseableAnswer(t *testing.T) {
	ai := &stubAIClient{textResponse: "Here are some thoughts about your spending..."}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)}

	svc := NewInsightService(ai, newStubCategoryStore(), &stubTransactionStore{}, clock, zap.NewNop())
	_, err := svc.Generate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAIUnusable)
}

func TestInsightStatsJSONShape(t *testing.T) {
	userID := uuid.New()
	ai := &stubAIClient{textResponse: `{"insights": ["ok"]}`}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)}

	transactions := &stubTransactionStore{txs: []*models.Transaction{
		txWith(userID, "groceries", "2025-06-15", "33.33"),
	}}
	svc := NewInsightService(ai, newStubCategoryStore(), transactions, clock, zap.NewNop())
	resp, err := svc.Generate(context.Background(), userID)
	require.NoError(t, err)

	// Amounts serialize as plain JSON numbers, not strings.
	data, err := json.Marshal(resp.Stats)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"total_spent":33.33`))
}
