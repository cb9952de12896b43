package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/utils"
)

const insightDays = 30

type InsightService struct {
	ai           AIClient
	categories   CategoryStore
	transactions TransactionStore
	clock        utils.Clock
	logger       *zap.Logger
}

func NewInsightService(ai AIClient, categories CategoryStore, transactions TransactionStore, clock utils.Clock, logger *zap.Logger) *InsightService {
	return &InsightService{
		ai:           ai,
		categories:   categories,
		transactions: transactions,
		clock:        clock,
		logger:       logger,
	}
}

const insightPromptTemplate = `You are a personal budgeting coach. Below are a user's spending statistics for the last %d days as JSON:

%s

Write 2 to 3 short, specific, actionable insights about this user's spending. Reference actual numbers and categories from the data. Avoid generic advice.

Return ONLY this JSON object, no markdown fences, no commentary:
{"insights": ["<insight 1>", "<insight 2>", "..."]}`

// Generate computes spend statistics over a trailing 30-day window and
// asks the model for coaching insights grounded in those numbers.
func (s *InsightService) Generate(ctx context.Context, userID uuid.UUID) (*dto.InsightResponse, error) {
	now := s.clock.Now().UTC()
	today := now.Format(dateLayout)
	since := now.AddDate(0, 0, -insightDays).Format(dateLayout)

	txs, err := s.transactions.ListByUserInRange(ctx, userID, since, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget categories: %w", err)
	}

	stats := dto.InsightStats{
		TimeframeDays: insightDays,
		SinceDate:     since,
		Today:         today,
	}

	totalSpent := decimal.Zero
	for _, tx := range txs {
		totalSpent = totalSpent.Add(tx.TotalAmount)
	}
	stats.TotalSpent = totalSpent.Round(2)
	stats.TransactionCount = len(txs)

	totalLimit := decimal.Zero
	stats.Categories = make([]dto.CategoryStat, 0, len(categories))
	for _, category := range categories {
		spent := SpentForCategory(category.CategoryName, txs, nil, nil)
		totalLimit = totalLimit.Add(category.LimitAmount)

		_, percentUsed := EvaluateBudget(spent, category.LimitAmount)
		stats.Categories = append(stats.Categories, dto.CategoryStat{
			Category:    category.CategoryName,
			Limit:       category.LimitAmount,
			Spent:       spent.Round(2),
			PercentUsed: percentUsed,
		})
	}
	stats.TotalBudgetLimit = totalLimit.Round(2)

	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	raw, err := s.ai.GenerateText(ctx, fmt.Sprintf(insightPromptTemplate, insightDays, string(statsJSON)))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnusable, err)
	}
	if len(parsed.Insights) == 0 {
		return nil, fmt.Errorf("%w: empty insights", ErrAIUnusable)
	}

	return &dto.InsightResponse{
		Success:       true,
		TimeframeDays: insightDays,
		Stats:         stats,
		Insights:      parsed.Insights,
	}, nil
}
