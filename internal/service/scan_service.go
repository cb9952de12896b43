package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/models"
	"instabudget/internal/utils"
)

const (
	ModeAuto    = "auto"
	ModePreview = "preview"

	defaultCurrency = "USD"
)

type ScanService struct {
	ai           AIClient
	receipts     ReceiptStore
	transactions TransactionStore
	profiles     ProfileStore
	store        ObjectStore
	clock        utils.Clock
	logger       *zap.Logger
}

func NewScanService(ai AIClient, receipts ReceiptStore, transactions TransactionStore, profiles ProfileStore, store ObjectStore, clock utils.Clock, logger *zap.Logger) *ScanService {
	return &ScanService{
		ai:           ai,
		receipts:     receipts,
		transactions: transactions,
		profiles:     profiles,
		store:        store,
		clock:        clock,
		logger:       logger,
	}
}

const receiptPromptTemplate = `Analyze this image.

First decide whether it actually shows a purchase receipt. If it does not
(a selfie, a screenshot, a random photo), return exactly:
{"is_receipt": false, "reason": "<one or two words describing what the image shows>"}

If it is a receipt, return ONLY this JSON object:
{
  "is_receipt": true,
  "merchant": "<store or vendor name>",
  "total_amount": <final paid total as a number, including tax>,
  "currency": "<ISO 4217 code such as USD, or null if not visible>",
  "category": "<exactly one of: %s>",
  "transaction_date": "<date printed on the receipt as YYYY-MM-DD, or "%s" if none is visible>",
  "items": [{"item": "<line item name>", "price": <number>}],
  "notes": null
}

Return ONLY the JSON. No markdown fences, no commentary.`

func receiptPrompt(today string) string {
	return fmt.Sprintf(receiptPromptTemplate, strings.Join(categoryNames(), ", "), today)
}

func categoryNames() []string {
	names := make([]string, 0, len(models.ValidCategories))
	for _, c := range models.ValidCategories {
		names = append(names, string(c))
	}
	return names
}

// ScanReceipt stores the upload, creates the receipt row, runs the image
// through the model and normalizes the answer. isAuto persists the
// transaction immediately, otherwise the payload is returned for review.
func (s *ScanService) ScanReceipt(ctx context.Context, userID uuid.UUID, filename string, data []byte, isAuto bool) (*dto.ScanResponse, error) {
	key := s.store.BuildKey(userID, filename)
	if err := s.store.Save(key, data); err != nil {
		return nil, fmt.Errorf("failed to store receipt image: %w", err)
	}

	receipt := &models.Receipt{
		ID:          uuid.New(),
		UserID:      userID,
		StoragePath: key,
		UploadedAt:  s.clock.Now(),
	}
	if err := s.receipts.Create(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	today := s.clock.Now().UTC().Format(dateLayout)

	raw, err := s.ai.GenerateWithMedia(ctx, receiptPrompt(today), data, filename)
	if err != nil {
		return nil, err
	}

	payload, err := normalizeReceipt(raw, userID, &receipt.ID, s.fallbackCurrency(ctx, userID), today)
	if err != nil {
		return nil, err
	}

	return s.dispatch(ctx, payload, isAuto)
}

// SaveManual persists a client-reviewed transaction payload. Used both by
// the preview confirmation flow and by fully manual entry.
func (s *ScanService) SaveManual(ctx context.Context, payload *dto.TransactionPayload) (*dto.TransactionPayload, error) {
	if payload.Category != nil {
		normalized := string(models.NormalizeCategory(strings.TrimSpace(*payload.Category)))
		payload.Category = &normalized
	}
	if payload.TransactionItems == "" {
		payload.TransactionItems = "[]"
	}
	return s.persist(ctx, payload)
}

func (s *ScanService) dispatch(ctx context.Context, payload *dto.TransactionPayload, isAuto bool) (*dto.ScanResponse, error) {
	if !isAuto {
		return &dto.ScanResponse{Success: true, Mode: ModePreview, Transaction: *payload}, nil
	}

	saved, err := s.persist(ctx, payload)
	if err != nil {
		return nil, err
	}
	return &dto.ScanResponse{Success: true, Mode: ModeAuto, Transaction: *saved}, nil
}

func (s *ScanService) persist(ctx context.Context, payload *dto.TransactionPayload) (*dto.TransactionPayload, error) {
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		return nil, &ValidationError{Message: "Invalid user_id"}
	}

	var receiptID *uuid.UUID
	if payload.ReceiptID != nil {
		parsed, err := uuid.Parse(*payload.ReceiptID)
		if err != nil {
			return nil, &ValidationError{Message: "Invalid receipt_id"}
		}
		receiptID = &parsed
	}

	now := s.clock.Now()
	tx := &models.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		ReceiptID:       receiptID,
		Merchant:        payload.Merchant,
		TotalAmount:     payload.TotalAmount,
		Currency:        payload.Currency,
		Category:        payload.Category,
		TransactionDate: payload.TransactionDate,
		Notes:           payload.Notes,
		Items:           payload.TransactionItems,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.logger.Info("Transaction saved",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("user_id", userID.String()),
	)

	saved := *payload
	saved.ID = tx.ID.String()
	saved.CreatedAt = now.Format(time.RFC3339)
	saved.UpdatedAt = now.Format(time.RFC3339)
	return &saved, nil
}

// fallbackCurrency prefers the user's profile currency, missing profiles
// fall back to USD.
func (s *ScanService) fallbackCurrency(ctx context.Context, userID uuid.UUID) string {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil || profile.PreferredCurrency == "" {
		return defaultCurrency
	}
	return profile.PreferredCurrency
}
