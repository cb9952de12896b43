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
)

type TransactionService struct {
	transactions TransactionStore
	logger       *zap.Logger
}

func NewTransactionService(transactions TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		logger:       logger,
	}
}

func (s *TransactionService) List(ctx context.Context, userID uuid.UUID) ([]dto.TransactionPayload, error) {
	txs, err := s.transactions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	payloads := make([]dto.TransactionPayload, 0, len(txs))
	for _, tx := range txs {
		payloads = append(payloads, toPayload(tx))
	}
	return payloads, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateTransactionRequest) (*dto.TransactionPayload, error) {
	tx, err := s.ownedTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Merchant != nil {
		tx.Merchant = req.Merchant
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, &ValidationError{Message: "Amount must not be negative"}
		}
		tx.TotalAmount = *req.TotalAmount
	}
	if req.Currency != nil {
		tx.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Category != nil {
		normalized := string(models.NormalizeCategory(strings.TrimSpace(*req.Category)))
		tx.Category = &normalized
	}
	if req.TransactionDate != nil {
		tx.TransactionDate = *req.TransactionDate
	}
	if req.Notes != nil {
		tx.Notes = req.Notes
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	payload := toPayload(tx)
	return &payload, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedTransaction(ctx, userID, id); err != nil {
		return err
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) ownedTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if tx.UserID != userID {
		return nil, ErrNotFound
	}
	return tx, nil
}

func toPayload(tx *models.Transaction) dto.TransactionPayload {
	var receiptID *string
	if tx.ReceiptID != nil {
		s := tx.ReceiptID.String()
		receiptID = &s
	}

	return dto.TransactionPayload{
		ID:               tx.ID.String(),
		UserID:           tx.UserID.String(),
		ReceiptID:        receiptID,
		TransactionItems: tx.Items,
		Merchant:         tx.Merchant,
		TotalAmount:      tx.TotalAmount,
		Currency:         tx.Currency,
		Category:         tx.Category,
		TransactionDate:  tx.TransactionDate,
		Notes:            tx.Notes,
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        tx.UpdatedAt.Format(time.RFC3339),
	}
}
