package repository

import (
	"context"
	"instabudget/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReceiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	query := squirrel.Insert("receipts").
		Columns("id", "user_id", "storage_path", "uploaded_at").
		Values(receipt.ID, receipt.UserID, receipt.StoragePath, receipt.UploadedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	query := squirrel.Select("id", "user_id", "storage_path", "uploaded_at").
		From("receipts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var receipt models.Receipt
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&receipt.ID, &receipt.UserID, &receipt.StoragePath, &receipt.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}
