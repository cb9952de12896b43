package repository

import (
	"context"
	"instabudget/internal/models"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	date, err := stringToDate(tx.TransactionDate)
	if err != nil {
		return err
	}

	query := squirrel.Insert("transactions").
		Columns("id", "user_id", "receipt_id", "merchant", "total_amount", "currency", "category",
			"transaction_date", "notes", "transaction_items", "created_at", "updated_at").
		Values(tx.ID, tx.UserID, tx.ReceiptID, tx.Merchant, tx.TotalAmount, tx.Currency, tx.Category,
			date, tx.Notes, tx.Items, tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := selectTransactions().
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	var date time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.UserID, &tx.ReceiptID, &tx.Merchant, &tx.TotalAmount, &tx.Currency,
		&tx.Category, &date, &tx.Notes, &tx.Items, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.TransactionDate = dateToString(date)
	return &tx, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	query := selectTransactions().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("transaction_date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByUserInRange returns transactions with dates inside [from, to],
// both bounds inclusive.
func (r *TransactionRepository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*models.Transaction, error) {
	fromDate, err := stringToDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := stringToDate(to)
	if err != nil {
		return nil, err
	}

	query := selectTransactions().
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"transaction_date": fromDate}).
		Where(squirrel.LtOrEq{"transaction_date": toDate}).
		OrderBy("transaction_date DESC", "created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	date, err := stringToDate(tx.TransactionDate)
	if err != nil {
		return err
	}

	query := squirrel.Update("transactions").
		Set("merchant", tx.Merchant).
		Set("total_amount", tx.TotalAmount).
		Set("currency", tx.Currency).
		Set("category", tx.Category).
		Set("transaction_date", date).
		Set("notes", tx.Notes).
		Set("transaction_items", tx.Items).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": tx.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func selectTransactions() squirrel.SelectBuilder {
	return squirrel.Select("id", "user_id", "receipt_id", "merchant", "total_amount", "currency",
		"category", "transaction_date", "notes", "transaction_items", "created_at", "updated_at").
		From("transactions")
}

func scanTransactions(rows pgx.Rows) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var date time.Time
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.ReceiptID, &tx.Merchant, &tx.TotalAmount, &tx.Currency,
			&tx.Category, &date, &tx.Notes, &tx.Items, &tx.CreatedAt, &tx.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tx.TransactionDate = dateToString(date)
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}
