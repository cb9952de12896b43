package repository

import (
	"context"
	"instabudget/internal/models"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.BudgetCategory) error {
	query := squirrel.Insert("budget_categories").
		Columns("id", "user_id", "category_name", "limit_amount", "spent_amount", "created_at", "updated_at").
		Values(category.ID, category.UserID, category.CategoryName, category.LimitAmount,
			category.SpentAmount, category.CreatedAt, category.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BudgetCategory, error) {
	query := squirrel.Select("id", "user_id", "category_name", "limit_amount", "spent_amount", "created_at", "updated_at").
		From("budget_categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var category models.BudgetCategory
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&category.ID, &category.UserID, &category.CategoryName, &category.LimitAmount,
		&category.SpentAmount, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.BudgetCategory, error) {
	query := squirrel.Select("id", "user_id", "category_name", "limit_amount", "spent_amount", "created_at", "updated_at").
		From("budget_categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("category_name ASC").
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

	var categories []*models.BudgetCategory
	for rows.Next() {
		var category models.BudgetCategory
		if err := rows.Scan(
			&category.ID, &category.UserID, &category.CategoryName, &category.LimitAmount,
			&category.SpentAmount, &category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

// ExistsByName matches case-insensitively, "Dining" and "dining" are the
// same budget.
func (r *CategoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("budget_categories").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Expr("LOWER(category_name) = LOWER(?)", name)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *CategoryRepository) UpdateLimit(ctx context.Context, id uuid.UUID, limit decimal.Decimal) error {
	query := squirrel.Update("budget_categories").
		Set("limit_amount", limit).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error {
	query := squirrel.Update("budget_categories").
		Set("spent_amount", spent).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("budget_categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
