package repository

import (
	"context"
	"instabudget/internal/models"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	start, err := stringPtrToDate(profile.CycleStartDate)
	if err != nil {
		return err
	}
	end, err := stringPtrToDate(profile.CycleEndDate)
	if err != nil {
		return err
	}

	query := squirrel.Insert("profiles").
		Columns("user_id", "full_name", "preferred_currency", "occupation", "age", "timezone",
			"cycle_duration", "cycle_start_date", "cycle_end_date", "budget_auto_renew",
			"created_at", "updated_at").
		Values(profile.UserID, profile.FullName, profile.PreferredCurrency, profile.Occupation,
			profile.Age, profile.Timezone, profile.CycleDuration, start, end,
			profile.BudgetAutoRenew, profile.CreatedAt, profile.UpdatedAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			preferred_currency = EXCLUDED.preferred_currency,
			occupation = EXCLUDED.occupation,
			age = EXCLUDED.age,
			timezone = EXCLUDED.timezone,
			budget_auto_renew = EXCLUDED.budget_auto_renew,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := squirrel.Select("user_id", "full_name", "preferred_currency", "occupation", "age", "timezone",
		"cycle_duration", "cycle_start_date", "cycle_end_date", "budget_auto_renew",
		"created_at", "updated_at").
		From("profiles").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	var start, end *time.Time
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&profile.UserID, &profile.FullName, &profile.PreferredCurrency, &profile.Occupation,
		&profile.Age, &profile.Timezone, &profile.CycleDuration, &start, &end,
		&profile.BudgetAutoRenew, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.CycleStartDate = datePtrToString(start)
	profile.CycleEndDate = datePtrToString(end)
	return &profile, nil
}

// UpdateCycle moves the budget cycle window without touching any other
// profile fields.
func (r *ProfileRepository) UpdateCycle(ctx context.Context, userID uuid.UUID, startDate, endDate string) error {
	start, err := stringToDate(startDate)
	if err != nil {
		return err
	}
	end, err := stringToDate(endDate)
	if err != nil {
		return err
	}

	query := squirrel.Update("profiles").
		Set("cycle_start_date", start).
		Set("cycle_end_date", end).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
