package service

import (
	"context"
	"instabudget/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persistence interfaces consumed by the services. The pgx repositories
// satisfy them in production, tests inject stubs.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}

type ProfileStore interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateCycle(ctx context.Context, userID uuid.UUID, startDate, endDate string) error
}

type CategoryStore interface {
	Create(ctx context.Context, category *models.BudgetCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BudgetCategory, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.BudgetCategory, error)
	ExistsByName(ctx context.Context, userID uuid.UUID, name string) (bool, error)
	UpdateLimit(ctx context.Context, id uuid.UUID, limit decimal.Decimal) error
	UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReceiptStore interface {
	Create(ctx context.Context, receipt *models.Receipt) error
}

// ObjectStore abstracts the upload directory.
type ObjectStore interface {
	BuildKey(userID uuid.UUID, filename string) string
	Save(key string, data []byte) error
}
