package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"instabudget/internal/models"
)

var errStubNotFound = errors.New("not found")

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type stubAIClient struct {
	textResponse  string
	mediaResponse string
	err           error
	prompts       []string
}

func (s *stubAIClient) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.textResponse, nil
}

func (s *stubAIClient) GenerateWithMedia(_ context.Context, prompt string, _ []byte, _ string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.mediaResponse, nil
}

type stubTransactionStore struct {
	txs     []*models.Transaction
	created []*models.Transaction
	updated []*models.Transaction
	deleted []uuid.UUID
	err     error
}

func (s *stubTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, tx)
	s.txs = append(s.txs, tx)
	return nil
}

func (s *stubTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, errStubNotFound
}

func (s *stubTransactionStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *stubTransactionStore) ListByUserInRange(_ context.Context, userID uuid.UUID, from, to string) ([]*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID && tx.TransactionDate >= from && tx.TransactionDate <= to {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *stubTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	s.updated = append(s.updated, tx)
	return nil
}

func (s *stubTransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubProfileStore struct {
	profile      *models.Profile
	upserted     *models.Profile
	cycleUpdates []string
	err          error
}

func (s *stubProfileStore) Upsert(_ context.Context, profile *models.Profile) error {
	if s.err != nil {
		return s.err
	}
	s.upserted = profile
	s.profile = profile
	return nil
}

func (s *stubProfileStore) GetByUserID(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.profile == nil {
		return nil, errStubNotFound
	}
	return s.profile, nil
}

func (s *stubProfileStore) UpdateCycle(_ context.Context, _ uuid.UUID, startDate, endDate string) error {
	s.cycleUpdates = append(s.cycleUpdates, startDate, endDate)
	return nil
}

type stubCategoryStore struct {
	categories   []*models.BudgetCategory
	created      []*models.BudgetCategory
	spentUpdates map[uuid.UUID]decimal.Decimal
	limitUpdates map[uuid.UUID]decimal.Decimal
	deleted      []uuid.UUID
	err          error
}

func newStubCategoryStore(categories ...*models.BudgetCategory) *stubCategoryStore {
	return &stubCategoryStore{
		categories:   categories,
		spentUpdates: map[uuid.UUID]decimal.Decimal{},
		limitUpdates: map[uuid.UUID]decimal.Decimal{},
	}
}

func (s *stubCategoryStore) Create(_ context.Context, category *models.BudgetCategory) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, category)
	s.categories = append(s.categories, category)
	return nil
}

func (s *stubCategoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.BudgetCategory, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errStubNotFound
}

func (s *stubCategoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.BudgetCategory, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.BudgetCategory
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCategoryStore) ExistsByName(_ context.Context, userID uuid.UUID, name string) (bool, error) {
	for _, c := range s.categories {
		if c.UserID == userID && c.CategoryName == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubCategoryStore) UpdateLimit(_ context.Context, id uuid.UUID, limit decimal.Decimal) error {
	s.limitUpdates[id] = limit
	return nil
}

func (s *stubCategoryStore) UpdateSpent(_ context.Context, id uuid.UUID, spent decimal.Decimal) error {
	s.spentUpdates[id] = spent
	return nil
}

func (s *stubCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubReceiptStore struct {
	created []*models.Receipt
	err     error
}

func (s *stubReceiptStore) Create(_ context.Context, receipt *models.Receipt) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, receipt)
	return nil
}

type stubObjectStore struct {
	saved map[string][]byte
	err   error
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{saved: map[string][]byte{}}
}

func (s *stubObjectStore) BuildKey(userID uuid.UUID, filename string) string {
	return "user-" + userID.String() + "/" + filename
}

func (s *stubObjectStore) Save(key string, data []byte) error {
	if s.err != nil {
		return s.err
	}
	s.saved[key] = data
	return nil
}
