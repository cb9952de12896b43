package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"instabudget/internal/dto"
	"instabudget/internal/models"
	"instabudget/internal/utils"
)

func newScanFixture(aiResponse string) (*ScanService, *stubTransactionStore, *stubReceiptStore, *stubObjectStore) {
	ai := &stubAIClient{mediaResponse: aiResponse}
	transactions := &stubTransactionStore{}
	receipts := &stubReceiptStore{}
	store := newStubObjectStore()
	profiles := &stubProfileStore{profile: &models.Profile{PreferredCurrency: "USD"}}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)}
	svc := NewScanService(ai, receipts, transactions, profiles, store, clock, zap.NewNop())
	return svc, transactions, receipts, store
}

const validReceiptJSON = `{
	"is_receipt": true,
	"merchant": "Trader Joe's",
	"total_amount": 38.15,
	"currency": "USD",
	"category": "groceries",
	"transaction_date": "2025-06-09",
	"items": [{"item": "Eggs", "price": 4.99}]
}`

func TestScanReceiptAutoPersists(t *testing.T) {
	svc, transactions, receipts, store := newScanFixture(validReceiptJSON)
	userID := uuid.New()

	resp, err := svc.ScanReceipt(context.Background(), userID, "receipt.jpg", []byte("img"), true)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, ModeAuto, resp.Mode)
	assert.NotEmpty(t, resp.Transaction.ID)

	require.Len(t, transactions.created, 1)
	saved := transactions.created[0]
	require.NotNil(t, saved.Merchant)
	assert.Equal(t, "Trader Joe's", *saved.Merchant)
	assert.Equal(t, "38.15", saved.TotalAmount.String())
	assert.Equal(t, "2025-06-09", saved.TransactionDate)

	// Upload stored and receipt row linked to the transaction.
	require.Len(t, receipts.created, 1)
	assert.Len(t, store.saved, 1)
	require.NotNil(t, saved.ReceiptID)
	assert.Equal(t, receipts.created[0].ID, *saved.ReceiptID)
}

func TestScanReceiptPreviewWritesNothing(t *testing.T) {
	svc, transactions, receipts, _ := newScanFixture(validReceiptJSON)

	resp, err := svc.ScanReceipt(context.Background(), uuid.New(), "receipt.jpg", []byte("img"), false)
	require.NoError(t, err)

	assert.Equal(t, ModePreview, resp.Mode)
	assert.Empty(t, resp.Transaction.ID)
	assert.Empty(t, transactions.created)
	// The upload itself is still stored.
	assert.Len(t, receipts.created, 1)
}

func TestScanReceiptRejectsSelfie(t *testing.T) {
	svc, transactions, _, _ := newScanFixture(`{"is_receipt": false, "reason": "selfie"}`)

	_, err := svc.ScanReceipt(context.Background(), uuid.New(), "selfie.jpg", []byte("img"), true)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Uploaded image is not recognized as a receipt", vErr.Message)
	assert.Equal(t, "selfie", vErr.Details)
	assert.Empty(t, transactions.created)
}

func TestScanReceiptAIFailure(t *testing.T) {
	svc, transactions, _, _ := newScanFixture("")
	svc.ai.(*stubAIClient).err = ErrAIUnavailable

	_, err := svc.ScanReceipt(context.Background(), uuid.New(), "receipt.jpg", []byte("img"), true)
	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Empty(t, transactions.created)
}

func TestSaveManualNormalizesCategory(t *testing.T) {
	svc, transactions, _, _ := newScanFixture("")
	userID := uuid.New()

	merchant := "Corner store"
	category := "Groceries"
	payload := &dto.TransactionPayload{
		UserID:          userID.String(),
		Merchant:        &merchant,
		TotalAmount:     decimalFromString(t, "12.50"),
		Currency:        "USD",
		Category:        &category,
		TransactionDate: "2025-06-09",
	}

	saved, err := svc.SaveManual(context.Background(), payload)
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	require.NotNil(t, saved.Category)
	assert.Equal(t, "other", *saved.Category)
	assert.Equal(t, "[]", saved.TransactionItems)
	require.Len(t, transactions.created, 1)
}

func TestSaveManualRejectsBadUserID(t *testing.T) {
	svc, transactions, _, _ := newScanFixture("")

	_, err := svc.SaveManual(context.Background(), &dto.TransactionPayload{
		UserID:          "not-a-uuid",
		TotalAmount:     decimalFromString(t, "5"),
		Currency:        "USD",
		TransactionDate: "2025-06-09",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, transactions.created)
}

func TestItemsRoundTrip(t *testing.T) {
	svc, transactions, _, _ := newScanFixture(validReceiptJSON)

	resp, err := svc.ScanReceipt(context.Background(), uuid.New(), "receipt.jpg", []byte("img"), true)
	require.NoError(t, err)

	items, err := models.DecodeItems(resp.Transaction.TransactionItems)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Eggs", items[0].Item)
	assert.Equal(t, "4.99", items[0].Price.String())

	stored, err := models.DecodeItems(transactions.created[0].Items)
	require.NoError(t, err)
	assert.Equal(t, items, stored)
}
