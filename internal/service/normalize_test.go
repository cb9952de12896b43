package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instabudget/internal/models"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"uppercase fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestNormalizeReceiptRejectsNonReceipt(t *testing.T) {
	raw := `{"is_receipt": false, "reason": "selfie"}`

	_, err := normalizeReceipt(raw, uuid.New(), nil, "USD", "2025-06-10")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Uploaded image is not recognized as a receipt", vErr.Message)
	assert.Equal(t, "selfie", vErr.Details)
}

func TestNormalizeReceiptUnparseable(t *testing.T) {
	_, err := normalizeReceipt("sorry, I cannot read this image", uuid.New(), nil, "USD", "2025-06-10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAIUnusable))
}

func TestNormalizeReceiptMissingFields(t *testing.T) {
	raw := `{"is_receipt": true, "merchant": "", "total_amount": null, "transaction_date": null}`

	_, err := normalizeReceipt(raw, uuid.New(), nil, "USD", "2025-06-10")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Could not extract transaction details", vErr.Message)
	assert.Contains(t, vErr.Details, "merchant")
	assert.Contains(t, vErr.Details, "total_amount")
	assert.Contains(t, vErr.Details, "transaction_date")
}

func TestNormalizeReceiptHappyPath(t *testing.T) {
	userID := uuid.New()
	receiptID := uuid.New()
	raw := "```json\n" + `{
		"is_receipt": true,
		"merchant": "Whole Foods",
		"total_amount": 62.40,
		"currency": "usd",
		"category": "groceries",
		"transaction_date": "2025-06-08",
		"items": [{"item": "Milk", "price": 3.99}, {"item": "Bread", "price": 2.49}],
		"notes": null
	}` + "\n```"

	payload, err := normalizeReceipt(raw, userID, &receiptID, "EUR", "2025-06-10")
	require.NoError(t, err)

	assert.Equal(t, userID.String(), payload.UserID)
	require.NotNil(t, payload.ReceiptID)
	assert.Equal(t, receiptID.String(), *payload.ReceiptID)
	require.NotNil(t, payload.Merchant)
	assert.Equal(t, "Whole Foods", *payload.Merchant)
	assert.Equal(t, "62.4", payload.TotalAmount.String())
	assert.Equal(t, "USD", payload.Currency)
	require.NotNil(t, payload.Category)
	assert.Equal(t, "groceries", *payload.Category)
	assert.Equal(t, "2025-06-08", payload.TransactionDate)

	items, err := models.DecodeItems(payload.TransactionItems)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Milk", items[0].Item)
	assert.Equal(t, "3.99", items[0].Price.String())
}

func TestNormalizeCategoryCoercion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"groceries", "groceries"},
		{"Groceries", "other"},
		{"DINING", "other"},
		{" dining ", "dining"},
		{"fast-food", "other"},
		{"", "other"},
		{"snacks", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			category := tt.raw
			raw := `{"is_receipt": true, "merchant": "M", "total_amount": 5, "transaction_date": "2025-06-01", "category": "` + category + `"}`
			payload, err := normalizeReceipt(raw, uuid.New(), nil, "USD", "2025-06-10")
			require.NoError(t, err)
			require.NotNil(t, payload.Category)
			assert.Equal(t, tt.want, *payload.Category)
		})
	}
}

func TestNormalizeMissingCategoryBecomesOther(t *testing.T) {
	raw := `{"is_receipt": true, "merchant": "M", "total_amount": 5, "transaction_date": "2025-06-01"}`

	payload, err := normalizeReceipt(raw, uuid.New(), nil, "USD", "2025-06-10")
	require.NoError(t, err)
	require.NotNil(t, payload.Category)
	assert.Equal(t, "other", *payload.Category)
}

func TestNormalizeDateFallsBackToToday(t *testing.T) {
	raw := `{"is_receipt": true, "merchant": "M", "total_amount": 5, "transaction_date": "June 8th"}`

	payload, err := normalizeReceipt(raw, uuid.New(), nil, "USD", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", payload.TransactionDate)
}

func TestNormalizeVoiceTimezoneSubstitution(t *testing.T) {
	// Late evening in Los Angeles: UTC has already rolled over to the 11th,
	// the caller is still on the 10th. The model answers with UTC today, the
	// payload must carry the caller's local today.
	raw := `{"is_transaction": true, "merchant": "Corner store", "total_amount": 12, "transaction_date": "2025-06-11"}`

	payload, err := normalizeVoice(raw, uuid.New(), "USD", "2025-06-11", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", payload.TransactionDate)
}

func TestNormalizeVoiceExplicitDateKept(t *testing.T) {
	raw := `{"is_transaction": true, "merchant": "Corner store", "total_amount": 12, "transaction_date": "2025-06-05"}`

	payload, err := normalizeVoice(raw, uuid.New(), "USD", "2025-06-11", "2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-05", payload.TransactionDate)
}

func TestNormalizeVoiceRejectsNonTransaction(t *testing.T) {
	raw := `{"is_transaction": false, "reason": "song lyrics"}`

	_, err := normalizeVoice(raw, uuid.New(), "USD", "2025-06-11", "2025-06-11")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "No transaction found in voice note", vErr.Message)
	assert.Equal(t, "song lyrics", vErr.Details)
}
