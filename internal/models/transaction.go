package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	ReceiptID       *uuid.UUID      `db:"receipt_id"`
	Merchant        *string         `db:"merchant"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	Currency        string          `db:"currency"`
	Category        *string         `db:"category"`
	TransactionDate string          `db:"transaction_date"` // YYYY-MM-DD
	Notes           *string         `db:"notes"`
	// Items is the serialized JSON array of line items. The column stays a
	// string; EncodeItems/DecodeItems are the single conversion boundary.
	Items     string    `db:"transaction_items"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TransactionItem struct {
	Item  string          `json:"item"`
	Price decimal.Decimal `json:"price"`
}

// EncodeItems serializes line items for the transaction_items column.
// A nil slice encodes as "[]".
func EncodeItems(items []TransactionItem) (string, error) {
	if items == nil {
		items = []TransactionItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeItems parses the transaction_items column. Empty input decodes as
// an empty slice rather than an error, matching how absent item lists are
// stored.
func DecodeItems(encoded string) ([]TransactionItem, error) {
	if encoded == "" {
		return []TransactionItem{}, nil
	}
	var items []TransactionItem
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []TransactionItem{}
	}
	return items, nil
}
