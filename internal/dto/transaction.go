package dto

import "github.com/shopspring/decimal"

// TransactionPayload is the normalized transaction shape shared by scan
// previews, manual saves and persisted rows. ID and timestamps are empty
// until the row is stored. TransactionItems is a serialized JSON array,
// clients parse it on their side.
type TransactionPayload struct {
	ID               string          `json:"id,omitempty"`
	UserID           string          `json:"user_id" validate:"required,uuid"`
	ReceiptID        *string         `json:"receipt_id,omitempty" validate:"omitempty,uuid"`
	TransactionItems string          `json:"transaction_items"`
	Merchant         *string         `json:"merchant"`
	TotalAmount      decimal.Decimal `json:"total_amount" validate:"required"`
	Currency         string          `json:"currency" validate:"required,len=3"`
	Category         *string         `json:"category"`
	TransactionDate  string          `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Notes            *string         `json:"notes,omitempty"`
	CreatedAt        string          `json:"created_at,omitempty"`
	UpdatedAt        string          `json:"updated_at,omitempty"`
}

type UpdateTransactionRequest struct {
	Merchant        *string          `json:"merchant,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	Currency        *string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Category        *string          `json:"category,omitempty"`
	TransactionDate *string          `json:"transaction_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes           *string          `json:"notes,omitempty"`
}

type TransactionListResponse struct {
	Success      bool                 `json:"success"`
	Transactions []TransactionPayload `json:"transactions"`
}

type TransactionResponse struct {
	Success     bool               `json:"success"`
	Transaction TransactionPayload `json:"transaction"`
}
