package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"instabudget/internal/dto"
	"instabudget/internal/models"
)

// ValidationError carries a client-facing rejection with optional detail,
// handlers map it to 400.
type ValidationError struct {
	Message string
	Details interface{}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// extractionCandidate is the raw shape the model is prompted to return.
// Every field is optional, normalization decides what is fatal.
type extractionCandidate struct {
	IsReceipt       *bool                    `json:"is_receipt"`
	IsTransaction   *bool                    `json:"is_transaction"`
	Reason          string                   `json:"reason"`
	Merchant        *string                  `json:"merchant"`
	TotalAmount     *decimal.Decimal         `json:"total_amount"`
	Currency        *string                  `json:"currency"`
	Category        *string                  `json:"category"`
	TransactionDate *string                  `json:"transaction_date"`
	Items           []models.TransactionItem `json:"items"`
	Notes           *string                  `json:"notes"`
}

var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// stripFences removes markdown code fences the model sometimes wraps
// around its JSON despite being told not to.
func stripFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

func parseCandidate(raw string) (*extractionCandidate, error) {
	cleaned := stripFences(raw)

	var candidate extractionCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnusable, err)
	}
	return &candidate, nil
}

const dateLayout = "2006-01-02"

// normalizeDate returns the candidate date when it is a well-formed
// calendar date, otherwise today. The voice path additionally corrects
// for the model answering in UTC: when it says "today" in UTC terms and
// the caller's local date differs, the local date wins.
func normalizeDate(candidate *string, utcToday, localToday string) string {
	if candidate == nil {
		return localToday
	}
	parsed, err := time.Parse(dateLayout, *candidate)
	if err != nil || parsed.Format(dateLayout) != *candidate {
		return localToday
	}
	if *candidate == utcToday && localToday != utcToday {
		return localToday
	}
	return *candidate
}

func normalizeCurrency(candidate *string, fallback string) string {
	if candidate == nil {
		return fallback
	}
	currency := strings.ToUpper(strings.TrimSpace(*candidate))
	if len(currency) != 3 {
		return fallback
	}
	return currency
}

// normalizeReceipt turns a raw model answer from the receipt scan into a
// transaction payload, rejecting non-receipt images and incomplete
// extractions.
func normalizeReceipt(raw string, userID uuid.UUID, receiptID *uuid.UUID, fallbackCurrency, today string) (*dto.TransactionPayload, error) {
	candidate, err := parseCandidate(raw)
	if err != nil {
		return nil, err
	}

	if candidate.IsReceipt != nil && !*candidate.IsReceipt {
		return nil, &ValidationError{
			Message: "Uploaded image is not recognized as a receipt",
			Details: candidate.Reason,
		}
	}

	return buildPayload(candidate, userID, receiptID, fallbackCurrency, today, today)
}

// normalizeVoice does the same for a transcribed voice note.
func normalizeVoice(raw string, userID uuid.UUID, fallbackCurrency, utcToday, localToday string) (*dto.TransactionPayload, error) {
	candidate, err := parseCandidate(raw)
	if err != nil {
		return nil, err
	}

	if candidate.IsTransaction != nil && !*candidate.IsTransaction {
		return nil, &ValidationError{
			Message: "No transaction found in voice note",
			Details: candidate.Reason,
		}
	}

	return buildPayload(candidate, userID, nil, fallbackCurrency, utcToday, localToday)
}

func buildPayload(candidate *extractionCandidate, userID uuid.UUID, receiptID *uuid.UUID, fallbackCurrency, utcToday, localToday string) (*dto.TransactionPayload, error) {
	var missing []string
	if candidate.Merchant == nil || strings.TrimSpace(*candidate.Merchant) == "" {
		missing = append(missing, "merchant")
	}
	if candidate.TotalAmount == nil || candidate.TotalAmount.LessThanOrEqual(decimal.Zero) {
		missing = append(missing, "total_amount")
	}
	if candidate.TransactionDate == nil {
		missing = append(missing, "transaction_date")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Message: "Could not extract transaction details",
			Details: fmt.Sprintf("missing or invalid fields: %s", strings.Join(missing, ", ")),
		}
	}

	merchant := strings.TrimSpace(*candidate.Merchant)

	// Matching is exact: anything outside the closed set, a case variant
	// included, becomes "other". A missing category does too.
	normalized := string(models.CategoryOther)
	if candidate.Category != nil {
		normalized = string(models.NormalizeCategory(strings.TrimSpace(*candidate.Category)))
	}
	category := &normalized

	items, err := models.EncodeItems(candidate.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnusable, err)
	}

	var receiptIDStr *string
	if receiptID != nil {
		s := receiptID.String()
		receiptIDStr = &s
	}

	return &dto.TransactionPayload{
		UserID:           userID.String(),
		ReceiptID:        receiptIDStr,
		TransactionItems: items,
		Merchant:         &merchant,
		TotalAmount:      *candidate.TotalAmount,
		Currency:         normalizeCurrency(candidate.Currency, fallbackCurrency),
		Category:         category,
		TransactionDate:  normalizeDate(candidate.TransactionDate, utcToday, localToday),
		Notes:            candidate.Notes,
	}, nil
}
