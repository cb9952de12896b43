package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as plain JSON numbers, matching the client's schema.
	decimal.MarshalJSONWithoutQuotes = true
}

// CycleDays is the fixed length of a budget cycle. The end date of a cycle
// is always its start date plus CycleDays.
const CycleDays = 30

type Profile struct {
	UserID            uuid.UUID `db:"user_id"`
	FullName          string    `db:"full_name"`
	PreferredCurrency string    `db:"preferred_currency"`
	Occupation        *string   `db:"occupation"`
	Age               *int      `db:"age"`
	Timezone          *string   `db:"timezone"`
	// CycleDuration is fixed to "monthly" in the current design.
	CycleDuration   string    `db:"cycle_duration"`
	CycleStartDate  *string   `db:"cycle_start_date"` // YYYY-MM-DD
	CycleEndDate    *string   `db:"cycle_end_date"`   // YYYY-MM-DD
	BudgetAutoRenew bool      `db:"budget_auto_renew"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
