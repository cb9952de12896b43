package dto

import "instabudget/internal/models"

type UpsertProfileRequest struct {
	UserID            string  `json:"user_id" validate:"required,uuid"`
	FullName          string  `json:"full_name" validate:"required,max=120"`
	PreferredCurrency string  `json:"preferred_currency" validate:"required,len=3"`
	Occupation        *string `json:"occupation,omitempty" validate:"omitempty,max=120"`
	Age               *int    `json:"age,omitempty" validate:"omitempty,gte=13,lte=120"`
	Timezone          *string `json:"timezone,omitempty"`
	BudgetAutoRenew   *bool   `json:"budget_auto_renew,omitempty"`
}

type ProfileResponse struct {
	Success bool            `json:"success"`
	Profile *models.Profile `json:"profile"`
}
