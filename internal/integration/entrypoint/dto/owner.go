package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/owner"
)

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Name               *string          `json:"name,omitempty"`
	MonthlyBudgetLimit *decimal.Decimal `json:"monthly_budget_limit,omitempty"`
	Currency           *string          `json:"currency,omitempty"`
}

// ProfileResponse represents the authenticated owner's profile.
type ProfileResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Picture            string    `json:"picture,omitempty"`
	MonthlyBudgetLimit string    `json:"monthly_budget_limit"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToProfileResponse converts a ProfileOutput to a ProfileResponse DTO.
func ToProfileResponse(profile *owner.ProfileOutput) ProfileResponse {
	return ProfileResponse{
		ID:                 profile.ID.String(),
		Email:              profile.Email,
		Name:               profile.Name,
		Picture:            profile.Picture,
		MonthlyBudgetLimit: profile.MonthlyBudgetLimit.StringFixed(2),
		Currency:           profile.Currency,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
}
