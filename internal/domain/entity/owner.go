package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultOwnerName is used when the identity provider does not supply a name.
	DefaultOwnerName = "Unknown User"
	// DefaultCurrency is the currency assigned to new owners and expenses.
	DefaultCurrency = "LKR"
)

// DefaultMonthlyBudgetLimit is the budget limit assigned to new owners.
var DefaultMonthlyBudgetLimit = decimal.NewFromInt(10000)

// IdentityClaims are the attributes asserted by the identity provider for a request.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Owner is the local account record for an external identity.
type Owner struct {
	ID                 uuid.UUID
	ExternalID         string
	Email              string
	Name               string
	Picture            string
	MonthlyBudgetLimit decimal.Decimal
	Currency           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOwner creates an Owner from identity claims, filling defaults for missing attributes.
func NewOwner(claims IdentityClaims, budgetLimit decimal.Decimal, currency string) *Owner {
	now := time.Now().UTC()

	email := claims.Email
	if email == "" {
		email = fmt.Sprintf("user-%s@temp.com", claims.Subject)
	}
	name := claims.Name
	if name == "" {
		name = DefaultOwnerName
	}
	if !budgetLimit.IsPositive() {
		budgetLimit = DefaultMonthlyBudgetLimit
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Owner{
		ID:                 uuid.New(),
		ExternalID:         claims.Subject,
		Email:              email,
		Name:               name,
		Picture:            claims.Picture,
		MonthlyBudgetLimit: budgetLimit,
		Currency:           currency,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ApplyClaims copies non-empty claim attributes that differ from the stored ones.
// It returns true when the owner changed.
func (o *Owner) ApplyClaims(claims IdentityClaims) bool {
	changed := false
	if claims.Email != "" && claims.Email != o.Email {
		o.Email = claims.Email
		changed = true
	}
	if claims.Name != "" && claims.Name != o.Name {
		o.Name = claims.Name
		changed = true
	}
	if claims.Picture != "" && claims.Picture != o.Picture {
		o.Picture = claims.Picture
		changed = true
	}
	if changed {
		o.UpdatedAt = time.Now().UTC()
	}
	return changed
}

// NormalizeCurrency upper-cases a three-letter currency code.
// It returns false when code is not three ASCII letters.
func NormalizeCurrency(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return code, true
}
