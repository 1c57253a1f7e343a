package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// OwnerModel represents the owners table in the database.
type OwnerModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ExternalID         string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email              string          `gorm:"type:varchar(255);not null;index"`
	Name               string          `gorm:"type:varchar(100);not null"`
	Picture            string          `gorm:"type:text"`
	MonthlyBudgetLimit decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency           string          `gorm:"type:varchar(3);not null;default:'LKR'"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the OwnerModel.
func (OwnerModel) TableName() string {
	return "owners"
}

// ToEntity converts an OwnerModel to a domain Owner entity.
func (m *OwnerModel) ToEntity() *entity.Owner {
	return &entity.Owner{
		ID:                 m.ID,
		ExternalID:         m.ExternalID,
		Email:              m.Email,
		Name:               m.Name,
		Picture:            m.Picture,
		MonthlyBudgetLimit: m.MonthlyBudgetLimit,
		Currency:           m.Currency,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// OwnerFromEntity creates an OwnerModel from a domain Owner entity.
func OwnerFromEntity(owner *entity.Owner) *OwnerModel {
	return &OwnerModel{
		ID:                 owner.ID,
		ExternalID:         owner.ExternalID,
		Email:              owner.Email,
		Name:               owner.Name,
		Picture:            owner.Picture,
		MonthlyBudgetLimit: owner.MonthlyBudgetLimit,
		Currency:           owner.Currency,
		CreatedAt:          owner.CreatedAt,
		UpdatedAt:          owner.UpdatedAt,
	}
}
