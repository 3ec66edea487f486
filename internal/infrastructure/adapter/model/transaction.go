package model

import (
	"time"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID                string         `gorm:"primaryKey;size:64"`
	Type              string         `gorm:"not null;size:20"`
	Status            string         `gorm:"not null;size:20;index"`
	Description       string         `gorm:"type:text"`
	Amount            int64          `gorm:"not null"`
	Currency          string         `gorm:"not null;size:3"`
	CreatedBy         string         `gorm:"not null;size:255"`
	CreatedByID       string         `gorm:"not null;size:64;index"`
	Agency            string         `gorm:"size:100;index"`
	Details           map[string]any `gorm:"serializer:json;type:jsonb"`
	RejectionReason   *string        `gorm:"type:text"`
	RealAmountEUR     *int64         `gorm:"column:real_amount_eur"`
	CommissionAmount  *int64
	ExecutorID        *string `gorm:"size:64;index"`
	ExecutedAt        *time.Time
	ReceiptURL        *string `gorm:"column:receipt_url;type:text"`
	ExecutorComment   *string `gorm:"type:text"`
	DeleteValidatedBy *string `gorm:"size:255"`
	DeleteValidatedAt *time.Time
	CreatedAt         time.Time `gorm:"not null;index"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
