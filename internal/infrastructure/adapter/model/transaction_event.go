package model

import (
	"time"
)

// TransactionEvent is one row of the transaction audit trail. It has no foreign key
// to transactions so that it survives deletion.
type TransactionEvent struct {
	ID            string    `gorm:"primaryKey;size:64"`
	TransactionID string    `gorm:"not null;size:64;index"`
	Action        string    `gorm:"not null;size:32"`
	FromStatus    string    `gorm:"size:20"`
	ToStatus      string    `gorm:"size:20"`
	ActorID       string    `gorm:"not null;size:64"`
	ActorName     string    `gorm:"not null;size:255"`
	Note          string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for TransactionEvent
func (TransactionEvent) TableName() string {
	return "transaction_events"
}
