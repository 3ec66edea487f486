package model

import (
	"time"
)

// User represents the database model for back-office users
type User struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"not null;size:255"`
	Email     string    `gorm:"not null;size:255;uniqueIndex"`
	Role      string    `gorm:"not null;size:32;index"`
	Agency    string    `gorm:"size:100"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
