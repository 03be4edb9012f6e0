package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an admin-initiated point-of-sale transaction. Items is an
// immutable snapshot, never mutated after creation.
type Sale struct {
	BaseModel
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Items       LineItems       `gorm:"type:jsonb" json:"items"`
}
