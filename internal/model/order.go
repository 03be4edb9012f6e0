package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Cash-on-delivery completes immediately; any other payment
// method stays pending until an external confirmation step (absent here).
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"

	PaymentCashOnDelivery = "cod"
)

// Order is a customer's checked-out cart. Items is an immutable snapshot.
type Order struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	Items         LineItems       `gorm:"type:jsonb" json:"items"`
	Status        string          `gorm:"type:varchar(50);default:'pending'" json:"status"`
}
