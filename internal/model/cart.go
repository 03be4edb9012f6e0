package model

import "github.com/google/uuid"

// CartItem is a transient line item owned by a user. One row per
// (user, product); repeat adds merge into the existing row.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id" validate:"uuid_required"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id" validate:"uuid_required"`
	Product   Product   `json:"product" validate:"-"` // Relation - skip validation
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
