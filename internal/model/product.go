package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Category    string          `gorm:"type:varchar(50)" json:"category"`
	ImageURL    string          `gorm:"type:varchar(200)" json:"image_url"`
}
