package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the store.
type Product struct {
	ID            string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string           `json:"name" validate:"required,min=3,max=100"`
	Description   string           `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(10,2)"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty" gorm:"type:decimal(10,2)"`
	Stock         int              `json:"stock" validate:"gte=0"`
	gorm.Model                     // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// EffectivePrice returns the price a customer actually pays: the discount
// price when one is set and positive, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}
