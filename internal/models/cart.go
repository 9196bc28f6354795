package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is a single line in a user's cart. Items marked saved-for-later
// are kept in the cart but excluded from the total and from checkout.
type CartItem struct {
	ID              string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID          string `json:"-" gorm:"index;type:varchar(36)"`
	ProductID       string `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity        int    `json:"quantity" validate:"required,min=1"`
	IsSavedForLater bool   `json:"is_saved_for_later"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	gorm.Model
}

// Cart holds the candidate purchase items for one user. Total is derived:
// it is recomputed from live product prices before every save and is never
// set independently.
type Cart struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"` // one cart per user
	Items      []CartItem      `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	gorm.Model
}

// ActiveItems returns the items that participate in the total and in
// checkout, i.e. everything not saved for later.
func (c *Cart) ActiveItems() []CartItem {
	active := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if !item.IsSavedForLater {
			active = append(active, item)
		}
	}
	return active
}

// SavedItems returns the saved-for-later subset, which survives checkout.
func (c *Cart) SavedItems() []CartItem {
	saved := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.IsSavedForLater {
			saved = append(saved, item)
		}
	}
	return saved
}
