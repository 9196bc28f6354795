package repositories

import "kedai/internal/models"

// CartRepository defines the interface for cart data access.
// Save persists the cart's items and its total together, so a recomputed
// total is never visible without the item set it was derived from.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
}
