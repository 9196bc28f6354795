package repositories

import "kedai/internal/models"

// OrderRepository defines the interface for order data access. Lookups are
// scoped to the owning user, so a foreign order behaves like a missing one.
type OrderRepository interface {
	ListByUser(userID string) ([]models.Order, error)
	GetByID(id, userID string) (*models.Order, error)
	Create(order *models.Order) error
	// CreateAndClearCart persists a new order and truncates the cart to its
	// saved-for-later items atomically: both writes succeed or neither does.
	CreateAndClearCart(order *models.Order, cart *models.Cart) error
	UpdateStatus(id, status string) error
}
