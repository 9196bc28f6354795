package repositories

import "kedai/internal/models"

// AddressRepository defines the interface for address-book data access.
type AddressRepository interface {
	ListByUser(userID string) ([]models.Address, error)
	GetByID(id, userID string) (*models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id, userID string) error
	// SetDefault marks one address as the default and clears the flag on
	// every other address of the same user, atomically.
	SetDefault(id, userID string) error
}
