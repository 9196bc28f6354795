package services

import (
	"errors"
	"fmt"

	"kedai/internal/models"
	"kedai/internal/repositories"

	"gorm.io/gorm"
)

// AddressService handles business logic for the per-user address book:
// at most three addresses, exactly one of them the default.
type AddressService struct {
	addressRepo repositories.AddressRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
	}
}

// ListAddresses retrieves all addresses of a user.
func (s *AddressService) ListAddresses(userID string) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// AddAddress adds an address to the user's book. The first address becomes
// the default automatically.
func (s *AddressService) AddAddress(userID string, address *models.Address) error {
	existing, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(existing) >= models.MaxAddressesPerUser {
		return ErrAddressLimit
	}

	address.UserID = userID
	if address.Country == "" {
		address.Country = "India"
	}
	address.IsDefault = len(existing) == 0

	if err := s.addressRepo.Create(address); err != nil {
		return fmt.Errorf("failed to add address: %w", err)
	}
	return nil
}

// UpdateAddress updates an existing address of the user.
func (s *AddressService) UpdateAddress(userID string, address *models.Address) error {
	current, err := s.getOwnedAddress(userID, address.ID)
	if err != nil {
		return err
	}
	address.UserID = userID
	address.IsDefault = current.IsDefault
	if address.Country == "" {
		address.Country = current.Country
	}
	if err := s.addressRepo.Update(address); err != nil {
		return fmt.Errorf("failed to update address %s: %w", address.ID, err)
	}
	return nil
}

// DeleteAddress removes an address. If the default was deleted, another
// address (when one remains) takes over as default.
func (s *AddressService) DeleteAddress(userID, id string) error {
	address, err := s.getOwnedAddress(userID, id)
	if err != nil {
		return err
	}
	if err := s.addressRepo.Delete(id, userID); err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	if !address.IsDefault {
		return nil
	}
	remaining, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		return s.addressRepo.SetDefault(remaining[0].ID, userID)
	}
	return nil
}

// SetDefaultAddress makes the given address the user's default.
func (s *AddressService) SetDefaultAddress(userID, id string) error {
	if err := s.addressRepo.SetDefault(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	return nil
}

func (s *AddressService) getOwnedAddress(userID, id string) (*models.Address, error) {
	address, err := s.addressRepo.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}
