package models

import "gorm.io/gorm"

// MaxAddressesPerUser caps the size of a user's address book.
const MaxAddressesPerUser = 3

// Address is one entry in a user's address book. At most three addresses
// per user, exactly one of which is the default.
type Address struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string `json:"user_id" gorm:"index;type:varchar(36)"`
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	Country      string `json:"country"`
	Phone        string `json:"phone" validate:"required"`
	IsDefault    bool   `json:"is_default"`
	gorm.Model
}
