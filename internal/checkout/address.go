package checkout

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidAddress = errors.New("address requires fullName and address")

// AddressKind tells whether a saved address is used for shipping or billing.
type AddressKind string

const (
	AddressShipping AddressKind = "shipping"
	AddressBilling  AddressKind = "billing"
)

// SavedAddress is an address kept in the user's address book.
type SavedAddress struct {
	ID        string      `json:"id"`
	Type      AddressKind `json:"type"`
	FullName  string      `json:"fullName"`
	Company   string      `json:"company,omitempty"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	State     string      `json:"state"`
	ZIPCode   string      `json:"zipCode"`
	Country   string      `json:"country"`
	Phone     string      `json:"phone,omitempty"`
	Email     string      `json:"email,omitempty"`
	IsDefault bool        `json:"isDefault"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Normalize fills the address type and checks the required fields.
func (a *SavedAddress) Normalize() error {
	if a.Type != AddressBilling {
		a.Type = AddressShipping
	}
	if strings.TrimSpace(a.FullName) == "" || strings.TrimSpace(a.Address) == "" {
		return ErrInvalidAddress
	}
	return nil
}

// ApplyShipping pre-populates the shipping block of f from a saved address.
// The address type is not consulted; the caller picks the slot.
func ApplyShipping(f Form, a SavedAddress) Form {
	f.Shipping = &ShippingInfo{
		FullName: a.FullName,
		Company:  a.Company,
		Address:  a.Address,
		City:     a.City,
		State:    a.State,
		ZIPCode:  a.ZIPCode,
		Country:  a.Country,
		Phone:    a.Phone,
		Email:    a.Email,
	}
	return f
}

// ApplyBilling pre-populates the billing block of f from a saved address of
// any type and clears SameAsShipping.
func ApplyBilling(f Form, a SavedAddress) Form {
	f.Billing = BillingInfo{
		FullName: a.FullName,
		Company:  a.Company,
		Address:  a.Address,
		City:     a.City,
		State:    a.State,
		ZIPCode:  a.ZIPCode,
		Country:  a.Country,
	}
	return f
}
