package order

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Address is a postal address stored on an order.
// StateID is set when the region matched reference data, StateName otherwise.
type Address struct {
	Firstname string
	Lastname  string
	Company   string
	Address1  string
	Address2  string
	City      string
	Zipcode   string
	Phone     string
	CountryID uuid.UUID
	StateID   *uuid.UUID
	StateName string
}

// Validate checks the address has a resolved country
func (a *Address) Validate() error {
	if a.CountryID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDRESS", "Address country is required")
	}
	if a.StateID != nil && *a.StateID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADDRESS", "Address state id cannot be empty")
	}
	return nil
}

// FullName joins first and last name
func (a *Address) FullName() string {
	switch {
	case a.Firstname == "":
		return a.Lastname
	case a.Lastname == "":
		return a.Firstname
	}
	return a.Firstname + " " + a.Lastname
}
