package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// TaxRate is a percentage tax charged on the item total.
// A nil CountryID applies everywhere.
type TaxRate struct {
	ID              uuid.UUID
	Name            string
	Rate            decimal.Decimal // fraction, 0.08 means 8%
	CountryID       *uuid.UUID
	IncludedInPrice bool
}

// NewTaxRate creates a tax rate
func NewTaxRate(name string, rate decimal.Decimal, countryID *uuid.UUID) (*TaxRate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax rate name cannot be empty")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_RATE", "Tax rate must be between 0 and 1")
	}
	return &TaxRate{ID: uuid.New(), Name: name, Rate: rate, CountryID: countryID}, nil
}

// AppliesTo reports whether the rate applies to an address in the country
func (r *TaxRate) AppliesTo(countryID *uuid.UUID) bool {
	if r.CountryID == nil {
		return true
	}
	return countryID != nil && *countryID == *r.CountryID
}

// Compute returns the tax due on amount, rounded to cents
func (r *TaxRate) Compute(amount decimal.Decimal) decimal.Decimal {
	if r.IncludedInPrice {
		// tax already inside the price: amount - amount/(1+rate)
		return amount.Sub(amount.Div(decimal.NewFromInt(1).Add(r.Rate))).Round(2)
	}
	return amount.Mul(r.Rate).Round(2)
}

// Label renders the adjustment label, e.g. "Sales Tax 8%"
func (r *TaxRate) Label() string {
	return fmt.Sprintf("%s %s%%", r.Name, r.Rate.Mul(decimal.NewFromInt(100)).String())
}
