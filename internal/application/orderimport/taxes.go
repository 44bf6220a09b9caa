package orderimport

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
)

// TaxCalculator adds automatic tax adjustments for the rates that apply to
// the order's ship country
type TaxCalculator struct {
	rates  order.TaxRateRepository
	orders order.OrderRepository
}

// NewTaxCalculator creates a TaxCalculator
func NewTaxCalculator(rates order.TaxRateRepository, orders order.OrderRepository) *TaxCalculator {
	return &TaxCalculator{rates: rates, orders: orders}
}

// Apply creates one unlocked tax adjustment per applicable rate and returns
// how many were created. Rates that compute to zero are skipped.
func (c *TaxCalculator) Apply(ctx context.Context, o *order.Order, shipCountryID *uuid.UUID) (int, error) {
	rates, err := c.rates.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("order import taxes: list tax rates: %w", err)
	}

	created := 0
	for idx := range rates {
		rate := &rates[idx]
		if !rate.AppliesTo(shipCountryID) {
			continue
		}
		amount := rate.Compute(o.ItemTotal)
		if amount.IsZero() {
			continue
		}

		adj, err := order.NewOrderAdjustment(o.ID, amount, rate.Label(), order.SourceTax)
		if err != nil {
			return created, fmt.Errorf("order import taxes: %w", err)
		}
		if err := c.orders.SaveAdjustment(ctx, adj); err != nil {
			return created, fmt.Errorf("order import taxes: %w", err)
		}
		if err := o.AddAdjustment(adj); err != nil {
			return created, fmt.Errorf("order import taxes: %w", err)
		}
		created++
	}
	return created, nil
}
