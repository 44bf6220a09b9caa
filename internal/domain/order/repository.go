package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository persists the order aggregate and its children.
// Child Save* methods write a single row so importers can persist as they go.
type OrderRepository interface {
	// Create inserts the order header
	Create(ctx context.Context, order *Order) error
	// Save updates the order header, addresses and totals
	Save(ctx context.Context, order *Order) error
	// Delete removes the order and everything it owns. Deleting a missing order is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByID loads the order with all associations
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	SaveLineItem(ctx context.Context, item *LineItem) error
	// SaveShipment writes the shipment, its inventory units and its cost adjustment
	SaveShipment(ctx context.Context, shipment *Shipment) error
	SavePayment(ctx context.Context, payment *Payment) error
	SaveAdjustment(ctx context.Context, adjustment *Adjustment) error
	// DeleteTaxAdjustments removes all tax adjustments of the order and returns the count
	DeleteTaxAdjustments(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// ShippingMethodRepository looks up shipping methods by exact name
type ShippingMethodRepository interface {
	FindByName(ctx context.Context, name string) (*ShippingMethod, error)
	Save(ctx context.Context, method *ShippingMethod) error
}

// PaymentMethodRepository looks up payment methods by exact name
type PaymentMethodRepository interface {
	FindByName(ctx context.Context, name string) (*PaymentMethod, error)
	Save(ctx context.Context, method *PaymentMethod) error
}

// TaxRateRepository lists tax rates
type TaxRateRepository interface {
	FindAll(ctx context.Context) ([]TaxRate, error)
	Save(ctx context.Context, rate *TaxRate) error
}
