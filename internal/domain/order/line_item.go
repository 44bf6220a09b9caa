package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// LineItem is a priced quantity of one variant on an order
type LineItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	VariantID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLineItem creates a line item
func NewLineItem(orderID, variantID uuid.UUID, quantity int, price decimal.Decimal) (*LineItem, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	item := &LineItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		VariantID: variantID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Increase adds quantity to the line item
func (i *LineItem) Increase(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	return nil
}

// OverridePrice replaces the unit price taken from the variant
func (i *LineItem) OverridePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Price = price
	i.UpdatedAt = time.Now()
	return nil
}

// Amount is quantity times unit price
func (i *LineItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks quantity and price
func (i *LineItem) Validate() error {
	if i.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
