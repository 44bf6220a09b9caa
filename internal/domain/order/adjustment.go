package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// AdjustableType says what an adjustment is attached to
type AdjustableType string

const (
	AdjustableOrder    AdjustableType = "order"
	AdjustableShipment AdjustableType = "shipment"
)

// AdjustmentSource classifies where an adjustment came from
type AdjustmentSource string

const (
	SourceManual   AdjustmentSource = "manual"
	SourceShipping AdjustmentSource = "shipping"
	SourceTax      AdjustmentSource = "tax"
)

// Adjustment is a monetary modifier (fee, discount, tax) on an order or shipment.
// A locked adjustment keeps its amount when totals are recalculated.
type Adjustment struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	AdjustableType AdjustableType
	AdjustableID   uuid.UUID
	Amount         decimal.Decimal
	Label          string
	Source         AdjustmentSource
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAdjustment creates an unlocked adjustment
func NewAdjustment(orderID uuid.UUID, adjustableType AdjustableType, adjustableID uuid.UUID, amount decimal.Decimal, label string, source AdjustmentSource) (*Adjustment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if adjustableType != AdjustableOrder && adjustableType != AdjustableShipment {
		return nil, shared.NewDomainError("INVALID_ADJUSTABLE", "Adjustment must belong to an order or a shipment")
	}
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Adjustment label cannot be empty")
	}
	if len(label) > 255 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Adjustment label cannot exceed 255 characters")
	}
	now := time.Now()
	return &Adjustment{
		ID:             uuid.New(),
		OrderID:        orderID,
		AdjustableType: adjustableType,
		AdjustableID:   adjustableID,
		Amount:         amount,
		Label:          label,
		Source:         source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NewOrderAdjustment creates an adjustment attached to the order itself
func NewOrderAdjustment(orderID uuid.UUID, amount decimal.Decimal, label string, source AdjustmentSource) (*Adjustment, error) {
	return NewAdjustment(orderID, AdjustableOrder, orderID, amount, label, source)
}

// Lock freezes the amount
func (a *Adjustment) Lock() {
	a.Locked = true
	a.UpdatedAt = time.Now()
}

// IsTax reports whether the adjustment carries tax classification
func (a *Adjustment) IsTax() bool {
	return a.Source == SourceTax
}
