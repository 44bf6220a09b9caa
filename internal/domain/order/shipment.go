package order

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// ShipmentState is the fulfilment state of a shipment
type ShipmentState string

const (
	ShipmentStatePending ShipmentState = "pending"
	ShipmentStateReady   ShipmentState = "ready"
	ShipmentStateShipped ShipmentState = "shipped"
)

// InventoryUnitState is the stock state of one allocated unit
type InventoryUnitState string

const (
	InventoryUnitOnHand    InventoryUnitState = "on_hand"
	InventoryUnitBackorder InventoryUnitState = "backordered"
	InventoryUnitShipped   InventoryUnitState = "shipped"
)

// InventoryUnit is a single unit of a variant allocated to a shipment
type InventoryUnit struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ShipmentID uuid.UUID
	VariantID  uuid.UUID
	State      InventoryUnitState
	CreatedAt  time.Time
}

// Shipment groups inventory units sent together with one shipping method
type Shipment struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	Number           string
	Tracking         string
	ShippingMethodID uuid.UUID
	State            ShipmentState
	InventoryUnits   []InventoryUnit
	CostAdjustment   *Adjustment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewShipment creates an empty pending shipment for the order
func NewShipment(orderID, shippingMethodID uuid.UUID, tracking string) (*Shipment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if shippingMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPING_METHOD", "Shipping method is required")
	}
	now := time.Now()
	return &Shipment{
		ID:               uuid.New(),
		OrderID:          orderID,
		Number:           fmt.Sprintf("H%011d", rand.Int64N(100_000_000_000)),
		Tracking:         tracking,
		ShippingMethodID: shippingMethodID,
		State:            ShipmentStatePending,
		InventoryUnits:   make([]InventoryUnit, 0),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// AddInventoryUnit allocates one unit of the variant to this shipment.
// The unit is always bound to the shipment's own order.
func (s *Shipment) AddInventoryUnit(variantID uuid.UUID) (*InventoryUnit, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	unit := InventoryUnit{
		ID:         uuid.New(),
		OrderID:    s.OrderID,
		ShipmentID: s.ID,
		VariantID:  variantID,
		State:      InventoryUnitOnHand,
		CreatedAt:  time.Now(),
	}
	s.InventoryUnits = append(s.InventoryUnits, unit)
	s.UpdatedAt = time.Now()
	return &s.InventoryUnits[len(s.InventoryUnits)-1], nil
}

// LockCost sets the shipping charge as a locked adjustment on the shipment
func (s *Shipment) LockCost(label string, cost decimal.Decimal) (*Adjustment, error) {
	adj, err := NewAdjustment(s.OrderID, AdjustableShipment, s.ID, cost, label, SourceShipping)
	if err != nil {
		return nil, err
	}
	adj.Lock()
	s.CostAdjustment = adj
	s.UpdatedAt = time.Now()
	return adj, nil
}

// Cost returns the shipping charge, zero when none was set
func (s *Shipment) Cost() decimal.Decimal {
	if s.CostAdjustment == nil {
		return decimal.Zero
	}
	return s.CostAdjustment.Amount
}

// Validate checks every unit belongs to the shipment and its order
func (s *Shipment) Validate() error {
	for _, unit := range s.InventoryUnits {
		if unit.OrderID != s.OrderID || unit.ShipmentID != s.ID {
			return shared.NewDomainError("ORDER_MISMATCH", "Inventory unit does not belong to this shipment")
		}
	}
	return nil
}
