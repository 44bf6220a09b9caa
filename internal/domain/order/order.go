package order

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// State is the checkout state of an order
type State string

const (
	StateCart     State = "cart"
	StateAddress  State = "address"
	StateDelivery State = "delivery"
	StatePayment  State = "payment"
	StateConfirm  State = "confirm"
	StateComplete State = "complete"
	StateCanceled State = "canceled"
	StateReturned State = "returned"
)

// AllStates lists every order state in checkout order
var AllStates = []State{
	StateCart, StateAddress, StateDelivery, StatePayment,
	StateConfirm, StateComplete, StateCanceled, StateReturned,
}

// IsValid checks if the state is a known order state
func (s State) IsValid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

func (s State) String() string {
	return string(s)
}

const (
	DefaultChannel  = "api"
	DefaultCurrency = "USD"
)

// Order is the aggregate root for a customer order.
// Line items, shipments, payments and adjustments are owned by the order and
// removed with it.
type Order struct {
	shared.BaseAggregateRoot
	Number              string
	State               State
	Channel             string
	Email               string
	SpecialInstructions string
	Currency            string
	CompletedAt         *time.Time
	ShipAddress         *Address
	BillAddress         *Address
	ItemTotal           decimal.Decimal
	AdjustmentTotal     decimal.Decimal
	PaymentTotal        decimal.Decimal
	Total               decimal.Decimal
	LineItems           []LineItem
	Shipments           []Shipment
	Payments            []Payment
	Adjustments         []Adjustment
}

// NewOrder creates an empty order in the cart state
func NewOrder(channel string) *Order {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            GenerateNumber(),
		State:             StateCart,
		Channel:           channel,
		Currency:          DefaultCurrency,
		ItemTotal:         decimal.Zero,
		AdjustmentTotal:   decimal.Zero,
		PaymentTotal:      decimal.Zero,
		Total:             decimal.Zero,
		LineItems:         make([]LineItem, 0),
		Shipments:         make([]Shipment, 0),
		Payments:          make([]Payment, 0),
		Adjustments:       make([]Adjustment, 0),
	}
}

// GenerateNumber returns a customer-facing order number like R123456789
func GenerateNumber() string {
	return fmt.Sprintf("R%09d", rand.IntN(1_000_000_000))
}

// AddVariant adds quantity units of a variant at the given unit price.
// A second call for the same variant increases the quantity of the existing
// line item instead of creating another one.
func (o *Order) AddVariant(variantID uuid.UUID, quantity int, price decimal.Decimal) (*LineItem, error) {
	if o.IsCompleted() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a completed order")
	}

	for idx := range o.LineItems {
		if o.LineItems[idx].VariantID == variantID {
			if err := o.LineItems[idx].Increase(quantity); err != nil {
				return nil, err
			}
			o.RecalculateTotals()
			return &o.LineItems[idx], nil
		}
	}

	item, err := NewLineItem(o.ID, variantID, quantity, price)
	if err != nil {
		return nil, err
	}
	o.LineItems = append(o.LineItems, *item)
	o.RecalculateTotals()
	return &o.LineItems[len(o.LineItems)-1], nil
}

// FindLineItem returns the line item for a variant, if any
func (o *Order) FindLineItem(variantID uuid.UUID) (*LineItem, bool) {
	for idx := range o.LineItems {
		if o.LineItems[idx].VariantID == variantID {
			return &o.LineItems[idx], true
		}
	}
	return nil, false
}

// AddShipment attaches a shipment built for this order
func (o *Order) AddShipment(shipment *Shipment) error {
	if shipment.OrderID != o.ID {
		return shared.NewDomainError("ORDER_MISMATCH", "Shipment belongs to another order")
	}
	o.Shipments = append(o.Shipments, *shipment)
	o.RecalculateTotals()
	return nil
}

// AddPayment attaches a payment built for this order
func (o *Order) AddPayment(payment *Payment) error {
	if payment.OrderID != o.ID {
		return shared.NewDomainError("ORDER_MISMATCH", "Payment belongs to another order")
	}
	o.Payments = append(o.Payments, *payment)
	o.RecalculateTotals()
	return nil
}

// AddAdjustment attaches an order-level adjustment
func (o *Order) AddAdjustment(adjustment *Adjustment) error {
	if adjustment.OrderID != o.ID || adjustment.AdjustableType != AdjustableOrder {
		return shared.NewDomainError("ORDER_MISMATCH", "Adjustment is not an adjustment of this order")
	}
	o.Adjustments = append(o.Adjustments, *adjustment)
	o.RecalculateTotals()
	return nil
}

// RemoveTaxAdjustments drops every tax adjustment from the order and returns
// how many were removed
func (o *Order) RemoveTaxAdjustments() int {
	kept := o.Adjustments[:0]
	removed := 0
	for _, adj := range o.Adjustments {
		if adj.IsTax() {
			removed++
			continue
		}
		kept = append(kept, adj)
	}
	o.Adjustments = kept
	o.RecalculateTotals()
	return removed
}

// TaxAdjustments returns the order's tax adjustments
func (o *Order) TaxAdjustments() []Adjustment {
	var taxes []Adjustment
	for _, adj := range o.Adjustments {
		if adj.IsTax() {
			taxes = append(taxes, adj)
		}
	}
	return taxes
}

// Complete marks the order as complete at the given time
func (o *Order) Complete(at time.Time) error {
	if o.State == StateCanceled || o.State == StateReturned {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s state", o.State))
	}
	at = at.UTC()
	o.CompletedAt = &at
	o.State = StateComplete
	o.Touch()
	return nil
}

// IsCompleted reports whether the order has a completion timestamp
func (o *Order) IsCompleted() bool {
	return o.CompletedAt != nil
}

// RecalculateTotals recomputes item, adjustment, payment and grand totals
func (o *Order) RecalculateTotals() {
	itemTotal := decimal.Zero
	for _, item := range o.LineItems {
		itemTotal = itemTotal.Add(item.Amount())
	}

	adjustmentTotal := decimal.Zero
	for _, adj := range o.Adjustments {
		adjustmentTotal = adjustmentTotal.Add(adj.Amount)
	}
	for _, shipment := range o.Shipments {
		if shipment.CostAdjustment != nil {
			adjustmentTotal = adjustmentTotal.Add(shipment.CostAdjustment.Amount)
		}
	}

	paymentTotal := decimal.Zero
	for _, payment := range o.Payments {
		if payment.State == PaymentStateCompleted {
			paymentTotal = paymentTotal.Add(payment.Amount)
		}
	}

	o.ItemTotal = itemTotal
	o.AdjustmentTotal = adjustmentTotal
	o.PaymentTotal = paymentTotal
	o.Total = itemTotal.Add(adjustmentTotal)
	o.Touch()
}

// Validate checks the order-level rules that must hold before it is saved
func (o *Order) Validate() error {
	if o.Number == "" {
		return shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(o.Number) > 32 {
		return shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 32 characters")
	}
	if !o.State.IsValid() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Unknown order state %q", o.State))
	}
	if len(o.Currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}
	for _, item := range o.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	for _, addr := range []*Address{o.ShipAddress, o.BillAddress} {
		if addr == nil {
			continue
		}
		if err := addr.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MarkImported records that the order was built by an import
func (o *Order) MarkImported() {
	o.AddDomainEvent(NewOrderImportedEvent(o))
}
