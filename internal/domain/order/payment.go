package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentState is the processing state of a payment
type PaymentState string

const (
	PaymentStateCheckout   PaymentState = "checkout"
	PaymentStatePending    PaymentState = "pending"
	PaymentStateProcessing PaymentState = "processing"
	PaymentStateCompleted  PaymentState = "completed"
	PaymentStateFailed     PaymentState = "failed"
	PaymentStateVoid       PaymentState = "void"
)

// IsValid checks if the state is a known payment state
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateCheckout, PaymentStatePending, PaymentStateProcessing,
		PaymentStateCompleted, PaymentStateFailed, PaymentStateVoid:
		return true
	}
	return false
}

// Payment is money received, or expected, against an order
type Payment struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	PaymentMethodID uuid.UUID
	Amount          decimal.Decimal
	State           PaymentState
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewPayment creates a payment in the given state
func NewPayment(orderID, paymentMethodID uuid.UUID, amount decimal.Decimal, state PaymentState) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is required")
	}
	if !state.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATE", fmt.Sprintf("Unknown payment state %q", state))
	}
	now := time.Now()
	return &Payment{
		ID:              uuid.New(),
		OrderID:         orderID,
		PaymentMethodID: paymentMethodID,
		Amount:          amount,
		State:           state,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
