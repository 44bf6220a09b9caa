package order

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ShippingMethod is a carrier service an order can ship with
type ShippingMethod struct {
	ID   uuid.UUID
	Name string
	Code string
}

// NewShippingMethod creates a shipping method
func NewShippingMethod(name, code string) (*ShippingMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shipping method name cannot be empty")
	}
	return &ShippingMethod{ID: uuid.New(), Name: name, Code: code}, nil
}

// PaymentMethod is a way an order can be paid
type PaymentMethod struct {
	ID     uuid.UUID
	Name   string
	Type   string
	Active bool
}

// NewPaymentMethod creates an active payment method
func NewPaymentMethod(name, methodType string) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment method name cannot be empty")
	}
	return &PaymentMethod{ID: uuid.New(), Name: name, Type: methodType, Active: true}, nil
}
