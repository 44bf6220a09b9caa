package orderimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// DefaultPaymentState is used when a payment payload has no state
const DefaultPaymentState = order.PaymentStateCompleted

// PaymentImporter rebuilds payment records
type PaymentImporter struct {
	methods order.PaymentMethodRepository
	orders  order.OrderRepository
}

// NewPaymentImporter creates a PaymentImporter
func NewPaymentImporter(methods order.PaymentMethodRepository, orders order.OrderRepository) *PaymentImporter {
	return &PaymentImporter{methods: methods, orders: orders}
}

// Import creates the payments in order. The first failing payment stops the import.
func (i *PaymentImporter) Import(ctx context.Context, o *order.Order, payments []PaymentPayload) error {
	for _, payload := range payments {
		if err := i.importOne(ctx, o, payload); err != nil {
			return newError(KindPaymentImportFailed, payload, err)
		}
	}
	return nil
}

func (i *PaymentImporter) importOne(ctx context.Context, o *order.Order, payload PaymentPayload) error {
	state := DefaultPaymentState
	if payload.State != "" {
		state = order.PaymentState(payload.State)
	}

	method, err := i.methods.FindByName(ctx, payload.PaymentMethod)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return notFound(KindPaymentMethodNotFound, "name="+payload.PaymentMethod, err)
		}
		return fmt.Errorf("find payment method %q: %w", payload.PaymentMethod, err)
	}

	payment, err := order.NewPayment(o.ID, method.ID, payload.Amount.Decimal, state)
	if err != nil {
		return err
	}
	if err := i.orders.SavePayment(ctx, payment); err != nil {
		return err
	}
	return o.AddPayment(payment)
}
