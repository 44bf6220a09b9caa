package orderimport

import (
	"context"

	"github.com/storefront/backend/internal/domain/order"
)

// AdjustmentImporter adds locked order-level adjustments
type AdjustmentImporter struct {
	orders order.OrderRepository
}

// NewAdjustmentImporter creates an AdjustmentImporter
func NewAdjustmentImporter(orders order.OrderRepository) *AdjustmentImporter {
	return &AdjustmentImporter{orders: orders}
}

// Import creates one locked adjustment per entry. The first failing entry stops the import.
func (i *AdjustmentImporter) Import(ctx context.Context, o *order.Order, adjustments []AdjustmentPayload) error {
	for _, payload := range adjustments {
		if err := i.importOne(ctx, o, payload); err != nil {
			return newError(KindAdjustmentImportFailed, payload, err)
		}
	}
	return nil
}

func (i *AdjustmentImporter) importOne(ctx context.Context, o *order.Order, payload AdjustmentPayload) error {
	adj, err := order.NewOrderAdjustment(o.ID, payload.Amount.Decimal, payload.Label, order.SourceManual)
	if err != nil {
		return err
	}
	adj.Lock()

	if err := i.orders.SaveAdjustment(ctx, adj); err != nil {
		return err
	}
	return o.AddAdjustment(adj)
}
