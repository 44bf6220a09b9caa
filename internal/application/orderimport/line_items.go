package orderimport

import (
	"context"

	"github.com/storefront/backend/internal/domain/order"
)

// LineItemImporter adds the line_items mapping to an order
type LineItemImporter struct {
	variants *VariantResolver
	orders   order.OrderRepository
}

// NewLineItemImporter creates a LineItemImporter
func NewLineItemImporter(variants *VariantResolver, orders order.OrderRepository) *LineItemImporter {
	return &LineItemImporter{variants: variants, orders: orders}
}

// Import adds every entry to the order in key order. Entries for the same
// variant merge into one line item. The first failing entry stops the import.
func (i *LineItemImporter) Import(ctx context.Context, o *order.Order, items map[string]LineItemPayload) error {
	for _, key := range sortedKeys(items) {
		payload := items[key]
		if err := i.importOne(ctx, o, payload); err != nil {
			return newError(KindLineItemImportFailed, payload, err)
		}
	}
	return nil
}

func (i *LineItemImporter) importOne(ctx context.Context, o *order.Order, payload LineItemPayload) error {
	variant, err := i.variants.Load(ctx, payload.VariantRef)
	if err != nil {
		return err
	}

	item, err := o.AddVariant(variant.ID, int(payload.Quantity), variant.Price)
	if err != nil {
		return err
	}

	if payload.Price != nil {
		if err := item.OverridePrice(payload.Price.Decimal); err != nil {
			return err
		}
		o.RecalculateTotals()
	}

	return i.orders.SaveLineItem(ctx, item)
}
