package orderimport

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// ShipmentImporter rebuilds shipments with their inventory units and locked cost
type ShipmentImporter struct {
	variants *VariantResolver
	methods  order.ShippingMethodRepository
	orders   order.OrderRepository
}

// NewShipmentImporter creates a ShipmentImporter
func NewShipmentImporter(variants *VariantResolver, methods order.ShippingMethodRepository, orders order.OrderRepository) *ShipmentImporter {
	return &ShipmentImporter{variants: variants, methods: methods, orders: orders}
}

// Import creates the shipments in order. The first failing shipment stops the import.
func (i *ShipmentImporter) Import(ctx context.Context, o *order.Order, shipments []ShipmentPayload) error {
	for _, payload := range shipments {
		if err := i.importOne(ctx, o, payload); err != nil {
			return newError(KindShipmentImportFailed, payload, err)
		}
	}
	return nil
}

func (i *ShipmentImporter) importOne(ctx context.Context, o *order.Order, payload ShipmentPayload) error {
	variantIDs := make([]uuid.UUID, 0, len(payload.InventoryUnits))
	for _, unit := range payload.InventoryUnits {
		variant, err := i.variants.Load(ctx, unit.VariantRef)
		if err != nil {
			return err
		}
		variantIDs = append(variantIDs, variant.ID)
	}

	method, err := findShippingMethod(ctx, i.methods, payload.ShippingMethod)
	if err != nil {
		return err
	}

	shipment, err := order.NewShipment(o.ID, method.ID, payload.Tracking)
	if err != nil {
		return err
	}
	for _, id := range variantIDs {
		if _, err := shipment.AddInventoryUnit(id); err != nil {
			return err
		}
	}
	if _, err := shipment.LockCost(method.Name, payload.Cost.Decimal); err != nil {
		return err
	}
	if err := shipment.Validate(); err != nil {
		return err
	}

	if err := i.orders.SaveShipment(ctx, shipment); err != nil {
		return err
	}
	return o.AddShipment(shipment)
}

func findShippingMethod(ctx context.Context, methods order.ShippingMethodRepository, name string) (*order.ShippingMethod, error) {
	method, err := methods.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, notFound(KindShippingMethodNotFound, "name="+name, err)
		}
		return nil, fmt.Errorf("find shipping method %q: %w", name, err)
	}
	return method, nil
}
