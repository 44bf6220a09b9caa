package orderimport

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestVariant(t *testing.T, sku string, price string) *catalog.Variant {
	t.Helper()
	v, err := catalog.NewVariant(sku, "Shirt", decimal.RequireFromString(price))
	require.NoError(t, err)
	return v
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

func amountPtr(s string) *Amount {
	a := NewAmount(decimal.RequireFromString(s))
	return &a
}

func TestVariantResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("variant id present is a no-op", func(t *testing.T) {
		variants := new(MockVariantRepository)
		id := uuid.New()
		ref := VariantRef{VariantID: &id, SKU: "IGNORED"}

		got, err := NewVariantResolver(variants).Resolve(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
		variants.AssertNotCalled(t, "FindActiveBySKU", mock.Anything, mock.Anything)
	})

	t.Run("sku resolves to id and is cleared", func(t *testing.T) {
		variants := new(MockVariantRepository)
		shirt := newTestVariant(t, "SHIRT-S", "19.99")
		variants.On("FindActiveBySKU", mock.Anything, "SHIRT-S").Return(shirt, nil).Once()

		in := VariantRef{SKU: "SHIRT-S"}
		got, err := NewVariantResolver(variants).Resolve(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, got.VariantID)
		assert.Equal(t, shirt.ID, *got.VariantID)
		assert.Empty(t, got.SKU)
		assert.Equal(t, "SHIRT-S", in.SKU)
	})

	t.Run("unknown or inactive sku is VariantNotFound", func(t *testing.T) {
		variants := new(MockVariantRepository)
		variants.On("FindActiveBySKU", mock.Anything, "GONE").Return(nil, shared.ErrNotFound).Once()

		_, err := NewVariantResolver(variants).Resolve(ctx, VariantRef{SKU: "GONE"})
		require.Error(t, err)
		kind, _ := KindOf(err)
		assert.Equal(t, KindVariantNotFound, kind)
		assert.Contains(t, err.Error(), "ensure order import variant [sku=GONE]")
	})

	t.Run("neither id nor sku", func(t *testing.T) {
		_, err := NewVariantResolver(new(MockVariantRepository)).Resolve(ctx, VariantRef{})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindVariantNotFound))
	})

	t.Run("load reports a missing id as VariantNotFound", func(t *testing.T) {
		variants := new(MockVariantRepository)
		id := uuid.New()
		variants.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound).Once()

		_, err := NewVariantResolver(variants).Load(ctx, VariantRef{VariantID: &id})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindVariantNotFound))
	})
}

func TestLineItemImporter_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("merges quantities and overrides price", func(t *testing.T) {
		variants := new(MockVariantRepository)
		orders := new(MockOrderRepository)
		shirt := newTestVariant(t, "SHIRT-S", "20.00")
		variants.On("FindActiveBySKU", mock.Anything, "SHIRT-S").Return(shirt, nil)
		variants.On("FindByID", mock.Anything, shirt.ID).Return(shirt, nil)
		orders.On("SaveLineItem", mock.Anything, mock.AnythingOfType("*order.LineItem")).Return(nil).Times(2)

		o := order.NewOrder("")
		err := NewLineItemImporter(NewVariantResolver(variants), orders).Import(ctx, o, map[string]LineItemPayload{
			"0": {VariantRef: VariantRef{SKU: "SHIRT-S"}, Quantity: 2},
			"1": {VariantRef: VariantRef{VariantID: uuidPtr(shirt.ID)}, Quantity: 3, Price: amountPtr("15.00")},
		})
		require.NoError(t, err)

		require.Len(t, o.LineItems, 1)
		assert.Equal(t, 5, o.LineItems[0].Quantity)
		assert.True(t, o.LineItems[0].Price.Equal(decimal.RequireFromString("15.00")))
		assert.True(t, o.ItemTotal.Equal(decimal.RequireFromString("75.00")))
		orders.AssertExpectations(t)
	})

	t.Run("uses variant price without override", func(t *testing.T) {
		variants := new(MockVariantRepository)
		orders := new(MockOrderRepository)
		mug := newTestVariant(t, "MUG", "8.50")
		variants.On("FindByID", mock.Anything, mug.ID).Return(mug, nil)
		orders.On("SaveLineItem", mock.Anything, mock.Anything).Return(nil)

		o := order.NewOrder("")
		err := NewLineItemImporter(NewVariantResolver(variants), orders).Import(ctx, o, map[string]LineItemPayload{
			"a": {VariantRef: VariantRef{VariantID: uuidPtr(mug.ID)}, Quantity: 1},
		})
		require.NoError(t, err)
		assert.True(t, o.LineItems[0].Price.Equal(mug.Price))
	})

	t.Run("unknown sku wraps VariantNotFound with the entry payload", func(t *testing.T) {
		variants := new(MockVariantRepository)
		variants.On("FindActiveBySKU", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		o := order.NewOrder("")
		err := NewLineItemImporter(NewVariantResolver(variants), new(MockOrderRepository)).Import(ctx, o, map[string]LineItemPayload{
			"0": {VariantRef: VariantRef{SKU: "NOPE"}, Quantity: 1},
		})
		require.Error(t, err)
		kind, _ := KindOf(err)
		assert.Equal(t, KindLineItemImportFailed, kind)
		assert.True(t, HasKind(err, KindVariantNotFound))
		assert.Contains(t, err.Error(), "order import line items")
		assert.Contains(t, err.Error(), `"sku":"NOPE"`)
	})

	t.Run("zero quantity fails domain validation", func(t *testing.T) {
		variants := new(MockVariantRepository)
		mug := newTestVariant(t, "MUG", "8.50")
		variants.On("FindByID", mock.Anything, mug.ID).Return(mug, nil)

		o := order.NewOrder("")
		err := NewLineItemImporter(NewVariantResolver(variants), new(MockOrderRepository)).Import(ctx, o, map[string]LineItemPayload{
			"0": {VariantRef: VariantRef{VariantID: uuidPtr(mug.ID)}, Quantity: 0},
		})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindLineItemImportFailed))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})
}

func TestShipmentImporter_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("builds units and locks cost", func(t *testing.T) {
		variants := new(MockVariantRepository)
		methods := new(MockShippingMethodRepository)
		orders := new(MockOrderRepository)
		shirt := newTestVariant(t, "SHIRT-S", "20.00")
		ups, _ := order.NewShippingMethod("UPS Ground", "ups_ground")
		variants.On("FindActiveBySKU", mock.Anything, "SHIRT-S").Return(shirt, nil)
		variants.On("FindByID", mock.Anything, shirt.ID).Return(shirt, nil)
		methods.On("FindByName", mock.Anything, "UPS Ground").Return(ups, nil).Once()

		var saved *order.Shipment
		orders.On("SaveShipment", mock.Anything, mock.AnythingOfType("*order.Shipment")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*order.Shipment) }).
			Return(nil).Once()

		o := order.NewOrder("")
		err := NewShipmentImporter(NewVariantResolver(variants), methods, orders).Import(ctx, o, []ShipmentPayload{{
			Tracking:       "1Z999",
			ShippingMethod: "UPS Ground",
			Cost:           NewAmount(decimal.RequireFromString("5.00")),
			InventoryUnits: []InventoryUnitPayload{{VariantRef: VariantRef{SKU: "SHIRT-S"}}},
		}})
		require.NoError(t, err)

		require.NotNil(t, saved)
		require.Len(t, o.Shipments, 1)
		s := o.Shipments[0]
		assert.Equal(t, "1Z999", s.Tracking)
		assert.Equal(t, ups.ID, s.ShippingMethodID)
		require.Len(t, s.InventoryUnits, 1)
		assert.Equal(t, shirt.ID, s.InventoryUnits[0].VariantID)
		assert.Equal(t, o.ID, s.InventoryUnits[0].OrderID)
		assert.Equal(t, s.ID, s.InventoryUnits[0].ShipmentID)
		require.NotNil(t, s.CostAdjustment)
		assert.True(t, s.CostAdjustment.Locked)
		assert.Equal(t, order.AdjustableShipment, s.CostAdjustment.AdjustableType)
		assert.True(t, s.CostAdjustment.Amount.Equal(decimal.RequireFromString("5.00")))
		assert.Equal(t, "UPS Ground", s.CostAdjustment.Label)
	})

	t.Run("unknown shipping method", func(t *testing.T) {
		methods := new(MockShippingMethodRepository)
		methods.On("FindByName", mock.Anything, "Teleport").Return(nil, shared.ErrNotFound).Once()

		o := order.NewOrder("")
		err := NewShipmentImporter(NewVariantResolver(new(MockVariantRepository)), methods, new(MockOrderRepository)).
			Import(ctx, o, []ShipmentPayload{{ShippingMethod: "Teleport"}})
		require.Error(t, err)
		kind, _ := KindOf(err)
		assert.Equal(t, KindShipmentImportFailed, kind)
		assert.True(t, HasKind(err, KindShippingMethodNotFound))
		assert.Empty(t, o.Shipments)
	})

	t.Run("missing cost defaults to zero", func(t *testing.T) {
		methods := new(MockShippingMethodRepository)
		orders := new(MockOrderRepository)
		ups, _ := order.NewShippingMethod("UPS Ground", "")
		methods.On("FindByName", mock.Anything, "UPS Ground").Return(ups, nil)
		orders.On("SaveShipment", mock.Anything, mock.Anything).Return(nil)

		payload, err := ParsePayload([]byte(`{"shipments":[{"shipping_method":"UPS Ground","cost":"free"}]}`))
		require.NoError(t, err)

		o := order.NewOrder("")
		require.NoError(t, NewShipmentImporter(NewVariantResolver(new(MockVariantRepository)), methods, orders).Import(ctx, o, payload.Shipments))
		assert.True(t, o.Shipments[0].Cost().IsZero())
	})

	t.Run("unit variant failure stops before shipping method lookup", func(t *testing.T) {
		variants := new(MockVariantRepository)
		methods := new(MockShippingMethodRepository)
		variants.On("FindActiveBySKU", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		o := order.NewOrder("")
		err := NewShipmentImporter(NewVariantResolver(variants), methods, new(MockOrderRepository)).Import(ctx, o, []ShipmentPayload{{
			ShippingMethod: "UPS Ground",
			InventoryUnits: []InventoryUnitPayload{{VariantRef: VariantRef{SKU: "NOPE"}}},
		}})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindVariantNotFound))
		methods.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})
}

func TestPaymentImporter_Import(t *testing.T) {
	ctx := context.Background()
	check, _ := order.NewPaymentMethod("Check", "check")

	t.Run("state defaults to completed", func(t *testing.T) {
		methods := new(MockPaymentMethodRepository)
		orders := new(MockOrderRepository)
		methods.On("FindByName", mock.Anything, "Check").Return(check, nil)
		orders.On("SavePayment", mock.Anything, mock.AnythingOfType("*order.Payment")).Return(nil)

		o := order.NewOrder("")
		err := NewPaymentImporter(methods, orders).Import(ctx, o, []PaymentPayload{{
			Amount:        NewAmount(decimal.NewFromInt(10)),
			PaymentMethod: "Check",
		}})
		require.NoError(t, err)
		require.Len(t, o.Payments, 1)
		assert.Equal(t, order.PaymentStateCompleted, o.Payments[0].State)
		assert.True(t, o.PaymentTotal.Equal(decimal.NewFromInt(10)))
	})

	t.Run("explicit state kept", func(t *testing.T) {
		methods := new(MockPaymentMethodRepository)
		orders := new(MockOrderRepository)
		methods.On("FindByName", mock.Anything, "Check").Return(check, nil)
		orders.On("SavePayment", mock.Anything, mock.Anything).Return(nil)

		o := order.NewOrder("")
		require.NoError(t, NewPaymentImporter(methods, orders).Import(ctx, o, []PaymentPayload{{PaymentMethod: "Check", State: "pending"}}))
		assert.Equal(t, order.PaymentStatePending, o.Payments[0].State)
	})

	t.Run("invalid state", func(t *testing.T) {
		methods := new(MockPaymentMethodRepository)
		methods.On("FindByName", mock.Anything, "Check").Return(check, nil)

		err := NewPaymentImporter(methods, new(MockOrderRepository)).Import(ctx, order.NewOrder(""), []PaymentPayload{{PaymentMethod: "Check", State: "bogus"}})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindPaymentImportFailed))
	})

	t.Run("unknown payment method", func(t *testing.T) {
		methods := new(MockPaymentMethodRepository)
		methods.On("FindByName", mock.Anything, "Barter").Return(nil, shared.ErrNotFound)

		err := NewPaymentImporter(methods, new(MockOrderRepository)).Import(ctx, order.NewOrder(""), []PaymentPayload{{PaymentMethod: "Barter"}})
		require.Error(t, err)
		kind, _ := KindOf(err)
		assert.Equal(t, KindPaymentImportFailed, kind)
		assert.True(t, HasKind(err, KindPaymentMethodNotFound))
	})
}

func TestAdjustmentImporter_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("creates locked order adjustments", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("SaveAdjustment", mock.Anything, mock.AnythingOfType("*order.Adjustment")).Return(nil).Twice()

		o := order.NewOrder("")
		err := NewAdjustmentImporter(orders).Import(ctx, o, []AdjustmentPayload{
			{Amount: NewAmount(decimal.RequireFromString("-2.50")), Label: "Coupon"},
			{Amount: NewAmount(decimal.RequireFromString("1.10")), Label: "Imported tax"},
		})
		require.NoError(t, err)
		require.Len(t, o.Adjustments, 2)
		for _, adj := range o.Adjustments {
			assert.True(t, adj.Locked)
			assert.False(t, adj.IsTax())
			assert.Equal(t, order.AdjustableOrder, adj.AdjustableType)
		}
		assert.True(t, o.AdjustmentTotal.Equal(decimal.RequireFromString("-1.40")))
	})

	t.Run("missing label fails", func(t *testing.T) {
		err := NewAdjustmentImporter(new(MockOrderRepository)).Import(ctx, order.NewOrder(""), []AdjustmentPayload{{}})
		require.Error(t, err)
		kind, _ := KindOf(err)
		assert.Equal(t, KindAdjustmentImportFailed, kind)
	})

	t.Run("persistence failure is wrapped", func(t *testing.T) {
		orders := new(MockOrderRepository)
		orders.On("SaveAdjustment", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		err := NewAdjustmentImporter(orders).Import(ctx, order.NewOrder(""), []AdjustmentPayload{{Label: "Fee"}})
		require.Error(t, err)
		assert.True(t, HasKind(err, KindAdjustmentImportFailed))
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestTaxCalculator_Apply(t *testing.T) {
	ctx := context.Background()
	usID := uuid.New()
	caID := uuid.New()

	usTax, _ := order.NewTaxRate("Sales Tax", decimal.RequireFromString("0.08"), &usID)
	caTax, _ := order.NewTaxRate("GST", decimal.RequireFromString("0.05"), &caID)
	global, _ := order.NewTaxRate("Eco Fee", decimal.RequireFromString("0.01"), nil)

	newOrderWithItems := func(t *testing.T) *order.Order {
		o := order.NewOrder("")
		_, err := o.AddVariant(uuid.New(), 2, decimal.RequireFromString("50.00"))
		require.NoError(t, err)
		return o
	}

	t.Run("applies rates scoped to ship country and global rates", func(t *testing.T) {
		rates := new(MockTaxRateRepository)
		orders := new(MockOrderRepository)
		rates.On("FindAll", mock.Anything).Return([]order.TaxRate{*usTax, *caTax, *global}, nil)
		orders.On("SaveAdjustment", mock.Anything, mock.Anything).Return(nil).Twice()

		o := newOrderWithItems(t)
		n, err := NewTaxCalculator(rates, orders).Apply(ctx, o, &usID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		taxes := o.TaxAdjustments()
		require.Len(t, taxes, 2)
		assert.Equal(t, "Sales Tax 8%", taxes[0].Label)
		assert.True(t, taxes[0].Amount.Equal(decimal.RequireFromString("8.00")))
		assert.False(t, taxes[0].Locked)
		assert.True(t, taxes[1].Amount.Equal(decimal.RequireFromString("1.00")))
	})

	t.Run("no ship country only gets global rates", func(t *testing.T) {
		rates := new(MockTaxRateRepository)
		orders := new(MockOrderRepository)
		rates.On("FindAll", mock.Anything).Return([]order.TaxRate{*usTax, *global}, nil)
		orders.On("SaveAdjustment", mock.Anything, mock.Anything).Return(nil).Once()

		n, err := NewTaxCalculator(rates, orders).Apply(ctx, newOrderWithItems(t), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("empty order gets no tax", func(t *testing.T) {
		rates := new(MockTaxRateRepository)
		rates.On("FindAll", mock.Anything).Return([]order.TaxRate{*global}, nil)

		n, err := NewTaxCalculator(rates, new(MockOrderRepository)).Apply(ctx, order.NewOrder(""), nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
