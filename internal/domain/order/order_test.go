package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// State Tests
// ============================================

func TestState_IsValid(t *testing.T) {
	for _, s := range AllStates {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, State("shipped").IsValid())
	assert.False(t, State("").IsValid())
}

// ============================================
// Order Tests
// ============================================

func TestNewOrder(t *testing.T) {
	o := NewOrder("")

	assert.Equal(t, StateCart, o.State)
	assert.Equal(t, DefaultChannel, o.Channel)
	assert.Equal(t, DefaultCurrency, o.Currency)
	assert.Regexp(t, `^R\d{9}$`, o.Number)
	assert.Nil(t, o.CompletedAt)
	assert.True(t, o.Total.IsZero())
	require.NoError(t, o.Validate())
}

func TestOrder_AddVariant(t *testing.T) {
	t.Run("new variant creates line item", func(t *testing.T) {
		o := NewOrder("api")
		variantID := uuid.New()

		item, err := o.AddVariant(variantID, 2, decimal.NewFromFloat(9.5))
		require.NoError(t, err)

		assert.Equal(t, o.ID, item.OrderID)
		assert.Equal(t, 2, item.Quantity)
		assert.Len(t, o.LineItems, 1)
		assert.True(t, o.ItemTotal.Equal(decimal.NewFromInt(19)))
	})

	t.Run("same variant merges quantity", func(t *testing.T) {
		o := NewOrder("api")
		variantID := uuid.New()

		_, err := o.AddVariant(variantID, 2, decimal.NewFromInt(5))
		require.NoError(t, err)
		item, err := o.AddVariant(variantID, 3, decimal.NewFromInt(5))
		require.NoError(t, err)

		assert.Len(t, o.LineItems, 1)
		assert.Equal(t, 5, item.Quantity)
		assert.True(t, o.ItemTotal.Equal(decimal.NewFromInt(25)))
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		o := NewOrder("api")
		_, err := o.AddVariant(uuid.New(), 0, decimal.NewFromInt(5))
		requireDomainCode(t, err, "INVALID_QUANTITY")
		assert.Empty(t, o.LineItems)
	})

	t.Run("completed order is rejected", func(t *testing.T) {
		o := NewOrder("api")
		require.NoError(t, o.Complete(time.Now()))
		_, err := o.AddVariant(uuid.New(), 1, decimal.NewFromInt(5))
		requireDomainCode(t, err, "INVALID_STATE")
	})
}

func TestOrder_Complete(t *testing.T) {
	o := NewOrder("api")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	require.NoError(t, o.Complete(at))

	assert.Equal(t, StateComplete, o.State)
	require.NotNil(t, o.CompletedAt)
	assert.True(t, o.CompletedAt.Equal(at))
	assert.Equal(t, time.UTC, o.CompletedAt.Location())

	canceled := NewOrder("api")
	canceled.State = StateCanceled
	requireDomainCode(t, canceled.Complete(at), "INVALID_STATE")
}

func TestOrder_RemoveTaxAdjustments(t *testing.T) {
	o := NewOrder("api")
	tax, err := NewOrderAdjustment(o.ID, decimal.NewFromFloat(1.6), "Sales Tax 8%", SourceTax)
	require.NoError(t, err)
	fee, err := NewOrderAdjustment(o.ID, decimal.NewFromInt(3), "Handling", SourceManual)
	require.NoError(t, err)
	require.NoError(t, o.AddAdjustment(tax))
	require.NoError(t, o.AddAdjustment(fee))
	require.Len(t, o.TaxAdjustments(), 1)

	removed := o.RemoveTaxAdjustments()

	assert.Equal(t, 1, removed)
	assert.Empty(t, o.TaxAdjustments())
	require.Len(t, o.Adjustments, 1)
	assert.Equal(t, "Handling", o.Adjustments[0].Label)
	assert.True(t, o.AdjustmentTotal.Equal(decimal.NewFromInt(3)))
}

func TestOrder_RecalculateTotals(t *testing.T) {
	o := NewOrder("api")
	_, err := o.AddVariant(uuid.New(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)

	shipment, err := NewShipment(o.ID, uuid.New(), "")
	require.NoError(t, err)
	_, err = shipment.LockCost("UPS Ground", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, o.AddShipment(shipment))

	paid, err := NewPayment(o.ID, uuid.New(), decimal.NewFromInt(25), PaymentStateCompleted)
	require.NoError(t, err)
	pending, err := NewPayment(o.ID, uuid.New(), decimal.NewFromInt(99), PaymentStatePending)
	require.NoError(t, err)
	require.NoError(t, o.AddPayment(paid))
	require.NoError(t, o.AddPayment(pending))

	assert.True(t, o.ItemTotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, o.AdjustmentTotal.Equal(decimal.NewFromInt(5)))
	assert.True(t, o.Total.Equal(decimal.NewFromInt(25)))
	assert.True(t, o.PaymentTotal.Equal(decimal.NewFromInt(25)))
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Order)
		code   string
	}{
		{"empty number", func(o *Order) { o.Number = "" }, "INVALID_ORDER_NUMBER"},
		{"unknown state", func(o *Order) { o.State = "shipped" }, "INVALID_STATE"},
		{"bad currency", func(o *Order) { o.Currency = "DOLLARS" }, "INVALID_CURRENCY"},
		{"address without country", func(o *Order) { o.ShipAddress = &Address{City: "Boston"} }, "INVALID_ADDRESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder("api")
			tt.mutate(o)
			requireDomainCode(t, o.Validate(), tt.code)
		})
	}
}

func TestOrder_AddChildForOtherOrder(t *testing.T) {
	o := NewOrder("api")
	other := NewOrder("api")

	shipment, err := NewShipment(other.ID, uuid.New(), "")
	require.NoError(t, err)
	requireDomainCode(t, o.AddShipment(shipment), "ORDER_MISMATCH")

	payment, err := NewPayment(other.ID, uuid.New(), decimal.NewFromInt(1), PaymentStateCompleted)
	require.NoError(t, err)
	requireDomainCode(t, o.AddPayment(payment), "ORDER_MISMATCH")
}

func TestOrder_MarkImported(t *testing.T) {
	o := NewOrder("api")
	_, err := o.AddVariant(uuid.New(), 1, decimal.NewFromInt(7))
	require.NoError(t, err)

	o.MarkImported()

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	imported, ok := events[0].(*OrderImportedEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeOrderImported, imported.EventType())
	assert.Equal(t, o.ID, imported.AggregateID())
	assert.Equal(t, 1, imported.LineItemCount)
	assert.False(t, imported.Completed)
}
