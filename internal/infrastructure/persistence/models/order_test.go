package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderModel_ToDomain_AttachesShipmentCost(t *testing.T) {
	o := order.NewOrder("api")
	method, err := order.NewShippingMethod("UPS Ground", "ups")
	require.NoError(t, err)
	shipment, err := order.NewShipment(o.ID, method.ID, "1Z")
	require.NoError(t, err)
	cost, err := shipment.LockCost("UPS Ground", decimal.NewFromInt(5))
	require.NoError(t, err)
	coupon, err := order.NewOrderAdjustment(o.ID, decimal.NewFromInt(-3), "Coupon", order.SourceManual)
	require.NoError(t, err)

	m := OrderModelFromDomain(o)
	m.Shipments = []ShipmentModel{*ShipmentModelFromDomain(shipment)}
	m.Adjustments = []AdjustmentModel{*AdjustmentModelFromDomain(cost), *AdjustmentModelFromDomain(coupon)}

	got := m.ToDomain()
	require.Len(t, got.Shipments, 1)
	require.NotNil(t, got.Shipments[0].CostAdjustment)
	assert.Equal(t, cost.ID, got.Shipments[0].CostAdjustment.ID)
	assert.True(t, got.Shipments[0].CostAdjustment.Locked)
	require.Len(t, got.Adjustments, 1)
	assert.Equal(t, coupon.ID, got.Adjustments[0].ID)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, o.Number, got.Number)
}

func TestAddressModel_RoundTrip(t *testing.T) {
	assert.Nil(t, AddressModel{}.ToDomain())
	assert.Equal(t, AddressModel{}, AddressModelFromDomain(nil))

	stateID := uuid.New()
	addr := &order.Address{Firstname: "Ada", City: "Boston", CountryID: uuid.New(), StateID: &stateID}
	assert.Equal(t, addr, AddressModelFromDomain(addr).ToDomain())
}
