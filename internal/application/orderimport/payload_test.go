package orderimport

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	variantID := uuid.New()
	raw := `{
		"email": "a@b.co",
		"special_instructions": "leave at door",
		"ship_address": {"city": "Boston", "country": {"iso": "us"}},
		"bill_address": null,
		"line_items": {
			"1": {"variant_id": "` + variantID.String() + `", "quantity": "3", "price": 9.5},
			"0": {"sku": "MUG", "quantity": 2.9}
		},
		"shipments": [{"shipping_method": "UPS Ground", "cost": null}],
		"payments": [{"amount": "n/a", "payment_method": "Check"}],
		"completed_at": "2024-01-02T03:04:05+02:00",
		"import": "true"
	}`

	p, err := ParsePayload([]byte(raw))
	require.NoError(t, err)

	require.NotNil(t, p.ShipAddress)
	assert.Equal(t, "us", p.ShipAddress.Country["iso"])
	assert.Nil(t, p.BillAddress)

	require.Len(t, p.LineItems, 2)
	assert.Equal(t, Quantity(3), p.LineItems["1"].Quantity)
	assert.Equal(t, variantID, *p.LineItems["1"].VariantID)
	require.NotNil(t, p.LineItems["1"].Price)
	assert.True(t, p.LineItems["1"].Price.Equal(decimal.RequireFromString("9.5")))
	assert.Equal(t, Quantity(2), p.LineItems["0"].Quantity)
	assert.Nil(t, p.LineItems["0"].Price)

	require.Len(t, p.Shipments, 1)
	assert.True(t, p.Shipments[0].Cost.IsZero())
	require.Len(t, p.Payments, 1)
	assert.True(t, p.Payments[0].Amount.IsZero())

	require.NotNil(t, p.CompletedAt)
	assert.True(t, p.CompletedAt.Equal(time.Date(2024, 1, 2, 1, 4, 5, 0, time.UTC)))
	assert.True(t, p.Import)

	assert.Len(t, p.Attributes, 2)
	assert.JSONEq(t, `"a@b.co"`, string(p.Attributes["email"]))
	assert.Contains(t, p.Attributes, "special_instructions")
	assert.NotContains(t, p.Attributes, "import")
}

func TestParsePayload_DescriptorNulls(t *testing.T) {
	p, err := ParsePayload([]byte(`{"ship_address": {"country": {"name": null, "iso": "us"}, "state": {"name": ""}}}`))
	require.NoError(t, err)
	require.NotNil(t, p.ShipAddress)

	_, ok := p.ShipAddress.Country.Present("name")
	assert.False(t, ok)
	iso, ok := p.ShipAddress.Country.Present("iso")
	assert.True(t, ok)
	assert.Equal(t, "us", iso)

	name, ok := p.ShipAddress.State.Present("name")
	assert.True(t, ok)
	assert.Empty(t, name)
}

func TestParsePayload_ImportFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`{"import": true}`, true},
		{`{"import": "1"}`, true},
		{`{"import": 1}`, true},
		{`{"import": "yes"}`, true},
		{`{"import": false}`, false},
		{`{"import": "0"}`, false},
		{`{"import": null}`, false},
		{`{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p, err := ParsePayload([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Import)
		})
	}
}

func TestParsePayload_Errors(t *testing.T) {
	for _, raw := range []string{
		`[]`,
		`{"line_items": [1, 2]}`,
		`{"completed_at": "yesterday"}`,
		`{"shipments": {"0": {}}}`,
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParsePayload([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestAddressPayload_ToAddress(t *testing.T) {
	assert.Nil(t, (*AddressPayload)(nil).ToAddress())

	countryID := uuid.New()
	stateID := uuid.New()
	addr := (&AddressPayload{
		Firstname: "Ada",
		City:      "Boston",
		CountryID: &countryID,
		StateID:   &stateID,
	}).ToAddress()
	assert.Equal(t, countryID, addr.CountryID)
	assert.Equal(t, stateID, *addr.StateID)
	assert.Equal(t, "Ada", addr.FullName())

	unresolved := (&AddressPayload{City: "Nowhere", StateName: "Atlantis"}).ToAddress()
	assert.Equal(t, uuid.Nil, unresolved.CountryID)
	assert.Equal(t, "Atlantis", unresolved.StateName)
	assert.Error(t, unresolved.Validate())
}
