package orderimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// Amount is a money value that decodes leniently. JSON numbers and numeric
// strings parse; anything else, including null, decodes to zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = parseLenientDecimal(data)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.String())
}

// Quantity is an integer that decodes leniently like Amount. Fractions are truncated.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	*q = Quantity(parseLenientDecimal(data).IntPart())
	return nil
}

func parseLenientDecimal(data []byte) decimal.Decimal {
	raw := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if raw == "" || raw == "null" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Descriptor is a free-form reference such as {"iso": "us"} or {"name": "New York"}
type Descriptor map[string]string

// UnmarshalJSON drops null members so that only supplied keys are present
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*d = nil
		return nil
	}
	out := make(Descriptor, len(raw))
	for k, v := range raw {
		if v != nil {
			out[k] = *v
		}
	}
	*d = out
	return nil
}

// Present reports whether the key was supplied. An empty string still
// selects the field, so {"name": ""} searches for an empty name.
func (d Descriptor) Present(key string) (string, bool) {
	v, ok := d[key]
	return v, ok
}

// AddressPayload is an inbound address. Country and State are descriptors until
// normalization replaces them with CountryID / StateID or StateName.
type AddressPayload struct {
	Firstname string     `json:"firstname,omitempty"`
	Lastname  string     `json:"lastname,omitempty"`
	Company   string     `json:"company,omitempty"`
	Address1  string     `json:"address1,omitempty"`
	Address2  string     `json:"address2,omitempty"`
	City      string     `json:"city,omitempty"`
	Zipcode   string     `json:"zipcode,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	CountryID *uuid.UUID `json:"country_id,omitempty"`
	Country   Descriptor `json:"country,omitempty"`
	StateID   *uuid.UUID `json:"state_id,omitempty"`
	State     Descriptor `json:"state,omitempty"`
	StateName string     `json:"state_name,omitempty"`
}

// Clone returns a deep copy
func (a *AddressPayload) Clone() *AddressPayload {
	if a == nil {
		return nil
	}
	c := *a
	c.Country = cloneDescriptor(a.Country)
	c.State = cloneDescriptor(a.State)
	if a.CountryID != nil {
		id := *a.CountryID
		c.CountryID = &id
	}
	if a.StateID != nil {
		id := *a.StateID
		c.StateID = &id
	}
	return &c
}

// ToAddress converts a normalized payload into the order's address value.
// An unresolved country becomes uuid.Nil and fails order validation.
func (a *AddressPayload) ToAddress() *order.Address {
	if a == nil {
		return nil
	}
	addr := &order.Address{
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		StateName: a.StateName,
	}
	if a.CountryID != nil {
		addr.CountryID = *a.CountryID
	}
	if a.StateID != nil {
		id := *a.StateID
		addr.StateID = &id
	}
	return addr
}

func cloneDescriptor(d Descriptor) Descriptor {
	if d == nil {
		return nil
	}
	c := make(Descriptor, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// VariantRef points at a variant by id or by SKU
type VariantRef struct {
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	SKU       string     `json:"sku,omitempty"`
}

// LineItemPayload is one entry of the line_items mapping
type LineItemPayload struct {
	VariantRef
	Quantity Quantity `json:"quantity"`
	Price    *Amount  `json:"price,omitempty"`
}

// InventoryUnitPayload is one unit inside a shipment
type InventoryUnitPayload struct {
	VariantRef
}

// ShipmentPayload is one entry of the shipments list
type ShipmentPayload struct {
	Tracking       string                 `json:"tracking,omitempty"`
	ShippingMethod string                 `json:"shipping_method"`
	Cost           Amount                 `json:"cost"`
	InventoryUnits []InventoryUnitPayload `json:"inventory_units"`
}

// PaymentPayload is one entry of the payments list
type PaymentPayload struct {
	Amount        Amount `json:"amount"`
	State         string `json:"state,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

// AdjustmentPayload is one entry of the adjustments list
type AdjustmentPayload struct {
	Amount Amount `json:"amount"`
	Label  string `json:"label"`
}

// Payload is the full import document. Keys that are not part of the import
// structure are kept in Attributes and applied to the order at the end.
type Payload struct {
	ShipAddress *AddressPayload
	BillAddress *AddressPayload
	Shipments   []ShipmentPayload
	LineItems   map[string]LineItemPayload
	Adjustments []AdjustmentPayload
	Payments    []PaymentPayload
	CompletedAt *time.Time
	Import      bool
	Attributes  map[string]json.RawMessage
}

const (
	keyShipAddress = "ship_address"
	keyBillAddress = "bill_address"
	keyShipments   = "shipments"
	keyLineItems   = "line_items"
	keyAdjustments = "adjustments"
	keyPayments    = "payments"
	keyCompletedAt = "completed_at"
	keyImport      = "import"
)

// ParsePayload decodes an import document
func ParsePayload(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	decode := func(key string, dst any) error {
		raw, ok := fields[key]
		delete(fields, key)
		if !ok || isNull(raw) {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	}

	if err := decode(keyShipAddress, &p.ShipAddress); err != nil {
		return err
	}
	if err := decode(keyBillAddress, &p.BillAddress); err != nil {
		return err
	}
	if err := decode(keyShipments, &p.Shipments); err != nil {
		return err
	}
	if err := decode(keyLineItems, &p.LineItems); err != nil {
		return err
	}
	if err := decode(keyAdjustments, &p.Adjustments); err != nil {
		return err
	}
	if err := decode(keyPayments, &p.Payments); err != nil {
		return err
	}
	if err := decode(keyCompletedAt, &p.CompletedAt); err != nil {
		return err
	}

	if raw, ok := fields[keyImport]; ok {
		delete(fields, keyImport)
		p.Import = isTruthy(raw)
	}

	p.Attributes = fields
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// isTruthy accepts true, "true", "1" and 1 for the import flag
func isTruthy(raw json.RawMessage) bool {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(string(raw)), `"`)) {
	case "true", "1", "yes", "t":
		return true
	}
	return false
}
