package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// OrderResponse is the API view of an order with all associations.
// Money fields are decimal strings.
type OrderResponse struct {
	ID                  uuid.UUID            `json:"id"`
	Number              string               `json:"number"`
	State               string               `json:"state"`
	Channel             string               `json:"channel"`
	Email               string               `json:"email,omitempty"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
	Currency            string               `json:"currency"`
	CompletedAt         *time.Time           `json:"completed_at,omitempty"`
	ShipAddress         *AddressResponse     `json:"ship_address,omitempty"`
	BillAddress         *AddressResponse     `json:"bill_address,omitempty"`
	ItemTotal           decimal.Decimal      `json:"item_total"`
	AdjustmentTotal     decimal.Decimal      `json:"adjustment_total"`
	PaymentTotal        decimal.Decimal      `json:"payment_total"`
	Total               decimal.Decimal      `json:"total"`
	LineItems           []LineItemResponse   `json:"line_items"`
	Shipments           []ShipmentResponse   `json:"shipments"`
	Payments            []PaymentResponse    `json:"payments"`
	Adjustments         []AdjustmentResponse `json:"adjustments"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

type AddressResponse struct {
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Company   string     `json:"company,omitempty"`
	Address1  string     `json:"address1"`
	Address2  string     `json:"address2,omitempty"`
	City      string     `json:"city"`
	Zipcode   string     `json:"zipcode"`
	Phone     string     `json:"phone,omitempty"`
	CountryID uuid.UUID  `json:"country_id"`
	StateID   *uuid.UUID `json:"state_id,omitempty"`
	StateName string     `json:"state_name,omitempty"`
}

type LineItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
}

type InventoryUnitResponse struct {
	ID        uuid.UUID `json:"id"`
	VariantID uuid.UUID `json:"variant_id"`
	State     string    `json:"state"`
}

type ShipmentResponse struct {
	ID               uuid.UUID               `json:"id"`
	Number           string                  `json:"number"`
	Tracking         string                  `json:"tracking,omitempty"`
	ShippingMethodID uuid.UUID               `json:"shipping_method_id"`
	State            string                  `json:"state"`
	Cost             decimal.Decimal         `json:"cost"`
	InventoryUnits   []InventoryUnitResponse `json:"inventory_units"`
}

type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	Amount          decimal.Decimal `json:"amount"`
	State           string          `json:"state"`
}

type AdjustmentResponse struct {
	ID     uuid.UUID       `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Source string          `json:"source"`
	Locked bool            `json:"locked"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                  o.ID,
		Number:              o.Number,
		State:               o.State.String(),
		Channel:             o.Channel,
		Email:               o.Email,
		SpecialInstructions: o.SpecialInstructions,
		Currency:            o.Currency,
		CompletedAt:         o.CompletedAt,
		ShipAddress:         toAddressResponse(o.ShipAddress),
		BillAddress:         toAddressResponse(o.BillAddress),
		ItemTotal:           o.ItemTotal,
		AdjustmentTotal:     o.AdjustmentTotal,
		PaymentTotal:        o.PaymentTotal,
		Total:               o.Total,
		LineItems:           make([]LineItemResponse, 0, len(o.LineItems)),
		Shipments:           make([]ShipmentResponse, 0, len(o.Shipments)),
		Payments:            make([]PaymentResponse, 0, len(o.Payments)),
		Adjustments:         make([]AdjustmentResponse, 0, len(o.Adjustments)),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}

	for i := range o.LineItems {
		item := &o.LineItems[i]
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:        item.ID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Amount:    item.Amount(),
		})
	}
	for i := range o.Shipments {
		resp.Shipments = append(resp.Shipments, toShipmentResponse(&o.Shipments[i]))
	}
	for _, p := range o.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:              p.ID,
			PaymentMethodID: p.PaymentMethodID,
			Amount:          p.Amount,
			State:           string(p.State),
		})
	}
	for _, a := range o.Adjustments {
		resp.Adjustments = append(resp.Adjustments, AdjustmentResponse{
			ID:     a.ID,
			Label:  a.Label,
			Amount: a.Amount,
			Source: string(a.Source),
			Locked: a.Locked,
		})
	}
	return resp
}

func toShipmentResponse(s *order.Shipment) ShipmentResponse {
	units := make([]InventoryUnitResponse, 0, len(s.InventoryUnits))
	for _, u := range s.InventoryUnits {
		units = append(units, InventoryUnitResponse{ID: u.ID, VariantID: u.VariantID, State: string(u.State)})
	}
	return ShipmentResponse{
		ID:               s.ID,
		Number:           s.Number,
		Tracking:         s.Tracking,
		ShippingMethodID: s.ShippingMethodID,
		State:            string(s.State),
		Cost:             s.Cost(),
		InventoryUnits:   units,
	}
}

func toAddressResponse(a *order.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		CountryID: a.CountryID,
		StateID:   a.StateID,
		StateName: a.StateName,
	}
}
