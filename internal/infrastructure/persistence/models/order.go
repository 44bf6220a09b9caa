package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
// Addresses are embedded as ship_* and bill_* columns.
type OrderModel struct {
	AggregateModel
	Number              string            `gorm:"type:varchar(32);not null;uniqueIndex"`
	State               order.State       `gorm:"type:varchar(20);not null;default:'cart';index"`
	Channel             string            `gorm:"type:varchar(50);not null"`
	Email               string            `gorm:"type:varchar(255)"`
	SpecialInstructions string            `gorm:"type:text"`
	Currency            string            `gorm:"type:varchar(3);not null"`
	CompletedAt         *time.Time        `gorm:"index"`
	ShipAddress         AddressModel      `gorm:"embedded;embeddedPrefix:ship_"`
	BillAddress         AddressModel      `gorm:"embedded;embeddedPrefix:bill_"`
	ItemTotal           decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AdjustmentTotal     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentTotal        decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Total               decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	LineItems           []LineItemModel   `gorm:"foreignKey:OrderID;references:ID"`
	Shipments           []ShipmentModel   `gorm:"foreignKey:OrderID;references:ID"`
	Payments            []PaymentModel    `gorm:"foreignKey:OrderID;references:ID"`
	Adjustments         []AdjustmentModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// Shipment-level adjustments are attached to their shipment as its cost.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		Number:              m.Number,
		State:               m.State,
		Channel:             m.Channel,
		Email:               m.Email,
		SpecialInstructions: m.SpecialInstructions,
		Currency:            m.Currency,
		CompletedAt:         m.CompletedAt,
		ShipAddress:         m.ShipAddress.ToDomain(),
		BillAddress:         m.BillAddress.ToDomain(),
		ItemTotal:           m.ItemTotal,
		AdjustmentTotal:     m.AdjustmentTotal,
		PaymentTotal:        m.PaymentTotal,
		Total:               m.Total,
		LineItems:           make([]order.LineItem, len(m.LineItems)),
		Shipments:           make([]order.Shipment, len(m.Shipments)),
		Payments:            make([]order.Payment, len(m.Payments)),
		Adjustments:         make([]order.Adjustment, 0, len(m.Adjustments)),
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)

	for i := range m.LineItems {
		o.LineItems[i] = *m.LineItems[i].ToDomain()
	}
	for i := range m.Payments {
		o.Payments[i] = *m.Payments[i].ToDomain()
	}

	shipmentIdx := make(map[uuid.UUID]int, len(m.Shipments))
	for i := range m.Shipments {
		o.Shipments[i] = *m.Shipments[i].ToDomain()
		shipmentIdx[m.Shipments[i].ID] = i
	}
	for i := range m.Adjustments {
		adj := m.Adjustments[i].ToDomain()
		if adj.AdjustableType == order.AdjustableShipment {
			if idx, ok := shipmentIdx[adj.AdjustableID]; ok {
				o.Shipments[idx].CostAdjustment = adj
				continue
			}
		}
		o.Adjustments = append(o.Adjustments, *adj)
	}
	return o
}

// OrderModelFromDomain creates a persistence model for the order header.
// Children are written through their own models.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{
		Number:              o.Number,
		State:               o.State,
		Channel:             o.Channel,
		Email:               o.Email,
		SpecialInstructions: o.SpecialInstructions,
		Currency:            o.Currency,
		CompletedAt:         o.CompletedAt,
		ShipAddress:         AddressModelFromDomain(o.ShipAddress),
		BillAddress:         AddressModelFromDomain(o.BillAddress),
		ItemTotal:           o.ItemTotal,
		AdjustmentTotal:     o.AdjustmentTotal,
		PaymentTotal:        o.PaymentTotal,
		Total:               o.Total,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// AddressModel is an address embedded in the orders table.
// A nil CountryID means the order has no such address.
type AddressModel struct {
	Firstname string     `gorm:"type:varchar(100)"`
	Lastname  string     `gorm:"type:varchar(100)"`
	Company   string     `gorm:"type:varchar(255)"`
	Address1  string     `gorm:"type:varchar(255)"`
	Address2  string     `gorm:"type:varchar(255)"`
	City      string     `gorm:"type:varchar(100)"`
	Zipcode   string     `gorm:"type:varchar(20)"`
	Phone     string     `gorm:"type:varchar(50)"`
	CountryID *uuid.UUID `gorm:"type:uuid"`
	StateID   *uuid.UUID `gorm:"type:uuid"`
	StateName string     `gorm:"type:varchar(100)"`
}

// ToDomain converts the embedded columns to a domain Address, or nil
func (m AddressModel) ToDomain() *order.Address {
	if m.CountryID == nil {
		return nil
	}
	return &order.Address{
		Firstname: m.Firstname,
		Lastname:  m.Lastname,
		Company:   m.Company,
		Address1:  m.Address1,
		Address2:  m.Address2,
		City:      m.City,
		Zipcode:   m.Zipcode,
		Phone:     m.Phone,
		CountryID: *m.CountryID,
		StateID:   m.StateID,
		StateName: m.StateName,
	}
}

// AddressModelFromDomain maps a (possibly nil) domain Address to its columns
func AddressModelFromDomain(a *order.Address) AddressModel {
	if a == nil {
		return AddressModel{}
	}
	countryID := a.CountryID
	return AddressModel{
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Company:   a.Company,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		CountryID: &countryID,
		StateID:   a.StateID,
		StateName: a.StateName,
	}
}

// LineItemModel is the persistence model for order line items
type LineItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_items_order_variant,priority:1"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_line_items_order_variant,priority:2"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *LineItemModel) ToDomain() *order.LineItem {
	return &order.LineItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// LineItemModelFromDomain creates a persistence model from a domain LineItem
func LineItemModelFromDomain(i *order.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		VariantID: i.VariantID,
		Quantity:  i.Quantity,
		Price:     i.Price,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ShipmentModel is the persistence model for shipments.
// The shipment cost lives in the adjustments table.
type ShipmentModel struct {
	ID               uuid.UUID            `gorm:"type:uuid;primary_key"`
	OrderID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	Number           string               `gorm:"type:varchar(32);not null;index"`
	Tracking         string               `gorm:"type:varchar(255)"`
	ShippingMethodID uuid.UUID            `gorm:"type:uuid;not null"`
	State            order.ShipmentState  `gorm:"type:varchar(20);not null"`
	InventoryUnits   []InventoryUnitModel `gorm:"foreignKey:ShipmentID;references:ID"`
	CreatedAt        time.Time            `gorm:"not null"`
	UpdatedAt        time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment without its cost
func (m *ShipmentModel) ToDomain() *order.Shipment {
	s := &order.Shipment{
		ID:               m.ID,
		OrderID:          m.OrderID,
		Number:           m.Number,
		Tracking:         m.Tracking,
		ShippingMethodID: m.ShippingMethodID,
		State:            m.State,
		InventoryUnits:   make([]order.InventoryUnit, len(m.InventoryUnits)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for i := range m.InventoryUnits {
		s.InventoryUnits[i] = *m.InventoryUnits[i].ToDomain()
	}
	return s
}

// ShipmentModelFromDomain creates a persistence model for the shipment row only
func ShipmentModelFromDomain(s *order.Shipment) *ShipmentModel {
	return &ShipmentModel{
		ID:               s.ID,
		OrderID:          s.OrderID,
		Number:           s.Number,
		Tracking:         s.Tracking,
		ShippingMethodID: s.ShippingMethodID,
		State:            s.State,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

// InventoryUnitModel is the persistence model for inventory units
type InventoryUnitModel struct {
	ID         uuid.UUID                `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	ShipmentID uuid.UUID                `gorm:"type:uuid;not null;index"`
	VariantID  uuid.UUID                `gorm:"type:uuid;not null"`
	State      order.InventoryUnitState `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InventoryUnitModel) TableName() string {
	return "inventory_units"
}

// ToDomain converts the persistence model to a domain InventoryUnit
func (m *InventoryUnitModel) ToDomain() *order.InventoryUnit {
	return &order.InventoryUnit{
		ID:         m.ID,
		OrderID:    m.OrderID,
		ShipmentID: m.ShipmentID,
		VariantID:  m.VariantID,
		State:      m.State,
		CreatedAt:  m.CreatedAt,
	}
}

// InventoryUnitModelFromDomain creates a persistence model from a domain InventoryUnit
func InventoryUnitModelFromDomain(u *order.InventoryUnit) *InventoryUnitModel {
	return &InventoryUnitModel{
		ID:         u.ID,
		OrderID:    u.OrderID,
		ShipmentID: u.ShipmentID,
		VariantID:  u.VariantID,
		State:      u.State,
		CreatedAt:  u.CreatedAt,
	}
}

// AdjustmentModel is the persistence model for order and shipment adjustments
type AdjustmentModel struct {
	ID             uuid.UUID              `gorm:"type:uuid;primary_key"`
	OrderID        uuid.UUID              `gorm:"type:uuid;not null;index:idx_adjustments_order_source,priority:1"`
	AdjustableType order.AdjustableType   `gorm:"type:varchar(20);not null"`
	AdjustableID   uuid.UUID              `gorm:"type:uuid;not null"`
	Amount         decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Label          string                 `gorm:"type:varchar(255);not null"`
	Source         order.AdjustmentSource `gorm:"type:varchar(20);not null;index:idx_adjustments_order_source,priority:2"`
	Locked         bool                   `gorm:"not null"`
	CreatedAt      time.Time              `gorm:"not null"`
	UpdatedAt      time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AdjustmentModel) TableName() string {
	return "adjustments"
}

// ToDomain converts the persistence model to a domain Adjustment
func (m *AdjustmentModel) ToDomain() *order.Adjustment {
	return &order.Adjustment{
		ID:             m.ID,
		OrderID:        m.OrderID,
		AdjustableType: m.AdjustableType,
		AdjustableID:   m.AdjustableID,
		Amount:         m.Amount,
		Label:          m.Label,
		Source:         m.Source,
		Locked:         m.Locked,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AdjustmentModelFromDomain creates a persistence model from a domain Adjustment
func AdjustmentModelFromDomain(a *order.Adjustment) *AdjustmentModel {
	return &AdjustmentModel{
		ID:             a.ID,
		OrderID:        a.OrderID,
		AdjustableType: a.AdjustableType,
		AdjustableID:   a.AdjustableID,
		Amount:         a.Amount,
		Label:          a.Label,
		Source:         a.Source,
		Locked:         a.Locked,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// PaymentModel is the persistence model for payments
type PaymentModel struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	PaymentMethodID uuid.UUID          `gorm:"type:uuid;not null"`
	Amount          decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	State           order.PaymentState `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time          `gorm:"not null"`
	UpdatedAt       time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *order.Payment {
	return &order.Payment{
		ID:              m.ID,
		OrderID:         m.OrderID,
		PaymentMethodID: m.PaymentMethodID,
		Amount:          m.Amount,
		State:           m.State,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *order.Payment) *PaymentModel {
	return &PaymentModel{
		ID:              p.ID,
		OrderID:         p.OrderID,
		PaymentMethodID: p.PaymentMethodID,
		Amount:          p.Amount,
		State:           p.State,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
