package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/order"
)

// ShippingMethodModel is the persistence model for shipping methods
type ShippingMethodModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Code string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ShippingMethodModel) TableName() string {
	return "shipping_methods"
}

func (m *ShippingMethodModel) ToDomain() *order.ShippingMethod {
	return &order.ShippingMethod{ID: m.ID, Name: m.Name, Code: m.Code}
}

func ShippingMethodModelFromDomain(s *order.ShippingMethod) *ShippingMethodModel {
	return &ShippingMethodModel{ID: s.ID, Name: s.Name, Code: s.Code}
}

// PaymentMethodModel is the persistence model for payment methods
type PaymentMethodModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	Name   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Type   string    `gorm:"type:varchar(100)"`
	Active bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

func (m *PaymentMethodModel) ToDomain() *order.PaymentMethod {
	return &order.PaymentMethod{ID: m.ID, Name: m.Name, Type: m.Type, Active: m.Active}
}

func PaymentMethodModelFromDomain(p *order.PaymentMethod) *PaymentMethodModel {
	return &PaymentMethodModel{ID: p.ID, Name: p.Name, Type: p.Type, Active: p.Active}
}

// TaxRateModel is the persistence model for tax rates.
// A nil CountryID applies the rate everywhere.
type TaxRateModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(8,5);not null"`
	CountryID       *uuid.UUID      `gorm:"type:uuid;index"`
	IncludedInPrice bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TaxRateModel) TableName() string {
	return "tax_rates"
}

func (m *TaxRateModel) ToDomain() *order.TaxRate {
	return &order.TaxRate{
		ID:              m.ID,
		Name:            m.Name,
		Rate:            m.Rate,
		CountryID:       m.CountryID,
		IncludedInPrice: m.IncludedInPrice,
	}
}

func TaxRateModelFromDomain(r *order.TaxRate) *TaxRateModel {
	return &TaxRateModel{
		ID:              r.ID,
		Name:            r.Name,
		Rate:            r.Rate,
		CountryID:       r.CountryID,
		IncludedInPrice: r.IncludedInPrice,
	}
}
