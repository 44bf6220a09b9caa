package models

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// VariantModel is the persistence model for sellable variants
type VariantModel struct {
	BaseModel
	SKU         string          `gorm:"column:sku;type:varchar(255);not null;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	OptionsText string          `gorm:"type:varchar(255)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VariantModel) TableName() string {
	return "variants"
}

// ToDomain converts the persistence model to a domain Variant
func (m *VariantModel) ToDomain() *catalog.Variant {
	return &catalog.Variant{
		BaseEntity:  m.BaseModel.ToDomain(),
		SKU:         m.SKU,
		ProductName: m.ProductName,
		OptionsText: m.OptionsText,
		Price:       m.Price,
		Active:      m.Active,
	}
}

// VariantModelFromDomain creates a persistence model from a domain Variant
func VariantModelFromDomain(v *catalog.Variant) *VariantModel {
	m := &VariantModel{
		SKU:         v.SKU,
		ProductName: v.ProductName,
		OptionsText: v.OptionsText,
		Price:       v.Price,
		Active:      v.Active,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m
}
