package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Variant is a purchasable configuration of a product (size, colour, ...)
type Variant struct {
	shared.BaseEntity
	SKU         string
	ProductName string
	OptionsText string
	Price       decimal.Decimal
	Active      bool
}

// NewVariant creates an active variant
func NewVariant(sku, productName string, price decimal.Decimal) (*Variant, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 255 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 255 characters")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Variant{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         sku,
		ProductName: productName,
		Price:       price,
		Active:      true,
	}, nil
}

// Deactivate hides the variant from SKU resolution. Existing line items keep referencing it.
func (v *Variant) Deactivate() {
	v.Active = false
	v.Touch()
}

// Activate makes the variant resolvable by SKU again
func (v *Variant) Activate() {
	v.Active = true
	v.Touch()
}

// DisplayName returns the product name with option values, if any
func (v *Variant) DisplayName() string {
	if v.OptionsText == "" {
		return v.ProductName
	}
	return v.ProductName + " (" + v.OptionsText + ")"
}
