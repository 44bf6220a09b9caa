package catalog

import (
	"context"

	"github.com/google/uuid"
)

// VariantRepository is the read side of the catalog used by order import
type VariantRepository interface {
	// FindByID returns the variant regardless of its active flag
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)
	// FindActiveBySKU returns the active variant with exactly this SKU, or shared.ErrNotFound
	FindActiveBySKU(ctx context.Context, sku string) (*Variant, error)
	Save(ctx context.Context, variant *Variant) error
}
