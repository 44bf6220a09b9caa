package orderimport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// VariantResolver turns SKU references into variant ids
type VariantResolver struct {
	variants catalog.VariantRepository
}

// NewVariantResolver creates a VariantResolver over the given repository
func NewVariantResolver(variants catalog.VariantRepository) *VariantResolver {
	return &VariantResolver{variants: variants}
}

// Resolve returns ref with VariantID set and SKU cleared. A ref that already
// carries a variant id is returned unchanged. Only active variants match a SKU.
func (r *VariantResolver) Resolve(ctx context.Context, ref VariantRef) (VariantRef, error) {
	if ref.VariantID != nil {
		return ref, nil
	}

	sku := strings.TrimSpace(ref.SKU)
	if sku == "" {
		return ref, &Error{Kind: KindVariantNotFound, Payload: ref, Criteria: "sku", Err: ErrNoLookupField}
	}

	variant, err := r.variants.FindActiveBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ref, &Error{Kind: KindVariantNotFound, Payload: ref, Criteria: "sku=" + sku, Err: err}
		}
		return ref, fmt.Errorf("find variant by sku %q: %w", sku, err)
	}

	id := variant.ID
	return VariantRef{VariantID: &id}, nil
}

// Load resolves ref and fetches the variant
func (r *VariantResolver) Load(ctx context.Context, ref VariantRef) (*catalog.Variant, error) {
	resolved, err := r.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	variant, err := r.variants.FindByID(ctx, *resolved.VariantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, &Error{Kind: KindVariantNotFound, Payload: ref, Criteria: "id=" + resolved.VariantID.String(), Err: err}
		}
		return nil, fmt.Errorf("find variant %s: %w", resolved.VariantID, err)
	}
	return variant, nil
}
