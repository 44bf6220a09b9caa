package orderimport

import (
	"context"

	"github.com/google/uuid"
)

// ReferenceCache remembers resolved reference ids across imports
type ReferenceCache interface {
	GetID(ctx context.Context, key string) (uuid.UUID, bool, error)
	SetID(ctx context.Context, key string, id uuid.UUID) error
}

// ImportArchive keeps the raw payload of every committed import
type ImportArchive interface {
	Store(ctx context.Context, orderID uuid.UUID, raw []byte) error
}
