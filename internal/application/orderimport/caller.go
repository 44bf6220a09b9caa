package orderimport

import (
	"slices"

	"github.com/google/uuid"
)

const (
	// PermissionOrdersAdmin lets a caller set protected order attributes
	PermissionOrdersAdmin = "orders:admin"
	// RoleAdmin is the role name that implies every permission
	RoleAdmin = "admin"
)

// Caller identifies who runs an import and what they may do
type Caller struct {
	UserID      uuid.UUID
	Username    string
	Roles       []string
	Permissions []string
}

// IsAdmin is the capability check gating the full attribute schema
func (c Caller) IsAdmin() bool {
	return slices.Contains(c.Roles, RoleAdmin) || slices.Contains(c.Permissions, PermissionOrdersAdmin)
}
