package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// UserRole distinguishes the two sides of the marketplace.
type UserRole string

const (
	// UserRoleStore marks users who post orders and fund the delivery fee.
	UserRoleStore UserRole = "STORE"

	// UserRoleRider marks users who bid on orders and deliver them.
	UserRoleRider UserRole = "RIDER"
)

// User is the read model the directory exposes. Account management itself
// lives outside this service; the core only needs identity and role.
type User struct {
	ID   kernel.UUID
	Name string
	Role UserRole
}

// UserDirectory resolves user identities and roles for authorization checks.
type UserDirectory interface {
	// Get retrieves a user by ID. Returns ObjectNotFoundError for unknown IDs.
	Get(ctx context.Context, id kernel.UUID) (User, error)
}
