// Package userrepo provides the read-side adapter for the user directory.
// Account management itself lives outside this service; this adapter only
// resolves identities and roles, plus a registration hook for seeding.
package userrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UserDTO represents the database structure for user identities.
type UserDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"not null"`
	Role string    `gorm:"index;not null"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory using GORM.
type GormUserDirectory struct {
	db *gorm.DB
}

// NewGormUserDirectory creates a new GORM user directory.
func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

// Get retrieves a user by ID.
func (r *GormUserDirectory) Get(ctx context.Context, id kernel.UUID) (ports.User, error) {
	if err := id.Validate(); err != nil {
		return ports.User{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.User{}, errs.NewObjectNotFoundError("userId", id.String())
		}
		return ports.User{}, err
	}

	return toDomain(dto)
}

// Register inserts a user identity. Used at signup and by test fixtures.
func (r *GormUserDirectory) Register(ctx context.Context, user ports.User) error {
	if err := user.ID.Validate(); err != nil {
		return err
	}
	if user.Role != ports.UserRoleStore && user.Role != ports.UserRoleRider {
		return errs.NewValueIsInvalidError("role")
	}

	dto := UserDTO{
		ID:   user.ID.Bytes(),
		Name: user.Name,
		Role: string(user.Role),
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

func toDomain(dto UserDTO) (ports.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.User{}, err
	}

	role := ports.UserRole(dto.Role)
	if role != ports.UserRoleStore && role != ports.UserRoleRider {
		return ports.User{}, errs.NewValueIsInvalidError("role")
	}

	return ports.User{ID: id, Name: dto.Name, Role: role}, nil
}
