package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/gradovikov/storefront/internal/domain/model"
)

// UserDirectory is the external user directory interface: existence and role
// lookup only, no credentials.
type UserDirectory interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
	// Role returns errors.ErrNotFound for an unknown user.
	Role(ctx context.Context, userID uuid.UUID) (model.Role, error)
}
