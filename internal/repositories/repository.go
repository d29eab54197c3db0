// Package repositories declares the generic persistence capability shared by
// every entity repository. Entity packages instantiate it for their type and
// may extend it with entity-specific lookups or eager-loading reads.
package repositories

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the uniform create/read/update/delete capability over a
// single entity type.
//
// GetByID and GetAll report absence as (nil, nil) / an empty slice rather
// than an error; DeleteByID fails when the id does not resolve.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	GetAll(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
