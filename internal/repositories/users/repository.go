package users

import (
	"context"

	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
)

// Repository extends the generic contract with the lookups the
// authentication flow needs. Reads always return users with their
// roles loaded; lookups return (nil, nil) when no user matches.
type Repository interface {
	repositories.Repository[models.User]
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}
