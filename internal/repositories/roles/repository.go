package roles

import (
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
)

// Repository is the role persistence capability.
type Repository = repositories.Repository[models.Role]
