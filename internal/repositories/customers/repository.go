package customers

import (
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
)

// Repository is the customer persistence capability.
type Repository = repositories.Repository[models.Customer]
