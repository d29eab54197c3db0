package products

import (
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
)

// Repository is the product persistence capability.
type Repository = repositories.Repository[models.Product]
