package billings

import (
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
)

// Repository is the billing persistence capability. Reads always return
// billings with their lines loaded.
type Repository = repositories.Repository[models.Billing]
