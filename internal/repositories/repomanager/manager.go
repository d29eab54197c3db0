package repomanager

import (
	"context"
	"database/sql"

	"github.com/kaypiton/billing-backend/internal/dbx"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
	"github.com/kaypiton/billing-backend/internal/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// run several repositories against the same transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Customers(db dbx.DBTX) repositories.Repository[models.Customer]
	Products(db dbx.DBTX) repositories.Repository[models.Product]
	Billings(db dbx.DBTX) repositories.Repository[models.Billing]
	Roles(db dbx.DBTX) repositories.Repository[models.Role]
	Users(db dbx.DBTX) users.Repository
}
