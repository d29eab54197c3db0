// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/kaypiton/billing-backend/internal/dbx"
	"github.com/kaypiton/billing-backend/internal/migrations"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
	"github.com/kaypiton/billing-backend/internal/repositories/billings"
	"github.com/kaypiton/billing-backend/internal/repositories/customers"
	"github.com/kaypiton/billing-backend/internal/repositories/products"
	"github.com/kaypiton/billing-backend/internal/repositories/roles"
	"github.com/kaypiton/billing-backend/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Customers(db dbx.DBTX) repositories.Repository[models.Customer] {
	return customers.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Products(db dbx.DBTX) repositories.Repository[models.Product] {
	return products.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Billings(db dbx.DBTX) repositories.Repository[models.Billing] {
	return billings.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Roles(db dbx.DBTX) repositories.Repository[models.Role] {
	return roles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
