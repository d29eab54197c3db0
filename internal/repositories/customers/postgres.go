// Package customers provides the PostgreSQL-backed customer repository.
package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/dbx"
	"github.com/kaypiton/billing-backend/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX, so it works both
// inside and outside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}

	query := `
		INSERT INTO customers (id, name, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Address).Scan(&customer.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return customer, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := `
		SELECT id, name, email, address, created_at
		FROM customers
		WHERE id = $1
	`
	customer := &models.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.Address, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return customer, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT id, name, email, address, created_at
		FROM customers
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		customer := &models.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Address, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return customers, nil
}

func (r *PostgresRepository) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET name = $2, email = $3, address = $4
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Name, customer.Email, customer.Address)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, common.NewNotFound("Customer", customer.ID)
	}
	return customer, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewNotFound("Customer", id)
	}
	return nil
}
