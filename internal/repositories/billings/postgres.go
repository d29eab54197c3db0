// Package billings provides the PostgreSQL-backed billing repository.
// A billing and its lines are written together, so callers that need
// atomicity run this repository inside dbx.WithTx.
package billings

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, billing *models.Billing) (*models.Billing, error) {
	if billing.ID == uuid.Nil {
		billing.ID = uuid.New()
	}

	query := `
		INSERT INTO billings (id, invoice_number, customer_id, date, due_date, total_amount, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		billing.ID, billing.InvoiceNumber, billing.CustomerID,
		billing.Date, billing.DueDate, billing.TotalAmount, billing.Currency).Scan(&billing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := r.insertLines(ctx, billing); err != nil {
		return nil, err
	}
	return billing, nil
}

func (r *PostgresRepository) insertLines(ctx context.Context, billing *models.Billing) error {
	query := `
		INSERT INTO billing_lines (id, billing_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range billing.Lines {
		line := &billing.Lines[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.BillingID = billing.ID
		if _, err := r.db.ExecContext(ctx, query,
			line.ID, line.BillingID, line.ProductID, line.Quantity, line.UnitPrice, line.Subtotal); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Billing, error) {
	query := `
		SELECT id, invoice_number, customer_id, date, due_date, total_amount, currency, created_at
		FROM billings
		WHERE id = $1
	`
	billing := &models.Billing{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&billing.ID, &billing.InvoiceNumber, &billing.CustomerID,
		&billing.Date, &billing.DueDate, &billing.TotalAmount, &billing.Currency, &billing.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	lines, err := r.linesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	billing.Lines = lines
	return billing, nil
}

func (r *PostgresRepository) linesFor(ctx context.Context, billingID uuid.UUID) ([]models.BillingLine, error) {
	query := `
		SELECT id, billing_id, product_id, quantity, unit_price, subtotal
		FROM billing_lines
		WHERE billing_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, billingID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	lines := make([]models.BillingLine, 0)
	for rows.Next() {
		var line models.BillingLine
		if err := rows.Scan(&line.ID, &line.BillingID, &line.ProductID,
			&line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return lines, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Billing, error) {
	query := `
		SELECT id, invoice_number, customer_id, date, due_date, total_amount, currency, created_at
		FROM billings
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Billing, 0)
	for rows.Next() {
		billing := &models.Billing{}
		if err := rows.Scan(&billing.ID, &billing.InvoiceNumber, &billing.CustomerID,
			&billing.Date, &billing.DueDate, &billing.TotalAmount, &billing.Currency, &billing.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, billing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, billing := range list {
		lines, err := r.linesFor(ctx, billing.ID)
		if err != nil {
			return nil, err
		}
		billing.Lines = lines
	}
	return list, nil
}

// Update rewrites the billing row and replaces its lines.
func (r *PostgresRepository) Update(ctx context.Context, billing *models.Billing) (*models.Billing, error) {
	query := `
		UPDATE billings
		SET invoice_number = $2, customer_id = $3, date = $4, due_date = $5, total_amount = $6, currency = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		billing.ID, billing.InvoiceNumber, billing.CustomerID,
		billing.Date, billing.DueDate, billing.TotalAmount, billing.Currency)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, common.NewNotFound("Billing", billing.ID)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM billing_lines WHERE billing_id = $1`, billing.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := r.insertLines(ctx, billing); err != nil {
		return nil, err
	}
	return billing, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM billings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NewNotFound("Billing", id)
	}
	return nil
}
