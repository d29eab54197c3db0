package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing is an invoice issued to a customer. Lines are loaded eagerly by the
// billings repository.
type Billing struct {
	ID            uuid.UUID
	InvoiceNumber string
	CustomerID    uuid.UUID
	Date          time.Time
	DueDate       time.Time
	TotalAmount   decimal.Decimal
	Currency      string
	Lines         []BillingLine
	CreatedAt     time.Time
}

type BillingLine struct {
	ID        uuid.UUID
	BillingID uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
