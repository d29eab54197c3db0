package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/dbx"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories/repomanager"
	"github.com/kaypiton/billing-backend/internal/validation"
	"github.com/shopspring/decimal"
)

type BillingLineRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gt=0"`
	Subtotal  decimal.Decimal `json:"subtotal" validate:"gte=0"`
}

type BillingRequest struct {
	InvoiceNumber string               `json:"invoiceNumber" validate:"required,max=50"`
	CustomerID    uuid.UUID            `json:"customerId" validate:"required"`
	Date          time.Time            `json:"date" validate:"required"`
	DueDate       time.Time            `json:"dueDate" validate:"required,gtefield=Date"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" validate:"gt=0"`
	Currency      string               `json:"currency" validate:"required,len=3"`
	Lines         []BillingLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type BillingLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type BillingResponse struct {
	ID            uuid.UUID             `json:"id"`
	InvoiceNumber string                `json:"invoiceNumber"`
	CustomerID    uuid.UUID             `json:"customerId"`
	Date          time.Time             `json:"date"`
	DueDate       time.Time             `json:"dueDate"`
	TotalAmount   decimal.Decimal       `json:"totalAmount"`
	Currency      string                `json:"currency"`
	Lines         []BillingLineResponse `json:"lines"`
}

// BillingService handles billing CRUD and the external import. Writes that
// touch a billing and its lines run in one transaction.
type BillingService struct {
	db        *sql.DB
	rm        repomanager.RepositoryManager
	client    *http.Client
	importURL string
}

func NewBillingService(db *sql.DB, rm repomanager.RepositoryManager, client *http.Client, importURL string) *BillingService {
	if client == nil {
		client = http.DefaultClient
	}
	return &BillingService{db: db, rm: rm, client: client, importURL: importURL}
}

func (s *BillingService) Create(ctx context.Context, req *BillingRequest) (*BillingResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, req.CustomerID, req.Lines); err != nil {
		return nil, err
	}

	billing := billingFromRequest(req)
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.rm.Billings(tx).Create(ctx, billing)
		if err != nil {
			return err
		}
		billing = created
		return nil
	}); err != nil {
		return nil, fmt.Errorf("creating billing: %w", err)
	}
	return billingResponse(billing), nil
}

func (s *BillingService) GetByID(ctx context.Context, id uuid.UUID) (*BillingResponse, error) {
	billing, err := s.rm.Billings(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting billing: %w", err)
	}
	if billing == nil {
		return nil, common.NewNotFound("Billing", id)
	}
	return billingResponse(billing), nil
}

func (s *BillingService) GetAll(ctx context.Context) ([]*BillingResponse, error) {
	list, err := s.rm.Billings(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing billings: %w", err)
	}
	out := make([]*BillingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, billingResponse(b))
	}
	return out, nil
}

func (s *BillingService) Update(ctx context.Context, id uuid.UUID, req *BillingRequest) (*BillingResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.verifyReferences(ctx, req.CustomerID, req.Lines); err != nil {
		return nil, err
	}

	billing := billingFromRequest(req)
	billing.ID = id
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		updated, err := s.rm.Billings(tx).Update(ctx, billing)
		if err != nil {
			return err
		}
		billing = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return billingResponse(billing), nil
}

func (s *BillingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rm.Billings(s.db).DeleteByID(ctx, id)
}

// externalBilling mirrors the upstream billing feed record.
type externalBilling struct {
	InvoiceNumber string `json:"invoice_number"`
	Customer      struct {
		ID uuid.UUID `json:"id"`
	} `json:"customer"`
	Date        time.Time       `json:"date"`
	DueDate     time.Time       `json:"due_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
	Lines       []externalLine  `json:"lines"`
}

type externalLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ImportFromExternalAPI fetches the configured billing feed and persists the
// first record. Only the first record is taken, matching the behavior the
// upstream consumers rely on; its customer and product references must
// already exist.
func (s *BillingService) ImportFromExternalAPI(ctx context.Context) error {
	records, err := s.fetchExternalBillings(ctx)
	if err != nil {
		return err
	}
	first := records[0]

	lines := make([]BillingLineRequest, 0, len(first.Lines))
	for _, l := range first.Lines {
		lines = append(lines, BillingLineRequest{
			ProductID: l.ProductID, Quantity: l.Quantity,
			UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	if err := s.verifyReferences(ctx, first.Customer.ID, lines); err != nil {
		return err
	}

	billing := &models.Billing{
		InvoiceNumber: first.InvoiceNumber,
		CustomerID:    first.Customer.ID,
		Date:          first.Date,
		DueDate:       first.DueDate,
		TotalAmount:   first.TotalAmount,
		Currency:      first.Currency,
	}
	for _, l := range first.Lines {
		billing.Lines = append(billing.Lines, models.BillingLine{
			ProductID: l.ProductID, Quantity: l.Quantity,
			UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.rm.Billings(tx).Create(ctx, billing)
		return err
	}); err != nil {
		return fmt.Errorf("importing billing: %w", err)
	}
	return nil
}

func (s *BillingService) fetchExternalBillings(ctx context.Context) ([]externalBilling, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.importURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building import request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching billing data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching billing data: unexpected status %d", resp.StatusCode)
	}

	var records []externalBilling
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding billing data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no billing data found in the API")
	}
	return records, nil
}

// verifyReferences checks the customer and every line's product before any
// write happens.
func (s *BillingService) verifyReferences(ctx context.Context, customerID uuid.UUID, lines []BillingLineRequest) error {
	customer, err := s.rm.Customers(s.db).GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("checking customer: %w", err)
	}
	if customer == nil {
		return common.NewNotFound("Customer", customerID)
	}
	for _, line := range lines {
		product, err := s.rm.Products(s.db).GetByID(ctx, line.ProductID)
		if err != nil {
			return fmt.Errorf("checking product: %w", err)
		}
		if product == nil {
			return common.NewNotFound("Product", line.ProductID)
		}
	}
	return nil
}

func billingFromRequest(req *BillingRequest) *models.Billing {
	billing := &models.Billing{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		Date:          req.Date,
		DueDate:       req.DueDate,
		TotalAmount:   req.TotalAmount,
		Currency:      req.Currency,
	}
	for _, l := range req.Lines {
		billing.Lines = append(billing.Lines, models.BillingLine{
			ProductID: l.ProductID, Quantity: l.Quantity,
			UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	return billing
}

func billingResponse(b *models.Billing) *BillingResponse {
	resp := &BillingResponse{
		ID:            b.ID,
		InvoiceNumber: b.InvoiceNumber,
		CustomerID:    b.CustomerID,
		Date:          b.Date,
		DueDate:       b.DueDate,
		TotalAmount:   b.TotalAmount,
		Currency:      b.Currency,
		Lines:         make([]BillingLineResponse, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		resp.Lines = append(resp.Lines, BillingLineResponse{
			ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity,
			UnitPrice: l.UnitPrice, Subtotal: l.Subtotal,
		})
	}
	return resp
}
