package services

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func existingCustomers(ids ...uuid.UUID) *fakeRepo[models.Customer] {
	return &fakeRepo[models.Customer]{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
			for _, known := range ids {
				if id == known {
					return &models.Customer{ID: id}, nil
				}
			}
			return nil, nil
		},
	}
}

func existingProducts(ids ...uuid.UUID) *fakeRepo[models.Product] {
	return &fakeRepo[models.Product]{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			for _, known := range ids {
				if id == known {
					return &models.Product{ID: id}, nil
				}
			}
			return nil, nil
		},
	}
}

func billingRequest(customerID, productID uuid.UUID) *BillingRequest {
	return &BillingRequest{
		InvoiceNumber: "INV-001",
		CustomerID:    customerID,
		Date:          time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
		TotalAmount:   decimal.NewFromInt(20),
		Currency:      "USD",
		Lines: []BillingLineRequest{{
			ProductID: productID, Quantity: 2,
			UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20),
		}},
	}
}

func txDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBillingCreate_PersistsInTransaction(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	db, mock := txDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	created := false
	billings := &fakeRepo[models.Billing]{
		createFn: func(ctx context.Context, b *models.Billing) (*models.Billing, error) {
			b.ID = uuid.New()
			created = true
			return b, nil
		},
	}
	rm := &fakeRepoManager{
		customers: existingCustomers(customerID),
		products:  existingProducts(productID),
		billings:  billings,
	}
	svc := NewBillingService(db, rm, nil, "")

	got, err := svc.Create(context.Background(), billingRequest(customerID, productID))
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "INV-001", got.InvoiceNumber)
	require.Len(t, got.Lines, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBillingCreate_UnknownProductNamesItAndWritesNothing(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	billings := &fakeRepo[models.Billing]{
		createFn: func(ctx context.Context, b *models.Billing) (*models.Billing, error) {
			t.Fatal("billing must not be written when a reference is missing")
			return nil, nil
		},
	}
	rm := &fakeRepoManager{
		customers: existingCustomers(customerID),
		products:  existingProducts(), // none exist
		billings:  billings,
	}
	svc := NewBillingService(nil, rm, nil, "")

	_, err := svc.Create(context.Background(), billingRequest(customerID, productID))
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "Product", nf.Entity)
	require.Equal(t, productID, nf.ID)
}

func TestBillingCreate_UnknownCustomer(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	rm := &fakeRepoManager{
		customers: existingCustomers(),
		products:  existingProducts(productID),
	}
	svc := NewBillingService(nil, rm, nil, "")

	_, err := svc.Create(context.Background(), billingRequest(customerID, productID))
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "Customer", nf.Entity)
}

func TestBillingCreate_CollectsViolations(t *testing.T) {
	svc := NewBillingService(nil, &fakeRepoManager{}, nil, "")

	_, err := svc.Create(context.Background(), &BillingRequest{
		InvoiceNumber: "", Currency: "USDX",
		Lines: []BillingLineRequest{},
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Violations)
	require.Contains(t, ve.Violations, "invoiceNumber is required")
	require.Contains(t, ve.Violations, "currency must be exactly 3 characters long")
}

func TestBillingCreate_RejectsNegativeAmountsAndInvertedDates(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	billings := &fakeRepo[models.Billing]{
		createFn: func(ctx context.Context, b *models.Billing) (*models.Billing, error) {
			t.Fatal("billing must not be written when validation fails")
			return nil, nil
		},
	}
	rm := &fakeRepoManager{
		customers: existingCustomers(customerID),
		products:  existingProducts(productID),
		billings:  billings,
	}
	svc := NewBillingService(nil, rm, nil, "")

	req := billingRequest(customerID, productID)
	req.TotalAmount = decimal.NewFromInt(-20)
	req.DueDate = req.Date.AddDate(0, -1, 0)
	req.Lines[0].UnitPrice = decimal.NewFromInt(-10)
	req.Lines[0].Subtotal = decimal.NewFromInt(-20)

	_, err := svc.Create(context.Background(), req)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Violations, "totalAmount must be greater than 0")
	require.Contains(t, ve.Violations, "dueDate must be greater than or equal to date")
	require.Contains(t, ve.Violations, "lines[0].unitPrice must be greater than 0")
	require.Contains(t, ve.Violations, "lines[0].subtotal must be greater than or equal to 0")
}

func TestBillingCreate_AllowsZeroSubtotalAndDueDateEqualToDate(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	db, mock := txDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	billings := &fakeRepo[models.Billing]{
		createFn: func(ctx context.Context, b *models.Billing) (*models.Billing, error) {
			b.ID = uuid.New()
			return b, nil
		},
	}
	rm := &fakeRepoManager{
		customers: existingCustomers(customerID),
		products:  existingProducts(productID),
		billings:  billings,
	}
	svc := NewBillingService(db, rm, nil, "")

	req := billingRequest(customerID, productID)
	req.DueDate = req.Date
	req.Lines[0].Subtotal = decimal.Zero

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImport_TakesOnlyFirstRecord(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	feed := `[
		{
			"invoice_number": "INV-FIRST",
			"customer": {"id": "` + customerID.String() + `"},
			"date": "2026-01-15T00:00:00Z",
			"due_date": "2026-02-15T00:00:00Z",
			"total_amount": 100.50,
			"currency": "USD",
			"lines": [
				{"productId": "` + productID.String() + `", "quantity": 2, "unit_price": 50.25, "subtotal": 100.50}
			]
		},
		{
			"invoice_number": "INV-SECOND",
			"customer": {"id": "` + customerID.String() + `"},
			"date": "2026-01-16T00:00:00Z",
			"due_date": "2026-02-16T00:00:00Z",
			"total_amount": 10,
			"currency": "USD",
			"lines": []
		}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	db, mock := txDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var imported []*models.Billing
	billings := &fakeRepo[models.Billing]{
		createFn: func(ctx context.Context, b *models.Billing) (*models.Billing, error) {
			imported = append(imported, b)
			return b, nil
		},
	}
	rm := &fakeRepoManager{
		customers: existingCustomers(customerID),
		products:  existingProducts(productID),
		billings:  billings,
	}
	svc := NewBillingService(db, rm, srv.Client(), srv.URL)

	err := svc.ImportFromExternalAPI(context.Background())
	require.NoError(t, err)
	require.Len(t, imported, 1)
	require.Equal(t, "INV-FIRST", imported[0].InvoiceNumber)
	require.Equal(t, customerID, imported[0].CustomerID)
	require.Len(t, imported[0].Lines, 1)
	require.True(t, imported[0].TotalAmount.Equal(decimal.RequireFromString("100.50")))
}

func TestImport_EmptyFeedFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewBillingService(nil, &fakeRepoManager{}, srv.Client(), srv.URL)

	err := svc.ImportFromExternalAPI(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no billing data")
}

func TestImport_UpstreamErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewBillingService(nil, &fakeRepoManager{}, srv.Client(), srv.URL)

	err := svc.ImportFromExternalAPI(context.Background())
	require.Error(t, err)
}
