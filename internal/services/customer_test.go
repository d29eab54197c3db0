package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreate_EchoesStoredEntity(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo[models.Customer]{
		createFn: func(ctx context.Context, c *models.Customer) (*models.Customer, error) {
			c.ID = id
			return c, nil
		},
	}
	svc := NewCustomerService(nil, &fakeRepoManager{customers: repo})

	got, err := svc.Create(context.Background(), &CustomerRequest{
		Name: "John Doe", Email: "john.doe@example.com", Address: "123 Main St",
	})
	require.NoError(t, err)
	require.Equal(t, id, got.ID)
	require.Equal(t, "John Doe", got.Name)
	require.Equal(t, "john.doe@example.com", got.Email)
	require.Equal(t, "123 Main St", got.Address)
}

func TestCustomerCreate_CollectsAllViolations(t *testing.T) {
	svc := NewCustomerService(nil, &fakeRepoManager{})

	_, err := svc.Create(context.Background(), &CustomerRequest{
		Name: "", Email: "not-an-email", Address: "",
	})
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Violations, 3)
}

func TestCustomerGetByID_MissIsNotFound(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo[models.Customer]{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
			return nil, nil
		},
	}
	svc := NewCustomerService(nil, &fakeRepoManager{customers: repo})

	_, err := svc.GetByID(context.Background(), id)
	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "Customer", nf.Entity)
	require.Equal(t, id, nf.ID)
}

func TestCustomerGetAll_EmptyIsNeverNil(t *testing.T) {
	repo := &fakeRepo[models.Customer]{
		getAllFn: func(ctx context.Context) ([]*models.Customer, error) {
			return []*models.Customer{}, nil
		},
	}
	svc := NewCustomerService(nil, &fakeRepoManager{customers: repo})

	got, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
