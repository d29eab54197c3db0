package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/dbx"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories"
	"github.com/kaypiton/billing-backend/internal/repositories/users"
)

// fakeRepo is an in-memory Repository[T] used to test service logic
// without a database.
type fakeRepo[T any] struct {
	createFn  func(ctx context.Context, entity *T) (*T, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (*T, error)
	getAllFn  func(ctx context.Context) ([]*T, error)
	updateFn  func(ctx context.Context, entity *T) (*T, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeRepo[T]) Create(ctx context.Context, entity *T) (*T, error) {
	return f.createFn(ctx, entity)
}

func (f *fakeRepo[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo[T]) GetAll(ctx context.Context) ([]*T, error) {
	return f.getAllFn(ctx)
}

func (f *fakeRepo[T]) Update(ctx context.Context, entity *T) (*T, error) {
	return f.updateFn(ctx, entity)
}

func (f *fakeRepo[T]) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

type fakeUserRepo struct {
	fakeRepo[models.User]
	getByUsernameFn     func(ctx context.Context, username string) (*models.User, error)
	getByRefreshTokenFn func(ctx context.Context, token string) (*models.User, error)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.getByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return f.getByRefreshTokenFn(ctx, token)
}

type fakeRepoManager struct {
	customers repositories.Repository[models.Customer]
	products  repositories.Repository[models.Product]
	billings  repositories.Repository[models.Billing]
	roles     repositories.Repository[models.Role]
	users     users.Repository
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Customers(db dbx.DBTX) repositories.Repository[models.Customer] {
	return m.customers
}

func (m *fakeRepoManager) Products(db dbx.DBTX) repositories.Repository[models.Product] {
	return m.products
}

func (m *fakeRepoManager) Billings(db dbx.DBTX) repositories.Repository[models.Billing] {
	return m.billings
}

func (m *fakeRepoManager) Roles(db dbx.DBTX) repositories.Repository[models.Role] {
	return m.roles
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}
