package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories/repomanager"
	"github.com/kaypiton/billing-backend/internal/validation"
)

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Address string `json:"address" validate:"required,max=100"`
}

type CustomerResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
}

type CustomerService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewCustomerService(db *sql.DB, rm repomanager.RepositoryManager) *CustomerService {
	return &CustomerService{db: db, rm: rm}
}

func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*CustomerResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer := &models.Customer{Name: req.Name, Email: req.Email, Address: req.Address}
	created, err := s.rm.Customers(s.db).Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}
	return customerResponse(created), nil
}

func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.rm.Customers(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}
	if customer == nil {
		return nil, common.NewNotFound("Customer", id)
	}
	return customerResponse(customer), nil
}

func (s *CustomerService) GetAll(ctx context.Context) ([]*CustomerResponse, error) {
	list, err := s.rm.Customers(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	out := make([]*CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerResponse(c))
	}
	return out, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *CustomerRequest) (*CustomerResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer := &models.Customer{ID: id, Name: req.Name, Email: req.Email, Address: req.Address}
	updated, err := s.rm.Customers(s.db).Update(ctx, customer)
	if err != nil {
		return nil, err
	}
	return customerResponse(updated), nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rm.Customers(s.db).DeleteByID(ctx, id)
}

func customerResponse(c *models.Customer) *CustomerResponse {
	return &CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address}
}
