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

type ProductRequest struct {
	Description string `json:"description" validate:"required,max=100"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
}

type ProductService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, rm repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, rm: rm}
}

func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*ProductResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	created, err := s.rm.Products(s.db).Create(ctx, &models.Product{Description: req.Description})
	if err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return productResponse(created), nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.rm.Products(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	if product == nil {
		return nil, common.NewNotFound("Product", id)
	}
	return productResponse(product), nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]*ProductResponse, error) {
	list, err := s.rm.Products(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	out := make([]*ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productResponse(p))
	}
	return out, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *ProductRequest) (*ProductResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	updated, err := s.rm.Products(s.db).Update(ctx, &models.Product{ID: id, Description: req.Description})
	if err != nil {
		return nil, err
	}
	return productResponse(updated), nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rm.Products(s.db).DeleteByID(ctx, id)
}

func productResponse(p *models.Product) *ProductResponse {
	return &ProductResponse{ID: p.ID, Description: p.Description}
}
