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

type RoleRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=200"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type RoleService struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewRoleService(db *sql.DB, rm repomanager.RepositoryManager) *RoleService {
	return &RoleService{db: db, rm: rm}
}

func (s *RoleService) Create(ctx context.Context, req *RoleRequest) (*RoleResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	created, err := s.rm.Roles(s.db).Create(ctx, &models.Role{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}
	return roleResponse(created), nil
}

func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.rm.Roles(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting role: %w", err)
	}
	if role == nil {
		return nil, common.NewNotFound("Role", id)
	}
	return roleResponse(role), nil
}

func (s *RoleService) GetAll(ctx context.Context) ([]*RoleResponse, error) {
	list, err := s.rm.Roles(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	out := make([]*RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, roleResponse(r))
	}
	return out, nil
}

func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req *RoleRequest) (*RoleResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	updated, err := s.rm.Roles(s.db).Update(ctx, &models.Role{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, err
	}
	return roleResponse(updated), nil
}

func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rm.Roles(s.db).DeleteByID(ctx, id)
}

func roleResponse(r *models.Role) *RoleResponse {
	return &RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
}
