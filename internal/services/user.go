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

type CreateUserRequest struct {
	Name     string      `json:"name" validate:"required,min=3"`
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required,min=8"`
	RoleIDs  []uuid.UUID `json:"roleIds"`
}

// UpdateUserRequest leaves the password optional; an empty password keeps
// the stored digest.
type UpdateUserRequest struct {
	Name     string      `json:"name" validate:"required,min=3"`
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"omitempty,min=8"`
	RoleIDs  []uuid.UUID `json:"roleIds"`
}

// UserResponse never carries credential material; roles are returned by name.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
}

type UserService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	hasher *PasswordHasher
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, hasher *PasswordHasher) *UserService {
	return &UserService{db: db, rm: rm, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.rm.Users(s.db).GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if existing != nil {
		return nil, &common.ConflictError{Entity: "user", Field: "username", Value: req.Username}
	}

	roles, err := s.resolveRoles(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: s.hasher.Hash(req.Password),
		Roles:        roles,
	}
	created, err := s.rm.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return userResponse(created), nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return nil, common.NewNotFound("User", id)
	}
	return userResponse(user), nil
}

func (s *UserService) GetAll(ctx context.Context) ([]*UserResponse, error) {
	list, err := s.rm.Users(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	out := make([]*UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, userResponse(u))
	}
	return out, nil
}

// Update rewrites the user's profile and role assignments. The refresh-token
// state of the loaded user is carried through untouched.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	repo := s.rm.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	if user == nil {
		return nil, common.NewNotFound("User", id)
	}

	roles, err := s.resolveRoles(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Roles = roles
	if req.Password != "" {
		user.PasswordHash = s.hasher.Hash(req.Password)
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return userResponse(updated), nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rm.Users(s.db).DeleteByID(ctx, id)
}

// resolveRoles loads every referenced role; any miss fails the whole request.
func (s *UserService) resolveRoles(ctx context.Context, roleIDs []uuid.UUID) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(roleIDs))
	repo := s.rm.Roles(s.db)
	for _, id := range roleIDs {
		role, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("getting role: %w", err)
		}
		if role == nil {
			return nil, common.NewNotFound("Role", id)
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func userResponse(u *models.User) *UserResponse {
	return &UserResponse{ID: u.ID, Name: u.Name, Username: u.Username, Roles: u.RoleNames()}
}
