package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kaypiton/billing-backend/internal/common"
	"github.com/kaypiton/billing-backend/internal/models"
	"github.com/kaypiton/billing-backend/internal/repositories/repomanager"
	"github.com/kaypiton/billing-backend/internal/validation"
)

type AuthenticateRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// AuthenticateResponse bundles a short-lived access token and a long-lived
// refresh token, each with its expiry.
type AuthenticateResponse struct {
	Authenticated          bool      `json:"authenticated"`
	Created                time.Time `json:"created"`
	AccessTokenExpiration  time.Time `json:"accessTokenExpiration"`
	RefreshTokenExpiration time.Time `json:"refreshTokenExpiration"`
	AccessToken            string    `json:"accessToken"`
	RefreshToken           string    `json:"refreshToken"`
}

// AuthService verifies credentials and manages the refresh-token lifecycle.
// One refresh token is active per user at a time; issuing a new one replaces
// the previous one.
type AuthService struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	hasher *PasswordHasher
	issuer *TokenIssuer
	now    func() time.Time
}

func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, hasher *PasswordHasher, issuer *TokenIssuer) *AuthService {
	return &AuthService{db: db, rm: rm, hasher: hasher, issuer: issuer, now: time.Now}
}

// Authenticate verifies the username and password and returns a fresh token
// pair. An unknown username and a wrong password both yield
// ErrUnauthenticated so callers cannot probe for accounts.
func (s *AuthService) Authenticate(ctx context.Context, req *AuthenticateRequest) (*AuthenticateResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	repo := s.rm.Users(s.db)
	user, err := repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, common.ErrUnauthenticated
	}

	return s.issuePair(ctx, user)
}

// Refresh rotates the refresh token: the presented token is invalidated and
// a new pair is issued. Unknown and expired tokens both yield
// ErrUnauthenticated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthenticateResponse, error) {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("looking up refresh token: %w", err)
	}
	if user == nil || !user.RefreshTokenExpiresAt.After(s.now()) {
		return nil, common.ErrUnauthenticated
	}

	return s.issuePair(ctx, user)
}

// Revoke clears the user's refresh token. It reports whether a matching
// token was found; an unknown token is not an error.
func (s *AuthService) Revoke(ctx context.Context, refreshToken string) (bool, error) {
	repo := s.rm.Users(s.db)
	user, err := repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return false, fmt.Errorf("looking up refresh token: %w", err)
	}
	if user == nil {
		return false, nil
	}

	user.RefreshToken = sql.NullString{}
	user.RefreshTokenExpiresAt = time.Time{}
	if _, err := repo.Update(ctx, user); err != nil {
		return false, fmt.Errorf("revoking refresh token: %w", err)
	}
	return true, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*AuthenticateResponse, error) {
	access, accessExpires, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, refreshExpires, err := s.issuer.NewRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	user.RefreshToken = sql.NullString{String: refresh, Valid: true}
	user.RefreshTokenExpiresAt = refreshExpires
	repo := s.rm.Users(s.db)
	if _, err := repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}
	return &AuthenticateResponse{
		Authenticated:          true,
		Created:                s.now(),
		AccessToken:            access,
		AccessTokenExpiration:  accessExpires,
		RefreshToken:           refresh,
		RefreshTokenExpiration: refreshExpires,
	}, nil
}
