package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kaypiton/billing-backend/internal/config"
	"github.com/kaypiton/billing-backend/internal/models"
)

// TokenIssuer mints HS256 access tokens and opaque refresh tokens.
type TokenIssuer struct {
	secret          []byte
	issuer          string
	audience        string
	accessValidity  time.Duration
	refreshValidity time.Duration
	now             func() time.Time
}

func NewTokenIssuer(cfg config.JWT) *TokenIssuer {
	return &TokenIssuer{
		secret:          []byte(cfg.Secret),
		issuer:          cfg.Issuer,
		audience:        cfg.Audience,
		accessValidity:  cfg.AccessTokenValidity(),
		refreshValidity: cfg.RefreshTokenValidity(),
		now:             time.Now,
	}
}

// IssueAccessToken returns a signed JWT for the user together with its
// expiry. The role claim is the user's role names joined with commas.
func (i *TokenIssuer) IssueAccessToken(user *models.User) (string, time.Time, error) {
	now := i.now()
	expires := now.Add(i.accessValidity)
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"uid":  user.ID.String(),
		"role": strings.Join(user.RoleNames(), ","),
		"iss":  i.issuer,
		"aud":  i.audience,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing access token: %w", err)
	}
	return signed, expires, nil
}

// NewRefreshToken returns an opaque token, 64 random bytes in std base64,
// together with its expiry.
func (i *TokenIssuer) NewRefreshToken() (string, time.Time, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), i.now().Add(i.refreshValidity), nil
}

// ParseAccessToken verifies signature, issuer, audience, and the time
// claims, and returns the parsed claims.
func (i *TokenIssuer) ParseAccessToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}
	return claims, nil
}
