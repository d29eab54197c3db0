// Package services contains the application's business logic: credential
// handling, token issuing, and the per-entity CRUD services that sit between
// the HTTP transport and the repositories.
package services

import (
	"crypto/sha256"
	"encoding/base64"
)

// PasswordHasher produces the stored password digest: std base64 of the
// SHA-256 of the raw password. The scheme is unsalted; changing it would
// invalidate every digest already stored.
type PasswordHasher struct{}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

func (h *PasswordHasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (h *PasswordHasher) Verify(password, digest string) bool {
	return h.Hash(password) == digest
}
