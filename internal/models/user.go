package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User carries the current refresh-token state inline: one active refresh
// token per user. RefreshToken and RefreshTokenExpiresAt are always set or
// cleared together; a cleared token is NULL with the zero expiry.
type User struct {
	ID                    uuid.UUID
	Name                  string
	Username              string
	PasswordHash          string
	RefreshToken          sql.NullString
	RefreshTokenExpiresAt time.Time
	Roles                 []Role
	CreatedAt             time.Time
}

// RoleNames returns the names of the user's roles in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}
