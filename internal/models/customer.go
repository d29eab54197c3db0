// Package models declares the persisted entity types of the billing backend.
package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Address   string
	CreatedAt time.Time
}
