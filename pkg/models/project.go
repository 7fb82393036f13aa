package models

import (
	"time"

	"github.com/google/uuid"
)

// Project groups evidence. Names are unique.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
