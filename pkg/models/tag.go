package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a registered label. Tag values on ideas and evidence are free-form
// strings; this table is the curated catalog. Names are unique.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
