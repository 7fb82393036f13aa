package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that uploads evidence, likes ideas and holds
// subscriptions. The password is stored as a bcrypt hash and never
// serialized into responses.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
