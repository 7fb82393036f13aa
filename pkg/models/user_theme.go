package models

import (
	"time"

	"github.com/google/uuid"
)

// Theme values for user display preferences.
const (
	ThemeLight  = "LIGHT"
	ThemeDark   = "DARK"
	ThemeSystem = "SYSTEM"
)

// Themes lists the accepted theme values.
var Themes = []string{ThemeLight, ThemeDark, ThemeSystem}

// UserTheme is a user's display preference. Each user has at most one.
type UserTheme struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
