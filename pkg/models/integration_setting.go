package models

import (
	"time"

	"github.com/google/uuid"
)

// Type values for integration settings.
const (
	IntegrationTypeGitHub = "GITHUB"
	IntegrationTypeSlack  = "SLACK"
)

// IntegrationTypes lists the accepted integration type values.
var IntegrationTypes = []string{IntegrationTypeGitHub, IntegrationTypeSlack}

// IntegrationSetting connects a user to an external service. A user has at
// most one setting per type. Config is an opaque JSON string owned by the
// integration.
type IntegrationSetting struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Type       string     `json:"type"`
	Connected  bool       `json:"connected"`
	Config     string     `json:"config,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
