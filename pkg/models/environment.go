package models

import (
	"time"

	"github.com/google/uuid"
)

// Status values for environments.
const (
	EnvironmentStatusActive      = "ACTIVE"
	EnvironmentStatusMaintenance = "MAINTENANCE"
)

// EnvironmentStatuses lists the accepted status values.
var EnvironmentStatuses = []string{EnvironmentStatusActive, EnvironmentStatusMaintenance}

// Environment describes a deployment target. Names are unique.
// DeploymentsCount and LastUpdate are display strings maintained by external
// tooling, not derived from the deployments table.
type Environment struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	DeploymentsCount string    `json:"deployments_count"`
	LastUpdate       string    `json:"last_update,omitempty"`
	EmployeeID       uuid.UUID `json:"employee_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
