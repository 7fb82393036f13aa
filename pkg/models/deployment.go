package models

import (
	"time"

	"github.com/google/uuid"
)

// Status values for deployments.
const (
	DeploymentStatusPending   = "PENDING"
	DeploymentStatusDeploying = "DEPLOYING"
	DeploymentStatusDeployed  = "DEPLOYED"
	DeploymentStatusFailed    = "FAILED"
)

// Health values for deployments.
const (
	DeploymentHealthHealthy   = "HEALTHY"
	DeploymentHealthUnknown   = "UNKNOWN"
	DeploymentHealthUnhealthy = "UNHEALTHY"
)

// DeploymentStatuses lists the accepted status values.
var DeploymentStatuses = []string{DeploymentStatusPending, DeploymentStatusDeploying, DeploymentStatusDeployed, DeploymentStatusFailed}

// DeploymentHealths lists the accepted health values.
var DeploymentHealths = []string{DeploymentHealthHealthy, DeploymentHealthUnknown, DeploymentHealthUnhealthy}

// Deployment records a release of a service into an environment. Every
// deployment is owned by an employee; lookups outside the unscoped filter
// endpoints always pair the id with the owner.
type Deployment struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Environment string     `json:"environment,omitempty"`
	Status      string     `json:"status"`
	Version     string     `json:"version,omitempty"`
	DeployedAt  *time.Time `json:"deployed_at,omitempty"`
	Branch      string     `json:"branch,omitempty"`
	CommitHash  string     `json:"commit_hash,omitempty"`
	Health      string     `json:"health"`
	Progress    string     `json:"progress,omitempty"`
	EmployeeID  uuid.UUID  `json:"employee_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DeploymentUpdate carries a partial update. Nil fields are left unchanged.
type DeploymentUpdate struct {
	Name        *string    `json:"name,omitempty"`
	Environment *string    `json:"environment,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Version     *string    `json:"version,omitempty"`
	DeployedAt  *time.Time `json:"deployed_at,omitempty"`
	Branch      *string    `json:"branch,omitempty"`
	CommitHash  *string    `json:"commit_hash,omitempty"`
	Health      *string    `json:"health,omitempty"`
	Progress    *string    `json:"progress,omitempty"`
}
