package models

import (
	"time"

	"github.com/google/uuid"
)

// Method values for API endpoints.
const (
	EndpointMethodGet    = "GET"
	EndpointMethodPost   = "POST"
	EndpointMethodPut    = "PUT"
	EndpointMethodDelete = "DELETE"
)

// Status values for API endpoints.
const (
	EndpointStatusCompleted  = "COMPLETED"
	EndpointStatusInProgress = "IN_PROGRESS"
	EndpointStatusNotStarted = "NOT_STARTED"
)

// EndpointMethods lists the accepted method values.
var EndpointMethods = []string{EndpointMethodGet, EndpointMethodPost, EndpointMethodPut, EndpointMethodDelete}

// EndpointStatuses lists the accepted status values.
var EndpointStatuses = []string{EndpointStatusCompleted, EndpointStatusInProgress, EndpointStatusNotStarted}

// ApiEndpoint catalogs an HTTP endpoint under development, with its latest
// test result summary.
type ApiEndpoint struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Method         string     `json:"method"`
	Path           string     `json:"path"`
	Status         string     `json:"status"`
	Version        string     `json:"version,omitempty"`
	LastTested     *time.Time `json:"last_tested,omitempty"`
	ResponseTimeMs int        `json:"response_time_ms,omitempty"`
	EmployeeID     *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
