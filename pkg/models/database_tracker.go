package models

import (
	"time"

	"github.com/google/uuid"
)

// Status values for database trackers.
const (
	TrackerStatusApproved = "approved"
	TrackerStatusPending  = "pending"
	TrackerStatusCreated  = "created"
	TrackerStatusFailed   = "failed"
)

// TrackerStatuses lists the accepted status values.
var TrackerStatuses = []string{TrackerStatusApproved, TrackerStatusPending, TrackerStatusCreated, TrackerStatusFailed}

// DatabaseTracker tracks the schema state of a managed database. Unlike the
// other resources it keeps a serial integer id. LastModified is set by the
// store on every write. MigrationsJSON holds an opaque JSON array maintained
// by the client.
type DatabaseTracker struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Version         string     `json:"version,omitempty"`
	Status          string     `json:"status"`
	LastModified    *time.Time `json:"last_modified,omitempty"`
	TablesCount     int        `json:"tables_count"`
	MigrationsCount int        `json:"migrations_count"`
	MigrationsJSON  string     `json:"migrations_json"`
	EmployeeID      uuid.UUID  `json:"employee_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
