// Package models contains domain types for ideahub-engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority values for ideas.
const (
	IdeaPriorityHigh   = "HIGH"
	IdeaPriorityMedium = "MEDIUM"
	IdeaPriorityLow    = "LOW"
)

// Status values for ideas.
const (
	IdeaStatusPending    = "PENDING"
	IdeaStatusInProgress = "IN_PROGRESS"
	IdeaStatusCompleted  = "COMPLETED"
)

// IdeaPriorities lists the accepted priority values.
var IdeaPriorities = []string{IdeaPriorityHigh, IdeaPriorityMedium, IdeaPriorityLow}

// IdeaStatuses lists the accepted status values.
var IdeaStatuses = []string{IdeaStatusPending, IdeaStatusInProgress, IdeaStatusCompleted}

// Idea represents a tracked idea. Upvotes is maintained by the store and
// always equals the number of like rows for the idea.
type Idea struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	Upvotes     int        `json:"upvotes"`
	Comments    int        `json:"comments"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IdeaUpdate carries a partial update. Nil fields are left unchanged.
type IdeaUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}
