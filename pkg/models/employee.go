package models

import (
	"time"

	"github.com/google/uuid"
)

// Status values for employees.
const (
	EmployeeStatusActive   = "ACTIVE"
	EmployeeStatusInactive = "INACTIVE"
	EmployeeStatusOnLeave  = "ON_LEAVE"
)

// EmployeeStatuses lists the accepted status values.
var EmployeeStatuses = []string{EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave}

// Employee represents a staff member. Employees own deployments,
// environments, database trackers and API endpoints; deleting an employee
// cascades to those resources.
type Employee struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Department string     `json:"department,omitempty"`
	Position   string     `json:"position,omitempty"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hire_date,omitempty"`
	Salary     float64    `json:"salary,omitempty"`
	Address    string     `json:"address,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	Manager    string     `json:"manager,omitempty"`
	Skills     []string   `json:"skills,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
