package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan values for subscriptions.
const (
	SubscriptionPlanFree    = "FREE"
	SubscriptionPlanPremium = "PREMIUM"
)

// Status values for subscriptions.
const (
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusInactive  = "INACTIVE"
	SubscriptionStatusPastDue   = "PAST_DUE"
	SubscriptionStatusCancelled = "CANCELLED"
)

// SubscriptionPlans lists the accepted plan values.
var SubscriptionPlans = []string{SubscriptionPlanFree, SubscriptionPlanPremium}

// SubscriptionStatuses lists the accepted status values.
var SubscriptionStatuses = []string{SubscriptionStatusActive, SubscriptionStatusInactive, SubscriptionStatusPastDue, SubscriptionStatusCancelled}

// Subscription is a user's billing plan. Each user has at most one.
type Subscription struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Plan       string     `json:"plan"`
	Status     string     `json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
