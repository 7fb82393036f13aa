package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
	"github.com/ideahub-inc/ideahub-engine/pkg/database"
	"github.com/ideahub-inc/ideahub-engine/pkg/models"
)

// SubscriptionRepository defines the interface for subscription data access.
// The users.user_id unique index enforces one subscription per user.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *models.Subscription) error
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)
	Update(ctx context.Context, sub *models.Subscription) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Subscription, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (*models.Subscription, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type subscriptionRepository struct {
	db *database.DB
}

// NewSubscriptionRepository creates a new subscription repository.
func NewSubscriptionRepository(db *database.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, plan, status, started_at, expires_at, employee_id, created_at, updated_at`

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var sub models.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Plan,
		&sub.Status,
		&sub.StartedAt,
		&sub.ExpiresAt,
		&sub.EmployeeID,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Create inserts a new subscription.
func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	_, err := r.db.Exec(ctx,
		`INSERT INTO subscriptions (id, user_id, plan, status, started_at, expires_at, employee_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sub.ID, sub.UserID, sub.Plan, sub.Status, sub.StartedAt, sub.ExpiresAt, sub.EmployeeID, sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("user %s already has a subscription", sub.UserID)
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// Get retrieves a subscription by ID.
func (r *subscriptionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// GetByUser retrieves a user's subscription.
func (r *subscriptionRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRow(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by user: %w", err)
	}
	return sub, nil
}

// Update overwrites all mutable fields of a subscription.
func (r *subscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	sub.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx,
		`UPDATE subscriptions
		 SET plan = $2, status = $3, started_at = $4, expires_at = $5, employee_id = $6, updated_at = $7
		 WHERE id = $1`,
		sub.ID, sub.Plan, sub.Status, sub.StartedAt, sub.ExpiresAt, sub.EmployeeID, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus changes only the status and returns the updated row.
func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRow(ctx,
		`UPDATE subscriptions SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+subscriptionColumns,
		id, status, time.Now()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update subscription status: %w", err)
	}
	return sub, nil
}

// UpdatePlan changes only the plan and returns the updated row.
func (r *subscriptionRepository) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) (*models.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRow(ctx,
		`UPDATE subscriptions SET plan = $2, updated_at = $3 WHERE id = $1 RETURNING `+subscriptionColumns,
		id, plan, time.Now()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update subscription plan: %w", err)
	}
	return sub, nil
}

// Delete removes a subscription.
func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

var _ SubscriptionRepository = (*subscriptionRepository)(nil)
