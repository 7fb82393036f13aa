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
	"github.com/ideahub-inc/ideahub-engine/pkg/pagination"
)

// TrackerRepository defines the interface for database-tracker data access.
// Trackers are owner-scoped like deployments, but keep serial integer ids and
// a server-maintained last_modified date.
type TrackerRepository interface {
	Create(ctx context.Context, t *models.DatabaseTracker) error
	Get(ctx context.Context, id int64, employeeID uuid.UUID) (*models.DatabaseTracker, error)
	GetByName(ctx context.Context, name string) (*models.DatabaseTracker, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, t *models.DatabaseTracker, employeeID uuid.UUID) error
	UpdateStatus(ctx context.Context, id int64, employeeID uuid.UUID, status string) (*models.DatabaseTracker, error)
	Delete(ctx context.Context, id int64, employeeID uuid.UUID) error
	List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) ([]models.DatabaseTracker, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.DatabaseTracker, int64, error)
	ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.DatabaseTracker, int64, error)
}

type trackerRepository struct {
	db *database.DB
}

// NewTrackerRepository creates a new database-tracker repository.
func NewTrackerRepository(db *database.DB) TrackerRepository {
	return &trackerRepository{db: db}
}

const trackerColumns = `id, name, version, status, last_modified, tables_count, migrations_count,
	migrations_json, employee_id, created_at, updated_at`

func scanTracker(row pgx.Row) (*models.DatabaseTracker, error) {
	var t models.DatabaseTracker
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Version,
		&t.Status,
		&t.LastModified,
		&t.TablesCount,
		&t.MigrationsCount,
		&t.MigrationsJSON,
		&t.EmployeeID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tracker. The serial id and last_modified are assigned
// by the database and written back onto t.
func (r *trackerRepository) Create(ctx context.Context, t *models.DatabaseTracker) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO database_trackers (name, version, status, last_modified, tables_count,
			migrations_count, migrations_json, employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_DATE, $4, $5, $6, $7, $8, $9)
		RETURNING id, last_modified`

	err := r.db.QueryRow(ctx, query,
		t.Name,
		t.Version,
		t.Status,
		t.TablesCount,
		t.MigrationsCount,
		t.MigrationsJSON,
		t.EmployeeID,
		t.CreatedAt,
		t.UpdatedAt,
	).Scan(&t.ID, &t.LastModified)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("database tracker with name %s already exists", t.Name)
		}
		return fmt.Errorf("failed to create database tracker: %w", err)
	}
	return nil
}

// Get retrieves a tracker by the combined (id, employee) key.
func (r *trackerRepository) Get(ctx context.Context, id int64, employeeID uuid.UUID) (*models.DatabaseTracker, error) {
	t, err := scanTracker(r.db.QueryRow(ctx,
		`SELECT `+trackerColumns+` FROM database_trackers WHERE id = $1 AND employee_id = $2`,
		id, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get database tracker: %w", err)
	}
	return t, nil
}

// GetByName retrieves a tracker by its unique name, unscoped.
func (r *trackerRepository) GetByName(ctx context.Context, name string) (*models.DatabaseTracker, error) {
	t, err := scanTracker(r.db.QueryRow(ctx,
		`SELECT `+trackerColumns+` FROM database_trackers WHERE name = $1`, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get database tracker by name: %w", err)
	}
	return t, nil
}

// ExistsByName reports whether a tracker with the name exists.
func (r *trackerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM database_trackers WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check database tracker name: %w", err)
	}
	return exists, nil
}

// Update overwrites all mutable fields of an owned tracker and refreshes
// last_modified.
func (r *trackerRepository) Update(ctx context.Context, t *models.DatabaseTracker, employeeID uuid.UUID) error {
	t.UpdatedAt = time.Now()

	query := `
		UPDATE database_trackers
		SET name = $2, version = $3, status = $4, last_modified = CURRENT_DATE, tables_count = $5,
			migrations_count = $6, migrations_json = $7, updated_at = $8
		WHERE id = $1 AND employee_id = $9
		RETURNING last_modified`

	err := r.db.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.Version,
		t.Status,
		t.TablesCount,
		t.MigrationsCount,
		t.MigrationsJSON,
		t.UpdatedAt,
		employeeID,
	).Scan(&t.LastModified)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("database tracker with name %s already exists", t.Name)
		}
		return fmt.Errorf("failed to update database tracker: %w", err)
	}
	return nil
}

// UpdateStatus changes only the status of an owned tracker, refreshing
// last_modified, and returns the updated row.
func (r *trackerRepository) UpdateStatus(ctx context.Context, id int64, employeeID uuid.UUID, status string) (*models.DatabaseTracker, error) {
	query := `
		UPDATE database_trackers
		SET status = $3, last_modified = CURRENT_DATE, updated_at = $4
		WHERE id = $1 AND employee_id = $2
		RETURNING ` + trackerColumns

	t, err := scanTracker(r.db.QueryRow(ctx, query, id, employeeID, status, time.Now()))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update database tracker status: %w", err)
	}
	return t, nil
}

// Delete removes an owned tracker.
func (r *trackerRepository) Delete(ctx context.Context, id int64, employeeID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM database_trackers WHERE id = $1 AND employee_id = $2`, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete database tracker: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of trackers owned by an employee.
func (r *trackerRepository) List(ctx context.Context, employeeID uuid.UUID, page pagination.Request) ([]models.DatabaseTracker, int64, error) {
	return r.listWhere(ctx, ` WHERE employee_id = $1`, []any{employeeID}, page)
}

// ListByStatus returns a page of trackers with the given status, unscoped.
func (r *trackerRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.DatabaseTracker, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

// ListByVersion returns a page of trackers of the given version, unscoped.
func (r *trackerRepository) ListByVersion(ctx context.Context, version string, page pagination.Request) ([]models.DatabaseTracker, int64, error) {
	return r.listWhere(ctx, ` WHERE version = $1`, []any{version}, page)
}

func (r *trackerRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.DatabaseTracker, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM database_trackers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count database trackers: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+trackerColumns+` FROM database_trackers%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list database trackers: %w", err)
	}
	defer rows.Close()

	var list []models.DatabaseTracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan database tracker: %w", err)
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read database trackers: %w", err)
	}
	return list, total, nil
}

var _ TrackerRepository = (*trackerRepository)(nil)
