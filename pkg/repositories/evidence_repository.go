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

// EvidenceRepository defines the interface for evidence data access.
type EvidenceRepository interface {
	Create(ctx context.Context, ev *models.Evidence) error
	Get(ctx context.Context, id uuid.UUID) (*models.Evidence, error)
	Update(ctx context.Context, ev *models.Evidence) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) ([]models.Evidence, int64, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, page pagination.Request) ([]models.Evidence, int64, error)
	ListByProjectAndCategory(ctx context.Context, projectID uuid.UUID, category string) ([]models.Evidence, error)
	ListByProjectAndTag(ctx context.Context, projectID uuid.UUID, tag string) ([]models.Evidence, error)
	ListByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) ([]models.Evidence, error)
}

type evidenceRepository struct {
	db *database.DB
}

// NewEvidenceRepository creates a new evidence repository.
func NewEvidenceRepository(db *database.DB) EvidenceRepository {
	return &evidenceRepository{db: db}
}

const evidenceColumns = `id, title, description, type, category, status, file_name, file_path,
	content_type, file_size, url, tags, project_id, uploaded_by, idea_id, uploaded_at, updated_at`

func scanEvidence(row pgx.Row) (*models.Evidence, error) {
	var ev models.Evidence
	err := row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.Type,
		&ev.Category,
		&ev.Status,
		&ev.FileName,
		&ev.FilePath,
		&ev.ContentType,
		&ev.FileSize,
		&ev.URL,
		&ev.Tags,
		&ev.ProjectID,
		&ev.UploadedBy,
		&ev.IdeaID,
		&ev.UploadedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Create inserts a new evidence row.
func (r *evidenceRepository) Create(ctx context.Context, ev *models.Evidence) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	now := time.Now()
	ev.UploadedAt = now
	ev.UpdatedAt = now

	query := `
		INSERT INTO evidence (id, title, description, type, category, status, file_name, file_path,
			content_type, file_size, url, tags, project_id, uploaded_by, idea_id, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.Exec(ctx, query,
		ev.ID,
		ev.Title,
		ev.Description,
		ev.Type,
		ev.Category,
		ev.Status,
		ev.FileName,
		ev.FilePath,
		ev.ContentType,
		ev.FileSize,
		ev.URL,
		ev.Tags,
		ev.ProjectID,
		ev.UploadedBy,
		ev.IdeaID,
		ev.UploadedAt,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}
	return nil
}

// Get retrieves evidence by ID.
func (r *evidenceRepository) Get(ctx context.Context, id uuid.UUID) (*models.Evidence, error) {
	ev, err := scanEvidence(r.db.QueryRow(ctx, `SELECT `+evidenceColumns+` FROM evidence WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}
	return ev, nil
}

// Update overwrites all mutable fields of an evidence row.
func (r *evidenceRepository) Update(ctx context.Context, ev *models.Evidence) error {
	ev.UpdatedAt = time.Now()

	query := `
		UPDATE evidence
		SET title = $2, description = $3, type = $4, category = $5, status = $6, file_name = $7,
			file_path = $8, content_type = $9, file_size = $10, url = $11, tags = $12,
			project_id = $13, uploaded_by = $14, idea_id = $15, updated_at = $16
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		ev.ID,
		ev.Title,
		ev.Description,
		ev.Type,
		ev.Category,
		ev.Status,
		ev.FileName,
		ev.FilePath,
		ev.ContentType,
		ev.FileSize,
		ev.URL,
		ev.Tags,
		ev.ProjectID,
		ev.UploadedBy,
		ev.IdeaID,
		ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update evidence: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus changes only the status of an evidence row.
func (r *evidenceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE evidence SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update evidence status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an evidence row. The stored file is the service's problem.
func (r *evidenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM evidence WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of all evidence.
func (r *evidenceRepository) List(ctx context.Context, page pagination.Request) ([]models.Evidence, int64, error) {
	return r.listWhere(ctx, "", nil, page)
}

// ListByProject returns a page of evidence belonging to a project.
func (r *evidenceRepository) ListByProject(ctx context.Context, projectID uuid.UUID, page pagination.Request) ([]models.Evidence, int64, error) {
	return r.listWhere(ctx, ` WHERE project_id = $1`, []any{projectID}, page)
}

// ListByProjectAndCategory returns all evidence in a project with the given
// category. Unpaged, like the other two-filter reads.
func (r *evidenceRepository) ListByProjectAndCategory(ctx context.Context, projectID uuid.UUID, category string) ([]models.Evidence, error) {
	return r.listAllWhere(ctx, ` WHERE project_id = $1 AND category = $2`, []any{projectID, category})
}

// ListByProjectAndTag returns all evidence in a project carrying the tag.
func (r *evidenceRepository) ListByProjectAndTag(ctx context.Context, projectID uuid.UUID, tag string) ([]models.Evidence, error) {
	return r.listAllWhere(ctx, ` WHERE project_id = $1 AND $2 = ANY(tags)`, []any{projectID, tag})
}

// ListByProjectAndStatus returns all evidence in a project with the status.
func (r *evidenceRepository) ListByProjectAndStatus(ctx context.Context, projectID uuid.UUID, status string) ([]models.Evidence, error) {
	return r.listAllWhere(ctx, ` WHERE project_id = $1 AND status = $2`, []any{projectID, status})
}

func (r *evidenceRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Evidence, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM evidence`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count evidence: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+evidenceColumns+` FROM evidence%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	list, err := r.queryList(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *evidenceRepository) listAllWhere(ctx context.Context, where string, args []any) ([]models.Evidence, error) {
	query := `SELECT ` + evidenceColumns + ` FROM evidence` + where + ` ORDER BY uploaded_at DESC`
	return r.queryList(ctx, query, args)
}

func (r *evidenceRepository) queryList(ctx context.Context, query string, args []any) ([]models.Evidence, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var list []models.Evidence
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		list = append(list, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read evidence: %w", err)
	}
	return list, nil
}

var _ EvidenceRepository = (*evidenceRepository)(nil)
