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

// EmployeeRepository defines the interface for employee data access.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *models.Employee) error
	Get(ctx context.Context, id uuid.UUID) (*models.Employee, error)
	GetByEmail(ctx context.Context, email string) (*models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, emp *models.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page pagination.Request) ([]models.Employee, int64, error)
	ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Employee, int64, error)
	ListByDepartment(ctx context.Context, department string, page pagination.Request) ([]models.Employee, int64, error)
}

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *database.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, email, phone, department, position, status,
	hire_date, salary, address, avatar, manager, skills, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var emp models.Employee
	err := row.Scan(
		&emp.ID,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.Department,
		&emp.Position,
		&emp.Status,
		&emp.HireDate,
		&emp.Salary,
		&emp.Address,
		&emp.Avatar,
		&emp.Manager,
		&emp.Skills,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// Create inserts a new employee.
func (r *employeeRepository) Create(ctx context.Context, emp *models.Employee) error {
	if emp.ID == uuid.Nil {
		emp.ID = uuid.New()
	}
	now := time.Now()
	emp.CreatedAt = now
	emp.UpdatedAt = now

	query := `
		INSERT INTO employees (id, first_name, last_name, email, phone, department, position, status,
			hire_date, salary, address, avatar, manager, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Exec(ctx, query,
		emp.ID,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.Department,
		emp.Position,
		emp.Status,
		emp.HireDate,
		emp.Salary,
		emp.Address,
		emp.Avatar,
		emp.Manager,
		emp.Skills,
		emp.CreatedAt,
		emp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("employee with email %s already exists", emp.Email)
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// Get retrieves an employee by ID.
func (r *employeeRepository) Get(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	emp, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetByEmail retrieves an employee by email address.
func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	emp, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1`, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return emp, nil
}

// ExistsByEmail reports whether an employee with the email exists.
func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee email: %w", err)
	}
	return exists, nil
}

// Update overwrites all mutable fields of an employee.
func (r *employeeRepository) Update(ctx context.Context, emp *models.Employee) error {
	emp.UpdatedAt = time.Now()

	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, department = $6, position = $7,
			status = $8, hire_date = $9, salary = $10, address = $11, avatar = $12, manager = $13,
			skills = $14, updated_at = $15
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		emp.ID,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.Department,
		emp.Position,
		emp.Status,
		emp.HireDate,
		emp.Salary,
		emp.Address,
		emp.Avatar,
		emp.Manager,
		emp.Skills,
		emp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicatef("employee with email %s already exists", emp.Email)
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an employee. Owned deployments, environments, database
// trackers and API endpoints are removed via CASCADE.
func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List returns a page of all employees.
func (r *employeeRepository) List(ctx context.Context, page pagination.Request) ([]models.Employee, int64, error) {
	return r.listWhere(ctx, "", nil, page)
}

// ListByStatus returns a page of employees with the given status.
func (r *employeeRepository) ListByStatus(ctx context.Context, status string, page pagination.Request) ([]models.Employee, int64, error) {
	return r.listWhere(ctx, ` WHERE status = $1`, []any{status}, page)
}

// ListByDepartment returns a page of employees in the given department.
func (r *employeeRepository) ListByDepartment(ctx context.Context, department string, page pagination.Request) ([]models.Employee, int64, error) {
	return r.listWhere(ctx, ` WHERE department = $1`, []any{department}, page)
}

func (r *employeeRepository) listWhere(ctx context.Context, where string, args []any, page pagination.Request) ([]models.Employee, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT `+employeeColumns+` FROM employees%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, page.OrderBy(), page.Size, page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var list []models.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		list = append(list, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read employees: %w", err)
	}
	return list, total, nil
}

var _ EmployeeRepository = (*employeeRepository)(nil)
