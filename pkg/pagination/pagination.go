// Package pagination parses page/size/sort query parameters for collection
// endpoints and maps sort fields to SQL columns through per-resource
// whitelists. Sorting is never interpolated from raw client input.
package pagination

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/ideahub-inc/ideahub-engine/pkg/apperrors"
)

// Request is a validated paging request. Sort holds a SQL column name taken
// from a whitelist, never raw client input.
type Request struct {
	Page int
	Size int
	Sort string
	Desc bool
}

// Offset returns the row offset for the requested page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// OrderBy returns an ORDER BY clause body like "title ASC".
func (r Request) OrderBy() string {
	dir := "ASC"
	if r.Desc {
		dir = "DESC"
	}
	return r.Sort + " " + dir
}

// Limits carries the configured page-size defaults.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Parse reads page, size and sort from the query string. page defaults to 0,
// size to limits.DefaultSize (capped at limits.MaxSize), sort to defaultSort.
// sort takes the form "field" or "field,asc|desc"; the field must appear in
// allowed, which maps exposed field names to SQL columns. Unknown fields
// produce a validation error naming the accepted ones.
func Parse(q url.Values, limits Limits, allowed map[string]string, defaultSort string) (Request, error) {
	defaultCol, ok := allowed[defaultSort]
	if !ok {
		panic(fmt.Sprintf("pagination: default sort field %q not in whitelist", defaultSort))
	}
	req := Request{
		Size: limits.DefaultSize,
		Sort: defaultCol,
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Request{}, apperrors.Validationf("page must be a non-negative integer, got %q", v)
		}
		req.Page = n
	}

	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Request{}, apperrors.Validationf("size must be a positive integer, got %q", v)
		}
		if n > limits.MaxSize {
			n = limits.MaxSize
		}
		req.Size = n
	}

	if v := q.Get("sort"); v != "" {
		field := v
		if i := strings.IndexByte(v, ','); i >= 0 {
			field = v[:i]
			switch dir := strings.ToLower(strings.TrimSpace(v[i+1:])); dir {
			case "asc", "":
			case "desc":
				req.Desc = true
			default:
				return Request{}, apperrors.Validationf("sort direction must be asc or desc, got %q", dir)
			}
		}
		col, ok := allowed[strings.TrimSpace(field)]
		if !ok {
			return Request{}, apperrors.Validationf("unknown sort field %q, valid fields: %s", field, fieldList(allowed))
		}
		req.Sort = col
	}

	return req, nil
}

func fieldList(allowed map[string]string) string {
	fields := make([]string, 0, len(allowed))
	for f := range allowed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}

// sortable builds a whitelist where each exposed field name maps to itself as
// the column, plus explicit extra mappings.
func sortable(cols []string, extra map[string]string) map[string]string {
	m := make(map[string]string, len(cols)+len(extra))
	for _, c := range cols {
		m[c] = c
	}
	for f, c := range extra {
		if _, dup := m[f]; dup {
			panic(fmt.Sprintf("pagination: duplicate sort field %q", f))
		}
		m[f] = c
	}
	return m
}

// Per-resource sort whitelists. Keys are the field names clients send
// (both snake_case column names and the camelCase aliases the original API
// accepted); values are SQL columns.
var (
	IdeaSortFields = sortable(
		[]string{"title", "priority", "status", "upvotes", "comments", "due_date", "created_date", "created_at", "updated_at"},
		map[string]string{"dueDate": "due_date", "createdDate": "created_date", "createdAt": "created_at"},
	)

	EvidenceSortFields = sortable(
		[]string{"title", "type", "category", "status", "file_name", "file_size", "uploaded_at"},
		map[string]string{"fileName": "file_name", "fileSize": "file_size", "uploadedAt": "uploaded_at"},
	)

	EmployeeSortFields = sortable(
		[]string{"first_name", "last_name", "email", "department", "position", "status", "hire_date", "salary", "created_at"},
		map[string]string{"firstName": "first_name", "lastName": "last_name", "hireDate": "hire_date", "createdAt": "created_at"},
	)

	DeploymentSortFields = sortable(
		[]string{"name", "environment", "status", "version", "health", "deployed_at", "created_at"},
		map[string]string{"deployedAt": "deployed_at", "createdAt": "created_at"},
	)

	EnvironmentSortFields = sortable(
		[]string{"name", "status", "created_at"},
		map[string]string{"createdAt": "created_at"},
	)

	TrackerSortFields = sortable(
		[]string{"id", "name", "version", "status", "last_modified", "tables_count", "migrations_count", "created_at"},
		map[string]string{"lastModified": "last_modified", "tablesCount": "tables_count", "migrationsCount": "migrations_count", "createdAt": "created_at"},
	)

	LikeSortFields = sortable(
		[]string{"created_at"},
		map[string]string{"createdAt": "created_at"},
	)

	ProjectSortFields = sortable(
		[]string{"name", "created_at"},
		map[string]string{"createdAt": "created_at"},
	)

	RoleSortFields = sortable(
		[]string{"name", "created_at"},
		map[string]string{"createdAt": "created_at"},
	)

	UserSortFields = sortable(
		[]string{"username", "email", "full_name", "created_at"},
		map[string]string{"fullName": "full_name", "createdAt": "created_at"},
	)

	EndpointSortFields = sortable(
		[]string{"name", "method", "path", "status", "version", "last_tested", "response_time_ms", "created_at"},
		map[string]string{"lastTested": "last_tested", "responseTimeMs": "response_time_ms", "createdAt": "created_at"},
	)

	TestLogSortFields = sortable(
		[]string{"executed_at", "request_method", "request_path"},
		map[string]string{"executedAt": "executed_at"},
	)
)
