package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hisdocs/his-docs-api/internal/models"
)

const projectColumns = `id, name, manager, contact_info, description, documents, attachments, attachments_version, creator_id, created_at, updated_at`

// ProjectRepository provides database access for projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new instance of ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns projects matching the filter with total count.
func (r *ProjectRepository) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, int, error) {
	baseQuery := `FROM projects WHERE 1=1`
	var args []interface{}

	if filter.Keyword != "" {
		baseQuery += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(manager) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", projectColumns, baseQuery, pageSize, offset)

	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	return projects, total, nil
}

// FindByID returns a project by identifier.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1 LIMIT 1`, projectColumns)
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return &project, nil
}

// Create inserts a new project record.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	const query = `INSERT INTO projects (id, name, manager, contact_info, description, documents, attachments, attachments_version, creator_id, created_at, updated_at) VALUES (:id, :name, :manager, :contact_info, :description, :documents, :attachments, :attachments_version, :creator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update updates mutable fields of a project.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	const query = `UPDATE projects SET name = :name, manager = :manager, contact_info = :contact_info, description = :description, documents = :documents, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// UpdateAttachments replaces the attachment list guarded by the version
// column. It returns sql.ErrNoRows when the stored version no longer
// matches, signalling a concurrent modification.
func (r *ProjectRepository) UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error {
	const query = `UPDATE projects SET attachments = $2, attachments_version = attachments_version + 1, updated_at = $3 WHERE id = $1 AND attachments_version = $4`
	result, err := r.db.ExecContext(ctx, query, id, attachments, time.Now().UTC(), expectedVersion)
	if err != nil {
		return fmt.Errorf("update project attachments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update project attachments: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a project. Interfaces and dictionaries cascade at the
// database level.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM projects WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
