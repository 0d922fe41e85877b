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

const documentColumns = `id, title, description, region, person, document_type, attachments, attachments_version, file_path, file_name, file_size, mime_type, creator_id, created_at, updated_at`

// DocumentRepository provides database access for standalone documents.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns documents matching the filter with total count.
func (r *DocumentRepository) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, int, error) {
	baseQuery := `FROM documents WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.DocumentType != "" {
		conditions = append(conditions, fmt.Sprintf("document_type = $%d", len(args)+1))
		args = append(args, filter.DocumentType)
	}
	if filter.Region != "" {
		conditions = append(conditions, fmt.Sprintf("region = $%d", len(args)+1))
		args = append(args, filter.Region)
	}
	if filter.Person != "" {
		conditions = append(conditions, fmt.Sprintf("person = $%d", len(args)+1))
		args = append(args, filter.Person)
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", documentColumns, baseQuery, pageSize, offset)

	var documents []models.Document
	if err := r.db.SelectContext(ctx, &documents, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	return documents, total, nil
}

// FindByID returns a document by identifier.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1 LIMIT 1`, documentColumns)
	var document models.Document
	if err := r.db.GetContext(ctx, &document, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return &document, nil
}

// Create inserts a new document record.
func (r *DocumentRepository) Create(ctx context.Context, document *models.Document) error {
	if document.ID == "" {
		document.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if document.CreatedAt.IsZero() {
		document.CreatedAt = now
	}
	document.UpdatedAt = now

	const query = `INSERT INTO documents (id, title, description, region, person, document_type, attachments, attachments_version, file_path, file_name, file_size, mime_type, creator_id, created_at, updated_at) VALUES (:id, :title, :description, :region, :person, :document_type, :attachments, :attachments_version, :file_path, :file_name, :file_size, :mime_type, :creator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, document); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Update updates mutable fields of a document.
func (r *DocumentRepository) Update(ctx context.Context, document *models.Document) error {
	document.UpdatedAt = time.Now().UTC()
	const query = `UPDATE documents SET title = :title, description = :description, region = :region, person = :person, document_type = :document_type, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, document); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// UpdateAttachments replaces the attachment list guarded by the version
// column. It returns sql.ErrNoRows when the stored version no longer
// matches, signalling a concurrent modification.
func (r *DocumentRepository) UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error {
	const query = `UPDATE documents SET attachments = $2, attachments_version = attachments_version + 1, file_path = NULL, file_name = NULL, file_size = NULL, mime_type = NULL, updated_at = $3 WHERE id = $1 AND attachments_version = $4`
	result, err := r.db.ExecContext(ctx, query, id, attachments, time.Now().UTC(), expectedVersion)
	if err != nil {
		return fmt.Errorf("update document attachments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document attachments: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document record.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM documents WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
