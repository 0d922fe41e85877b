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

const faqColumns = `id, title, description, category, content_type, content, attachments, attachments_version, file_path, file_name, file_size, mime_type, creator_id, created_at, updated_at`

// FAQRepository provides database access for FAQ entries.
type FAQRepository struct {
	db *sqlx.DB
}

// NewFAQRepository creates a new instance of FAQRepository.
func NewFAQRepository(db *sqlx.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns FAQ entries matching the filter with total count.
func (r *FAQRepository) List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, int, error) {
	baseQuery := `FROM faqs WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", faqColumns, baseQuery, pageSize, offset)

	var faqs []models.FAQ
	if err := r.db.SelectContext(ctx, &faqs, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list faqs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count faqs: %w", err)
	}

	return faqs, total, nil
}

// FindByID returns a FAQ entry by identifier.
func (r *FAQRepository) FindByID(ctx context.Context, id string) (*models.FAQ, error) {
	query := fmt.Sprintf(`SELECT %s FROM faqs WHERE id = $1 LIMIT 1`, faqColumns)
	var faq models.FAQ
	if err := r.db.GetContext(ctx, &faq, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find faq by id: %w", err)
	}
	return &faq, nil
}

// Create inserts a new FAQ record.
func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQ) error {
	if faq.ID == "" {
		faq.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if faq.CreatedAt.IsZero() {
		faq.CreatedAt = now
	}
	faq.UpdatedAt = now

	const query = `INSERT INTO faqs (id, title, description, category, content_type, content, attachments, attachments_version, file_path, file_name, file_size, mime_type, creator_id, created_at, updated_at) VALUES (:id, :title, :description, :category, :content_type, :content, :attachments, :attachments_version, :file_path, :file_name, :file_size, :mime_type, :creator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, faq); err != nil {
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}

// Update updates mutable fields of a FAQ entry.
func (r *FAQRepository) Update(ctx context.Context, faq *models.FAQ) error {
	faq.UpdatedAt = time.Now().UTC()
	const query = `UPDATE faqs SET title = :title, description = :description, category = :category, content_type = :content_type, content = :content, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, faq); err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	return nil
}

// UpdateAttachments replaces the attachment list guarded by the version
// column. It returns sql.ErrNoRows when the stored version no longer
// matches, signalling a concurrent modification.
func (r *FAQRepository) UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error {
	const query = `UPDATE faqs SET attachments = $2, attachments_version = attachments_version + 1, file_path = NULL, file_name = NULL, file_size = NULL, mime_type = NULL, updated_at = $3 WHERE id = $1 AND attachments_version = $4`
	result, err := r.db.ExecContext(ctx, query, id, attachments, time.Now().UTC(), expectedVersion)
	if err != nil {
		return fmt.Errorf("update faq attachments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update faq attachments: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a FAQ record.
func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM faqs WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	return nil
}
