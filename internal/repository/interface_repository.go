package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hisdocs/his-docs-api/internal/models"
)

const interfaceColumns = `id, project_id, code, name, description, interface_type, url, method, category, tags, status, input_example, output_example, view_definition, notes, creator_id, created_at, updated_at`

// InterfaceRepository provides database access for catalogued interfaces.
type InterfaceRepository struct {
	db *sqlx.DB
}

// NewInterfaceRepository creates a new instance of InterfaceRepository.
func NewInterfaceRepository(db *sqlx.DB) *InterfaceRepository {
	return &InterfaceRepository{db: db}
}

// Search returns interfaces matching the filter with total count.
func (r *InterfaceRepository) Search(ctx context.Context, filter models.InterfaceFilter) ([]models.Interface, int, error) {
	baseQuery := `FROM interfaces WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
	}
	if filter.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)+1))
		args = append(args, filter.ProjectID)
	}
	if filter.InterfaceType != "" {
		conditions = append(conditions, fmt.Sprintf("interface_type = $%d", len(args)+1))
		args = append(args, filter.InterfaceType)
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("tags ?| $%d", len(args)+1))
		args = append(args, pq.Array(filter.Tags))
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", interfaceColumns, baseQuery, pageSize, offset)

	var interfaces []models.Interface
	if err := r.db.SelectContext(ctx, &interfaces, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("search interfaces: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count interfaces: %w", err)
	}

	return interfaces, total, nil
}

// FindByID returns an interface by identifier.
func (r *InterfaceRepository) FindByID(ctx context.Context, id string) (*models.Interface, error) {
	query := fmt.Sprintf(`SELECT %s FROM interfaces WHERE id = $1 LIMIT 1`, interfaceColumns)
	var iface models.Interface
	if err := r.db.GetContext(ctx, &iface, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find interface by id: %w", err)
	}
	return &iface, nil
}

// FindByCode returns an interface by its unique code.
func (r *InterfaceRepository) FindByCode(ctx context.Context, code string) (*models.Interface, error) {
	query := fmt.Sprintf(`SELECT %s FROM interfaces WHERE code = $1 LIMIT 1`, interfaceColumns)
	var iface models.Interface
	if err := r.db.GetContext(ctx, &iface, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find interface by code: %w", err)
	}
	return &iface, nil
}

// Create inserts a new interface record.
func (r *InterfaceRepository) Create(ctx context.Context, iface *models.Interface) error {
	if iface.ID == "" {
		iface.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if iface.CreatedAt.IsZero() {
		iface.CreatedAt = now
	}
	iface.UpdatedAt = now

	const query = `INSERT INTO interfaces (id, project_id, code, name, description, interface_type, url, method, category, tags, status, input_example, output_example, view_definition, notes, creator_id, created_at, updated_at) VALUES (:id, :project_id, :code, :name, :description, :interface_type, :url, :method, :category, :tags, :status, :input_example, :output_example, :view_definition, :notes, :creator_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, iface); err != nil {
		return fmt.Errorf("create interface: %w", err)
	}
	return nil
}

// Update updates mutable fields of an interface.
func (r *InterfaceRepository) Update(ctx context.Context, iface *models.Interface) error {
	iface.UpdatedAt = time.Now().UTC()
	const query = `UPDATE interfaces SET code = :code, name = :name, description = :description, interface_type = :interface_type, url = :url, method = :method, category = :category, tags = :tags, status = :status, input_example = :input_example, output_example = :output_example, view_definition = :view_definition, notes = :notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, iface); err != nil {
		return fmt.Errorf("update interface: %w", err)
	}
	return nil
}

// Delete removes an interface. Parameters cascade at the database level.
func (r *InterfaceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM interfaces WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete interface: %w", err)
	}
	return nil
}

// ListAll returns every interface ordered by code, used by catalogue exports.
func (r *InterfaceRepository) ListAll(ctx context.Context) ([]models.Interface, error) {
	query := fmt.Sprintf(`SELECT %s FROM interfaces ORDER BY code ASC`, interfaceColumns)
	var interfaces []models.Interface
	if err := r.db.SelectContext(ctx, &interfaces, query); err != nil {
		return nil, fmt.Errorf("list all interfaces: %w", err)
	}
	return interfaces, nil
}
