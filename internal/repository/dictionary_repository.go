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

const dictionaryColumns = `id, project_id, code, name, description, interface_id, creator_id, created_at, updated_at`
const dictionaryValueColumns = `id, dictionary_id, key, value, description, order_index, created_at`

// DictionaryRepository provides database access for reference dictionaries.
type DictionaryRepository struct {
	db *sqlx.DB
}

// NewDictionaryRepository creates a new instance of DictionaryRepository.
func NewDictionaryRepository(db *sqlx.DB) *DictionaryRepository {
	return &DictionaryRepository{db: db}
}

// List returns dictionaries matching the filter with total count.
func (r *DictionaryRepository) List(ctx context.Context, filter models.DictionaryFilter) ([]models.Dictionary, int, error) {
	baseQuery := `FROM dictionaries WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.ProjectID != "" {
		conditions = append(conditions, fmt.Sprintf("project_id = $%d", len(args)+1))
		args = append(args, filter.ProjectID)
	}
	if filter.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Keyword)+"%")
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

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", dictionaryColumns, baseQuery, pageSize, offset)

	var dictionaries []models.Dictionary
	if err := r.db.SelectContext(ctx, &dictionaries, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list dictionaries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count dictionaries: %w", err)
	}

	return dictionaries, total, nil
}

// FindByID returns a dictionary by identifier.
func (r *DictionaryRepository) FindByID(ctx context.Context, id string) (*models.Dictionary, error) {
	query := fmt.Sprintf(`SELECT %s FROM dictionaries WHERE id = $1 LIMIT 1`, dictionaryColumns)
	var dictionary models.Dictionary
	if err := r.db.GetContext(ctx, &dictionary, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find dictionary by id: %w", err)
	}
	return &dictionary, nil
}

// FindByCode returns a dictionary by its unique code.
func (r *DictionaryRepository) FindByCode(ctx context.Context, code string) (*models.Dictionary, error) {
	query := fmt.Sprintf(`SELECT %s FROM dictionaries WHERE code = $1 LIMIT 1`, dictionaryColumns)
	var dictionary models.Dictionary
	if err := r.db.GetContext(ctx, &dictionary, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find dictionary by code: %w", err)
	}
	return &dictionary, nil
}

// Create inserts a dictionary and its inline values within one transaction.
func (r *DictionaryRepository) Create(ctx context.Context, dictionary *models.Dictionary, values []models.DictionaryValue) error {
	if dictionary.ID == "" {
		dictionary.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if dictionary.CreatedAt.IsZero() {
		dictionary.CreatedAt = now
	}
	dictionary.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dictionary create: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO dictionaries (id, project_id, code, name, description, interface_id, creator_id, created_at, updated_at) VALUES (:id, :project_id, :code, :name, :description, :interface_id, :creator_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, dictionary); err != nil {
		return fmt.Errorf("create dictionary: %w", err)
	}

	const valueQuery = `INSERT INTO dictionary_values (id, dictionary_id, key, value, description, order_index, created_at) VALUES (:id, :dictionary_id, :key, :value, :description, :order_index, :created_at)`
	for i := range values {
		if values[i].ID == "" {
			values[i].ID = uuid.NewString()
		}
		values[i].DictionaryID = dictionary.ID
		if values[i].CreatedAt.IsZero() {
			values[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, valueQuery, values[i]); err != nil {
			return fmt.Errorf("create dictionary value: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dictionary create: %w", err)
	}
	return nil
}

// Update updates mutable fields of a dictionary.
func (r *DictionaryRepository) Update(ctx context.Context, dictionary *models.Dictionary) error {
	dictionary.UpdatedAt = time.Now().UTC()
	const query = `UPDATE dictionaries SET code = :code, name = :name, description = :description, interface_id = :interface_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, dictionary); err != nil {
		return fmt.Errorf("update dictionary: %w", err)
	}
	return nil
}

// Delete removes a dictionary. Values cascade at the database level.
func (r *DictionaryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM dictionaries WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete dictionary: %w", err)
	}
	return nil
}

// ListValues returns the values of a dictionary ordered by order_index.
func (r *DictionaryRepository) ListValues(ctx context.Context, dictionaryID string) ([]models.DictionaryValue, error) {
	query := fmt.Sprintf(`SELECT %s FROM dictionary_values WHERE dictionary_id = $1 ORDER BY order_index ASC`, dictionaryValueColumns)
	var values []models.DictionaryValue
	if err := r.db.SelectContext(ctx, &values, query, dictionaryID); err != nil {
		return nil, fmt.Errorf("list dictionary values: %w", err)
	}
	return values, nil
}

// CreateValue inserts a single dictionary value.
func (r *DictionaryRepository) CreateValue(ctx context.Context, value *models.DictionaryValue) error {
	if value.ID == "" {
		value.ID = uuid.NewString()
	}
	if value.CreatedAt.IsZero() {
		value.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO dictionary_values (id, dictionary_id, key, value, description, order_index, created_at) VALUES (:id, :dictionary_id, :key, :value, :description, :order_index, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, value); err != nil {
		return fmt.Errorf("create dictionary value: %w", err)
	}
	return nil
}

// FindValueByID returns a dictionary value by identifier.
func (r *DictionaryRepository) FindValueByID(ctx context.Context, id string) (*models.DictionaryValue, error) {
	query := fmt.Sprintf(`SELECT %s FROM dictionary_values WHERE id = $1 LIMIT 1`, dictionaryValueColumns)
	var value models.DictionaryValue
	if err := r.db.GetContext(ctx, &value, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find dictionary value by id: %w", err)
	}
	return &value, nil
}

// DeleteValue removes a single dictionary value.
func (r *DictionaryRepository) DeleteValue(ctx context.Context, id string) error {
	const query = `DELETE FROM dictionary_values WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete dictionary value: %w", err)
	}
	return nil
}
