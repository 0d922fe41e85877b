package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hisdocs/his-docs-api/internal/models"
)

const parameterColumns = `id, interface_id, param_type, field_name, name, data_type, required, default_value, description, example, order_index, dictionary_id, created_at`

// ParameterRepository provides database access for interface parameters.
type ParameterRepository struct {
	db *sqlx.DB
}

// NewParameterRepository creates a new instance of ParameterRepository.
func NewParameterRepository(db *sqlx.DB) *ParameterRepository {
	return &ParameterRepository{db: db}
}

// ListByInterface returns parameters of an interface ordered by order_index.
// An empty paramType returns both input and output parameters.
func (r *ParameterRepository) ListByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error) {
	query := fmt.Sprintf(`SELECT %s FROM parameters WHERE interface_id = $1`, parameterColumns)
	args := []interface{}{interfaceID}
	if paramType != "" {
		query += " AND param_type = $2"
		args = append(args, paramType)
	}
	query += " ORDER BY param_type ASC, order_index ASC"

	var parameters []models.Parameter
	if err := r.db.SelectContext(ctx, &parameters, query, args...); err != nil {
		return nil, fmt.Errorf("list parameters: %w", err)
	}
	return parameters, nil
}

// FindByID returns a parameter by identifier.
func (r *ParameterRepository) FindByID(ctx context.Context, id string) (*models.Parameter, error) {
	query := fmt.Sprintf(`SELECT %s FROM parameters WHERE id = $1 LIMIT 1`, parameterColumns)
	var parameter models.Parameter
	if err := r.db.GetContext(ctx, &parameter, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find parameter by id: %w", err)
	}
	return &parameter, nil
}

// Create inserts a new parameter record.
func (r *ParameterRepository) Create(ctx context.Context, parameter *models.Parameter) error {
	if parameter.ID == "" {
		parameter.ID = uuid.NewString()
	}
	if parameter.CreatedAt.IsZero() {
		parameter.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO parameters (id, interface_id, param_type, field_name, name, data_type, required, default_value, description, example, order_index, dictionary_id, created_at) VALUES (:id, :interface_id, :param_type, :field_name, :name, :data_type, :required, :default_value, :description, :example, :order_index, :dictionary_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, parameter); err != nil {
		return fmt.Errorf("create parameter: %w", err)
	}
	return nil
}

// CreateBatch inserts a batch of parameters within one transaction.
func (r *ParameterRepository) CreateBatch(ctx context.Context, parameters []models.Parameter) error {
	if len(parameters) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin parameter batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO parameters (id, interface_id, param_type, field_name, name, data_type, required, default_value, description, example, order_index, dictionary_id, created_at) VALUES (:id, :interface_id, :param_type, :field_name, :name, :data_type, :required, :default_value, :description, :example, :order_index, :dictionary_id, :created_at)`
	now := time.Now().UTC()
	for i := range parameters {
		if parameters[i].ID == "" {
			parameters[i].ID = uuid.NewString()
		}
		if parameters[i].CreatedAt.IsZero() {
			parameters[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, parameters[i]); err != nil {
			return fmt.Errorf("insert parameter batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit parameter batch: %w", err)
	}
	return nil
}

// ReplaceForInterface deletes all parameters of an interface and inserts the
// replacement list within one transaction.
func (r *ParameterRepository) ReplaceForInterface(ctx context.Context, interfaceID string, parameters []models.Parameter) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin parameter replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM parameters WHERE interface_id = $1`, interfaceID); err != nil {
		return fmt.Errorf("clear parameters: %w", err)
	}

	const query = `INSERT INTO parameters (id, interface_id, param_type, field_name, name, data_type, required, default_value, description, example, order_index, dictionary_id, created_at) VALUES (:id, :interface_id, :param_type, :field_name, :name, :data_type, :required, :default_value, :description, :example, :order_index, :dictionary_id, :created_at)`
	now := time.Now().UTC()
	for i := range parameters {
		if parameters[i].ID == "" {
			parameters[i].ID = uuid.NewString()
		}
		parameters[i].InterfaceID = interfaceID
		if parameters[i].CreatedAt.IsZero() {
			parameters[i].CreatedAt = now
		}
		if _, err := tx.NamedExecContext(ctx, query, parameters[i]); err != nil {
			return fmt.Errorf("insert replacement parameter: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit parameter replace: %w", err)
	}
	return nil
}

// CountByInterface returns how many parameters of the given type exist.
func (r *ParameterRepository) CountByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) (int, error) {
	query := `SELECT COUNT(*) FROM parameters WHERE interface_id = $1`
	args := []interface{}{interfaceID}
	if paramType != "" {
		query += " AND param_type = $2"
		args = append(args, paramType)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count parameters: %w", err)
	}
	return count, nil
}

// Update updates mutable fields of a parameter.
func (r *ParameterRepository) Update(ctx context.Context, parameter *models.Parameter) error {
	const query = `UPDATE parameters SET field_name = :field_name, name = :name, data_type = :data_type, required = :required, default_value = :default_value, description = :description, example = :example, order_index = :order_index, dictionary_id = :dictionary_id WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, parameter); err != nil {
		return fmt.Errorf("update parameter: %w", err)
	}
	return nil
}

// Delete removes a parameter.
func (r *ParameterRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM parameters WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete parameter: %w", err)
	}
	return nil
}
