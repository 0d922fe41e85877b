package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type parameterRepository interface {
	ListByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error)
	FindByID(ctx context.Context, id string) (*models.Parameter, error)
	Create(ctx context.Context, parameter *models.Parameter) error
	CreateBatch(ctx context.Context, parameters []models.Parameter) error
	CountByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) (int, error)
	Update(ctx context.Context, parameter *models.Parameter) error
	Delete(ctx context.Context, id string) error
}

type parameterInterfaceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Interface, error)
}

// ParameterService provides parameter management and batch import use cases.
type ParameterService struct {
	repo       parameterRepository
	interfaces parameterInterfaceRepository
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewParameterService constructs a ParameterService instance.
func NewParameterService(repo parameterRepository, interfaces parameterInterfaceRepository, validate *validator.Validate, logger *zap.Logger) *ParameterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ParameterService{repo: repo, interfaces: interfaces, validator: validate, logger: logger}
}

// List returns the parameters of an interface ordered by order_index.
func (s *ParameterService) List(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error) {
	if _, err := s.loadInterface(ctx, interfaceID); err != nil {
		return nil, err
	}

	parameters, err := s.repo.ListByInterface(ctx, interfaceID, paramType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parameters")
	}
	return parameters, nil
}

// Get returns one parameter by id.
func (s *ParameterService) Get(ctx context.Context, id string) (*models.Parameter, error) {
	parameter, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parameter not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parameter")
	}
	return parameter, nil
}

// Create appends a single parameter to an interface.
func (s *ParameterService) Create(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ParameterPayload) (*models.Parameter, error) {
	iface, err := s.loadInterface(ctx, interfaceID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(iface.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this interface")
	}

	paramType := req.ParamType
	if paramType == "" {
		paramType = models.ParamTypeInput
	}

	count, err := s.repo.CountByInterface(ctx, interfaceID, paramType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count parameters")
	}

	parameter := &models.Parameter{
		InterfaceID:  interfaceID,
		ParamType:    paramType,
		FieldName:    req.FieldName,
		Name:         req.Name,
		DataType:     req.DataType,
		Required:     req.Required,
		DefaultValue: req.DefaultValue,
		Description:  req.Description,
		Example:      req.Example,
		OrderIndex:   count,
		DictionaryID: req.DictionaryID,
	}
	if err := s.repo.Create(ctx, parameter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create parameter")
	}
	return parameter, nil
}

// Update applies a partial update after the ownership check on the owning
// interface.
func (s *ParameterService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateParameterRequest) (*models.Parameter, error) {
	parameter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	iface, err := s.loadInterface(ctx, parameter.InterfaceID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(iface.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this interface")
	}

	if req.FieldName != nil {
		parameter.FieldName = *req.FieldName
	}
	if req.Name != nil {
		parameter.Name = *req.Name
	}
	if req.DataType != nil {
		parameter.DataType = *req.DataType
	}
	if req.Required != nil {
		parameter.Required = *req.Required
	}
	if req.DefaultValue != nil {
		parameter.DefaultValue = *req.DefaultValue
	}
	if req.Description != nil {
		parameter.Description = *req.Description
	}
	if req.Example != nil {
		parameter.Example = *req.Example
	}
	if req.OrderIndex != nil {
		parameter.OrderIndex = *req.OrderIndex
	}
	if req.DictionaryID != nil {
		parameter.DictionaryID = req.DictionaryID
	}

	if err := s.repo.Update(ctx, parameter); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update parameter")
	}
	return parameter, nil
}

// Delete removes a parameter after the ownership check.
func (s *ParameterService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	parameter, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	iface, err := s.loadInterface(ctx, parameter.InterfaceID)
	if err != nil {
		return err
	}
	if !actor.CanModify(iface.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this interface")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete parameter")
	}
	return nil
}

// PreviewImport parses pasted delimited text into parameter payloads
// without persisting anything.
func (s *ParameterService) PreviewImport(ctx context.Context, interfaceID string, req dto.ImportPreviewRequest) (*dto.ImportPreviewResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	if _, err := s.loadInterface(ctx, interfaceID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByInterface(ctx, interfaceID, req.ParamType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count parameters")
	}

	payloads, skipped, delimiter := parseParameterText(req.Text, req.ParamType, count)
	return &dto.ImportPreviewResponse{Parameters: payloads, Skipped: skipped, Delimiter: delimiter}, nil
}

// CommitImport appends a previewed batch, renumbering order_index
// sequentially after the existing parameters of the same type.
func (s *ParameterService) CommitImport(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ImportCommitRequest) ([]models.Parameter, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid import payload")
	}

	iface, err := s.loadInterface(ctx, interfaceID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(iface.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this interface")
	}

	count, err := s.repo.CountByInterface(ctx, interfaceID, req.ParamType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count parameters")
	}

	parameters := make([]models.Parameter, 0, len(req.Parameters))
	for i, p := range req.Parameters {
		parameters = append(parameters, models.Parameter{
			InterfaceID:  interfaceID,
			ParamType:    req.ParamType,
			FieldName:    p.FieldName,
			Name:         p.Name,
			DataType:     p.DataType,
			Required:     p.Required,
			DefaultValue: p.DefaultValue,
			Description:  p.Description,
			Example:      p.Example,
			OrderIndex:   count + i,
			DictionaryID: p.DictionaryID,
		})
	}

	if err := s.repo.CreateBatch(ctx, parameters); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import parameters")
	}

	s.logger.Info("parameters imported", zap.String("interface_id", interfaceID), zap.Int("count", len(parameters)))
	return parameters, nil
}

func (s *ParameterService) loadInterface(ctx context.Context, id string) (*models.Interface, error) {
	iface, err := s.interfaces.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "interface not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interface")
	}
	return iface, nil
}
