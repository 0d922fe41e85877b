package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type dictionaryRepository interface {
	List(ctx context.Context, filter models.DictionaryFilter) ([]models.Dictionary, int, error)
	FindByID(ctx context.Context, id string) (*models.Dictionary, error)
	FindByCode(ctx context.Context, code string) (*models.Dictionary, error)
	Create(ctx context.Context, dictionary *models.Dictionary, values []models.DictionaryValue) error
	Update(ctx context.Context, dictionary *models.Dictionary) error
	Delete(ctx context.Context, id string) error
	ListValues(ctx context.Context, dictionaryID string) ([]models.DictionaryValue, error)
	CreateValue(ctx context.Context, value *models.DictionaryValue) error
	FindValueByID(ctx context.Context, id string) (*models.DictionaryValue, error)
	DeleteValue(ctx context.Context, id string) error
}

type dictionaryProjectRepository interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

// DictionaryService provides reference dictionary use cases.
type DictionaryService struct {
	repo      dictionaryRepository
	projects  dictionaryProjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDictionaryService constructs a DictionaryService instance.
func NewDictionaryService(repo dictionaryRepository, projects dictionaryProjectRepository, validate *validator.Validate, logger *zap.Logger) *DictionaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DictionaryService{repo: repo, projects: projects, validator: validate, logger: logger}
}

// List returns dictionaries with pagination metadata.
func (s *DictionaryService) List(ctx context.Context, filter models.DictionaryFilter) ([]models.Dictionary, *models.Pagination, error) {
	dictionaries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dictionaries")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return dictionaries, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one dictionary with its values loaded.
func (s *DictionaryService) Get(ctx context.Context, id string) (*models.Dictionary, error) {
	dictionary, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "dictionary not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dictionary")
	}

	values, err := s.repo.ListValues(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dictionary values")
	}
	dictionary.Values = values
	return dictionary, nil
}

// Create stores a new dictionary with optional inline values.
func (s *DictionaryService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateDictionaryRequest) (*models.Dictionary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid dictionary payload")
	}

	if _, err := s.projects.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, fmt.Sprintf("dictionary code %q already exists", req.Code))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check dictionary code")
	}

	dictionary := &models.Dictionary{
		ProjectID:   req.ProjectID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		InterfaceID: req.InterfaceID,
		CreatorID:   actor.UserID,
	}

	values := make([]models.DictionaryValue, 0, len(req.Values))
	for i, v := range req.Values {
		orderIndex := v.OrderIndex
		if orderIndex == 0 {
			orderIndex = i
		}
		values = append(values, models.DictionaryValue{
			Key:         v.Key,
			Value:       v.Value,
			Description: v.Description,
			OrderIndex:  orderIndex,
		})
	}

	if err := s.repo.Create(ctx, dictionary, values); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create dictionary")
	}

	dictionary.Values = values
	s.logger.Info("dictionary created", zap.String("dictionary_id", dictionary.ID), zap.String("code", dictionary.Code))
	return dictionary, nil
}

// Update applies a partial update after the ownership check.
func (s *DictionaryService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateDictionaryRequest) (*models.Dictionary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid dictionary payload")
	}

	dictionary, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(dictionary.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this dictionary")
	}

	if req.Code != nil && *req.Code != dictionary.Code {
		if _, err := s.repo.FindByCode(ctx, *req.Code); err == nil {
			return nil, appErrors.Clone(appErrors.ErrDuplicateCode, fmt.Sprintf("dictionary code %q already exists", *req.Code))
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check dictionary code")
		}
		dictionary.Code = *req.Code
	}
	if req.Name != nil {
		dictionary.Name = *req.Name
	}
	if req.Description != nil {
		dictionary.Description = *req.Description
	}
	if req.InterfaceID != nil {
		dictionary.InterfaceID = req.InterfaceID
	}

	if err := s.repo.Update(ctx, dictionary); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update dictionary")
	}
	return dictionary, nil
}

// Delete removes a dictionary after the ownership check.
func (s *DictionaryService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	dictionary, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(dictionary.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may delete this dictionary")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete dictionary")
	}
	return nil
}

// ListValues returns the values of a dictionary ordered by order_index.
func (s *DictionaryService) ListValues(ctx context.Context, dictionaryID string) ([]models.DictionaryValue, error) {
	if _, err := s.Get(ctx, dictionaryID); err != nil {
		return nil, err
	}

	values, err := s.repo.ListValues(ctx, dictionaryID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list dictionary values")
	}
	return values, nil
}

// AddValue appends a value to a dictionary after the ownership check.
func (s *DictionaryService) AddValue(ctx context.Context, actor *models.JWTClaims, dictionaryID string, req dto.DictionaryValuePayload) (*models.DictionaryValue, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid dictionary value payload")
	}

	dictionary, err := s.Get(ctx, dictionaryID)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(dictionary.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this dictionary")
	}

	orderIndex := req.OrderIndex
	if orderIndex == 0 {
		orderIndex = len(dictionary.Values)
	}

	value := &models.DictionaryValue{
		DictionaryID: dictionaryID,
		Key:          req.Key,
		Value:        req.Value,
		Description:  req.Description,
		OrderIndex:   orderIndex,
	}
	if err := s.repo.CreateValue(ctx, value); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create dictionary value")
	}
	return value, nil
}

// DeleteValue removes one value after the ownership check.
func (s *DictionaryService) DeleteValue(ctx context.Context, actor *models.JWTClaims, dictionaryID, valueID string) error {
	dictionary, err := s.Get(ctx, dictionaryID)
	if err != nil {
		return err
	}
	if !actor.CanModify(dictionary.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this dictionary")
	}

	value, err := s.repo.FindValueByID(ctx, valueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "dictionary value not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dictionary value")
	}
	if value.DictionaryID != dictionaryID {
		return appErrors.Clone(appErrors.ErrNotFound, "dictionary value not found")
	}

	if err := s.repo.DeleteValue(ctx, valueID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete dictionary value")
	}
	return nil
}
