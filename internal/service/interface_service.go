package service

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

const searchCacheKeyPrefix = "interfaces:search:"

type interfaceRepository interface {
	Search(ctx context.Context, filter models.InterfaceFilter) ([]models.Interface, int, error)
	FindByID(ctx context.Context, id string) (*models.Interface, error)
	FindByCode(ctx context.Context, code string) (*models.Interface, error)
	Create(ctx context.Context, iface *models.Interface) error
	Update(ctx context.Context, iface *models.Interface) error
	Delete(ctx context.Context, id string) error
}

type interfaceParameterRepository interface {
	ListByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error)
	ReplaceForInterface(ctx context.Context, interfaceID string, parameters []models.Parameter) error
}

type interfaceProjectRepository interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
}

// SearchResult bundles a page of interfaces with pagination metadata.
type SearchResult struct {
	Items      []models.Interface `json:"items"`
	Pagination models.Pagination  `json:"pagination"`
}

// InterfaceService provides interface catalogue use cases.
type InterfaceService struct {
	repo      interfaceRepository
	params    interfaceParameterRepository
	projects  interfaceProjectRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInterfaceService constructs an InterfaceService instance.
func NewInterfaceService(repo interfaceRepository, params interfaceParameterRepository, projects interfaceProjectRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *InterfaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &InterfaceService{repo: repo, params: params, projects: projects, cache: cache, validator: validate, logger: logger}
}

// Search returns interfaces matching the filter, consulting the cache first.
func (s *InterfaceService) Search(ctx context.Context, req dto.SearchInterfacesRequest) (*SearchResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid search payload")
	}

	filter := models.InterfaceFilter{
		Keyword:       req.Keyword,
		ProjectID:     req.ProjectID,
		InterfaceType: req.InterfaceType,
		Category:      req.Category,
		Tags:          req.Tags,
		Status:        req.Status,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	key := searchCacheKey(filter)
	var cached SearchResult
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search interfaces")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	result := &SearchResult{
		Items:      items,
		Pagination: models.Pagination{Page: page, PageSize: pageSize, TotalCount: total},
	}

	_ = s.cache.Set(ctx, key, result, 0)
	return result, nil
}

// List returns interfaces for the plain GET listing.
func (s *InterfaceService) List(ctx context.Context, filter models.InterfaceFilter) ([]models.Interface, *models.Pagination, error) {
	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list interfaces")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return items, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one interface with its parameters loaded.
func (s *InterfaceService) Get(ctx context.Context, id string) (*models.Interface, error) {
	iface, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "interface not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interface")
	}

	parameters, err := s.params.ListByInterface(ctx, id, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parameters")
	}
	iface.Parameters = parameters
	return iface, nil
}

// Create catalogues a new interface, optionally with inline parameters.
func (s *InterfaceService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateInterfaceRequest) (*models.Interface, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interface payload")
	}

	if _, err := s.projects.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}

	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, appErrors.Clone(appErrors.ErrDuplicateCode, fmt.Sprintf("interface code %q already exists", req.Code))
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check interface code")
	}

	status := req.Status
	if status == "" {
		status = models.InterfaceStatusActive
	}

	iface := &models.Interface{
		ProjectID:      req.ProjectID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		InterfaceType:  req.InterfaceType,
		URL:            req.URL,
		Method:         req.Method,
		Category:       req.Category,
		Tags:           req.Tags,
		Status:         status,
		InputExample:   req.InputExample,
		OutputExample:  req.OutputExample,
		ViewDefinition: req.ViewDefinition,
		Notes:          req.Notes,
		CreatorID:      actor.UserID,
	}
	if err := s.repo.Create(ctx, iface); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create interface")
	}

	if len(req.Parameters) > 0 {
		parameters := payloadsToParameters(iface.ID, req.Parameters)
		if err := s.params.ReplaceForInterface(ctx, iface.ID, parameters); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store parameters")
		}
		iface.Parameters = parameters
	}

	s.invalidateSearchCache(ctx)
	s.logger.Info("interface created", zap.String("interface_id", iface.ID), zap.String("code", iface.Code))
	return iface, nil
}

// Update applies a partial update after the ownership check. A non-nil
// parameter list replaces all stored parameters.
func (s *InterfaceService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateInterfaceRequest) (*models.Interface, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid interface payload")
	}

	iface, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(iface.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this interface")
	}

	if req.Code != nil && *req.Code != iface.Code {
		if _, err := s.repo.FindByCode(ctx, *req.Code); err == nil {
			return nil, appErrors.Clone(appErrors.ErrDuplicateCode, fmt.Sprintf("interface code %q already exists", *req.Code))
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check interface code")
		}
		iface.Code = *req.Code
	}
	if req.Name != nil {
		iface.Name = *req.Name
	}
	if req.Description != nil {
		iface.Description = *req.Description
	}
	if req.InterfaceType != nil {
		iface.InterfaceType = *req.InterfaceType
	}
	if req.URL != nil {
		iface.URL = *req.URL
	}
	if req.Method != nil {
		iface.Method = *req.Method
	}
	if req.Category != nil {
		iface.Category = *req.Category
	}
	if req.Tags != nil {
		iface.Tags = *req.Tags
	}
	if req.Status != nil {
		iface.Status = *req.Status
	}
	if req.InputExample != nil {
		iface.InputExample = *req.InputExample
	}
	if req.OutputExample != nil {
		iface.OutputExample = *req.OutputExample
	}
	if req.ViewDefinition != nil {
		iface.ViewDefinition = *req.ViewDefinition
	}
	if req.Notes != nil {
		iface.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, iface); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update interface")
	}

	if req.Parameters != nil {
		parameters := payloadsToParameters(id, *req.Parameters)
		if err := s.params.ReplaceForInterface(ctx, id, parameters); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace parameters")
		}
		iface.Parameters = parameters
	}

	s.invalidateSearchCache(ctx)
	return iface, nil
}

// Delete removes an interface after the ownership check.
func (s *InterfaceService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	iface, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(iface.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may delete this interface")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete interface")
	}

	s.invalidateSearchCache(ctx)
	return nil
}

func (s *InterfaceService) invalidateSearchCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, searchCacheKeyPrefix+"*"); err != nil {
		s.logger.Warn("failed to invalidate search cache", zap.Error(err))
	}
}

func searchCacheKey(filter models.InterfaceFilter) string {
	raw, err := json.Marshal(filter)
	if err != nil {
		return searchCacheKeyPrefix + "unkeyed"
	}
	sum := sha256.Sum256(raw)
	return searchCacheKeyPrefix + hex.EncodeToString(sum[:16])
}

func payloadsToParameters(interfaceID string, payloads []dto.ParameterPayload) []models.Parameter {
	parameters := make([]models.Parameter, 0, len(payloads))
	for i, p := range payloads {
		paramType := p.ParamType
		if paramType == "" {
			paramType = models.ParamTypeInput
		}
		parameters = append(parameters, models.Parameter{
			InterfaceID:  interfaceID,
			ParamType:    paramType,
			FieldName:    p.FieldName,
			Name:         p.Name,
			DataType:     p.DataType,
			Required:     p.Required,
			DefaultValue: p.DefaultValue,
			Description:  p.Description,
			Example:      p.Example,
			OrderIndex:   i,
			DictionaryID: p.DictionaryID,
		})
	}
	return parameters
}
