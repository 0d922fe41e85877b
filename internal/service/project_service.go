package service

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type projectRepository interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, int, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// UploadConfig carries the storage limits shared by attachment flows.
type UploadConfig struct {
	MaxFileSizeBytes int64
	PublicPrefix     string
	Metrics          *MetricsService
}

// ProjectService provides project management use cases.
type ProjectService struct {
	repo      projectRepository
	storage   uploadStorage
	validator *validator.Validate
	logger    *zap.Logger
	uploads   UploadConfig
}

// NewProjectService constructs a ProjectService instance.
func NewProjectService(repo projectRepository, storage uploadStorage, validate *validator.Validate, logger *zap.Logger, uploads UploadConfig) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProjectService{repo: repo, storage: storage, validator: validate, logger: logger, uploads: uploads}
}

// List returns projects with pagination metadata.
func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, *models.Pagination, error) {
	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list projects")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return projects, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one project by id.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load project")
	}
	return project, nil
}

// Create stores a new project owned by the actor.
func (s *ProjectService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}

	project := &models.Project{
		Name:        req.Name,
		Manager:     req.Manager,
		ContactInfo: req.ContactInfo,
		Description: req.Description,
		Documents:   req.Documents,
		Attachments: models.AttachmentList{},
		CreatorID:   actor.UserID,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create project")
	}

	s.logger.Info("project created", zap.String("project_id", project.ID), zap.String("creator_id", actor.UserID))
	return project, nil
}

// Update applies a partial update after the ownership check.
func (s *ProjectService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateProjectRequest) (*models.Project, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(project.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this project")
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Manager != nil {
		project.Manager = *req.Manager
	}
	if req.ContactInfo != nil {
		project.ContactInfo = *req.ContactInfo
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Documents != nil {
		project.Documents = *req.Documents
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update project")
	}
	return project, nil
}

// Delete removes a project after the ownership check. Attachment files are
// removed from disk best-effort.
func (s *ProjectService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(project.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may delete this project")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete project")
	}

	for _, att := range project.Attachments {
		if err := s.storage.Delete(filepath.Join("projects", id, att.StoredFilename)); err != nil {
			s.logger.Warn("failed to remove project attachment file", zap.String("stored_filename", att.StoredFilename), zap.Error(err))
		}
	}
	return nil
}

// AddAttachment validates and stores a PDF upload, appends the bookkeeping
// entry and returns the full updated list.
func (s *ProjectService) AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload FileUpload) (models.AttachmentList, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(project.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this project")
	}

	if err := validateUpload(upload, s.uploads.MaxFileSizeBytes, pdfOnly, "project attachments must be PDF files"); err != nil {
		return nil, err
	}

	stored := storedFilename(upload.Filename)
	relPath := filepath.Join("projects", id, stored)
	if _, err := s.storage.SaveStream(relPath, upload.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	entry := buildAttachment(upload, stored, path.Join(s.uploads.PublicPrefix, "projects", id, stored))
	updated := append(models.AttachmentList{}, project.Attachments...)
	updated = append(updated, entry)

	if err := s.repo.UpdateAttachments(ctx, id, updated, project.AttachmentsVersion); err != nil {
		if removeErr := s.storage.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned attachment file", zap.String("path", relPath), zap.Error(removeErr))
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}

	s.uploads.Metrics.RecordUpload("project", upload.Size)
	s.logger.Info("project attachment added", zap.String("project_id", id), zap.String("stored_filename", stored))
	return updated, nil
}

// DeleteAttachment removes the entry keyed by stored filename and deletes
// the file from disk best-effort.
func (s *ProjectService) DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(project.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this project")
	}

	if _, ok := project.Attachments.Find(storedName); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
	}

	updated := project.Attachments.Without(storedName)
	if err := s.repo.UpdateAttachments(ctx, id, updated, project.AttachmentsVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove attachment")
	}

	if err := s.storage.Delete(filepath.Join("projects", id, storedName)); err != nil {
		s.logger.Warn("failed to remove attachment file", zap.String("stored_filename", storedName), zap.Error(err))
	}

	return updated, nil
}
