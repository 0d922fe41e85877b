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

type faqRepository interface {
	List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, int, error)
	FindByID(ctx context.Context, id string) (*models.FAQ, error)
	Create(ctx context.Context, faq *models.FAQ) error
	Update(ctx context.Context, faq *models.FAQ) error
	UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// FAQService provides FAQ management use cases.
type FAQService struct {
	repo      faqRepository
	storage   uploadStorage
	validator *validator.Validate
	logger    *zap.Logger
	uploads   UploadConfig
}

// NewFAQService constructs a FAQService instance.
func NewFAQService(repo faqRepository, storage uploadStorage, validate *validator.Validate, logger *zap.Logger, uploads UploadConfig) *FAQService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FAQService{repo: repo, storage: storage, validator: validate, logger: logger, uploads: uploads}
}

// List returns FAQ entries with pagination metadata.
func (s *FAQService) List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, *models.Pagination, error) {
	faqs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faqs")
	}

	for i := range faqs {
		faqs[i].Attachments = faqs[i].EffectiveAttachments()
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return faqs, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one FAQ entry with the synthesized attachment list applied.
func (s *FAQService) Get(ctx context.Context, id string) (*models.FAQ, error) {
	faq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faq not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faq")
	}
	faq.Attachments = faq.EffectiveAttachments()
	return faq, nil
}

// Create stores a new FAQ entry.
func (s *FAQService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateFAQRequest) (*models.FAQ, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faq payload")
	}

	if req.ContentType == models.FAQContentRichText && req.Content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rich_text faqs require content")
	}

	faq := &models.FAQ{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ContentType: req.ContentType,
		Content:     req.Content,
		Attachments: models.AttachmentList{},
		CreatorID:   actor.UserID,
	}
	if err := s.repo.Create(ctx, faq); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faq")
	}

	s.logger.Info("faq created", zap.String("faq_id", faq.ID))
	return faq, nil
}

// Update applies a partial update after the ownership check.
func (s *FAQService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateFAQRequest) (*models.FAQ, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faq payload")
	}

	faq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(faq.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this faq")
	}

	if req.Title != nil {
		faq.Title = *req.Title
	}
	if req.Description != nil {
		faq.Description = *req.Description
	}
	if req.Category != nil {
		faq.Category = *req.Category
	}
	if req.ContentType != nil {
		faq.ContentType = *req.ContentType
	}
	if req.Content != nil {
		faq.Content = *req.Content
	}

	if err := s.repo.Update(ctx, faq); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faq")
	}
	return faq, nil
}

// Delete removes a FAQ entry after the ownership check. Attachment files
// are removed from disk best-effort.
func (s *FAQService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	faq, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(faq.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may delete this faq")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faq")
	}

	for _, att := range faq.Attachments {
		if err := s.storage.Delete(filepath.Join("faqs", id, att.StoredFilename)); err != nil {
			s.logger.Warn("failed to remove faq attachment file", zap.String("stored_filename", att.StoredFilename), zap.Error(err))
		}
	}
	return nil
}

// AddAttachment validates and stores a PDF or image upload, appends the
// bookkeeping entry and returns the full updated list.
func (s *FAQService) AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload FileUpload) (models.AttachmentList, error) {
	faq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(faq.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this faq")
	}

	if err := validateUpload(upload, s.uploads.MaxFileSizeBytes, pdfOrImage, "faq attachments must be PDF or image files"); err != nil {
		return nil, err
	}

	stored := storedFilename(upload.Filename)
	relPath := filepath.Join("faqs", id, stored)
	if _, err := s.storage.SaveStream(relPath, upload.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	entry := buildAttachment(upload, stored, path.Join(s.uploads.PublicPrefix, "faqs", id, stored))
	updated := append(models.AttachmentList{}, faq.Attachments...)
	updated = append(updated, entry)

	if err := s.repo.UpdateAttachments(ctx, id, updated, faq.AttachmentsVersion); err != nil {
		if removeErr := s.storage.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned attachment file", zap.String("path", relPath), zap.Error(removeErr))
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}

	s.uploads.Metrics.RecordUpload("faq", upload.Size)
	s.logger.Info("faq attachment added", zap.String("faq_id", id), zap.String("stored_filename", stored))
	return updated, nil
}

// DeleteAttachment removes the entry keyed by stored filename and deletes
// the file from disk best-effort.
func (s *FAQService) DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error) {
	faq, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(faq.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this faq")
	}

	if _, ok := faq.Attachments.Find(storedName); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
	}

	updated := faq.Attachments.Without(storedName)
	if err := s.repo.UpdateAttachments(ctx, id, updated, faq.AttachmentsVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove attachment")
	}

	if err := s.storage.Delete(filepath.Join("faqs", id, storedName)); err != nil {
		s.logger.Warn("failed to remove attachment file", zap.String("stored_filename", storedName), zap.Error(err))
	}

	return updated, nil
}
