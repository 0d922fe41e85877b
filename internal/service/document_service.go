package service

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type documentRepository interface {
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, int, error)
	FindByID(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, document *models.Document) error
	Update(ctx context.Context, document *models.Document) error
	UpdateAttachments(ctx context.Context, id string, attachments models.AttachmentList, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// DocumentService provides document management use cases.
type DocumentService struct {
	repo      documentRepository
	storage   uploadStorage
	validator *validator.Validate
	logger    *zap.Logger
	uploads   UploadConfig
}

// NewDocumentService constructs a DocumentService instance.
func NewDocumentService(repo documentRepository, storage uploadStorage, validate *validator.Validate, logger *zap.Logger, uploads UploadConfig) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DocumentService{repo: repo, storage: storage, validator: validate, logger: logger, uploads: uploads}
}

// List returns documents with pagination metadata. Legacy single-file rows
// are surfaced with a synthesized attachment list.
func (s *DocumentService) List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, *models.Pagination, error) {
	documents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}

	for i := range documents {
		documents[i].Attachments = documents[i].EffectiveAttachments()
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	return documents, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns one document with the synthesized attachment list applied.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	document, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	document.Attachments = document.EffectiveAttachments()
	return document, nil
}

// Create stores a new document record. Files are attached afterwards.
func (s *DocumentService) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}

	document := &models.Document{
		Title:        req.Title,
		Description:  req.Description,
		Region:       req.Region,
		Person:       req.Person,
		DocumentType: req.DocumentType,
		Attachments:  models.AttachmentList{},
		CreatorID:    actor.UserID,
	}
	if err := s.repo.Create(ctx, document); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create document")
	}

	s.logger.Info("document created", zap.String("document_id", document.ID))
	return document, nil
}

// Update applies a partial update after the ownership check.
func (s *DocumentService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateDocumentRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}

	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(document.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this document")
	}

	if req.Title != nil {
		document.Title = *req.Title
	}
	if req.Description != nil {
		document.Description = *req.Description
	}
	if req.Region != nil {
		document.Region = *req.Region
	}
	if req.Person != nil {
		document.Person = *req.Person
	}
	if req.DocumentType != nil {
		document.DocumentType = *req.DocumentType
	}

	if err := s.repo.Update(ctx, document); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document")
	}
	return document, nil
}

// Delete removes a document after the ownership check. Attachment files
// are removed from disk best-effort.
func (s *DocumentService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	document, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(document.CreatorID) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may delete this document")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document")
	}

	for _, att := range document.Attachments {
		if err := s.storage.Delete(filepath.Join("documents", id, att.StoredFilename)); err != nil {
			s.logger.Warn("failed to remove document attachment file", zap.String("stored_filename", att.StoredFilename), zap.Error(err))
		}
	}
	return nil
}

// AddAttachment validates and stores an upload matching the document type,
// appends the bookkeeping entry and returns the full updated list.
func (s *DocumentService) AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload FileUpload) (models.AttachmentList, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(document.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this document")
	}

	policy, message := documentUploadPolicy(document.DocumentType)
	if err := validateUpload(upload, s.uploads.MaxFileSizeBytes, policy, message); err != nil {
		return nil, err
	}

	stored := storedFilename(upload.Filename)
	relPath := filepath.Join("documents", id, stored)
	if _, err := s.storage.SaveStream(relPath, upload.Content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	entry := buildAttachment(upload, stored, path.Join(s.uploads.PublicPrefix, "documents", id, stored))
	updated := append(models.AttachmentList{}, document.Attachments...)
	updated = append(updated, entry)

	if err := s.repo.UpdateAttachments(ctx, id, updated, document.AttachmentsVersion); err != nil {
		if removeErr := s.storage.Delete(relPath); removeErr != nil {
			s.logger.Warn("failed to remove orphaned attachment file", zap.String("path", relPath), zap.Error(removeErr))
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}

	s.uploads.Metrics.RecordUpload("document", upload.Size)
	s.logger.Info("document attachment added", zap.String("document_id", id), zap.String("stored_filename", stored))
	return updated, nil
}

// DeleteAttachment removes the entry keyed by stored filename. Removing
// the last attachment matching the document's required type is rejected.
func (s *DocumentService) DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(document.CreatorID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the creator or an admin may modify this document")
	}

	target, ok := document.Attachments.Find(storedName)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
	}

	if matchesDocumentType(target, document.DocumentType) && countByDocumentType(document.Attachments, document.DocumentType) <= 1 {
		return nil, appErrors.Clone(appErrors.ErrAttachmentRequired, "")
	}

	updated := document.Attachments.Without(storedName)
	if err := s.repo.UpdateAttachments(ctx, id, updated, document.AttachmentsVersion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrVersionConflict, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove attachment")
	}

	if err := s.storage.Delete(filepath.Join("documents", id, storedName)); err != nil {
		s.logger.Warn("failed to remove attachment file", zap.String("stored_filename", storedName), zap.Error(err))
	}

	return updated, nil
}

func documentUploadPolicy(docType models.DocumentType) (uploadPolicy, string) {
	if docType == models.DocumentTypeImage {
		return imageOnly, "image documents accept image files only"
	}
	return pdfOnly, "pdf documents accept PDF files only"
}

func matchesDocumentType(att models.Attachment, docType models.DocumentType) bool {
	if docType == models.DocumentTypeImage {
		return strings.HasPrefix(att.MimeType, "image/")
	}
	return att.MimeType == "application/pdf"
}

func countByDocumentType(list models.AttachmentList, docType models.DocumentType) int {
	if docType == models.DocumentTypeImage {
		return list.CountByMimePrefix("image/")
	}
	count := 0
	for _, a := range list {
		if a.MimeType == "application/pdf" {
			count++
		}
	}
	return count
}
