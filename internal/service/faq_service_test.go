package service

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type faqRepoStub struct {
	faqs map[string]*models.FAQ
}

func newFAQRepoStub(faqs ...*models.FAQ) *faqRepoStub {
	stub := &faqRepoStub{faqs: make(map[string]*models.FAQ)}
	for _, f := range faqs {
		stub.faqs[f.ID] = f
	}
	return stub
}

func (s *faqRepoStub) List(_ context.Context, _ models.FAQFilter) ([]models.FAQ, int, error) {
	result := make([]models.FAQ, 0, len(s.faqs))
	for _, f := range s.faqs {
		result = append(result, *f)
	}
	return result, len(result), nil
}

func (s *faqRepoStub) FindByID(_ context.Context, id string) (*models.FAQ, error) {
	f, ok := s.faqs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *f
	copied.Attachments = append(models.AttachmentList{}, f.Attachments...)
	return &copied, nil
}

func (s *faqRepoStub) Create(_ context.Context, faq *models.FAQ) error {
	if faq.ID == "" {
		faq.ID = "faq-new"
	}
	s.faqs[faq.ID] = faq
	return nil
}

func (s *faqRepoStub) Update(_ context.Context, faq *models.FAQ) error {
	if _, ok := s.faqs[faq.ID]; !ok {
		return sql.ErrNoRows
	}
	s.faqs[faq.ID] = faq
	return nil
}

// UpdateAttachments mirrors the repository UPDATE: the legacy singular
// columns are nulled in the same statement that replaces the list.
func (s *faqRepoStub) UpdateAttachments(_ context.Context, id string, attachments models.AttachmentList, expectedVersion int) error {
	f, ok := s.faqs[id]
	if !ok || f.AttachmentsVersion != expectedVersion {
		return sql.ErrNoRows
	}
	f.Attachments = attachments
	f.AttachmentsVersion++
	f.FilePath = nil
	f.FileName = nil
	f.FileSize = nil
	f.MimeType = nil
	return nil
}

func (s *faqRepoStub) Delete(_ context.Context, id string) error {
	delete(s.faqs, id)
	return nil
}

func newFAQService(repo faqRepository, storage uploadStorage) *FAQService {
	return NewFAQService(repo, storage, nil, nil, UploadConfig{
		MaxFileSizeBytes: 1024 * 1024,
		PublicPrefix:     "/uploads",
	})
}

func TestDeleteLegacyFAQAttachmentDoesNotResurrect(t *testing.T) {
	filePath := "/uploads/faqs/1680343200_answer.pdf"
	fileName := "answer.pdf"
	fileSize := int64(4096)
	mimeType := "application/pdf"

	repo := newFAQRepoStub(&models.FAQ{
		ID:          "faq-legacy",
		ContentType: models.FAQContentAttachment,
		FilePath:    &filePath,
		FileName:    &fileName,
		FileSize:    &fileSize,
		MimeType:    &mimeType,
		CreatedAt:   time.Date(2023, 4, 1, 10, 0, 0, 0, time.UTC),
		CreatorID:   "user-1",
	})
	svc := newFAQService(repo, newStorageStub())

	faq, err := svc.Get(context.Background(), "faq-legacy")
	require.NoError(t, err)
	require.Len(t, faq.Attachments, 1)
	stored := faq.Attachments[0].StoredFilename
	assert.Equal(t, "1680343200_answer.pdf", stored)

	list, err := svc.DeleteAttachment(context.Background(), ownerClaims(), "faq-legacy", stored)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The legacy columns were cleared alongside the list, so a fresh read
	// stays empty instead of re-synthesizing the deleted entry.
	faq, err = svc.Get(context.Background(), "faq-legacy")
	require.NoError(t, err)
	assert.Empty(t, faq.Attachments)
	assert.Nil(t, repo.faqs["faq-legacy"].FilePath)
}

func TestFAQAcceptsPDFAndImageUploads(t *testing.T) {
	repo := newFAQRepoStub(&models.FAQ{
		ID:          "faq-1",
		ContentType: models.FAQContentAttachment,
		Attachments: models.AttachmentList{},
		CreatorID:   "user-1",
	})
	svc := newFAQService(repo, newStorageStub())

	list, err := svc.AddAttachment(context.Background(), ownerClaims(), "faq-1", pdfUpload("answer.pdf", 128))
	require.NoError(t, err)
	require.Len(t, list, 1)

	image := FileUpload{Filename: "steps.png", Size: 64, MimeType: "image/png", Content: bytes.NewReader([]byte{0x89, 0x50})}
	list, err = svc.AddAttachment(context.Background(), ownerClaims(), "faq-1", image)
	require.NoError(t, err)
	require.Len(t, list, 2)

	bad := FileUpload{Filename: "notes.docx", Size: 64, MimeType: "application/msword", Content: bytes.NewReader([]byte("doc"))}
	_, err = svc.AddAttachment(context.Background(), ownerClaims(), "faq-1", bad)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
}

func TestFAQAttachmentOwnership(t *testing.T) {
	repo := newFAQRepoStub(&models.FAQ{
		ID:          "faq-1",
		ContentType: models.FAQContentAttachment,
		Attachments: models.AttachmentList{{StoredFilename: "1_answer.pdf", MimeType: "application/pdf"}},
		CreatorID:   "user-1",
	})
	svc := newFAQService(repo, newStorageStub())

	stranger := &models.JWTClaims{UserID: "user-2", Role: models.RoleUser}
	_, err := svc.DeleteAttachment(context.Background(), stranger, "faq-1", "1_answer.pdf")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
