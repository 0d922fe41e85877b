package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type projectRepoStub struct {
	projects  map[string]*models.Project
	updateErr error
}

func newProjectRepoStub(projects ...*models.Project) *projectRepoStub {
	stub := &projectRepoStub{projects: make(map[string]*models.Project)}
	for _, p := range projects {
		stub.projects[p.ID] = p
	}
	return stub
}

func (s *projectRepoStub) List(_ context.Context, _ models.ProjectFilter) ([]models.Project, int, error) {
	result := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		result = append(result, *p)
	}
	return result, len(result), nil
}

func (s *projectRepoStub) FindByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	copied.Attachments = append(models.AttachmentList{}, p.Attachments...)
	return &copied, nil
}

func (s *projectRepoStub) Create(_ context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = "project-new"
	}
	s.projects[project.ID] = project
	return nil
}

func (s *projectRepoStub) Update(_ context.Context, project *models.Project) error {
	if _, ok := s.projects[project.ID]; !ok {
		return sql.ErrNoRows
	}
	s.projects[project.ID] = project
	return nil
}

func (s *projectRepoStub) UpdateAttachments(_ context.Context, id string, attachments models.AttachmentList, expectedVersion int) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	p, ok := s.projects[id]
	if !ok || p.AttachmentsVersion != expectedVersion {
		return sql.ErrNoRows
	}
	p.Attachments = attachments
	p.AttachmentsVersion++
	return nil
}

func (s *projectRepoStub) Delete(_ context.Context, id string) error {
	delete(s.projects, id)
	return nil
}

type storageStub struct {
	saved   map[string][]byte
	saveErr error
}

func newStorageStub() *storageStub {
	return &storageStub{saved: make(map[string][]byte)}
}

func (s *storageStub) SaveStream(filename string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.saved[filename] = data
	return filename, nil
}

func (s *storageStub) Delete(filename string) error {
	delete(s.saved, filename)
	return nil
}

func newProjectService(repo projectRepository, storage uploadStorage) *ProjectService {
	return NewProjectService(repo, storage, nil, nil, UploadConfig{
		MaxFileSizeBytes: 1024 * 1024,
		PublicPrefix:     "/uploads",
	})
}

func ownerClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "user-1", Role: models.RoleUser, Username: "owner"}
}

func pdfUpload(name string, size int64) FileUpload {
	return FileUpload{
		Filename: name,
		Size:     size,
		MimeType: "application/pdf",
		Content:  bytes.NewReader([]byte("%PDF-1.4")),
	}
}

func TestAddProjectAttachment(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", Name: "HIS 对接", CreatorID: "user-1"})
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	list, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", pdfUpload("接口规范 v2.pdf", 128))
	require.NoError(t, err)
	require.Len(t, list, 1)

	entry := list[0]
	assert.Equal(t, "接口规范 v2.pdf", entry.Filename)
	assert.True(t, strings.HasSuffix(entry.StoredFilename, "_接口规范_v2.pdf"), "stored=%s", entry.StoredFilename)
	assert.Equal(t, "/uploads/projects/project-1/"+entry.StoredFilename, entry.FilePath)
	assert.Equal(t, int64(128), entry.FileSize)

	_, onDisk := storage.saved["projects/project-1/"+entry.StoredFilename]
	assert.True(t, onDisk)
	assert.Equal(t, 1, repo.projects["project-1"].AttachmentsVersion)
}

func TestAddProjectAttachmentRejectsNonPDF(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	upload := FileUpload{Filename: "notes.docx", Size: 10, MimeType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Content: bytes.NewReader(nil)}
	_, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", upload)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFile.Code, appErrors.FromError(err).Code)
	assert.Empty(t, storage.saved)
}

func TestAddProjectAttachmentRejectsOversizedFile(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	_, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", pdfUpload("big.pdf", 2*1024*1024))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrFileTooLarge.Code, appErrors.FromError(err).Code)
	assert.Empty(t, storage.saved)
}

func TestAddThenDeleteProjectAttachment(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	list, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", pdfUpload("spec.pdf", 64))
	require.NoError(t, err)
	require.Len(t, list, 1)
	stored := list[0].StoredFilename

	list, err = svc.DeleteAttachment(context.Background(), ownerClaims(), "project-1", stored)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, storage.saved)
	assert.Empty(t, repo.projects["project-1"].Attachments)
	assert.Equal(t, 2, repo.projects["project-1"].AttachmentsVersion)
}

func TestDeleteProjectAttachmentNotFound(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	svc := newProjectService(repo, newStorageStub())

	_, err := svc.DeleteAttachment(context.Background(), ownerClaims(), "project-1", "missing.pdf")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAddProjectAttachmentVersionConflict(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	repo.updateErr = sql.ErrNoRows
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	_, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", pdfUpload("spec.pdf", 64))
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrVersionConflict.Code, typed.Code)
	assert.Equal(t, 409, typed.Status)
	// The orphaned file written before the failed update is cleaned up.
	assert.Empty(t, storage.saved)
}

func TestProjectUpdateOwnership(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", Name: "old", CreatorID: "user-1"})
	svc := newProjectService(repo, newStorageStub())

	name := "renamed"
	stranger := &models.JWTClaims{UserID: "user-2", Role: models.RoleUser}
	_, err := svc.Update(context.Background(), stranger, "project-1", dto.UpdateProjectRequest{Name: &name})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, typed.Code)
	assert.Equal(t, 403, typed.Status)

	admin := &models.JWTClaims{UserID: "user-9", Role: models.RoleAdmin}
	updated, err := svc.Update(context.Background(), admin, "project-1", dto.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestProjectDeleteRemovesAttachmentFiles(t *testing.T) {
	repo := newProjectRepoStub(&models.Project{ID: "project-1", CreatorID: "user-1"})
	storage := newStorageStub()
	svc := newProjectService(repo, storage)

	list, err := svc.AddAttachment(context.Background(), ownerClaims(), "project-1", pdfUpload("spec.pdf", 64))
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(context.Background(), ownerClaims(), "project-1"))
	assert.Empty(t, storage.saved)
	assert.Empty(t, repo.projects)
}
