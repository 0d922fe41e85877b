package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/middleware"
	"github.com/hisdocs/his-docs-api/internal/models"
	"github.com/hisdocs/his-docs-api/internal/service"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type projectServiceMock struct {
	listResp     []models.Project
	listErr      error
	addResp      models.AttachmentList
	addErr       error
	deleteAttErr error
	lastFilter   models.ProjectFilter
	lastUpload   service.FileUpload
	lastStored   string
	addCalled    bool
}

func (m *projectServiceMock) List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, *models.Pagination, error) {
	m.lastFilter = filter
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, m.listErr
}

func (m *projectServiceMock) Get(ctx context.Context, id string) (*models.Project, error) {
	return &models.Project{ID: id}, nil
}

func (m *projectServiceMock) Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateProjectRequest) (*models.Project, error) {
	return &models.Project{ID: "project-1", Name: req.Name, CreatorID: actor.UserID}, nil
}

func (m *projectServiceMock) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateProjectRequest) (*models.Project, error) {
	return &models.Project{ID: id}, nil
}

func (m *projectServiceMock) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	return nil
}

func (m *projectServiceMock) AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload service.FileUpload) (models.AttachmentList, error) {
	m.addCalled = true
	m.lastUpload = upload
	return m.addResp, m.addErr
}

func (m *projectServiceMock) DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error) {
	m.lastStored = storedName
	if m.deleteAttErr != nil {
		return nil, m.deleteAttErr
	}
	return models.AttachmentList{}, nil
}

func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("category", "spec"))
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestProjectHandlerListParsesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &projectServiceMock{listResp: []models.Project{{ID: "project-1"}}}
	handler := NewProjectHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/projects?keyword=HIS&page=2&page_size=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIS", mockSvc.lastFilter.Keyword)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 10, mockSvc.lastFilter.PageSize)
}

func TestProjectHandlerUploadAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &projectServiceMock{
		addResp: models.AttachmentList{{Filename: "spec.pdf", StoredFilename: "1700000000_spec.pdf"}},
	}
	handler := NewProjectHandler(mockSvc)

	body, contentType := multipartBody(t, "spec.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/projects/project-1/attachments", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "project-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	handler.UploadAttachment(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, mockSvc.addCalled)
	assert.Equal(t, "spec.pdf", mockSvc.lastUpload.Filename)
	assert.Equal(t, "application/pdf", mockSvc.lastUpload.MimeType)
	assert.Equal(t, "spec", mockSvc.lastUpload.Category)

	content, err := io.ReadAll(mockSvc.lastUpload.Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestProjectHandlerUploadWithoutFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewProjectHandler(&projectServiceMock{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/projects/project-1/attachments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	handler.UploadAttachment(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandlerUploadWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &projectServiceMock{}
	handler := NewProjectHandler(mockSvc)

	body, contentType := multipartBody(t, "spec.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/projects/project-1/attachments", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req

	handler.UploadAttachment(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mockSvc.addCalled)
}

func TestProjectHandlerDeleteAttachmentConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &projectServiceMock{deleteAttErr: appErrors.ErrVersionConflict}
	handler := NewProjectHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/projects/project-1/attachments/1700000000_spec.pdf", nil)
	c.Request = req
	c.Params = gin.Params{
		{Key: "id", Value: "project-1"},
		{Key: "storedFilename", Value: "1700000000_spec.pdf"},
	}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	handler.DeleteAttachment(c)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "1700000000_spec.pdf", mockSvc.lastStored)
}
