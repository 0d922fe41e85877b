package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/middleware"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type parameterServiceMock struct {
	previewResp   *dto.ImportPreviewResponse
	previewErr    error
	commitResp    []models.Parameter
	commitErr     error
	getResp       *models.Parameter
	getErr        error
	lastPreview   dto.ImportPreviewRequest
	lastCommit    dto.ImportCommitRequest
	lastGetID     string
	previewCalled bool
	commitCalled  bool
}

func (m *parameterServiceMock) List(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error) {
	return nil, nil
}

func (m *parameterServiceMock) Get(ctx context.Context, id string) (*models.Parameter, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}

func (m *parameterServiceMock) Create(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ParameterPayload) (*models.Parameter, error) {
	return &models.Parameter{InterfaceID: interfaceID, FieldName: req.FieldName}, nil
}

func (m *parameterServiceMock) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateParameterRequest) (*models.Parameter, error) {
	return &models.Parameter{ID: id}, nil
}

func (m *parameterServiceMock) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	return nil
}

func (m *parameterServiceMock) PreviewImport(ctx context.Context, interfaceID string, req dto.ImportPreviewRequest) (*dto.ImportPreviewResponse, error) {
	m.previewCalled = true
	m.lastPreview = req
	return m.previewResp, m.previewErr
}

func (m *parameterServiceMock) CommitImport(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ImportCommitRequest) ([]models.Parameter, error) {
	m.commitCalled = true
	m.lastCommit = req
	return m.commitResp, m.commitErr
}

func TestParameterHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{
		getResp: &models.Parameter{ID: "param-1", FieldName: "patient_id"},
	}
	handler := NewParameterHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/parameters/param-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "param-1"}}

	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "param-1", mockSvc.lastGetID)
}

func TestParameterHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{getErr: appErrors.ErrNotFound}
	handler := NewParameterHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/parameters/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestParameterHandlerImportPreview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{
		previewResp: &dto.ImportPreviewResponse{
			Parameters: []dto.ParameterPayload{{FieldName: "patient_id"}},
			Delimiter:  "tab",
		},
	}
	handler := NewParameterHandler(mockSvc)

	payload, _ := json.Marshal(dto.ImportPreviewRequest{
		Text:      "patient_id\t患者ID\tvarchar",
		ParamType: models.ParamTypeInput,
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/interfaces/interface-1/parameters/import/preview", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "interface-1"}}

	handler.ImportPreview(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.previewCalled)
	assert.Equal(t, models.ParamTypeInput, mockSvc.lastPreview.ParamType)
}

func TestParameterHandlerImportPreviewInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewParameterHandler(&parameterServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/interfaces/interface-1/parameters/import/preview", bytes.NewBufferString(`{"text":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.ImportPreview(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParameterHandlerImportCommit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{
		commitResp: []models.Parameter{{FieldName: "patient_id", OrderIndex: 0}},
	}
	handler := NewParameterHandler(mockSvc)

	payload, _ := json.Marshal(dto.ImportCommitRequest{
		ParamType:  models.ParamTypeInput,
		Parameters: []dto.ParameterPayload{{FieldName: "patient_id"}},
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/interfaces/interface-1/parameters/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "interface-1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleUser})

	handler.ImportCommit(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, mockSvc.commitCalled)
	require.Len(t, mockSvc.lastCommit.Parameters, 1)
}

func TestParameterHandlerImportCommitForbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{commitErr: appErrors.ErrForbidden}
	handler := NewParameterHandler(mockSvc)

	payload, _ := json.Marshal(dto.ImportCommitRequest{
		ParamType:  models.ParamTypeInput,
		Parameters: []dto.ParameterPayload{{FieldName: "x"}},
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/interfaces/interface-1/parameters/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-2", Role: models.RoleUser})

	handler.ImportCommit(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestParameterHandlerImportCommitWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &parameterServiceMock{}
	handler := NewParameterHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/interfaces/interface-1/parameters/import", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.ImportCommit(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, mockSvc.commitCalled)
}
