package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	"github.com/hisdocs/his-docs-api/internal/service"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
	"github.com/hisdocs/his-docs-api/pkg/response"
)

type documentService interface {
	List(ctx context.Context, filter models.DocumentFilter) ([]models.Document, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateDocumentRequest) (*models.Document, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateDocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload service.FileUpload) (models.AttachmentList, error)
	DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error)
}

// DocumentHandler manages document HTTP endpoints.
type DocumentHandler struct {
	service documentService
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service documentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List godoc
// @Summary List documents
// @Tags Documents
// @Produce json
// @Param keyword query string false "Search across title and description"
// @Param document_type query string false "pdf or image"
// @Param region query string false "Region filter"
// @Param person query string false "Person filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	filter := models.DocumentFilter{
		Keyword:      c.Query("keyword"),
		DocumentType: models.DocumentType(c.Query("document_type")),
		Region:       c.Query("region"),
		Person:       c.Query("person"),
		Page:         queryInt(c, "page"),
		PageSize:     queryInt(c, "page_size"),
	}

	documents, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documents, pagination)
}

// Get godoc
// @Summary Get document detail
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	document, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, document, nil)
}

// Create godoc
// @Summary Create document record
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.CreateDocumentRequest true "Document payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	document, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, document)
}

// Update godoc
// @Summary Update document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param payload body dto.UpdateDocumentRequest true "Partial document payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	document, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, document, nil)
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadAttachment godoc
// @Summary Upload document attachment
// @Description Attach a file matching the document type. Returns the full list.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file true "File"
// @Param category formData string false "Attachment category"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /documents/{id}/attachments [post]
func (h *DocumentHandler) UploadAttachment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	upload, closeFile, err := formFileUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFile()

	attachments, err := h.service.AddAttachment(c.Request.Context(), claims, c.Param("id"), upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, attachments)
}

// DeleteAttachment godoc
// @Summary Delete document attachment
// @Description Remove the attachment keyed by its stored filename. The last
// attachment matching the document type cannot be removed.
// @Tags Documents
// @Produce json
// @Param id path string true "Document ID"
// @Param storedFilename path string true "Stored filename"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /documents/{id}/attachments/{storedFilename} [delete]
func (h *DocumentHandler) DeleteAttachment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	attachments, err := h.service.DeleteAttachment(c.Request.Context(), claims, c.Param("id"), c.Param("storedFilename"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, attachments, nil)
}
