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

type faqService interface {
	List(ctx context.Context, filter models.FAQFilter) ([]models.FAQ, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.FAQ, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateFAQRequest) (*models.FAQ, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateFAQRequest) (*models.FAQ, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload service.FileUpload) (models.AttachmentList, error)
	DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error)
}

// FAQHandler manages FAQ HTTP endpoints.
type FAQHandler struct {
	service faqService
}

// NewFAQHandler constructs the handler.
func NewFAQHandler(service faqService) *FAQHandler {
	return &FAQHandler{service: service}
}

// List godoc
// @Summary List FAQ entries
// @Tags FAQs
// @Produce json
// @Param keyword query string false "Search across title and description"
// @Param category query string false "Category filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /faqs [get]
func (h *FAQHandler) List(c *gin.Context) {
	filter := models.FAQFilter{
		Keyword:  c.Query("keyword"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	faqs, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faqs, pagination)
}

// Get godoc
// @Summary Get FAQ detail
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /faqs/{id} [get]
func (h *FAQHandler) Get(c *gin.Context) {
	faq, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq, nil)
}

// Create godoc
// @Summary Create FAQ entry
// @Tags FAQs
// @Accept json
// @Produce json
// @Param payload body dto.CreateFAQRequest true "FAQ payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /faqs [post]
func (h *FAQHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faq payload"))
		return
	}

	faq, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faq)
}

// Update godoc
// @Summary Update FAQ entry
// @Tags FAQs
// @Accept json
// @Produce json
// @Param id path string true "FAQ ID"
// @Param payload body dto.UpdateFAQRequest true "Partial FAQ payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /faqs/{id} [put]
func (h *FAQHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid faq payload"))
		return
	}

	faq, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faq, nil)
}

// Delete godoc
// @Summary Delete FAQ entry
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /faqs/{id} [delete]
func (h *FAQHandler) Delete(c *gin.Context) {
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
// @Summary Upload FAQ attachment
// @Description Attach a PDF or image. Returns the full attachment list.
// @Tags FAQs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "FAQ ID"
// @Param file formData file true "File"
// @Param category formData string false "Attachment category"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /faqs/{id}/attachments [post]
func (h *FAQHandler) UploadAttachment(c *gin.Context) {
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
// @Summary Delete FAQ attachment
// @Tags FAQs
// @Produce json
// @Param id path string true "FAQ ID"
// @Param storedFilename path string true "Stored filename"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /faqs/{id}/attachments/{storedFilename} [delete]
func (h *FAQHandler) DeleteAttachment(c *gin.Context) {
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
