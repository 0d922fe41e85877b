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

type projectService interface {
	List(ctx context.Context, filter models.ProjectFilter) ([]models.Project, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateProjectRequest) (*models.Project, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateProjectRequest) (*models.Project, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	AddAttachment(ctx context.Context, actor *models.JWTClaims, id string, upload service.FileUpload) (models.AttachmentList, error)
	DeleteAttachment(ctx context.Context, actor *models.JWTClaims, id, storedName string) (models.AttachmentList, error)
}

// ProjectHandler manages project HTTP endpoints.
type ProjectHandler struct {
	service projectService
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(service projectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param keyword query string false "Search across name, manager and description"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	filter := models.ProjectFilter{
		Keyword:  c.Query("keyword"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	}

	projects, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects, pagination)
}

// Get godoc
// @Summary Get project detail
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}

// Create godoc
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body dto.CreateProjectRequest true "Project payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid project payload"))
		return
	}

	project, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body dto.UpdateProjectRequest true "Partial project payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid project payload"))
		return
	}

	project, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project, nil)
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
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
// @Summary Upload project attachment
// @Description Attach a PDF to the project. Returns the full attachment list.
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "PDF file"
// @Param category formData string false "Attachment category"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /projects/{id}/attachments [post]
func (h *ProjectHandler) UploadAttachment(c *gin.Context) {
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
// @Summary Delete project attachment
// @Description Remove the attachment keyed by its stored filename.
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Param storedFilename path string true "Stored filename"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /projects/{id}/attachments/{storedFilename} [delete]
func (h *ProjectHandler) DeleteAttachment(c *gin.Context) {
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
