package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
	"github.com/hisdocs/his-docs-api/pkg/response"
)

type parameterService interface {
	List(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error)
	Get(ctx context.Context, id string) (*models.Parameter, error)
	Create(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ParameterPayload) (*models.Parameter, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateParameterRequest) (*models.Parameter, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	PreviewImport(ctx context.Context, interfaceID string, req dto.ImportPreviewRequest) (*dto.ImportPreviewResponse, error)
	CommitImport(ctx context.Context, actor *models.JWTClaims, interfaceID string, req dto.ImportCommitRequest) ([]models.Parameter, error)
}

// ParameterHandler manages parameter HTTP endpoints.
type ParameterHandler struct {
	service parameterService
}

// NewParameterHandler constructs the handler.
func NewParameterHandler(service parameterService) *ParameterHandler {
	return &ParameterHandler{service: service}
}

// List godoc
// @Summary List interface parameters
// @Tags Parameters
// @Produce json
// @Param id path string true "Interface ID"
// @Param param_type query string false "input or output"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /interfaces/{id}/parameters [get]
func (h *ParameterHandler) List(c *gin.Context) {
	parameters, err := h.service.List(c.Request.Context(), c.Param("id"), models.ParamType(c.Query("param_type")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parameters, nil)
}

// Get godoc
// @Summary Get parameter detail
// @Tags Parameters
// @Produce json
// @Param id path string true "Parameter ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parameters/{id} [get]
func (h *ParameterHandler) Get(c *gin.Context) {
	parameter, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parameter, nil)
}

// Create godoc
// @Summary Add a parameter to an interface
// @Tags Parameters
// @Accept json
// @Produce json
// @Param id path string true "Interface ID"
// @Param payload body dto.ParameterPayload true "Parameter payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /interfaces/{id}/parameters [post]
func (h *ParameterHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ParameterPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid parameter payload"))
		return
	}

	parameter, err := h.service.Create(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, parameter)
}

// Update godoc
// @Summary Update parameter
// @Tags Parameters
// @Accept json
// @Produce json
// @Param id path string true "Parameter ID"
// @Param payload body dto.UpdateParameterRequest true "Partial parameter payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /parameters/{id} [put]
func (h *ParameterHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid parameter payload"))
		return
	}

	parameter, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, parameter, nil)
}

// Delete godoc
// @Summary Delete parameter
// @Tags Parameters
// @Produce json
// @Param id path string true "Parameter ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /parameters/{id} [delete]
func (h *ParameterHandler) Delete(c *gin.Context) {
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

// ImportPreview godoc
// @Summary Preview a parameter batch import
// @Description Parse pasted delimited text into parameter rows without saving.
// @Tags Parameters
// @Accept json
// @Produce json
// @Param id path string true "Interface ID"
// @Param payload body dto.ImportPreviewRequest true "Raw text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /interfaces/{id}/parameters/import/preview [post]
func (h *ParameterHandler) ImportPreview(c *gin.Context) {
	var req dto.ImportPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}

	preview, err := h.service.PreviewImport(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview, nil)
}

// ImportCommit godoc
// @Summary Commit a previewed parameter batch
// @Tags Parameters
// @Accept json
// @Produce json
// @Param id path string true "Interface ID"
// @Param payload body dto.ImportCommitRequest true "Previewed rows"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /interfaces/{id}/parameters/import [post]
func (h *ParameterHandler) ImportCommit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ImportCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid import payload"))
		return
	}

	parameters, err := h.service.CommitImport(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, parameters)
}
