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

type dictionaryService interface {
	List(ctx context.Context, filter models.DictionaryFilter) ([]models.Dictionary, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Dictionary, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateDictionaryRequest) (*models.Dictionary, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateDictionaryRequest) (*models.Dictionary, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
	ListValues(ctx context.Context, dictionaryID string) ([]models.DictionaryValue, error)
	AddValue(ctx context.Context, actor *models.JWTClaims, dictionaryID string, req dto.DictionaryValuePayload) (*models.DictionaryValue, error)
	DeleteValue(ctx context.Context, actor *models.JWTClaims, dictionaryID, valueID string) error
}

// DictionaryHandler manages dictionary HTTP endpoints.
type DictionaryHandler struct {
	service dictionaryService
}

// NewDictionaryHandler constructs the handler.
func NewDictionaryHandler(service dictionaryService) *DictionaryHandler {
	return &DictionaryHandler{service: service}
}

// List godoc
// @Summary List dictionaries
// @Tags Dictionaries
// @Produce json
// @Param project_id query string false "Project filter"
// @Param keyword query string false "Search across code and name"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /dictionaries [get]
func (h *DictionaryHandler) List(c *gin.Context) {
	filter := models.DictionaryFilter{
		ProjectID: c.Query("project_id"),
		Keyword:   c.Query("keyword"),
		Page:      queryInt(c, "page"),
		PageSize:  queryInt(c, "page_size"),
	}

	dictionaries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dictionaries, pagination)
}

// Get godoc
// @Summary Get dictionary detail with values
// @Tags Dictionaries
// @Produce json
// @Param id path string true "Dictionary ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dictionaries/{id} [get]
func (h *DictionaryHandler) Get(c *gin.Context) {
	dictionary, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dictionary, nil)
}

// Create godoc
// @Summary Create dictionary
// @Description Create a dictionary, optionally with its values inline.
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param payload body dto.CreateDictionaryRequest true "Dictionary payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dictionaries [post]
func (h *DictionaryHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateDictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dictionary payload"))
		return
	}

	dictionary, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dictionary)
}

// Update godoc
// @Summary Update dictionary
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param id path string true "Dictionary ID"
// @Param payload body dto.UpdateDictionaryRequest true "Partial dictionary payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /dictionaries/{id} [put]
func (h *DictionaryHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateDictionaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dictionary payload"))
		return
	}

	dictionary, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dictionary, nil)
}

// Delete godoc
// @Summary Delete dictionary
// @Tags Dictionaries
// @Produce json
// @Param id path string true "Dictionary ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /dictionaries/{id} [delete]
func (h *DictionaryHandler) Delete(c *gin.Context) {
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

// ListValues godoc
// @Summary List dictionary values
// @Tags Dictionaries
// @Produce json
// @Param id path string true "Dictionary ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dictionaries/{id}/values [get]
func (h *DictionaryHandler) ListValues(c *gin.Context) {
	values, err := h.service.ListValues(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, values, nil)
}

// AddValue godoc
// @Summary Append a dictionary value
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Param id path string true "Dictionary ID"
// @Param payload body dto.DictionaryValuePayload true "Value payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /dictionaries/{id}/values [post]
func (h *DictionaryHandler) AddValue(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.DictionaryValuePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid dictionary value payload"))
		return
	}

	value, err := h.service.AddValue(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, value)
}

// DeleteValue godoc
// @Summary Delete a dictionary value
// @Tags Dictionaries
// @Produce json
// @Param id path string true "Dictionary ID"
// @Param valueId path string true "Value ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dictionaries/{id}/values/{valueId} [delete]
func (h *DictionaryHandler) DeleteValue(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteValue(c.Request.Context(), claims, c.Param("id"), c.Param("valueId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
