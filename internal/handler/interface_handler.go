package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
	"github.com/hisdocs/his-docs-api/internal/service"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
	"github.com/hisdocs/his-docs-api/pkg/response"
)

type interfaceService interface {
	Search(ctx context.Context, req dto.SearchInterfacesRequest) (*service.SearchResult, error)
	List(ctx context.Context, filter models.InterfaceFilter) ([]models.Interface, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Interface, error)
	Create(ctx context.Context, actor *models.JWTClaims, req dto.CreateInterfaceRequest) (*models.Interface, error)
	Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.UpdateInterfaceRequest) (*models.Interface, error)
	Delete(ctx context.Context, actor *models.JWTClaims, id string) error
}

// InterfaceHandler manages interface catalogue HTTP endpoints.
type InterfaceHandler struct {
	service interfaceService
}

// NewInterfaceHandler constructs the handler.
func NewInterfaceHandler(service interfaceService) *InterfaceHandler {
	return &InterfaceHandler{service: service}
}

// List godoc
// @Summary List interfaces
// @Tags Interfaces
// @Produce json
// @Param keyword query string false "Search across code, name and description"
// @Param project_id query string false "Project filter"
// @Param interface_type query string false "view or api"
// @Param category query string false "Category filter"
// @Param tags query string false "Comma-separated tag filter"
// @Param status query string false "active or inactive"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /interfaces [get]
func (h *InterfaceHandler) List(c *gin.Context) {
	filter := models.InterfaceFilter{
		Keyword:       c.Query("keyword"),
		ProjectID:     c.Query("project_id"),
		InterfaceType: models.InterfaceType(c.Query("interface_type")),
		Category:      c.Query("category"),
		Status:        models.InterfaceStatus(c.Query("status")),
		Page:          queryInt(c, "page"),
		PageSize:      queryInt(c, "page_size"),
	}
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	interfaces, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, interfaces, pagination)
}

// Search godoc
// @Summary Search interfaces
// @Description Structured search over the interface catalogue. Results are cached.
// @Tags Interfaces
// @Accept json
// @Produce json
// @Param payload body dto.SearchInterfacesRequest true "Search criteria"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /interfaces/search [post]
func (h *InterfaceHandler) Search(c *gin.Context) {
	var req dto.SearchInterfacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}

	result, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Items, &result.Pagination)
}

// Get godoc
// @Summary Get interface detail with parameters
// @Tags Interfaces
// @Produce json
// @Param id path string true "Interface ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /interfaces/{id} [get]
func (h *InterfaceHandler) Get(c *gin.Context) {
	iface, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, iface, nil)
}

// Create godoc
// @Summary Create interface
// @Description Catalogue an interface, optionally with inline parameters.
// @Tags Interfaces
// @Accept json
// @Produce json
// @Param payload body dto.CreateInterfaceRequest true "Interface payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /interfaces [post]
func (h *InterfaceHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid interface payload"))
		return
	}

	iface, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, iface)
}

// Update godoc
// @Summary Update interface
// @Description Partial update. A non-null parameters array replaces the full list.
// @Tags Interfaces
// @Accept json
// @Produce json
// @Param id path string true "Interface ID"
// @Param payload body dto.UpdateInterfaceRequest true "Partial interface payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /interfaces/{id} [put]
func (h *InterfaceHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateInterfaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid interface payload"))
		return
	}

	iface, err := h.service.Update(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, iface, nil)
}

// Delete godoc
// @Summary Delete interface
// @Tags Interfaces
// @Produce json
// @Param id path string true "Interface ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /interfaces/{id} [delete]
func (h *InterfaceHandler) Delete(c *gin.Context) {
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
