package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hisdocs/his-docs-api/internal/service"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
	"github.com/hisdocs/his-docs-api/pkg/response"
)

// ExportHandler serves downloadable exports of the interface catalogue.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Catalogue godoc
// @Summary Export the interface catalogue
// @Description Download the catalogue as json, csv or pdf.
// @Tags Exports
// @Produce json
// @Param format query string false "json, csv or pdf (default json)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /exports/interfaces [get]
func (h *ExportHandler) Catalogue(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "json"))

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "json":
		payload, err = h.service.CatalogueJSON(c.Request.Context())
		contentType = "application/json"
	case "csv":
		payload, err = h.service.CatalogueCSV(c.Request.Context())
		contentType = "text/csv"
	case "pdf":
		payload, err = h.service.CataloguePDF(c.Request.Context())
		contentType = "application/pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be json, csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := service.ExportFilename(format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, payload)
}
