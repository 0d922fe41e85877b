package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hisdocs/his-docs-api/internal/models"
	"github.com/hisdocs/his-docs-api/pkg/export"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type exportInterfaceRepository interface {
	ListAll(ctx context.Context) ([]models.Interface, error)
}

type exportParameterRepository interface {
	ListByInterface(ctx context.Context, interfaceID string, paramType models.ParamType) ([]models.Parameter, error)
}

type exportDictionaryRepository interface {
	List(ctx context.Context, filter models.DictionaryFilter) ([]models.Dictionary, int, error)
	ListValues(ctx context.Context, dictionaryID string) ([]models.DictionaryValue, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// CatalogueExport is the JSON export payload of the full catalogue.
type CatalogueExport struct {
	Interfaces   []models.Interface  `json:"interfaces"`
	Dictionaries []models.Dictionary `json:"dictionaries"`
	ExportTime   time.Time           `json:"export_time"`
}

// ExportService renders the interface catalogue as JSON, CSV or PDF.
type ExportService struct {
	interfaces   exportInterfaceRepository
	parameters   exportParameterRepository
	dictionaries exportDictionaryRepository
	csv          csvRenderer
	pdf          pdfRenderer
	logger       *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(interfaces exportInterfaceRepository, parameters exportParameterRepository, dictionaries exportDictionaryRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		interfaces:   interfaces,
		parameters:   parameters,
		dictionaries: dictionaries,
		csv:          csv,
		pdf:          pdf,
		logger:       logger,
	}
}

// CatalogueJSON returns the full catalogue with parameters and dictionary
// values resolved, marshalled for download.
func (s *ExportService) CatalogueJSON(ctx context.Context) ([]byte, error) {
	catalogue, err := s.buildCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(catalogue, "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode catalogue")
	}
	return payload, nil
}

// CatalogueCSV renders one row per parameter with its interface context.
func (s *ExportService) CatalogueCSV(ctx context.Context) ([]byte, error) {
	dataset, err := s.buildDataset(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

// CataloguePDF renders the same tabular dataset as a PDF document.
func (s *ExportService) CataloguePDF(ctx context.Context) ([]byte, error) {
	dataset, err := s.buildDataset(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := s.pdf.Render(dataset, "interface catalogue")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}

func (s *ExportService) buildCatalogue(ctx context.Context) (*CatalogueExport, error) {
	interfaces, err := s.interfaces.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load interfaces")
	}

	for i := range interfaces {
		parameters, err := s.parameters.ListByInterface(ctx, interfaces[i].ID, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load parameters")
		}
		interfaces[i].Parameters = parameters
	}

	dictionaries, _, err := s.dictionaries.List(ctx, models.DictionaryFilter{PageSize: 100})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dictionaries")
	}
	for i := range dictionaries {
		values, err := s.dictionaries.ListValues(ctx, dictionaries[i].ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dictionary values")
		}
		dictionaries[i].Values = values
	}

	return &CatalogueExport{
		Interfaces:   interfaces,
		Dictionaries: dictionaries,
		ExportTime:   time.Now().UTC(),
	}, nil
}

func (s *ExportService) buildDataset(ctx context.Context) (export.Dataset, error) {
	catalogue, err := s.buildCatalogue(ctx)
	if err != nil {
		return export.Dataset{}, err
	}

	headers := []string{"interface_code", "interface_name", "interface_type", "param_type", "field_name", "name", "data_type", "required", "description"}
	rows := make([]map[string]string, 0)
	for _, iface := range catalogue.Interfaces {
		if len(iface.Parameters) == 0 {
			rows = append(rows, map[string]string{
				"interface_code": iface.Code,
				"interface_name": iface.Name,
				"interface_type": string(iface.InterfaceType),
			})
			continue
		}
		for _, p := range iface.Parameters {
			rows = append(rows, map[string]string{
				"interface_code": iface.Code,
				"interface_name": iface.Name,
				"interface_type": string(iface.InterfaceType),
				"param_type":     string(p.ParamType),
				"field_name":     p.FieldName,
				"name":           p.Name,
				"data_type":      p.DataType,
				"required":       strconv.FormatBool(p.Required),
				"description":    sanitizeCell(p.Description),
			})
		}
	}

	return export.Dataset{Headers: headers, Rows: rows}, nil
}

func sanitizeCell(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}

// ExportFilename builds a timestamped download name for the given format.
func ExportFilename(format string) string {
	return fmt.Sprintf("interfaces_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
}
