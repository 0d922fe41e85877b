package service

import (
	"regexp"
	"strings"

	"github.com/hisdocs/his-docs-api/internal/dto"
	"github.com/hisdocs/his-docs-api/internal/models"
)

// Column order of pasted parameter tables:
// field_name, name, data_type, default_value, required, description, example.
const (
	colFieldName = iota
	colName
	colDataType
	colDefaultValue
	colRequired
	colDescription
	colExample
)

var headerKeywords = []string{"field", "param", "name", "type", "字段", "参数", "名称", "类型"}

var requiredTokens = map[string]bool{
	"是": true, "yes": true, "true": true, "1": true, "y": true, "必填": true,
}

var typeSynonyms = map[string]string{
	"varchar":   "varchar",
	"char":      "varchar",
	"string":    "string",
	"text":      "string",
	"int":       "int",
	"integer":   "int",
	"number":    "int",
	"float":     "float",
	"double":    "float",
	"decimal":   "float",
	"bool":      "boolean",
	"boolean":   "boolean",
	"date":      "date",
	"datetime":  "datetime",
	"timestamp": "datetime",
	"object":    "object",
	"json":      "object",
	"array":     "array",
	"list":      "array",
}

var doubleSpaceSplitter = regexp.MustCompile(`[ ]{2,}`)

type importDelimiter struct {
	name  string
	split func(line string) []string
}

var importDelimiters = []importDelimiter{
	{name: "tab", split: func(line string) []string { return strings.Split(line, "\t") }},
	{name: "comma", split: func(line string) []string { return strings.Split(line, ",") }},
	{name: "pipe", split: func(line string) []string { return strings.Split(line, "|") }},
	{name: "double-space", split: func(line string) []string { return doubleSpaceSplitter.Split(line, -1) }},
}

// parseParameterText turns pasted delimited text into parameter payloads.
// startIndex seeds order_index so imported rows continue after the
// existing list. It returns the payloads, the number of dropped rows and
// the detected delimiter name.
func parseParameterText(text string, paramType models.ParamType, startIndex int) ([]dto.ParameterPayload, int, string) {
	lines := splitNonEmptyLines(text)
	if len(lines) == 0 {
		return nil, 0, "tab"
	}

	delimiter := detectDelimiter(lines[0])

	if isHeaderLine(lines[0]) {
		lines = lines[1:]
	}

	payloads := make([]dto.ParameterPayload, 0, len(lines))
	skipped := 0
	orderIndex := startIndex

	for _, line := range lines {
		cells := delimiter.split(line)
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		fieldName := cell(cells, colFieldName)
		name := cell(cells, colName)
		if fieldName == "" && name == "" {
			skipped++
			continue
		}

		required := false
		if paramType == models.ParamTypeInput {
			required = requiredTokens[strings.ToLower(cell(cells, colRequired))]
		}

		payloads = append(payloads, dto.ParameterPayload{
			ParamType:    paramType,
			FieldName:    fieldName,
			Name:         name,
			DataType:     normalizeDataType(cell(cells, colDataType)),
			DefaultValue: cell(cells, colDefaultValue),
			Required:     required,
			Description:  cell(cells, colDescription),
			Example:      cell(cells, colExample),
			OrderIndex:   orderIndex,
		})
		orderIndex++
	}

	return payloads, skipped, delimiter.name
}

// detectDelimiter picks the candidate producing the highest column count
// greater than one on the first line; ties and single-column input fall
// back to tab. Only the first line is inspected so that delimiter
// characters appearing in later free-text cells cannot flip the choice.
func detectDelimiter(line string) importDelimiter {
	best := importDelimiters[0]
	bestColumns := 1
	for _, candidate := range importDelimiters {
		if n := len(candidate.split(line)); n > bestColumns {
			best = candidate
			bestColumns = n
		}
	}
	return best
}

func isHeaderLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, keyword := range headerKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func normalizeDataType(raw string) string {
	if raw == "" {
		return "string"
	}
	if normalized, ok := typeSynonyms[strings.ToLower(raw)]; ok {
		return normalized
	}
	return "string"
}

func splitNonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cell(cells []string, index int) string {
	if index < len(cells) {
		return cells[index]
	}
	return ""
}
