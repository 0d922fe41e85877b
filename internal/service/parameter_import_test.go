package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hisdocs/his-docs-api/internal/models"
)

func TestParseTabSeparatedRow(t *testing.T) {
	text := "patient_id\t患者ID\tvarchar\t\t是\t住院号或门诊号\tP000123"

	payloads, skipped, delimiter := parseParameterText(text, models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "tab", delimiter)

	p := payloads[0]
	assert.Equal(t, "patient_id", p.FieldName)
	assert.Equal(t, "患者ID", p.Name)
	assert.Equal(t, "varchar", p.DataType)
	assert.Equal(t, "", p.DefaultValue)
	assert.True(t, p.Required)
	assert.Equal(t, "住院号或门诊号", p.Description)
	assert.Equal(t, "P000123", p.Example)
	assert.Equal(t, 0, p.OrderIndex)
}

func TestParseSkipsHeaderLine(t *testing.T) {
	text := "字段名\t名称\t类型\n" +
		"visit_no\t就诊流水号\tstring"

	payloads, skipped, _ := parseParameterText(text, models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, "visit_no", payloads[0].FieldName)

	english := "field_name\tname\ttype\nvisit_no\t就诊流水号\tstring"
	payloads, _, _ = parseParameterText(english, models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, "visit_no", payloads[0].FieldName)
}

func TestParseDetectsCommaAndPipe(t *testing.T) {
	payloads, _, delimiter := parseParameterText("dept_code,科室编码,varchar", models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, "comma", delimiter)
	assert.Equal(t, "dept_code", payloads[0].FieldName)

	payloads, _, delimiter = parseParameterText("dept_code|科室编码|varchar|||科室字典编码|0101", models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, "pipe", delimiter)
	assert.Equal(t, "科室字典编码", payloads[0].Description)
}

func TestParseDetectsDoubleSpace(t *testing.T) {
	payloads, _, delimiter := parseParameterText("result_code  返回码  int  0", models.ParamTypeOutput, 0)
	require.Len(t, payloads, 1)
	assert.Equal(t, "double-space", delimiter)
	assert.Equal(t, "result_code", payloads[0].FieldName)
	assert.Equal(t, "int", payloads[0].DataType)
}

func TestParseDelimiterChosenFromFirstLine(t *testing.T) {
	text := "pid\t患者ID\n" +
		"note,free,text,with,commas\tdescription text"
	payloads, _, delimiter := parseParameterText(text, models.ParamTypeInput, 0)
	assert.Equal(t, "tab", delimiter)
	require.Len(t, payloads, 2)
	assert.Equal(t, "pid", payloads[0].FieldName)
	assert.Equal(t, "患者ID", payloads[0].Name)
	assert.Equal(t, "note,free,text,with,commas", payloads[1].FieldName)
}

func TestParseDropsRowsWithoutNames(t *testing.T) {
	text := "patient_id\t患者ID\tstring\n" +
		"\t\tvarchar\t\t是\n" +
		"card_no\t就诊卡号\tstring"

	payloads, skipped, _ := parseParameterText(text, models.ParamTypeInput, 0)
	require.Len(t, payloads, 2)
	assert.Equal(t, 1, skipped)
}

func TestParseNormalizesDataTypes(t *testing.T) {
	cases := map[string]string{
		"CHAR":      "varchar",
		"text":      "string",
		"Integer":   "int",
		"decimal":   "float",
		"BOOL":      "boolean",
		"timestamp": "datetime",
		"json":      "object",
		"list":      "array",
		"blob":      "string",
		"":          "string",
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeDataType(raw), "raw=%q", raw)
	}
}

func TestParseRequiredTokens(t *testing.T) {
	for _, token := range []string{"是", "YES", "true", "1", "y", "必填"} {
		payloads, _, _ := parseParameterText("f\tn\tstring\t\t"+token, models.ParamTypeInput, 0)
		require.Len(t, payloads, 1)
		assert.True(t, payloads[0].Required, "token=%q", token)
	}

	payloads, _, _ := parseParameterText("f\tn\tstring\t\t否", models.ParamTypeInput, 0)
	require.Len(t, payloads, 1)
	assert.False(t, payloads[0].Required)

	// Output parameters never carry the required flag.
	payloads, _, _ = parseParameterText("f\tn\tstring\t\t是", models.ParamTypeOutput, 0)
	require.Len(t, payloads, 1)
	assert.False(t, payloads[0].Required)
}

func TestParseContinuesOrderIndex(t *testing.T) {
	text := "a\t甲\tstring\nb\t乙\tstring"

	payloads, _, _ := parseParameterText(text, models.ParamTypeInput, 5)
	require.Len(t, payloads, 2)
	assert.Equal(t, 5, payloads[0].OrderIndex)
	assert.Equal(t, 6, payloads[1].OrderIndex)
}

func TestParseDefaultsToTabForSingleColumn(t *testing.T) {
	payloads, _, delimiter := parseParameterText("patient_id", models.ParamTypeInput, 0)
	assert.Equal(t, "tab", delimiter)
	require.Len(t, payloads, 1)
	assert.Equal(t, "patient_id", payloads[0].FieldName)
}
