package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	data := Dataset{
		Headers: []string{"code", "name"},
		Rows: []map[string]string{
			{"code": "HIS-001", "name": "Patient lookup"},
			{"code": "HIS-002", "name": "Order feed"},
		},
	}

	out, err := exporter.Render(data)
	require.NoError(t, err)

	assert.Equal(t, "code,name\nHIS-001,Patient lookup\nHIS-002,Order feed\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
