package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/discovery"
)

func TestDefaultOutputFilePath(t *testing.T) {
	assert.Equal(t, "vehicle-data_instruction.txt", DefaultOutputFilePath("vehicle-data", "generate-instruction"))
	assert.Equal(t, "vehicle-data_crawler_targets.json", DefaultOutputFilePath("vehicle-data", "crawler-targets"))
	assert.Equal(t, "vehicle-data_schema_context.json", DefaultOutputFilePath("vehicle-data", "discover-schema"))
}

func TestSchemaContextRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	dataContext := map[string]discovery.FolderContext{
		"trips": {
			Columns:    []string{"fare", "id"},
			SampleData: map[string]any{"id": float64(1), "fare": 12.5},
		},
		"zones": {
			Columns: []string{"zone_id"},
		},
	}

	require.NoError(t, WriteJSONFile(path, dataContext))

	loaded, err := ReadSchemaContext(path)
	require.NoError(t, err)
	assert.Equal(t, dataContext, loaded)
}

func TestReadSchemaContextMissingFile(t *testing.T) {
	_, err := ReadSchemaContext(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read context file")
}
