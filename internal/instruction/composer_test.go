package instruction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/discovery"
)

// fakeSchemaReader implements SchemaReader for tests.
type fakeSchemaReader struct {
	tables  []string
	columns map[string][]string
	descErr error

	listTablesCalls    int
	describeTableCalls int
}

func (f *fakeSchemaReader) ListTables(ctx context.Context) ([]string, error) {
	f.listTablesCalls++
	return f.tables, nil
}

func (f *fakeSchemaReader) DescribeTable(ctx context.Context, tableName string) ([]string, error) {
	f.describeTableCalls++
	if f.descErr != nil {
		return nil, f.descErr
	}
	return f.columns[tableName], nil
}

func TestComposeExampleQueryLine(t *testing.T) {
	dataContext := map[string]discovery.FolderContext{
		"trips": {
			Columns:    []string{"id", "fare"},
			SampleData: map[string]any{"id": float64(1), "fare": 12.5},
		},
	}

	text := Compose("vehicle-data", dataContext)

	assert.Contains(t, text, "- Table `trips` example query: SELECT \"id\", \"fare\" FROM \"trips\" LIMIT 5;")
}

func TestComposePreamble(t *testing.T) {
	text := Compose("vehicle-data", nil)

	assert.True(t, strings.HasPrefix(text, "Role: You are an advanced database querying agent"))
	assert.Contains(t, text, "generating precise SQL queries for Amazon Athena concerning the vehicle-data.")
	assert.Contains(t, text, "Then: LIMIT to 10 rows.")

	// An empty context appends no per-table lines.
	assert.NotContains(t, text, "example query:")
	assert.True(t, strings.HasSuffix(text, "construct based on the available data:"))
}

func TestComposeSortsDatasets(t *testing.T) {
	dataContext := map[string]discovery.FolderContext{
		"zones": {Columns: []string{"zone_id"}},
		"trips": {Columns: []string{"id"}},
	}

	text := Compose("vehicle-data", dataContext)

	tripsAt := strings.Index(text, "- Table `trips`")
	zonesAt := strings.Index(text, "- Table `zones`")
	require.NotEqual(t, -1, tripsAt)
	require.NotEqual(t, -1, zonesAt)
	assert.Less(t, tripsAt, zonesAt)
}

func TestComposeFromCatalog(t *testing.T) {
	reader := &fakeSchemaReader{
		tables: []string{"trips", "zones"},
		columns: map[string][]string{
			"trips": {"id", "fare"},
			"zones": {"zone_id"},
		},
	}

	text, err := ComposeFromCatalog(context.Background(), reader, "vehicle-data")
	require.NoError(t, err)

	assert.Contains(t, text, "- Table `trips` example query: SELECT \"id\", \"fare\" FROM \"trips\" LIMIT 5;")
	assert.Contains(t, text, "- Table `zones` example query: SELECT \"zone_id\" FROM \"zones\" LIMIT 5;")
	assert.Equal(t, 1, reader.listTablesCalls)
	assert.Equal(t, 2, reader.describeTableCalls)
}

func TestComposeFromCatalogDescribeFailure(t *testing.T) {
	reader := &fakeSchemaReader{
		tables:  []string{"trips"},
		descErr: errors.New("query qid-1 failed with state FAILED"),
	}

	_, err := ComposeFromCatalog(context.Background(), reader, "vehicle-data")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to describe table trips")
}
