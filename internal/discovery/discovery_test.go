package discovery

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjectStore implements storage.ObjectStore for tests.
type fakeObjectStore struct {
	keys    map[string][]string // prefix -> keys
	objects map[string][]byte   // key -> raw content
	getErr  map[string]error    // key -> forced fetch error
	listErr error

	listObjectsCalls int
	getObjectCalls   int
}

func (f *fakeObjectStore) ListFolders(ctx context.Context, bucket string) ([]string, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeObjectStore) ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error) {
	f.listObjectsCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.keys[prefix], nil
}

func (f *fakeObjectStore) GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error) {
	f.getObjectCalls++
	if err, ok := f.getErr[key]; ok {
		return nil, err
	}
	content, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func gzipLines(t *testing.T, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func TestAnalyzeJSONGzUnionAndSample(t *testing.T) {
	store := &fakeObjectStore{
		keys: map[string][]string{
			"trips/data/": {"trips/data/part-0.json.gz", "trips/data/part-1.json.gz"},
		},
		objects: map[string][]byte{
			"trips/data/part-0.json.gz": gzipLines(t,
				`{"id": 1, "fare": 12.5}`,
				`{"id": 2, "tip": 3.0}`,
			),
			"trips/data/part-1.json.gz": gzipLines(t,
				`{"id": 3, "zone": "JFK"}`,
			),
		},
	}

	dataContext, err := AnalyzeJSONGz(context.Background(), store, "vehicle-data", []string{"trips/"})
	require.NoError(t, err)
	require.Contains(t, dataContext, "trips")

	folderCtx := dataContext["trips"]
	assert.Equal(t, []string{"fare", "id", "tip", "zone"}, folderCtx.Columns)
	assert.Equal(t, map[string]any{"id": float64(1), "fare": 12.5}, folderCtx.SampleData)
	assert.Equal(t, 2, store.getObjectCalls)
}

func TestAnalyzeJSONGzEmptyFolder(t *testing.T) {
	store := &fakeObjectStore{
		keys: map[string][]string{
			// Only a non-matching object under the scan root.
			"trips/data/": {"trips/data/manifest.txt"},
		},
	}

	dataContext, err := AnalyzeJSONGz(context.Background(), store, "vehicle-data", []string{"trips"})
	require.NoError(t, err)

	folderCtx := dataContext["trips"]
	assert.Empty(t, folderCtx.Columns)
	assert.Nil(t, folderCtx.SampleData)
	assert.Equal(t, 0, store.getObjectCalls)
}

func TestAnalyzeJSONGzSkipsMalformedLines(t *testing.T) {
	store := &fakeObjectStore{
		keys: map[string][]string{
			"trips/data/": {"trips/data/part-0.json.gz"},
		},
		objects: map[string][]byte{
			"trips/data/part-0.json.gz": gzipLines(t,
				`{"id": 1}`,
				`{"fare": 12.5`, // malformed, skipped
				`{"fare": 12.5}`,
				`[1, 2, 3]`, // not a mapping, skipped
				`{"zone": "JFK"}`,
			),
		},
	}

	dataContext, err := AnalyzeJSONGz(context.Background(), store, "vehicle-data", []string{"trips/"})
	require.NoError(t, err)

	folderCtx := dataContext["trips"]
	assert.Equal(t, []string{"fare", "id", "zone"}, folderCtx.Columns)
	assert.Equal(t, map[string]any{"id": float64(1)}, folderCtx.SampleData)
}

func TestAnalyzeJSONGzSkipsUnreadableObjects(t *testing.T) {
	store := &fakeObjectStore{
		keys: map[string][]string{
			"trips/data/": {
				"trips/data/part-0.json.gz",
				"trips/data/part-1.json.gz",
				"trips/data/part-2.json.gz",
			},
		},
		objects: map[string][]byte{
			"trips/data/part-1.json.gz": []byte("not gzip at all"),
			"trips/data/part-2.json.gz": gzipLines(t, `{"id": 7}`),
		},
		getErr: map[string]error{
			"trips/data/part-0.json.gz": errors.New("access denied"),
		},
	}

	dataContext, err := AnalyzeJSONGz(context.Background(), store, "vehicle-data", []string{"trips/"})
	require.NoError(t, err)

	// Partial results from the readable object are preserved.
	folderCtx := dataContext["trips"]
	assert.Equal(t, []string{"id"}, folderCtx.Columns)
	assert.Equal(t, map[string]any{"id": float64(7)}, folderCtx.SampleData)
}

func TestAnalyzeJSONGzListingFailureAborts(t *testing.T) {
	store := &fakeObjectStore{listErr: errors.New("no such bucket")}

	_, err := AnalyzeJSONGz(context.Background(), store, "vehicle-data", []string{"trips/"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no such bucket")
}
