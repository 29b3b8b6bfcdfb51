package discovery

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/aws-samples/text-to-sql-agent-provisioner/internal/storage"
)

const (
	// dataSubPath is the fixed sub-folder the crawler writes table data
	// under, relative to each top-level folder.
	dataSubPath = "data/"

	compressedJSONExt = ".json.gz"
)

// FolderContext aggregates what was observed about one dataset folder:
// the union of field names across all decoded records and the first
// decoded record as representative sample data.
type FolderContext struct {
	Columns    []string       `json:"columns"`
	SampleData map[string]any `json:"sample_data,omitempty"`
}

// AnalyzeJSONGz scans the gzip-compressed, newline-delimited JSON objects
// under each folder's data sub-path and returns the per-folder schema
// context, keyed by folder name.
//
// Failures local to one line or one object are logged and skipped;
// listing failures abort the whole analysis.
func AnalyzeJSONGz(ctx context.Context, store storage.ObjectStore, bucket string, folders []string) (map[string]FolderContext, error) {
	dataContext := make(map[string]FolderContext, len(folders))

	for _, folder := range folders {
		name := strings.TrimSuffix(folder, "/")
		folderCtx, err := processFolder(ctx, store, bucket, name+"/"+dataSubPath)
		if err != nil {
			return nil, err
		}
		dataContext[name] = folderCtx
	}
	return dataContext, nil
}

// processFolder scans one folder's objects, accumulating column names and
// the first sample record.
func processFolder(ctx context.Context, store storage.ObjectStore, bucket string, scanRoot string) (FolderContext, error) {
	columns := make(map[string]struct{})
	var sample map[string]any

	keys, err := store.ListObjects(ctx, bucket, scanRoot)
	if err != nil {
		return FolderContext{}, err
	}

	for _, key := range keys {
		if !strings.HasSuffix(key, compressedJSONExt) {
			continue
		}
		if err := scanObject(ctx, store, bucket, key, columns, &sample); err != nil {
			// Partial results from other objects are preserved.
			log.Printf("WARN: Error processing object %s: %v", key, err)
		}
	}

	folderCtx := FolderContext{
		Columns:    make([]string, 0, len(columns)),
		SampleData: sample,
	}
	for col := range columns {
		folderCtx.Columns = append(folderCtx.Columns, col)
	}
	sort.Strings(folderCtx.Columns)
	return folderCtx, nil
}

// scanObject decompresses one object and decodes each line independently
// as a JSON value, merging keys of mapping values into columns and fixing
// the first mapping as the sample.
func scanObject(ctx context.Context, store storage.ObjectStore, bucket string, key string, columns map[string]struct{}, sample *map[string]any) error {
	body, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return err
	}
	defer body.Close()

	gz, err := gzip.NewReader(body)
	if err != nil {
		return err
	}
	defer gz.Close()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var value any
		if err := json.Unmarshal(line, &value); err != nil {
			log.Printf("WARN: Error decoding JSON line from object %s: %v", key, err)
			continue
		}
		record, ok := value.(map[string]any)
		if !ok {
			log.Printf("WARN: Unexpected JSON value in object %s (not an object)", key)
			continue
		}

		if *sample == nil {
			*sample = record
		}
		for field := range record {
			columns[field] = struct{}{}
		}
	}
	return scanner.Err()
}
