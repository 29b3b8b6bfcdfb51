package discovery

import (
	"encoding/csv"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// AnalyzeCSV walks root recursively and loads every CSV file found,
// extracting its header as the column list and the first data row as the
// sample record. Results are keyed by the top-level path element relative
// to root, with spaces replaced by underscores so the key works as an
// identifier. When multiple files share a top-level directory the
// last-processed file wins.
func AnalyzeCSV(root string) (map[string]FolderContext, error) {
	dataContext := make(map[string]FolderContext)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".csv") {
			return nil
		}

		folderCtx, readErr := readCSVFile(path)
		if readErr != nil {
			log.Printf("WARN: Error reading CSV file %s: %v", path, readErr)
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		key := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		key = strings.ReplaceAll(key, " ", "_")

		dataContext[key] = folderCtx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dataContext, nil
}

func readCSVFile(path string) (FolderContext, error) {
	f, err := os.Open(path)
	if err != nil {
		return FolderContext{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return FolderContext{}, err
	}

	folderCtx := FolderContext{Columns: header}

	row, err := r.Read()
	switch {
	case err == io.EOF:
		// Header-only file: columns known, no sample.
		return folderCtx, nil
	case err != nil:
		log.Printf("WARN: Error reading first row of %s: %v", path, err)
		return folderCtx, nil
	}

	sample := make(map[string]any, len(header))
	for i, col := range header {
		if i < len(row) {
			sample[col] = row[i]
		}
	}
	folderCtx.SampleData = sample
	return folderCtx, nil
}
