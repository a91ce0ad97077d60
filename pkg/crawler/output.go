package crawler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/utils"
)

// WriteResults serializes the final result list as an indented JSON array at
// path, creating parent directories as needed. The file is written via a
// temporary sibling and renamed into place, so a failed run never leaves a
// partial output file behind. An empty run serializes as [], not null.
func WriteResults(path string, results []models.SearchResult) error {
	if results == nil {
		results = []models.SearchResult{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating output directory '%s': %w", utils.ErrFilesystem, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: creating temp output file: %w", utils.ErrFilesystem, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing '%s': %w", utils.ErrFilesystem, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing '%s': %w", utils.ErrFilesystem, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming output into place: %w", utils.ErrFilesystem, err)
	}
	return nil
}
