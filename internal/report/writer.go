package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"seocompetitor/internal/model"
)

// Marshal renders reports as a JSON array indented with two spaces.
func Marshal(reports []model.CompetitorReport) ([]byte, error) {
	if reports == nil {
		reports = []model.CompetitorReport{}
	}
	b, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode reports: %w", err)
	}
	return b, nil
}

// WriteJSON writes reports to path, creating missing parent directories.
// The file is replaced atomically.
func WriteJSON(path string, reports []model.CompetitorReport) error {
	b, err := Marshal(reports)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move report to %s: %w", path, err)
	}
	return nil
}
