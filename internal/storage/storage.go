// Package storage persists the generated dataset as a JSON artifact the
// frontend serves statically.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gadgetinfo/internal/gadget"
	"gadgetinfo/internal/logger"
)

const datasetFileName = "gadgets.json"

// SaveDataset writes the dataset to <dir>/gadgets.json, creating the directory
// if needed. The file is replaced wholesale on every run.
func SaveDataset(dataset *gadget.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}

	path := filepath.Join(dir, datasetFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}

	logger.Info("dataset saved", "path", path, "gadgets", len(dataset.Gadgets))
	return nil
}
