package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xhad/recipesample/internal/models"
)

type ExporterConfig struct {
	Indent string
}

type Exporter struct {
	config ExporterConfig
}

func NewWithConfig(config ExporterConfig) *Exporter {
	if config.Indent == "" {
		config.Indent = "  "
	}

	return &Exporter{
		config: config,
	}
}

func New() *Exporter {
	return NewWithConfig(ExporterConfig{})
}

// Records projects the sample into export records numbered from 1 in sample order.
func Records(sample []models.Recipe) []models.ExportRecord {
	records := make([]models.ExportRecord, 0, len(sample))
	for i, r := range sample {
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		records = append(records, models.ExportRecord{
			ID:       i + 1,
			Title:    r.Title,
			Tags:     tags,
			Calories: r.Calories,
			Protein:  r.Protein,
			Sodium:   r.Sodium,
		})
	}
	return records
}

func (e *Exporter) Encode(w io.Writer, records []models.ExportRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", e.config.Indent)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// WriteFile replaces path with the encoded sample and returns the number of
// records written. The document is written to a temporary file next to path
// and renamed into place, so a failed export leaves any previous file intact.
func (e *Exporter) WriteFile(path string, sample []models.Recipe) (int, error) {
	records := Records(sample)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := e.Encode(tmp, records); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return len(records), nil
}
