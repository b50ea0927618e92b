package types

import (
	"io"

	"github.com/xhad/recipesample/internal/models"
	"github.com/xhad/recipesample/pkg/processor"
)

// Core interfaces
type Loader interface {
	Load(path string) (*models.Table, error)
	Parse(r io.Reader) (*models.Table, error)
}

type Classifier interface {
	Classify(t *models.Table) models.TagColumnSet
}

type Processor interface {
	Process(t *models.Table, tags models.TagColumnSet) ([]models.Recipe, error)
	Stats() processor.Stats
}

type Exporter interface {
	WriteFile(path string, sample []models.Recipe) (int, error)
}
