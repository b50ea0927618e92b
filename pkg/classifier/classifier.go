// Package classifier detects binary tag indicator columns in a loaded table.
package classifier

import (
	"github.com/xhad/recipesample/internal/models"
)

type Classifier struct{}

func New() Classifier {
	return Classifier{}
}

// Classify returns, in header order, every column whose non-null values are
// all numerically 0 or 1. A column with no non-null values qualifies.
// Run it on the full table, before any row is removed.
func (Classifier) Classify(t *models.Table) models.TagColumnSet {
	var names []string
	for _, col := range t.Columns {
		if IsBinary(t.Column(col)) {
			names = append(names, col)
		}
	}
	return models.NewTagColumnSet(names)
}

// IsBinary reports whether the non-null values form a subset of {0, 1}.
func IsBinary(values []models.Value) bool {
	for _, v := range values {
		if v.Null {
			continue
		}
		if !v.IsNumber || (v.Number != 0 && v.Number != 1) {
			return false
		}
	}
	return true
}
