package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate paths
	if strings.TrimSpace(c.Input.Path) == "" {
		errors = append(errors, ValidationError{
			Field:   "input.path",
			Message: "input path is required",
		})
	}

	if strings.TrimSpace(c.Output.Path) == "" {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "output path is required",
		})
	} else if filepath.Clean(c.Output.Path) == filepath.Clean(c.Input.Path) {
		errors = append(errors, ValidationError{
			Field:   "output.path",
			Message: "output path must differ from input path",
		})
	}

	if strings.TrimSpace(c.Input.TitleColumn) == "" {
		errors = append(errors, ValidationError{
			Field:   "input.title_column",
			Message: "title column is required",
		})
	}

	// Validate filter config
	if c.Filter.MinTags < 1 {
		errors = append(errors, ValidationError{
			Field:   "filter.min_tags",
			Message: "min_tags must be positive",
		})
	}

	for _, field := range c.Filter.RequiredFields {
		if strings.TrimSpace(field) == "" {
			errors = append(errors, ValidationError{
				Field:   "filter.required_fields",
				Message: "required field names must not be empty",
			})
			break
		}
	}

	// Validate sampling config
	if c.Sampling.Size < 1 {
		errors = append(errors, ValidationError{
			Field:   "sampling.size",
			Message: "size must be positive",
		})
	}

	// Validate logging config
	if !contains(validLevels, c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level: %s", c.Logging.Level),
		})
	}

	if !contains(validFormats, c.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format: %s", c.Logging.Format),
		})
	}

	return errors
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
