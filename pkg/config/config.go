package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xhad/recipesample/pkg/processor"
)

const (
	DefaultInputPath  = "epi_r.csv"
	DefaultOutputPath = "recipes_small.json"
)

type Config struct {
	Input struct {
		Path        string `yaml:"path"`
		TitleColumn string `yaml:"title_column"`
	} `yaml:"input"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Filter struct {
		MinTags        int      `yaml:"min_tags"`
		RequiredFields []string `yaml:"required_fields"`
	} `yaml:"filter"`

	Sampling struct {
		Size         int   `yaml:"size"`
		Seed         int64 `yaml:"seed"`
		AllowPartial bool  `yaml:"allow_partial"`
	} `yaml:"sampling"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"recipesample.yaml",
			"recipesample.yml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

// Default returns the built-in constants used when no config file is present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(config *Config) {
	if config.Input.Path == "" {
		config.Input.Path = DefaultInputPath
	}
	if config.Input.TitleColumn == "" {
		config.Input.TitleColumn = processor.DefaultTitleColumn
	}

	if config.Output.Path == "" {
		config.Output.Path = DefaultOutputPath
	}

	if config.Filter.MinTags == 0 {
		config.Filter.MinTags = processor.DefaultMinTags
	}
	if len(config.Filter.RequiredFields) == 0 {
		config.Filter.RequiredFields = append([]string(nil), processor.DefaultRequiredFields...)
	}

	if config.Sampling.Size == 0 {
		config.Sampling.Size = processor.DefaultSampleSize
	}
	if config.Sampling.Seed == 0 {
		config.Sampling.Seed = processor.DefaultSeed
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}
}

// ProcessorConfig maps the filter and sampling sections onto the transformer.
func (c *Config) ProcessorConfig() processor.ProcessorConfig {
	return processor.ProcessorConfig{
		TitleColumn:    c.Input.TitleColumn,
		MinTags:        c.Filter.MinTags,
		RequiredFields: c.Filter.RequiredFields,
		SampleSize:     c.Sampling.Size,
		Seed:           c.Sampling.Seed,
		AllowPartial:   c.Sampling.AllowPartial,
	}
}
