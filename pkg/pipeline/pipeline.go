// Package pipeline wires the loader, tag classifier, processor and exporter
// into the single pass that builds the recipe sample.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xhad/recipesample/internal/types"
	"github.com/xhad/recipesample/pkg/classifier"
	"github.com/xhad/recipesample/pkg/config"
	"github.com/xhad/recipesample/pkg/exporter"
	"github.com/xhad/recipesample/pkg/loader"
	"github.com/xhad/recipesample/pkg/processor"
)

type Stage string

const (
	StageLoad     Stage = "load"
	StageClassify Stage = "classify"
	StageProcess  Stage = "process"
	StageExport   Stage = "export"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageLoad, StageClassify, StageProcess, StageExport}

type PipelineConfig struct {
	Config  *config.Config
	Logger  *zap.Logger
	OnStage func(stage Stage) // called after each stage completes
}

type Pipeline struct {
	config     *config.Config
	logger     *zap.Logger
	onStage    func(stage Stage)
	loader     types.Loader
	classifier types.Classifier
	processor  types.Processor
	exporter   types.Exporter
}

type Result struct {
	InputPath  string
	OutputPath string
	TagColumns int
	Stats      processor.Stats
	Written    int
}

func NewWithConfig(pc PipelineConfig) *Pipeline {
	if pc.Config == nil {
		pc.Config = config.Default()
	}
	if pc.Logger == nil {
		pc.Logger = zap.NewNop()
	}
	if pc.OnStage == nil {
		pc.OnStage = func(Stage) {}
	}

	return &Pipeline{
		config:     pc.Config,
		logger:     pc.Logger,
		onStage:    pc.OnStage,
		loader:     loader.New(),
		classifier: classifier.New(),
		processor:  processor.NewWithConfig(pc.Config.ProcessorConfig()),
		exporter:   exporter.New(),
	}
}

// Run executes every stage in order. Nothing is written unless the sample
// was built successfully.
func (p *Pipeline) Run() (*Result, error) {
	cfg := p.config
	result := &Result{
		InputPath:  cfg.Input.Path,
		OutputPath: cfg.Output.Path,
	}

	table, err := p.loader.Load(cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Input.Path, err)
	}
	p.logger.Info("Loaded table",
		zap.String("path", cfg.Input.Path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)))
	p.onStage(StageLoad)

	tags := p.classifier.Classify(table)
	result.TagColumns = tags.Len()
	p.logger.Info("Classified tag columns", zap.Int("tag_columns", tags.Len()))
	p.logger.Debug("Tag columns", zap.Strings("names", tags.Names))
	p.onStage(StageClassify)

	sample, err := p.processor.Process(table, tags)
	result.Stats = p.processor.Stats()
	p.logger.Info("Processed rows",
		zap.Int("loaded", result.Stats.Loaded),
		zap.Int("deduplicated", result.Stats.Deduplicated),
		zap.Int("tagged", result.Stats.Tagged),
		zap.Int("complete", result.Stats.Complete),
		zap.Int("sampled", result.Stats.Sampled))
	if err != nil {
		return nil, fmt.Errorf("failed to build sample: %w", err)
	}
	p.onStage(StageProcess)

	written, err := p.exporter.WriteFile(cfg.Output.Path, sample)
	if err != nil {
		return nil, fmt.Errorf("failed to export sample: %w", err)
	}
	result.Written = written
	p.logger.Info("Exported sample",
		zap.String("path", cfg.Output.Path),
		zap.Int("records", written))
	p.onStage(StageExport)

	return result, nil
}
