package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	cfgPkg "github.com/xhad/recipesample/pkg/config"
	"github.com/xhad/recipesample/pkg/logging"
	"github.com/xhad/recipesample/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("stages"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run() error {
	config, err := cfgPkg.LoadConfig("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if errs := config.Validate(); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	logger, err := logging.New(config)
	if err != nil {
		return err
	}
	defer logger.Sync()

	color.Blue("Building recipe sample from %s\n", config.Input.Path)

	bar := getProgressBar(len(pipeline.Stages), "🍲 Building sample...")
	p := pipeline.NewWithConfig(pipeline.PipelineConfig{
		Config: config,
		Logger: logger,
		OnStage: func(stage pipeline.Stage) {
			bar.Describe(color.BlueString("🍲 Building sample... (%s)", stage))
			bar.Add(1)
		},
	})

	result, err := p.Run()
	if err != nil {
		bar.Exit()
		return err
	}
	bar.Finish()

	color.Green("\n✓ Wrote %s with %d items\n", filepath.Base(result.OutputPath), result.Written)
	return nil
}
