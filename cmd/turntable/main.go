// Package main is the entry point for the turntable renderer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ebzr/turntable/internal/config"
	"github.com/ebzr/turntable/internal/driver"
	"github.com/ebzr/turntable/internal/export"
	"github.com/ebzr/turntable/internal/logger"
	"github.com/ebzr/turntable/internal/scene"
)

// Frame timing of the authored sequences.
const (
	animationSeconds = 4.5
	framesPerSecond  = 30
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.LogFile,
		Console: true,
	})
	defer logger.Sync()

	logger.Info("=== Turntable ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	variant, err := scene.ByName(cfg.Scene.Name, cfg.Scene.AssetDir)
	if err != nil {
		logger.Error("unknown scene", zap.Error(err))
		os.Exit(1)
	}

	d := &driver.Driver{
		Variant:  variant,
		Schedule: driver.NewSchedule(animationSeconds, framesPerSecond),
		Sequence: &export.Sequence{
			Dir:    cfg.Output.Dir,
			Prefix: variant.Prefix,
			Format: cfg.Output.Format,
			Flip:   true,
		},
		ShadowPass:    cfg.Render.ShadowPass,
		ShadowMapSize: cfg.Render.ShadowMapSize,
		Log:           logger.Log,
	}

	if err := d.Run(); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("render complete")
}
