package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/flexmark"
	"github.com/aretw0/flexmark/internal/config"
	"github.com/aretw0/flexmark/pkg/marker"
)

// EngineOptions collects what every command needs to build an engine.
type EngineOptions struct {
	// Config is the base configuration, usually loaded from --config.
	Config *config.File
	// Override is layered on top of Config, e.g. a document's front matter.
	Override *config.File
	Logger   *slog.Logger
	Hooks    marker.Hooks
}

// NewEngine merges the configuration layers and builds an engine.
func NewEngine(opts EngineOptions) (*flexmark.Engine, error) {
	file := opts.Config.Merge(opts.Override)

	markerOpts, err := file.ToOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	engineOpts := []flexmark.Option{
		flexmark.WithOptions(markerOpts),
		flexmark.WithHooks(opts.Hooks),
	}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, flexmark.WithLogger(opts.Logger))
	}

	engine, err := flexmark.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
