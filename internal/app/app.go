package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/dynrefl/internal/config"
	"github.com/vk/dynrefl/internal/ctxlog"
	"github.com/vk/dynrefl/internal/manifest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	ctx     context.Context
	config  *Config
	loader  config.Loader
	modules []Module
	model   *config.Model
}

// NewApp is the constructor for the main application. Reports go to outW,
// logs to logW. With no modules given the compiled-in core modules are used.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}
	return &App{
		outW:    outW,
		logger:  logger,
		ctx:     ctx,
		config:  cfg,
		loader:  loader,
		modules: modules,
	}
}

// Model returns the loaded manifest model, nil before LoadManifests. This
// is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// RegisterModules registers every module with the type registry.
func (a *App) RegisterModules() error {
	for _, mod := range a.modules {
		if err := mod.Register(a.ctx); err != nil {
			return fmt.Errorf("failed to register module %T: %w", mod, err)
		}
	}
	a.logger.Debug("All Go modules registered.", "count", len(a.modules))
	return nil
}

// LoadManifests loads the configured manifests, registers the enums they
// declare and validates their class declarations against the registry.
func (a *App) LoadManifests() error {
	if len(a.config.ManifestPaths) == 0 {
		a.logger.Debug("No manifest paths configured.")
		a.model = config.NewModel()
		return nil
	}

	model, err := a.loader.Load(a.ctx, a.config.ManifestPaths...)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}
	a.model = model
	a.logger.Debug("Manifests loaded and translated into unified model.")

	created, err := manifest.Apply(a.ctx, model)
	if err != nil {
		return fmt.Errorf("failed to apply manifests: %w", err)
	}
	a.logger.Debug("Manifest enums registered.", "count", len(created))

	if err := manifest.Validate(a.ctx, model, manifest.Options{Strict: a.config.Strict}); err != nil {
		return err
	}
	a.logger.Info("Manifest validation passed.", "enums", len(model.Enums), "classes", len(model.Classes))
	return nil
}
