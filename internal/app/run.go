package app

import (
	"context"
	"fmt"

	"github.com/vk/dynrefl/internal/ctxlog"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.RegisterModules(); err != nil {
		return err
	}
	if err := a.LoadManifests(); err != nil {
		return err
	}
	if err := a.Report(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
