package main

import (
	"context"

	"steam-cycle-viewer/internal/backend"
	"steam-cycle-viewer/internal/config"
	"steam-cycle-viewer/internal/controller"
	"steam-cycle-viewer/internal/cycleweb"
	"steam-cycle-viewer/internal/observability"
	"steam-cycle-viewer/internal/view"
)

// initMetrics initialises all metric providers and application-specific
// metric instruments. Add new domain InitMetrics calls here as the project grows.
func initMetrics(ctx context.Context) (func(context.Context) error, error) {
	shutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, err
	}

	if err := controller.InitMetrics(); err != nil {
		return nil, err
	}

	if err := cycleweb.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}

// newCycleHandler wires the backend client, controller and panel together.
func newCycleHandler(cfg config.Config) *cycleweb.Handler {
	client := backend.New(cfg.BackendURL, backend.WithTimeout(cfg.BackendTimeout))
	panel := view.NewPanel()

	return cycleweb.NewHandler(controller.New(client, panel), panel)
}
