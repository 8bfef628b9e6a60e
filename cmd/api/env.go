package main

import (
	"context"

	"steam-cycle-viewer/internal/config"
	"steam-cycle-viewer/internal/observability"
)

// loadConfig reads .env when present, then the process environment.
// Existing process environment variables are not overridden.
func loadConfig() (config.Config, error) {
	return config.Load()
}

// initLogging sets up the stdout logger and, when enabled, the OTLP log
// export. The returned shutdown is a no-op when OTLP logs are off.
func initLogging(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if err := observability.InitLogger(cfg.Debug); err != nil {
		return nil, err
	}

	if !cfg.OTelLogs {
		return func(context.Context) error { return nil }, nil
	}

	return observability.InitLogging(ctx)
}
