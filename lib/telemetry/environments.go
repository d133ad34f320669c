package telemetry

import (
	"context"
	"docketsearch/lib/configutil"
	"log/slog"
	"os"
)

// SetupFromEnv searches up the filesystem from the cwd to find a file
// called telemetry.json5, once found it will then use it
// as a config to setup telemetry.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	c, err := configutil.ReadRecursively[config]("telemetry.json5")
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, c)
}

// SetupOptional is SetupFromEnv for binaries that should keep running
// without an exporter, a missing telemetry.json5 only logs a warning.
func SetupOptional(ctx context.Context, serviceName string) {
	err := SetupFromEnv(ctx, serviceName)
	if os.IsNotExist(err) {
		slog.Warn("telemetry.json5 not found, telemetry export disabled")
		return
	}
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}
}
