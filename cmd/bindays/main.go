package main

import (
	"bindays-backend/cmd/bindays/commands"
	"bindays-backend/lib/serviceutil"
	"bindays-backend/lib/telemetry"
	"context"
	"errors"
	"log/slog"
	"os"
)

func main() {
	ctx := serviceutil.SignalContext()

	otel, err := telemetry.SetupFromEnv(ctx, "bindays")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to setup telemetry", "err", err)
	}
	defer otel.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
