// Minimal Lambda bootstrap without the CLI layer. Configuration comes from the
// environment only.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/handler"
	"github.com/aviation-iia/run-endpoint/internal/runtime"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})).With("mode", "lambda")
	logger.Info("spawned...")

	if err := config.SetDefaults(); err != nil {
		logger.Error("failed to apply configuration defaults", slog.Any("error", err))
		os.Exit(1)
	}

	h, err := handler.NewDispatchHandler(
		handler.WithContext(ctx),
		handler.WithLogger(logger.With("component", "dispatch-handler")),
		handler.WithRepository(os.Getenv("GH_OWNER"), os.Getenv("GH_REPO")),
		handler.WithWorkflow(os.Getenv("GH_WORKFLOW_FILE"), os.Getenv("GH_WORKFLOW_REF")),
		handler.WithAuthMode("token"),
		handler.WithToken(os.Getenv("GH_TOKEN")))
	if err != nil {
		logger.Error("failed to create dispatch handler", slog.Any("error", err))
		os.Exit(1)
	}

	rt := runtime.NewRuntime(h,
		runtime.WithLogger(logger.With("component", "runtime")))

	lambda.StartWithOptions(rt.Lambda, lambda.WithContext(ctx))
}
