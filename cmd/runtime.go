package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/handler"
	"github.com/aviation-iia/run-endpoint/internal/runtime"
)

// buildRuntime wires a dispatch handler and its runtime from the bound
// configuration. The GitHub token is read straight from the environment so it
// never transits the flag or config-file surface.
func buildRuntime(cmd *cobra.Command) (*runtime.Runtime, error) {
	h, err := handler.NewDispatchHandler(
		handler.WithContext(cmd.Context()),
		handler.WithLogger(logger.With("component", "dispatch-handler")),
		handler.WithRepository(config.GitHub.Owner, config.GitHub.Repository),
		handler.WithWorkflow(config.GitHub.WorkflowFile, config.GitHub.WorkflowRef),
		handler.WithAuthMode(config.GitHub.AuthMode),
		handler.WithSSMKey(config.GitHub.SSMKey),
		handler.WithToken(os.Getenv("GH_TOKEN")))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dispatch handler")
	}

	return runtime.NewRuntime(h,
		runtime.WithLogger(logger.With("component", "runtime"))), nil
}
