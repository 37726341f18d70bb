package handler

import (
	"context"
	"log/slog"

	awsctl "github.com/aviation-iia/run-endpoint/internal/controllers/aws"
	ghctl "github.com/aviation-iia/run-endpoint/internal/controllers/github"
)

// WithLogger sets the logger for the Handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithContext sets the context for the Handler.
func WithContext(ctx context.Context) Option {
	return func(h *Handler) {
		h.ctx = ctx
	}
}

// WithAuthMode sets the credentials provider mode for the Handler.
func WithAuthMode(authMode string) Option {
	return func(h *Handler) {
		h.authMode = authMode
	}
}

// WithSSMKey sets the SSM parameter key used to fetch credentials.
func WithSSMKey(key string) Option {
	return func(h *Handler) {
		h.ssmKey = key
	}
}

// WithToken sets the upstream API token for the Handler.
func WithToken(token string) Option {
	return func(h *Handler) {
		h.token = token
	}
}

// WithRepository sets the owner and repository whose workflow is dispatched.
func WithRepository(owner, repository string) Option {
	return func(h *Handler) {
		h.owner = owner
		h.repository = repository
	}
}

// WithWorkflow sets the workflow file identifier and the ref the run is created on.
func WithWorkflow(file, ref string) Option {
	return func(h *Handler) {
		h.workflowFile = file
		h.workflowRef = ref
	}
}

// WithGitHubController injects a pre-built GitHub controller.
func WithGitHubController(ctl *ghctl.Controller) Option {
	return func(h *Handler) {
		h.githubController = ctl
	}
}

// WithAWSController injects a pre-built AWS controller.
func WithAWSController(ctl *awsctl.Controller) Option {
	return func(h *Handler) {
		h.awsController = ctl
	}
}
