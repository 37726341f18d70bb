// Package handler implements the dispatch pipeline translating one inbound HTTP
// request into one upstream workflow dispatch call and a normalized JSON response.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v84/github"
	"github.com/pkg/errors"

	"github.com/aviation-iia/run-endpoint/internal/config"
	awsctl "github.com/aviation-iia/run-endpoint/internal/controllers/aws"
	ghctl "github.com/aviation-iia/run-endpoint/internal/controllers/github"
	"github.com/aviation-iia/run-endpoint/internal/dispatch"
	"github.com/aviation-iia/run-endpoint/internal/helpers"
	"github.com/aviation-iia/run-endpoint/internal/models"
	"github.com/aviation-iia/run-endpoint/internal/validation"
)

// Option is a functional option for the Handler.
type Option func(*Handler)

// Handler holds the wiring for the dispatch pipeline.
type Handler struct {
	ctx    context.Context
	logger *slog.Logger

	githubController *ghctl.Controller
	awsController    *awsctl.Controller

	owner        string
	repository   string
	workflowFile string
	workflowRef  string

	authMode string
	ssmKey   string
	token    string
}

// NewDispatchHandler creates a Handler, spawning the AWS controller only when a
// configured capability needs it and the GitHub controller unless one was injected.
func NewDispatchHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{
		logger: helpers.NewNoopLogger(),
	}
	for _, opt := range options {
		opt(_inst)
	}

	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.authMode == "" {
		_inst.authMode = "token"
	}

	needsAWS := strings.EqualFold(_inst.authMode, "ssm") || config.Global.S3.Receipt.Enabled
	if needsAWS && _inst.awsController == nil {
		awsCtl, err := awsctl.NewController(
			awsctl.WithLogger(_inst.logger.With("component", "aws-controller")),
			awsctl.WithContext(_inst.ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		_inst.awsController = awsCtl
	}

	if _inst.githubController == nil {
		ghCtl, err := ghctl.NewController(
			ghctl.WithLogger(_inst.logger.With("component", "github-controller")),
			ghctl.WithAuthMode(_inst.authMode),
			ghctl.WithToken(_inst.token),
			ghctl.WithSSMKey(_inst.ssmKey),
			ghctl.WithAWSController(_inst.awsController),
			ghctl.WithContext(_inst.ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create the GitHub controller instance")
		}
		_inst.githubController = ghCtl
	}

	return _inst, nil
}

// Process runs the dispatch pipeline for one inbound request. The returned
// Result always carries a complete Response; the error reports the internal
// cause for logging and feedback extensions.
func (h *Handler) Process(req models.Request) (*dispatch.Result, error) {
	logger := h.logger
	logger.Info("processing request...")

	result := &dispatch.Result{}

	switch req.Method {
	case http.MethodOptions:
		result.Response = h.preflightResponse()
		return result, nil
	case http.MethodPost:
	default:
		logger.Debug("rejecting request...", "reason", "method not allowed", slog.String("method", req.Method))
		result.Response = h.clientError(http.StatusMethodNotAllowed, "POST only")
		return result, nil
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
		logger.Debug("rejecting unparsable body...", slog.Any("error", err))
		result.Response = h.clientError(http.StatusBadRequest, "Invalid JSON")
		return result, nil
	}

	// An absent or non-string iata field defaults to the empty string and
	// fails format validation below.
	raw, _ := payload["iata"].(string)
	iata := validation.NormaliseIATA(raw)
	if !validation.ValidIATA(iata) {
		logger.Debug("rejecting malformed airport code...")
		result.Response = h.clientError(http.StatusBadRequest, "IATA must be 3 letters")
		return result, nil
	}
	logger = logger.With(slog.String("iata", iata))

	dCtx := &dispatch.Context{
		Logger:       logger.With(slog.String("routine", "dispatch.Context")),
		Owner:        helpers.Ptr(h.owner),
		Repository:   helpers.Ptr(h.repository),
		WorkflowFile: helpers.Ptr(h.workflowFile),
		WorkflowRef:  helpers.Ptr(h.workflowRef),
		IATA:         helpers.Ptr(iata),
	}
	result.Context = dCtx

	// Configuration is checked only after input validation so client input
	// errors and server configuration errors stay distinct.
	if h.owner == "" || h.repository == "" || h.workflowFile == "" || h.workflowRef == "" {
		logger.Error("missing dispatch configuration")
		result.Response = h.configurationError()
		return result, errors.New("missing dispatch configuration")
	}
	if err := h.githubController.RetrieveCredentials(); err != nil {
		logger.Error("failed to retrieve credentials", slog.Any("error", err))
		result.Response = h.configurationError()
		return result, err
	}

	logger.Debug("dispatching workflow...", slog.Any("context", dCtx))
	if err := h.githubController.DispatchWorkflow(dCtx); err != nil {
		var upstreamErr *dispatch.UpstreamError
		if errors.As(err, &upstreamErr) {
			logger.Warn("upstream rejected dispatch",
				slog.Int("status", upstreamErr.Status),
				slog.String("detail", helpers.Truncate(upstreamErr.Detail, 512)))
			result.Response = h.upstreamFailure(upstreamErr)
			return result, err
		}
		logger.Error("dispatch failed", slog.Any("error", err))
		result.Response = h.configurationError()
		return result, err
	}

	result.Dispatched = true
	result.DispatchedAt = time.Now().UTC()
	result.Response = h.success(iata)
	logger.Info("workflow dispatch complete")
	return result, nil
}

// UploadDispatchReceipt uploads a JSON receipt of a successful dispatch to S3.
// A no-op unless receipt upload is enabled and the result carries a dispatch.
func (h *Handler) UploadDispatchReceipt(result *dispatch.Result) error {
	if result == nil || !result.Dispatched || !config.Global.S3.Receipt.Enabled {
		return nil
	}
	if h.awsController == nil {
		return errors.New("receipt upload enabled without an AWS controller")
	}
	receipt := struct {
		IATA         string    `json:"iata"`
		Owner        string    `json:"owner"`
		Repository   string    `json:"repository"`
		WorkflowFile string    `json:"workflow_file"`
		WorkflowRef  string    `json:"workflow_ref"`
		DispatchedAt time.Time `json:"dispatched_at"`
	}{
		IATA:         helpers.String(result.Context.IATA),
		Owner:        h.owner,
		Repository:   h.repository,
		WorkflowFile: h.workflowFile,
		WorkflowRef:  h.workflowRef,
		DispatchedAt: result.DispatchedAt,
	}
	body, err := json.Marshal(receipt)
	if err != nil {
		return errors.Wrap(err, "failed to marshal dispatch receipt")
	}
	return h.awsController.PutS3Object("dispatch."+receipt.IATA, config.Global.S3.Receipt.BucketName, body)
}

// RateLimits fetches the upstream API rate limits when rate-limit reporting is enabled.
func (h *Handler) RateLimits() (*github.RateLimits, error) {
	if !config.Global.FetchRateLimits {
		return nil, nil
	}
	return h.githubController.RateLimits()
}
