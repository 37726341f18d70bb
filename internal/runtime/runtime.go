// Package runtime adapts the dispatch handler to the HTTP service and AWS Lambda runtimes.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/dispatch"
	"github.com/aviation-iia/run-endpoint/internal/handler"
	"github.com/aviation-iia/run-endpoint/internal/helpers"
	"github.com/aviation-iia/run-endpoint/internal/models"
)

// Option is a functional option for the Runtime.
type Option func(*Runtime)

// WithLogger sets the logger for the Runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime wraps a Handler with the transport-facing adapters.
type Runtime struct {
	*handler.Handler
	logger *slog.Logger
}

// NewRuntime creates a new runtime instance.
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Lambda is the Lambda handler for the runtime.
func (r *Runtime) Lambda(_ context.Context, req events.APIGatewayV2HTTPRequest) (response any, err error) {
	r.logger.Info("received API Gateway request")

	// Lower-case incoming headers for compatibility purposes
	lch := make(map[string]string)
	for k, v := range req.Headers {
		lch[strings.ToLower(k)] = v
	}

	result, err := r.Handler.Process(models.Request{
		Method:  req.RequestContext.HTTP.Method,
		Body:    req.Body,
		Headers: lch,
	})

	// Extensions
	r.extensions(result, err)

	switch payloadType := config.Lambda.PayloadType; payloadType {
	case "api-gateway-v1":
		return events.APIGatewayProxyResponse{
			Body:       result.Response.Body,
			Headers:    result.Response.Headers,
			StatusCode: result.Response.StatusCode,
		}, nil
	case "api-gateway-v2":
		return events.APIGatewayV2HTTPResponse{
			Body:       result.Response.Body,
			Headers:    result.Response.Headers,
			StatusCode: result.Response.StatusCode,
		}, nil
	case "lambda-url":
		return events.LambdaFunctionURLResponse{
			Body:       result.Response.Body,
			Headers:    result.Response.Headers,
			StatusCode: result.Response.StatusCode,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", payloadType)
	}
}

// ServeHTTP is the HTTP handler for the runtime.
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))

	r.logger.Debug("normalising headers...")
	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, resp)
		return
	}

	r.logger.Debug("processing request...")
	result, err := r.Handler.Process(models.Request{
		Method:  req.Method,
		Body:    string(body),
		Headers: headers,
	})

	// Extensions
	r.extensions(result, err)
	helpers.RespondHTTP(result.Response, resp)
}

// extensions executes the post-processing runtime extensions.
func (r *Runtime) extensions(result *dispatch.Result, err error) {
	if err != nil {
		r.logger.Warn("request completed with error", slog.Any("error", err), slog.Any("result", result))
	}

	if uploadErr := r.Handler.UploadDispatchReceipt(result); uploadErr != nil {
		r.logger.Error("failed to upload dispatch receipt", slog.Any("error", uploadErr))
	}

	if config.Global.FetchRateLimits {
		helpers.OnceAMinute.Do(func() {
			if rateLimits, limitsErr := r.Handler.RateLimits(); limitsErr != nil {
				r.logger.Warn("failed to fetch rate limits", slog.Any("error", limitsErr))
			} else {
				r.logger.Info("rate limits fetched", slog.Any("rateLimits", rateLimits))
			}
		})
	}
}
