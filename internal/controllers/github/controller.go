// Package github provides a Controller for upstream GitHub API operations and credentials management.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v84/github"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/controllers/aws"
	"github.com/aviation-iia/run-endpoint/internal/dispatch"
	"github.com/aviation-iia/run-endpoint/internal/helpers"
)

// acceptGitHubJSON is the media type requested on the workflow dispatch call.
const acceptGitHubJSON = "application/vnd.github+json"

// GHOption is a functional option used to configure or modify the properties of a Controller instance.
type GHOption func(*Controller)

// NewController initializes a new Controller with the provided options, setting defaults where necessary.
func NewController(opts ...GHOption) (*Controller, error) {
	_inst := new(Controller)
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("authMode", _inst.authMode)
	return _inst, nil
}

// Controller encapsulates upstream API operations and credentials management for the supported authentication modes.
type Controller struct {
	Credentials

	authMode      string
	ssmKey        string
	ctx           context.Context
	logger        *slog.Logger
	awsController *aws.Controller

	client *github.Client
}

// Credentials is a helper struct to hold the upstream API credentials.
// SSM-provided credentials carry either a token or GitHub App keys.
type Credentials struct {
	AppID          int64  `json:"app_id,omitempty"`
	InstallationID int64  `json:"installation_id,omitempty"`
	PrivateKey     string `json:"private_key,omitempty"`
	Token          string `json:"token,omitempty"`
}

// RetrieveCredentials fetches the upstream API credentials from the environment or SSM.
func (g *Controller) RetrieveCredentials() error {
	switch strings.TrimSpace(strings.ToLower(g.authMode)) {
	case "token":
		if g.Token == "" {
			return errors.New("missing [GH_TOKEN]")
		}
		return nil
	case "ssm":
		if g.Token != "" || (g.AppID != 0 && g.InstallationID != 0 && g.PrivateKey != "") {
			g.logger.Debug("using cached credentials...")
			return nil
		}
		g.logger.Debug("retrieving credentials from SSM...")
		if g.awsController == nil {
			return errors.New("ssm auth mode requires an AWS controller")
		}
		secret, err := g.awsController.GetSecret(g.ssmKey, true)
		if err != nil {
			return errors.Wrap(err, "failed to fetch credentials from SSM")
		}
		if err = json.Unmarshal([]byte(*secret), &g.Credentials); err != nil {
			return errors.Wrap(err, "failed to unmarshal credentials")
		}
		if g.Token == "" && (g.AppID == 0 || g.InstallationID == 0 || g.PrivateKey == "") {
			return errors.New("SSM credentials carry neither a token nor complete App keys")
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", g.authMode)
	}
	return nil
}

// getClient spawns (or reuses) the upstream API client matching the retrieved credentials.
func (g *Controller) getClient() (*github.Client, error) {
	if g.client != nil {
		return g.client, nil
	}

	roundTripper := &loggingRoundTripper{logger: g.logger}
	var client *github.Client
	switch {
	case g.Token != "":
		g.logger.Debug("spawning client using PAT...")
		rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(roundTripper)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create rate limiter client")
		}
		src := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: g.Token},
		)
		httpClient := oauth2.NewClient(context.WithValue(g.ctx, oauth2.HTTPClient, rateLimiter), src)
		client = github.NewClient(httpClient)
	case g.AppID != 0 && g.InstallationID != 0 && g.PrivateKey != "":
		g.logger.Debug("spawning client using App installation credentials...")
		transport, err := ghinstallation.New(roundTripper, g.AppID, g.InstallationID, []byte(g.PrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create installation transport")
		}
		rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(transport)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create rate limiter client")
		}
		client = github.NewClient(rateLimiter)
	default:
		return nil, errors.New("no valid credentials found")
	}

	client.UserAgent = config.GitHub.UserAgent
	if base := config.GitHub.APIBaseURL; base != "" {
		u, err := url.Parse(base)
		if err != nil {
			return nil, errors.Wrap(err, "invalid API base URL")
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	g.client = client
	return g.client, nil
}

// DispatchWorkflow issues the workflow dispatch call for the given context.
// A non-2xx upstream response is returned as a dispatch.UpstreamError carrying
// the upstream status and best-effort body text.
func (g *Controller) DispatchWorkflow(dCtx *dispatch.Context) error {
	client, err := g.getClient()
	if err != nil {
		return &dispatch.InternalError{Cause: err}
	}

	u := fmt.Sprintf("repos/%s/%s/actions/workflows/%s/dispatches",
		helpers.String(dCtx.Owner), helpers.String(dCtx.Repository), helpers.String(dCtx.WorkflowFile))
	req, err := client.NewRequest(http.MethodPost, u, &github.CreateWorkflowDispatchEventRequest{
		Ref: helpers.String(dCtx.WorkflowRef),
		Inputs: map[string]any{
			"iata": helpers.String(dCtx.IATA),
		},
	})
	if err != nil {
		return &dispatch.InternalError{Cause: errors.Wrap(err, "failed to build dispatch request")}
	}
	req = req.WithContext(g.ctx)
	req.Header.Set("Accept", acceptGitHubJSON)

	// The request is executed against the raw http.Client so a rejection body
	// can be passed through verbatim.
	resp, err := client.Client().Do(req)
	if err != nil {
		g.logger.Warn("dispatch request failed in transit", slog.Any("error", err))
		return &dispatch.UpstreamError{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(resp.Body) // best-effort; an unreadable body yields an empty detail
		return &dispatch.UpstreamError{Status: resp.StatusCode, Detail: string(detail)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	g.logger.Debug("workflow dispatch accepted", slog.Any("status", resp.StatusCode), slog.Any("context", dCtx))
	return nil
}

// RateLimits fetches the current upstream API rate limits.
func (g *Controller) RateLimits() (*github.RateLimits, error) {
	client, err := g.getClient()
	if err != nil {
		return nil, err
	}
	limits, _, err := client.RateLimit.Get(g.ctx)
	return limits, errors.Wrap(err, "failed to fetch rate limits")
}

type loggingRoundTripper struct {
	logger *slog.Logger
}

// RoundTrip logs the request and response.
func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var buf bytes.Buffer
	if req.Body != nil {
		_, _ = io.ReadAll(io.TeeReader(req.Body, &buf))
		req.Body = io.NopCloser(&buf)
	}
	var container map[string]any
	_ = json.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(&container)
	l.logger.Log(req.Context(), slog.Level(-8), "sending request", slog.String("method", req.Method), slog.String("url", req.URL.String()), slog.Any("body", container))
	resp, err := http.DefaultTransport.RoundTrip(req)
	if err != nil {
		l.logger.Log(req.Context(), slog.Level(-8), "request failed", slog.Any("error", err))
		return resp, err
	}
	l.logger.Log(req.Context(), slog.Level(-8), "received response", slog.Any("status", resp.Status))
	return resp, err
}
