// Package dispatch provides the core data structures for handling workflow dispatch requests and their outcomes.
package dispatch

import (
	"log/slog"
	"time"

	"github.com/aviation-iia/run-endpoint/internal/helpers"
	"github.com/aviation-iia/run-endpoint/internal/models"
)

// Context represents the runtime context for a single workflow dispatch request.
type Context struct {
	Logger       *slog.Logger
	Owner        *string
	Repository   *string
	WorkflowFile *string
	WorkflowRef  *string
	IATA         *string
}

// LogValue generates a structured log value containing the dispatch coordinates.
// Optional attributes are included only when set.
func (c *Context) LogValue() slog.Value {
	logAttr := make([]slog.Attr, 0, 5)
	if c.Owner != nil {
		logAttr = append(logAttr, slog.String("owner", helpers.String(c.Owner)))
	}
	if c.Repository != nil {
		logAttr = append(logAttr, slog.String("repository", helpers.String(c.Repository)))
	}
	if c.WorkflowFile != nil {
		logAttr = append(logAttr, slog.String("workflowFile", helpers.String(c.WorkflowFile)))
	}
	if c.WorkflowRef != nil {
		logAttr = append(logAttr, slog.String("workflowRef", helpers.String(c.WorkflowRef)))
	}
	if c.IATA != nil {
		logAttr = append(logAttr, slog.String("iata", helpers.String(c.IATA)))
	}
	return slog.GroupValue(logAttr...)
}

// Result represents the outcome of processing a single inbound request.
type Result struct {
	Context  *Context
	Response models.Response

	// Dispatched is true only when the upstream API accepted the workflow dispatch.
	Dispatched   bool
	DispatchedAt time.Time
}

// LogValue returns a slog.Value by delegating to the Context's LogValue method.
func (r *Result) LogValue() slog.Value {
	if r.Context == nil {
		return slog.GroupValue()
	}
	return r.Context.LogValue()
}
