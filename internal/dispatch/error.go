package dispatch

import (
	"fmt"

	"github.com/pkg/errors"
)

// UpstreamError is returned when the upstream API rejects a workflow dispatch.
// Status is the upstream HTTP status code (0 when no response was received) and
// Detail carries the upstream body text, best-effort.
type UpstreamError struct {
	Status int
	Detail string
}

func (m *UpstreamError) Error() string {
	return fmt.Sprintf("upstream dispatch failed: status %d", m.Status)
}

// InternalError represents a dispatch failure caused by this application rather than the upstream API.
type InternalError struct {
	Cause error
}

func (m *InternalError) Error() string {
	return fmt.Sprintf("dispatch error: %v", m.Cause)
}

// NewInternalError creates an InternalError from a format string and arguments.
func NewInternalError(format string, args ...any) error {
	return &InternalError{Cause: errors.Errorf(format, args...)}
}
