// Package gatewayerr defines the error taxonomy shared by both protocol
// front-ends and the single translator that renders any of these errors
// into a protocol-correct response.
package gatewayerr

import (
	"fmt"
)

// ValidationError reports request parameters that failed schema validation.
// It is raised before any backend call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid params: %s", e.Reason)
}

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UnknownCommandError reports a dispatch for a command name that was never
// registered.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Command)
}

// DuplicateCommandError reports a second registration under an existing
// command name. Registration happens at startup, so the bootstrap treats
// this as fatal.
type DuplicateCommandError struct {
	Command string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q already registered", e.Command)
}

// MalformedMessageError reports wire bytes that could not be decoded into a
// request before dispatch.
type MalformedMessageError struct {
	Reason string
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message: %s", e.Reason)
}

// QuorumNotReadyError is returned when a quorum snapshot is requested
// before the tracker has published its first one.
type QuorumNotReadyError struct{}

func (e *QuorumNotReadyError) Error() string {
	return "quorum state not ready: no snapshot computed yet"
}

// UpstreamError is a structured failure reported by a backend service. Code
// is the upstream's own numeric code; Data carries any structured payload
// the upstream attached. It is passed through the dispatch layers unchanged
// until the translator renders it.
type UpstreamError struct {
	Code    int
	Message string
	Data    string
}

func (e *UpstreamError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("upstream error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("upstream error %d: %s", e.Code, e.Message)
}
