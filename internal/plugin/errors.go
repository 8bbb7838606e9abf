package plugin

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry lookups. These can be checked with errors.Is().
var (
	// ErrPluginNotFound is returned when a plugin name is not in the registry.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrNotInstalled is returned when an operation requires a working tree
	// that does not exist on disk.
	ErrNotInstalled = errors.New("plugin not installed")
)

// ErrorCode represents specific error codes for plugin operations.
type ErrorCode string

// Plugin error codes
const (
	ErrCodePluginNotFound   ErrorCode = "PLUGIN_NOT_FOUND"
	ErrCodeResolveFailed    ErrorCode = "RESOLVE_FAILED"
	ErrCodeInvalidSource    ErrorCode = "INVALID_SOURCE"
	ErrCodeCloneFailed      ErrorCode = "CLONE_FAILED"
	ErrCodePullFailed       ErrorCode = "PULL_FAILED"
	ErrCodeCheckoutFailed   ErrorCode = "CHECKOUT_FAILED"
	ErrCodeQueryFailed      ErrorCode = "QUERY_FAILED"
	ErrCodeRemoveFailed     ErrorCode = "REMOVE_FAILED"
	ErrCodeFilesystemFailed ErrorCode = "FILESYSTEM_FAILED"
	ErrCodeSelfUpdateFailed ErrorCode = "SELF_UPDATE_FAILED"
)

// Error is a structured error for plugin operations. It carries an error
// code for programmatic handling, the plugin name that caused it, the
// underlying cause, and additional context for debugging.
type Error struct {
	Code      ErrorCode      // Error code for programmatic handling
	Message   string         // Human-readable error message
	Cause     error          // Underlying error (if any)
	Plugin    string         // Plugin name that caused the error
	Context   map[string]any // Additional context for debugging
	Retryable bool           // Whether the operation can be retried
}

// Error implements the error interface.
// Format: "[CODE] plugin=name message: cause".
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s]", e.Code)

	if e.Plugin != "" {
		msg += fmt.Sprintf(" plugin=%s", e.Plugin)
	}

	msg += fmt.Sprintf(" %s", e.Message)

	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}

	return msg
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *Error) Is(target error) bool {
	var perr *Error
	if errors.As(target, &perr) {
		return e.Code == perr.Code
	}
	return false
}

// WithContext adds additional context to the error for debugging.
// Returns the error for method chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithPlugin adds the plugin name that caused the error.
// Returns the error for method chaining.
func (e *Error) WithPlugin(name string) *Error {
	e.Plugin = name
	return e
}

// NewError creates a new non-retryable Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Context:   make(map[string]any),
		Retryable: false,
	}
}

// WrapError creates a new Error that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewNotFoundError creates a plugin not found error.
func NewNotFoundError(name string) *Error {
	return &Error{
		Code:    ErrCodePluginNotFound,
		Message: fmt.Sprintf("plugin not found: %s", name),
		Cause:   ErrPluginNotFound,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
		},
	}
}

// NewResolveError creates a resolution failure error. Resolution failures
// drop the spec from the active set; they are never fatal to the batch.
func NewResolveError(source string, cause error) *Error {
	return &Error{
		Code:    ErrCodeResolveFailed,
		Message: fmt.Sprintf("cannot resolve plugin source: %s", source),
		Cause:   cause,
		Context: map[string]any{
			"source": source,
		},
	}
}

// NewCloneError creates a clone failure error. Clone failures are retryable
// since most stem from transient network conditions.
func NewCloneError(name string, url string, cause error) *Error {
	return &Error{
		Code:    ErrCodeCloneFailed,
		Message: "failed to clone repository",
		Cause:   cause,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
			"url":    url,
		},
		Retryable: true,
	}
}

// NewPullError creates a pull failure error. Retryable for the same reason
// clone failures are.
func NewPullError(name string, cause error) *Error {
	return &Error{
		Code:    ErrCodePullFailed,
		Message: "failed to pull latest changes",
		Cause:   cause,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
		},
		Retryable: true,
	}
}

// NewCheckoutError creates a checkout failure error. Non-retryable: the
// pinned ref usually does not exist in the repository.
func NewCheckoutError(name string, ref string, cause error) *Error {
	return &Error{
		Code:    ErrCodeCheckoutFailed,
		Message: fmt.Sprintf("failed to check out %s", ref),
		Cause:   cause,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
			"ref":    ref,
		},
	}
}

// NewQueryError creates a hash query failure error.
func NewQueryError(name string, cause error) *Error {
	return &Error{
		Code:    ErrCodeQueryFailed,
		Message: "failed to query commit hash",
		Cause:   cause,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
		},
		Retryable: true,
	}
}

// NewRemoveError creates a working tree removal failure error.
func NewRemoveError(name string, path string, cause error) *Error {
	return &Error{
		Code:    ErrCodeRemoveFailed,
		Message: "failed to remove working tree",
		Cause:   cause,
		Plugin:  name,
		Context: map[string]any{
			"plugin": name,
			"path":   path,
		},
	}
}

// NewSelfUpdateError creates a self-update failure error. Self-update is the
// one single-shot, user-initiated action whose failure is reported with its
// full cause rather than folded into a batch summary.
func NewSelfUpdateError(message string, cause error) *Error {
	return &Error{
		Code:    ErrCodeSelfUpdateFailed,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}
