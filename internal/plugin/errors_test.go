package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	cause := errors.New("exit status 128")
	err := NewCloneError("vis-highlight", "https://github.com/erf/vis-highlight", cause)

	msg := err.Error()
	assert.Contains(t, msg, "[CLONE_FAILED]")
	assert.Contains(t, msg, "plugin=vis-highlight")
	assert.Contains(t, msg, "exit status 128")
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewPullError("vis-cursors", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	a := NewCloneError("vis-highlight", "https://github.com/erf/vis-highlight", nil)
	b := NewCloneError("vis-cursors", "https://github.com/erf/vis-cursors", nil)

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, NewPullError("vis-highlight", nil))
}

func TestErrorSentinels(t *testing.T) {
	err := NewNotFoundError("vis-highlight")
	assert.ErrorIs(t, err, ErrPluginNotFound)

	wrapped := WrapError(ErrCodeCheckoutFailed, "working tree does not exist", ErrNotInstalled)
	assert.ErrorIs(t, wrapped, ErrNotInstalled)
}

func TestErrorWithContext(t *testing.T) {
	err := NewError(ErrCodeInvalidSource, "plugin source is empty").
		WithContext("index", 3).
		WithPlugin("vis-highlight")

	assert.Equal(t, 3, err.Context["index"])
	assert.Equal(t, "vis-highlight", err.Plugin)
}

func TestErrorRetryable(t *testing.T) {
	assert.True(t, NewCloneError("p", "u", nil).Retryable)
	assert.True(t, NewPullError("p", nil).Retryable)
	assert.True(t, NewQueryError("p", nil).Retryable)
	assert.False(t, NewCheckoutError("p", "ref", nil).Retryable)
	assert.False(t, NewNotFoundError("p").Retryable)
}
