package sandbox

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidPathErrorUnwrap(t *testing.T) {
	inner := errors.New("stat failed")
	err := &InvalidPathError{Path: "/nope", Err: inner}

	require.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "/nope")

	var target *InvalidPathError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "/nope", target.Path)
}

func TestIOErrorUnwrap(t *testing.T) {
	inner := errors.New("permission denied")
	err := &IOError{Op: "mount", Err: inner}

	require.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "mount")
}

func TestActivationFailedErrorMessage(t *testing.T) {
	err := &ActivationFailedError{Message: "profile rejected"}
	assert.Contains(t, err.Error(), "profile rejected")
}
