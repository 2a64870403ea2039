package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/germanamz/llmgate/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "internal", apperr.Internal.String())
	assert.Equal(t, "invalid_input", apperr.InvalidInput.String())
	assert.Equal(t, "backend", apperr.Backend.String())
}

func TestNew(t *testing.T) {
	err := apperr.New(apperr.InvalidInput, "Unsupported model: %s", "x")

	assert.Equal(t, "Unsupported model: x", err.Error())
	assert.Equal(t, apperr.InvalidInput, err.Kind)
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := apperr.Wrap(apperr.Internal, cause, "Error invoking model: ")

	assert.Equal(t, "Error invoking model: boom", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	backend := &apperr.Error{Kind: apperr.Backend, Message: "denied"}

	assert.Equal(t, apperr.Backend, apperr.KindOf(backend))
	assert.Equal(t, apperr.Backend, apperr.KindOf(fmt.Errorf("outer: %w", backend)))
	assert.Equal(t, apperr.Internal, apperr.KindOf(errors.New("plain")))
}

func TestPrefix(t *testing.T) {
	backend := &apperr.Error{Kind: apperr.Backend, Code: "AccessDenied", Message: "denied"}

	err := apperr.Prefix(backend, "Failed to invoke Lambda: ")
	require.NotNil(t, err)
	assert.Equal(t, "Failed to invoke Lambda: denied", err.Error())
	assert.Equal(t, apperr.Backend, err.Kind)
	assert.Equal(t, "AccessDenied", err.Code)

	plain := apperr.Prefix(errors.New("eof"), "x: ")
	assert.Equal(t, apperr.Internal, plain.Kind)
	assert.Equal(t, "x: eof", plain.Error())
}

func TestErrorFallbacks(t *testing.T) {
	assert.Equal(t, "eof", (&apperr.Error{Err: errors.New("eof")}).Error())
	assert.Equal(t, "backend", (&apperr.Error{Kind: apperr.Backend}).Error())
}
