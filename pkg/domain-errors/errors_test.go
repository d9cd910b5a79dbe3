package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("reads the code from a coded error", func(t *testing.T) {
		err := New(CodeValidation, "employees is required")
		assert.Equal(t, CodeValidation, CodeOf(err))
	})

	t.Run("reads through wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", Wrap(errors.New("boom"), CodeBadRequest, "bad body"))
		assert.Equal(t, CodeBadRequest, CodeOf(err))
	})

	t.Run("unrecognized errors classify as internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "bad body", MessageOf(New(CodeBadRequest, "bad body")))
	assert.Empty(t, MessageOf(errors.New("boom")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store unavailable")
	assert.ErrorIs(t, err, cause)
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(New(CodeValidation, "x")))
	assert.True(t, IsClientError(New(CodeNotFound, "x")))
	assert.False(t, IsClientError(New(CodeInternal, "x")))
	assert.False(t, IsClientError(errors.New("boom")))
}
