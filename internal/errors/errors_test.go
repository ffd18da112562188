package errors_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/errors"
)

func TestAppError_Unwrap(t *testing.T) {
	err := errors.NewStorageUnavailableError("append review", context.DeadlineExceeded)

	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 503, err.Status)
	assert.Contains(t, err.Error(), "STORAGE_UNAVAILABLE")
	assert.Contains(t, err.Error(), "append review")
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("submit: %w", errors.NewInvalidInputError("quality", "must be between 0 and 5"))

	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeInvalidInput))
	assert.False(t, errors.HasCode(wrapped, errors.ErrCodeNotFound))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrCodeInvalidInput))
}

func TestFromValidator(t *testing.T) {
	type input struct {
		Quality int    `validate:"min=0,max=5"`
		Name    string `validate:"required"`
	}

	err := validator.New().Struct(input{Quality: 9})
	require.Error(t, err)

	appErr := errors.FromValidator(err)
	assert.Equal(t, errors.ErrCodeInvalidInput, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "quality failed max=5")
	assert.Contains(t, appErr.Message, "name failed required")
}

func TestFromValidator_NonValidationError(t *testing.T) {
	appErr := errors.FromValidator(stderrors.New("boom"))
	assert.Equal(t, errors.ErrCodeInvalidInput, appErr.Code)
	assert.Equal(t, "boom", appErr.Message)
}
