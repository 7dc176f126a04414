package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("unsupported file type")

	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "unsupported file type", PublicMessage(err))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrStore))
}

func TestTranscode_EchoesCause(t *testing.T) {
	cause := errors.New("image: unknown format")
	err := Transcode(cause)

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "image compression failed: image: unknown format", PublicMessage(err))
	assert.True(t, errors.Is(err, ErrTranscode))
	assert.True(t, errors.Is(err, cause))
}

func TestStore_HidesCause(t *testing.T) {
	cause := errors.New("InvalidAccessKeyId: key AKIA123 does not exist")
	err := Store("upload to object storage failed", cause)

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "upload to object storage failed", PublicMessage(err))
	assert.NotContains(t, PublicMessage(err), "AKIA123")
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "AKIA123")
}

func TestWrappedAppErrorKeepsStatus(t *testing.T) {
	err := fmt.Errorf("upload: %w", Validation("no file selected"))

	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "no file selected", PublicMessage(err))
}

func TestUnknownError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.Equal(t, "internal server error", PublicMessage(err))
}
