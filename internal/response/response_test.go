package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k1r/imgstore/internal/apperror"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestJSON_SetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusTeapot, map[string]string{"k": "v"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
}

func TestHelpers(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		msg    string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "no file selected") }, http.StatusBadRequest, "no file selected"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "page not found") }, http.StatusNotFound, "page not found"},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, "method not allowed") }, http.StatusMethodNotAllowed, "method not allowed"},
		{"internal", InternalError, http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, decodeError(t, rec).Error)
		})
	}
}

func TestWriteError_ValidationIsNotLogged(t *testing.T) {
	var logs bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)

	WriteError(rec, req, apperror.Validation("unsupported file type"), zerolog.New(&logs))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported file type", decodeError(t, rec).Error)
	assert.Zero(t, logs.Len())
}

func TestWriteError_StoreLogsCauseButHidesIt(t *testing.T) {
	var logs bytes.Buffer
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)

	err := apperror.Store("upload to object storage failed", errors.New("SignatureDoesNotMatch"))
	WriteError(rec, req, err, zerolog.New(&logs))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "upload to object storage failed", decodeError(t, rec).Error)
	assert.Contains(t, logs.String(), "SignatureDoesNotMatch")
	assert.Contains(t, logs.String(), "/upload")
}

func TestWriteError_UnknownErrorIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/delete", nil)

	WriteError(rec, req, errors.New("boom"), zerolog.Nop())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec).Error)
}
