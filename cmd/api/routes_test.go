package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k1r/imgstore/internal/content"
	"github.com/k1r/imgstore/internal/metrics"
	"github.com/k1r/imgstore/internal/storage"
	"github.com/k1r/imgstore/internal/upload"
	"github.com/k1r/imgstore/internal/web"

	_ "github.com/k1r/imgstore/docs/swagger"
)

func newTestRouter(t *testing.T) (http.Handler, *storage.MemoryStorage) {
	t.Helper()
	store := storage.NewMemoryStorage()
	svc := upload.NewService(storage.Instrument(store, "memory"), content.NewPaths("static.k1r.in"), 16<<20, time.Second, zerolog.Nop())
	index, err := web.Index(16)
	require.NoError(t, err)
	return newRouter(zerolog.Nop(), upload.NewHandler(svc, zerolog.Nop()), index), store
}

func serve(h http.Handler, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = new(bytes.Buffer)
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/nope", nil, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"page not found"}`, rec.Body.String())
}

func TestWrongMethodIsJSON405(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/upload", nil, "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
}

func TestIndexPage(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestSwaggerDoc(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := serve(h, http.MethodGet, "/swagger/doc.json", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/upload"`)
}

func TestUploadThenDelete(t *testing.T) {
	h, store := newTestRouter(t)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "hello.webp")
	require.NoError(t, err)
	_, err = part.Write([]byte("Hello, World!"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := serve(h, http.MethodPost, "/upload", body, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res upload.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "65a8e27d8879283831b664bd8b7f0ad4", res.Digest)
	assert.Equal(t, 1, store.Len())

	rec = serve(h, http.MethodPost, "/delete", bytes.NewBufferString(`{"storage_path":"`+res.StorageKey+`"}`), "application/json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, store.Len())

	rec = serve(h, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "imgstore_uploads_total")
	assert.Contains(t, rec.Body.String(), "imgstore_store_operations_total")
}

func TestPanicIsCountedAs500(t *testing.T) {
	h, _ := newTestRouter(t)
	mux, ok := h.(*chi.Mux)
	require.True(t, ok)
	mux.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")
	before := testutil.ToFloat64(counter)

	rec := serve(h, http.MethodGet, "/boom", nil, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
