// Package web serves the browser landing page with the upload form.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Index renders the landing page once and returns a handler that serves it.
func Index(maxUploadMB int) (http.HandlerFunc, error) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, struct{ MaxUploadMB int }{maxUploadMB}); err != nil {
		return nil, fmt.Errorf("render index page: %w", err)
	}
	page := buf.Bytes()

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}, nil
}
