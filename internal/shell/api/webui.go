// Package api provides embedded Web UI serving.
package api

import (
	_ "embed"
	"net/http"
)

//go:embed webui/index.html
var indexHTML []byte

// WebUIHandler returns an HTTP handler that serves the embedded review page.
func WebUIHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(indexHTML)
	})
}
