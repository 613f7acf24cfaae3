package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	var sb strings.Builder
	logger := log.New(&sb)

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, "body")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get-titles", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Body.String() != "body" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if !strings.Contains(sb.String(), "/get-titles") || !strings.Contains(sb.String(), "418") {
		t.Fatalf("log line missing request details: %q", sb.String())
	}
}
