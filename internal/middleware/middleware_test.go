package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leatherinspection/internal/logger"

	"github.com/google/uuid"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	h := CORSMiddleware("", okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/get_latest", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("Expected request to reach handler, got %q", rec.Body.String())
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	h := CORSMiddleware("http://localhost:3000", okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("Preflight must not reach the handler, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Unexpected origin %q", got)
	}
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logger.NewWithWriter(&buf, logger.LevelInfo), okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stream/start", nil))

	id := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("Expected a UUID request ID, got %q", id)
	}
	if !strings.Contains(buf.String(), id) || !strings.Contains(buf.String(), "POST /stream/start -> 200") {
		t.Errorf("Unexpected access log: %s", buf.String())
	}
}

func TestRequestLogger_KeepsClientIDAndStatus(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logger.NewWithWriter(&buf, logger.LevelInfo), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/predict", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected client request ID, got %q", got)
	}
	if !strings.Contains(buf.String(), "-> 400") {
		t.Errorf("Expected status in access log, got: %s", buf.String())
	}
}

func TestRequestLogger_PollingAtDebug(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogger(logger.NewWithWriter(&buf, logger.LevelInfo), okHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/get_latest", nil))

	if buf.Len() != 0 {
		t.Errorf("Polling should not be logged at info level, got: %s", buf.String())
	}
}
