package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alya-io/alya/internal/config"
	"github.com/labstack/echo/v4"
)

func testSettings() *config.Settings {
	return &config.Settings{
		ProjectName: "alya.io",
		Version:     "0.1.0",
		Env:         "test",
		Host:        "127.0.0.1",
		Port:        8000,
		Workers:     1,
		APIV1Prefix: "/api/v1",
		CORSOrigins: []string{"http://localhost:3000"},
		LogLevel:    "INFO",
		LogFormat:   "json",
	}
}

func TestRoot(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := New(testSettings())
	if err := h.Root(c); err != nil {
		t.Fatalf("root handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["message"] != "Welcome to alya.io" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["version"] != "0.1.0" {
		t.Fatalf("expected configured version verbatim, got %q", body["version"])
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := New(testSettings())
	if err := h.Health(c); err != nil {
		t.Fatalf("health handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("expected status healthy, got %v", body["status"])
	}
	ts, ok := body["timestamp"].(string)
	if !ok {
		t.Fatalf("expected timestamp string, got %T", body["timestamp"])
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", ts, err)
	}
	uptime, ok := body["uptime"].(float64)
	if !ok {
		t.Fatalf("expected uptime number, got %T", body["uptime"])
	}
	if uptime < 0 {
		t.Fatalf("expected non-negative uptime, got %f", uptime)
	}
}

func TestProcessUptime(t *testing.T) {
	if got := processUptime(); got < 0 {
		t.Fatalf("expected non-negative uptime, got %f", got)
	}
}
