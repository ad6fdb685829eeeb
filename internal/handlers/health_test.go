package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		pingErr    error
		wantStatus int
		wantState  string
		wantCheck  string
	}{
		{
			name:       "healthy",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantState:  "healthy",
			wantCheck:  "ok",
		},
		{
			name:       "store down",
			method:     http.MethodGet,
			pingErr:    errors.New("database is locked"),
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
			wantCheck:  "error",
		},
		{
			name:       "wrong method",
			method:     http.MethodPost,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(pingerFunc(func(ctx context.Context) error {
				if _, ok := ctx.Deadline(); !ok {
					t.Error("Ping() called without a deadline")
				}
				return tt.pingErr
			}))
			handler.now = func() time.Time { return testTime }

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantState == "" {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantState {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantState)
			}
			if resp.Checks["store"] != tt.wantCheck {
				t.Errorf("checks[store] = %q, want %q", resp.Checks["store"], tt.wantCheck)
			}
			if resp.Timestamp != "2025-01-02T03:04:05Z" {
				t.Errorf("timestamp = %q", resp.Timestamp)
			}
			if (tt.pingErr != nil) != (len(resp.Issues) > 0) {
				t.Errorf("issues = %v", resp.Issues)
			}
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound || w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("NotFound() = %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	MethodNotAllowed(w, httptest.NewRequest(http.MethodPut, "/strings", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("MethodNotAllowed() = %d", w.Code)
	}
}
