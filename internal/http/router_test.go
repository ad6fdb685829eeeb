package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"stringanalyzer/internal/service"
	"stringanalyzer/internal/service/mocks"
	"stringanalyzer/internal/storage"

	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, requests int) http.Handler {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewRouter(&Deps{
		StringService:     service.NewStringService(store, nil),
		Store:             store,
		RateLimitRequests: requests,
		RateLimitWindow:   15 * time.Minute,
		CORSOrigins:       []string{"*"},
	})
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		StringService: mocks.NewMockStringService(ctrl),
		Store:         storage.NewMemoryStore(),
	})

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := NewRouter(&Deps{
		StringService: mocks.NewMockStringService(ctrl),
		Store:         storage.NewMemoryStore(),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "health",
			method:     http.MethodGet,
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /strings exists",
			method:     http.MethodPost,
			path:       "/strings",
			wantStatus: http.StatusBadRequest, // empty body, but route exists
		},
		{
			name:       "PUT /strings method not allowed",
			method:     http.MethodPut,
			path:       "/strings",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, "")

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Router %s %s Content-Type = %q", tt.method, tt.path, ct)
			}
		})
	}
}

func TestRouter_StringsLifecycle(t *testing.T) {
	router := newTestRouter(t, 0)

	w := serve(router, http.MethodPost, "/strings", `{"value":"hello world"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body %s", w.Code, w.Body.String())
	}

	w = serve(router, http.MethodPost, "/strings", `{"value":"hello world"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate create status = %d, want 409", w.Code)
	}

	w = serve(router, http.MethodGet, "/strings/hello%20world", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d; body %s", w.Code, w.Body.String())
	}
	var rec struct {
		Value      string `json:"value"`
		Properties struct {
			Length       int  `json:"length"`
			WordCount    int  `json:"word_count"`
			IsPalindrome bool `json:"is_palindrome"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Properties.WordCount != 2 || rec.Properties.Length != 11 || rec.Properties.IsPalindrome {
		t.Errorf("properties = %+v", rec.Properties)
	}

	w = serve(router, http.MethodDelete, "/strings/hello%20world", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
	w = serve(router, http.MethodGet, "/strings/hello%20world", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
	w = serve(router, http.MethodDelete, "/strings/", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("delete without value status = %d, want 400", w.Code)
	}
}

func TestRouter_Filtering(t *testing.T) {
	router := newTestRouter(t, 0)

	for _, v := range []string{"cat", "a b", "racecar", "noon"} {
		body, _ := json.Marshal(map[string]string{"value": v})
		if w := serve(router, http.MethodPost, "/strings", string(body)); w.Code != http.StatusCreated {
			t.Fatalf("create %q status = %d", v, w.Code)
		}
	}

	type listResponse struct {
		Data []struct {
			Value string `json:"value"`
		} `json:"data"`
		Count int `json:"count"`
	}

	w := serve(router, http.MethodGet, "/strings?min_length=3&word_count=1&max_length=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d; body %s", w.Code, w.Body.String())
	}
	var list listResponse
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 1 || list.Data[0].Value != "cat" {
		t.Errorf("list = %+v, want only cat", list)
	}

	w = serve(router, http.MethodGet, "/strings?min_length=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative min_length status = %d, want 400", w.Code)
	}

	w = serve(router, http.MethodGet, "/strings/filter-by-natural-language?query="+url.QueryEscape("single word palindromic strings"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("natural status = %d; body %s", w.Code, w.Body.String())
	}
	var natural struct {
		listResponse
		InterpretedQuery struct {
			Original      string          `json:"original"`
			ParsedFilters json.RawMessage `json:"parsed_filters"`
		} `json:"interpreted_query"`
	}
	if err := json.NewDecoder(w.Body).Decode(&natural); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if natural.Count != 2 {
		t.Errorf("natural count = %d, want 2", natural.Count)
	}
	if string(natural.InterpretedQuery.ParsedFilters) != `{"is_palindrome":true,"word_count":1}` {
		t.Errorf("parsed_filters = %s", natural.InterpretedQuery.ParsedFilters)
	}

	w = serve(router, http.MethodGet, "/strings/filter-by-natural-language?query="+url.QueryEscape("palindromes that are not palindromes"), "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("conflicting query status = %d, want 422", w.Code)
	}
	w = serve(router, http.MethodGet, "/strings/filter-by-natural-language", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing query status = %d, want 400", w.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, 3)

	for i := 0; i < 3; i++ {
		if w := serve(router, http.MethodGet, "/strings", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, w.Code)
		}
	}

	w := serve(router, http.MethodGet, "/strings", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), RateLimitMessage) {
		t.Errorf("body = %s", w.Body.String())
	}

	// Health stays reachable for probes.
	if w := serve(router, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}
