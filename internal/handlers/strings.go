package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"stringanalyzer/internal/analysis"
	"stringanalyzer/internal/contextutil"
	"stringanalyzer/internal/filter"
	"stringanalyzer/internal/nlquery"
	"stringanalyzer/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

// StringsHandler handles HTTP requests under /strings.
type StringsHandler struct {
	stringService service.StringService
}

// NewStringsHandler creates a new StringsHandler.
func NewStringsHandler(stringService service.StringService) *StringsHandler {
	return &StringsHandler{
		stringService: stringService,
	}
}

// ListResponse is the body of GET /strings.
type ListResponse struct {
	Data           []*analysis.Record `json:"data"`
	Count          int                `json:"count"`
	FiltersApplied filter.Filter      `json:"filters_applied"`
}

// NaturalResponse is the body of GET /strings/filter-by-natural-language.
type NaturalResponse struct {
	Data             []*analysis.Record `json:"data"`
	Count            int                `json:"count"`
	InterpretedQuery InterpretedQuery   `json:"interpreted_query"`
}

// InterpretedQuery echoes how a natural-language query was understood.
type InterpretedQuery struct {
	Original      string        `json:"original"`
	ParsedFilters filter.Filter `json:"parsed_filters"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Create handles POST /strings with a body of {"value": "..."}.
func (h *StringsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var body map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Bad Request: invalid JSON body")
		return
	}

	raw, ok := body["value"]
	if !ok || string(raw) == "null" {
		logger.WarnContext(ctx, "missing value field")
		h.writeError(w, http.StatusBadRequest, `Bad Request: missing "value" field`)
		return
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		h.handleServiceError(w, ctx, fmt.Errorf("%w: %w", service.ErrUnprocessable, err), "Failed to analyse string")
		return
	}

	rec, err := h.stringService.Create(ctx, value)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to analyse string")
		return
	}

	h.writeJSON(w, ctx, http.StatusCreated, rec)
}

// List handles GET /strings with optional typed filter parameters.
func (h *StringsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	f, err := filter.FromQuery(r.URL.Query())
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid filter parameters", "error", err)
		h.writeError(w, http.StatusBadRequest, "Bad Request: "+err.Error())
		return
	}

	records, err := h.stringService.List(ctx, f)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to list strings")
		return
	}

	records = nonNil(records)
	h.writeJSON(w, ctx, http.StatusOK, ListResponse{
		Data:           records,
		Count:          len(records),
		FiltersApplied: f,
	})
}

// FilterNatural handles GET /strings/filter-by-natural-language?query=...
func (h *StringsHandler) FilterNatural(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("query")

	res, err := h.stringService.FilterNatural(ctx, query)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to filter strings")
		return
	}

	records := nonNil(res.Records)
	h.writeJSON(w, ctx, http.StatusOK, NaturalResponse{
		Data:             records,
		Count:            len(records),
		InterpretedQuery: interpretation(res.Interpretation),
	})
}

// Get handles GET /strings/{value}.
func (h *StringsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, ok := h.pathValue(w, r)
	if !ok {
		return
	}

	rec, err := h.stringService.Get(ctx, value)
	if err != nil {
		h.handleServiceError(w, ctx, err, "Failed to load string")
		return
	}

	h.writeJSON(w, ctx, http.StatusOK, rec)
}

// Delete handles DELETE /strings/{value}.
func (h *StringsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	value, ok := h.pathValue(w, r)
	if !ok {
		return
	}

	if err := h.stringService.Delete(ctx, value); err != nil {
		h.handleServiceError(w, ctx, err, "Failed to delete string")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathValue returns the decoded {value} segment. chi hands back the escaped
// form whenever the request carried a RawPath.
func (h *StringsHandler) pathValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	value := chi.URLParam(r, "value")
	if r.URL.RawPath == "" {
		return value, true
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "malformed path value", "error", err)
		h.writeError(w, http.StatusBadRequest, `Bad Request: missing or invalid "value" parameter`)
		return "", false
	}
	return decoded, true
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func (h *StringsHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation failed", "error", err)
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("Bad Request: %q %s", validationErr.Field, validationErr.Message))
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		h.writeError(w, http.StatusBadRequest, "Bad Request: invalid input")
	case errors.Is(err, service.ErrConflict):
		h.writeError(w, http.StatusConflict, "Conflict: string already exists in the system")
	case errors.Is(err, service.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "Not Found: string does not exist in the system")
	case errors.Is(err, service.ErrParseConflict):
		h.writeError(w, http.StatusUnprocessableEntity, "Unprocessable Entity: Query parsed but resulted in conflicting filters")
	case errors.Is(err, service.ErrParseFailure):
		h.writeError(w, http.StatusBadRequest, "Bad Request: unable to parse natural language query")
	case errors.Is(err, service.ErrUnprocessable):
		logger.WarnContext(ctx, "value is not a string", "error", err)
		h.writeError(w, http.StatusUnprocessableEntity, `Unprocessable Entity: "value" must be of type string`)
	default:
		logger.ErrorContext(ctx, "service error", "error", err)
		h.writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

func (h *StringsHandler) writeJSON(w http.ResponseWriter, ctx context.Context, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func (h *StringsHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	writeError(w, statusCode, message)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

func nonNil(records []*analysis.Record) []*analysis.Record {
	if records == nil {
		return []*analysis.Record{}
	}
	return records
}

func interpretation(res *nlquery.Result) InterpretedQuery {
	if res == nil {
		return InterpretedQuery{}
	}
	return InterpretedQuery{
		Original:      res.Original,
		ParsedFilters: res.Filter,
	}
}
