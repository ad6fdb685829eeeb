package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_string_service.go -package=mocks -mock_names=StringService=MockStringService stringanalyzer/internal/service StringService

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stringanalyzer/internal/analysis"
	"stringanalyzer/internal/contextutil"
	"stringanalyzer/internal/filter"
	"stringanalyzer/internal/nlquery"
	"stringanalyzer/internal/storage"
)

// NaturalResult is the outcome of a natural-language filter request.
type NaturalResult struct {
	Records        []*analysis.Record
	Interpretation *nlquery.Result
}

// StringService provides string analysis operations.
type StringService interface {
	// Create analyses value and stores it. The value is trimmed first.
	Create(ctx context.Context, value string) (*analysis.Record, error)
	// Get returns the stored record for value.
	Get(ctx context.Context, value string) (*analysis.Record, error)
	// Delete removes the stored record for value.
	Delete(ctx context.Context, value string) error
	// List returns the records matching f.
	List(ctx context.Context, f filter.Filter) ([]*analysis.Record, error)
	// FilterNatural interprets query and returns the matching records.
	FilterNatural(ctx context.Context, query string) (*NaturalResult, error)
}

// stringService implements StringService.
type stringService struct {
	store storage.RecordStore
	clock Clock
}

// NewStringService creates a new StringService backed by store.
// A nil clock defaults to SystemClock.
func NewStringService(store storage.RecordStore, clock Clock) StringService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &stringService{
		store: store,
		clock: clock,
	}
}

// Create analyses and persists a new string.
func (s *stringService) Create(ctx context.Context, value string) (*analysis.Record, error) {
	logger := contextutil.LoggerFromContext(ctx)

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		logger.WarnContext(ctx, "empty value in create request")
		return nil, &ValidationError{
			Field:   "value",
			Message: "cannot be empty",
		}
	}

	rec, err := s.store.Insert(ctx, analysis.NewRecord(trimmed, s.clock.Now()))
	if errors.Is(err, storage.ErrConflict) {
		logger.WarnContext(ctx, "string already exists", "id", analysis.HashID(trimmed))
		return nil, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to store string", "error", err)
		return nil, WrapError(err, "failed to store string")
	}

	logger.InfoContext(ctx, "string analysed", "id", rec.ID, "length", rec.Properties.Length)
	return rec, nil
}

// Get looks a string up by the hash of its trimmed value.
func (s *stringService) Get(ctx context.Context, value string) (*analysis.Record, error) {
	id, err := idFor(value)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load string", "id", id, "error", err)
		return nil, WrapError(err, "failed to load string")
	}
	return rec, nil
}

// Delete removes a string by the hash of its trimmed value.
func (s *stringService) Delete(ctx context.Context, value string) error {
	logger := contextutil.LoggerFromContext(ctx)

	id, err := idFor(value)
	if err != nil {
		return err
	}

	err = s.store.DeleteByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete string", "id", id, "error", err)
		return WrapError(err, "failed to delete string")
	}

	logger.InfoContext(ctx, "string deleted", "id", id)
	return nil
}

// List returns every stored string matching f.
func (s *stringService) List(ctx context.Context, f filter.Filter) ([]*analysis.Record, error) {
	records, err := s.store.Scan(ctx, f.Predicate())
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to scan strings", "error", err)
		return nil, WrapError(err, "failed to list strings")
	}
	return records, nil
}

// FilterNatural parses query into a filter and applies it.
func (s *stringService) FilterNatural(ctx context.Context, query string) (*NaturalResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	parsed, err := nlquery.Parse(query)
	if err != nil {
		logger.WarnContext(ctx, "natural language query rejected", "query", query, "error", err)
		var conflict *nlquery.ConflictError
		if errors.As(err, &conflict) {
			return nil, fmt.Errorf("%w: %w", ErrParseConflict, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	records, err := s.List(ctx, parsed.Filter)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "natural language query interpreted", "query", query, "cues", parsed.Cues, "matches", len(records))
	return &NaturalResult{
		Records:        records,
		Interpretation: parsed,
	}, nil
}

func idFor(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{
			Field:   "value",
			Message: "is missing or invalid",
		}
	}
	return analysis.HashID(trimmed), nil
}
