package storage

import (
	"context"
	"slices"
	"sync"

	"stringanalyzer/internal/analysis"
)

// MemoryStore is an in-process RecordStore. Writes are serialised by a mutex,
// which makes the existence check and the write a single atomic step.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*analysis.Record
	byID    map[string]*analysis.Record

	// commit runs under the write lock after every mutation; an error rolls
	// the mutation back.
	commit func(records []*analysis.Record) error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*analysis.Record)}
}

func (s *MemoryStore) load(records []*analysis.Record) {
	for _, rec := range records {
		if _, ok := s.byID[rec.ID]; ok {
			continue
		}
		s.records = append(s.records, rec)
		s.byID[rec.ID] = rec
	}
}

// Insert stores rec unless its ID is already present.
func (s *MemoryStore) Insert(ctx context.Context, rec *analysis.Record) (*analysis.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[rec.ID]; ok {
		return nil, ErrConflict
	}

	s.records = append(s.records, rec)
	s.byID[rec.ID] = rec

	if s.commit != nil {
		if err := s.commit(s.records); err != nil {
			s.records = s.records[:len(s.records)-1]
			delete(s.byID, rec.ID)
			return nil, err
		}
	}

	return rec, nil
}

// GetByID returns the record with the given ID.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*analysis.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// DeleteByID removes the record with the given ID.
func (s *MemoryStore) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	idx := slices.Index(s.records, rec)
	previous := s.records
	s.records = slices.Delete(slices.Clone(s.records), idx, idx+1)
	delete(s.byID, id)

	if s.commit != nil {
		if err := s.commit(s.records); err != nil {
			s.records = previous
			s.byID[id] = rec
			return err
		}
	}

	return nil
}

// Scan returns the records accepted by pred in insertion order.
func (s *MemoryStore) Scan(ctx context.Context, pred Predicate) ([]*analysis.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*analysis.Record, 0, len(s.records))
	for _, rec := range s.records {
		if accept(pred, rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
