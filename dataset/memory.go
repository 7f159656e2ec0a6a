package dataset

import (
	"context"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/vantage-db/vantage-go/internal/rand"
)

// MemorySet is an in-memory DataSet[E], useful as a test double for code
// written against the dataset interfaces without a live SurrealDB
// instance.
//
// Grounded on vantage-table/src/mocks/mock_table_source.rs's in-memory
// mock table source.
type MemorySet[E any] struct {
	table string

	mu   sync.RWMutex
	rows map[string]E
}

// NewMemorySet returns an empty in-memory DataSet over the given table
// name.
func NewMemorySet[E any](table string) *MemorySet[E] {
	return &MemorySet[E]{table: table, rows: make(map[string]E)}
}

func (s *MemorySet[E]) Table() string { return s.table }

func (s *MemorySet[E]) List(ctx context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0, len(s.rows))
	for _, e := range s.rows {
		out = append(out, e)
	}
	return out, nil
}

func (s *MemorySet[E]) Get(ctx context.Context, id string) (*E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemorySet[E]) GetSome(ctx context.Context, ids []string) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.rows[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemorySet[E]) Insert(ctx context.Context, id string, e E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[id]; exists {
		return nil
	}
	s.rows[id] = e
	return nil
}

func (s *MemorySet[E]) Replace(ctx context.Context, id string, e E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[id] = e
	return nil
}

func (s *MemorySet[E]) Patch(ctx context.Context, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.rows[id]
	if !ok {
		return ErrNotFound
	}

	merged, err := mergeEntity(existing, partial)
	if err != nil {
		return fmt.Errorf("dataset: patch %s: %w", id, err)
	}
	s.rows[id] = merged
	return nil
}

func (s *MemorySet[E]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows, id)
	return nil
}

func (s *MemorySet[E]) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = make(map[string]E)
	return nil
}

func (s *MemorySet[E]) InsertReturnID(ctx context.Context, e E) (string, error) {
	id := rand.String(12)

	s.mu.Lock()
	s.rows[id] = e
	s.mu.Unlock()

	return id, nil
}

// mergeEntity applies partial's fields on top of existing's CBOR
// representation and decodes the result back into E.
func mergeEntity[E any](existing E, partial map[string]any) (E, error) {
	var zero E

	encoded, err := cbor.Marshal(existing)
	if err != nil {
		return zero, err
	}

	var m map[string]any
	if err := cbor.Unmarshal(encoded, &m); err != nil {
		return zero, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	for k, v := range partial {
		m[k] = v
	}

	reencoded, err := cbor.Marshal(m)
	if err != nil {
		return zero, err
	}

	var merged E
	if err := cbor.Unmarshal(reencoded, &merged); err != nil {
		return zero, err
	}
	return merged, nil
}

var _ DataSet[struct{}] = (*MemorySet[struct{}])(nil)
