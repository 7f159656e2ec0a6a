package dataset

import (
	"context"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// ActiveEntity is a change-tracking wrapper around a typed entity fetched
// from an ActiveEntitySet: mutate Value directly, then call Save to persist
// only if it's actually changed, or Reload to discard local edits.
//
// Grounded on vantage-dataset/src/traits/dataset.rs's ActiveEntity and
// vantage-table/src/mocks/mock_table_source.rs's dirty-tracking mock.
type ActiveEntity[E any] struct {
	ID    string
	Value E

	set      *ActiveEntitySet[E]
	original []byte
}

// Dirty reports whether Value has changed since it was loaded or last
// saved.
func (a *ActiveEntity[E]) Dirty() (bool, error) {
	encoded, err := cbor.Marshal(a.Value)
	if err != nil {
		return false, fmt.Errorf("dataset: comparing entity: %w", err)
	}
	return !reflect.DeepEqual(encoded, a.original), nil
}

// Save persists Value back to the underlying set if it's dirty, via
// Replace. It's a no-op if nothing has changed.
func (a *ActiveEntity[E]) Save(ctx context.Context) error {
	dirty, err := a.Dirty()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}

	if err := a.set.backing.Replace(ctx, a.ID, a.Value); err != nil {
		return err
	}

	encoded, err := cbor.Marshal(a.Value)
	if err != nil {
		return fmt.Errorf("dataset: saving entity: %w", err)
	}
	a.original = encoded
	return nil
}

// Reload re-fetches Value from the underlying set, discarding any local
// edits.
func (a *ActiveEntity[E]) Reload(ctx context.Context) error {
	fresh, err := a.set.backing.Get(ctx, a.ID)
	if err != nil {
		return err
	}

	encoded, err := cbor.Marshal(*fresh)
	if err != nil {
		return fmt.Errorf("dataset: reloading entity: %w", err)
	}

	a.Value = *fresh
	a.original = encoded
	return nil
}

// ActiveEntitySet wraps a DataSet[E], yielding ActiveEntity values instead
// of bare E values so that callers can mutate and save them without
// re-deriving the id or re-serialising the unmodified fields.
type ActiveEntitySet[E any] struct {
	backing DataSet[E]
}

// NewActiveEntitySet wraps backing for change-tracked access.
func NewActiveEntitySet[E any](backing DataSet[E]) *ActiveEntitySet[E] {
	return &ActiveEntitySet[E]{backing: backing}
}

func (s *ActiveEntitySet[E]) Table() string { return s.backing.Table() }

// Get fetches id and wraps it for change tracking.
func (s *ActiveEntitySet[E]) Get(ctx context.Context, id string) (*ActiveEntity[E], error) {
	e, err := s.backing.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	encoded, err := cbor.Marshal(*e)
	if err != nil {
		return nil, fmt.Errorf("dataset: loading entity: %w", err)
	}

	return &ActiveEntity[E]{ID: id, Value: *e, set: s, original: encoded}, nil
}

// List fetches every record as a bare entity, not wrapped for change
// tracking.
//
// ActiveEntitySet doesn't otherwise know ids, since ReadableDataSet.List
// returns bare entities; callers that need List's ids should fetch via Get
// once they're known some other way (e.g. from a SELECT that projects id).
func (s *ActiveEntitySet[E]) List(ctx context.Context) ([]E, error) {
	return s.backing.List(ctx)
}
