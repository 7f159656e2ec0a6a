package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	surrealdb "github.com/vantage-db/vantage-go"
	"github.com/vantage-db/vantage-go/contrib/surrealql"
	"github.com/vantage-db/vantage-go/ident"
)

// SurrealSet is a DataSet[E] backed by a live SurrealDB table, composing its
// queries via contrib/surrealql and executing them through the client
// façade's Query/Create/Select/Delete verbs.
type SurrealSet[E any] struct {
	db    *surrealdb.DB
	table string
}

// NewSurrealSet returns a DataSet over table, using db for every operation.
// If table is empty, it's derived from E's type name via TableNameFor.
func NewSurrealSet[E any](db *surrealdb.DB, table string) *SurrealSet[E] {
	if table == "" {
		name := fmt.Sprintf("%T", *new(E))
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		table = TableNameFor(name)
	}
	return &SurrealSet[E]{db: db, table: table}
}

func (s *SurrealSet[E]) Table() string { return s.table }

func (s *SurrealSet[E]) thing(id string) string {
	return s.table + ":" + ident.Quote(id)
}

// List returns every record in the table, composing the SELECT via
// contrib/surrealql, lowering it to an expr.Expression, and executing it
// with surrealdb.QueryExpr.
func (s *SurrealSet[E]) List(ctx context.Context) ([]E, error) {
	e := surrealql.Lower(surrealql.Select("*").FromTable(s.table))
	results, err := surrealdb.QueryExpr[[]E](ctx, s.db, e)
	if err != nil {
		return nil, fmt.Errorf("dataset: list %s: %w", s.table, err)
	}
	if len(*results) == 0 {
		return nil, nil
	}
	return (*results)[0].Result, nil
}

// Get fetches a single record by id.
func (s *SurrealSet[E]) Get(ctx context.Context, id string) (*E, error) {
	res, err := surrealdb.Select[[]E](ctx, s.db, s.thing(id))
	if err != nil {
		return nil, fmt.Errorf("dataset: get %s: %w", s.thing(id), err)
	}
	if res == nil || len(*res) == 0 {
		return nil, ErrNotFound
	}
	return &(*res)[0], nil
}

// GetSome fetches the subset of ids that exist.
func (s *SurrealSet[E]) GetSome(ctx context.Context, ids []string) ([]E, error) {
	out := make([]E, 0, len(ids))
	for _, id := range ids {
		e, err := s.Get(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Insert creates a record at id with e's content, unless one already
// exists, in which case it's a no-op.
func (s *SurrealSet[E]) Insert(ctx context.Context, id string, e E) error {
	if _, err := s.Get(ctx, id); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	if _, err := surrealdb.Create[E](ctx, s.db, s.thing(id), e); err != nil {
		return fmt.Errorf("dataset: insert %s: %w", s.thing(id), err)
	}
	return nil
}

// Replace overwrites id's entire content with e.
func (s *SurrealSet[E]) Replace(ctx context.Context, id string, e E) error {
	if _, err := surrealdb.Update[E](ctx, s.db, s.thing(id), e); err != nil {
		return fmt.Errorf("dataset: replace %s: %w", s.thing(id), err)
	}
	return nil
}

// Patch merges partial into id's existing content.
func (s *SurrealSet[E]) Patch(ctx context.Context, id string, partial map[string]any) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := surrealdb.Merge[E](ctx, s.db, s.thing(id), partial); err != nil {
		return fmt.Errorf("dataset: patch %s: %w", s.thing(id), err)
	}
	return nil
}

// Delete removes id, if present.
func (s *SurrealSet[E]) Delete(ctx context.Context, id string) error {
	e := surrealql.Lower(surrealql.Delete(s.thing(id)))
	if _, err := surrealdb.QueryExpr[[]E](ctx, s.db, e); err != nil {
		return fmt.Errorf("dataset: delete %s: %w", s.thing(id), err)
	}
	return nil
}

// DeleteAll empties the table.
func (s *SurrealSet[E]) DeleteAll(ctx context.Context) error {
	e := surrealql.Lower(surrealql.Delete(s.table))
	if _, err := surrealdb.QueryExpr[[]E](ctx, s.db, e); err != nil {
		return fmt.Errorf("dataset: delete all %s: %w", s.table, err)
	}
	return nil
}

// InsertReturnID creates a new record with a server-generated id and
// returns it.
func (s *SurrealSet[E]) InsertReturnID(ctx context.Context, e E) (string, error) {
	created, err := surrealdb.Create[E](ctx, s.db, s.table, e)
	if err != nil {
		return "", fmt.Errorf("dataset: insert into %s: %w", s.table, err)
	}

	id, err := extractRecordID(created)
	if err != nil {
		return "", fmt.Errorf("dataset: insert into %s: %w", s.table, err)
	}
	return id, nil
}

// extractRecordID pulls the record id's string form out of a created
// entity by round-tripping it through CBOR into a map, so it works
// whether E is itself a map or a tagged struct with an "id" field.
func extractRecordID(e any) (string, error) {
	encoded, err := cbor.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("cannot extract id from %T: %w", e, err)
	}

	var m map[string]any
	if err := cbor.Unmarshal(encoded, &m); err != nil {
		return "", fmt.Errorf("cannot extract id from %T: %w", e, err)
	}

	raw, ok := m["id"]
	if !ok {
		return "", fmt.Errorf("created record has no id field")
	}
	return fmt.Sprintf("%v", raw), nil
}

var _ DataSet[struct{}] = (*SurrealSet[struct{}])(nil)
