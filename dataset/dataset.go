// Package dataset implements the Table/DataSet adapters (C12): typed
// readable/writable views over a SurrealDB table, composed from the query
// builder (contrib/surrealql, C10) and the client façade (C8).
//
// Grounded on vantage-dataset/src/traits/dataset.rs's ReadableDataSet,
// WritableDataSet, and InsertableDataSet traits, and on vantage-table's
// naming conventions for deriving a table name from an entity type.
package dataset

import (
	"context"

	"github.com/jinzhu/inflection"
)

// ValueSet is the untyped base every DataSet builds on: just enough to know
// which table it's a view over.
type ValueSet interface {
	Table() string
}

// ReadableDataSet lists and fetches entities of type E by id.
type ReadableDataSet[E any] interface {
	ValueSet

	// List returns every record in the dataset's table.
	List(ctx context.Context) ([]E, error)

	// Get fetches a single record by id. It returns ErrNotFound if the
	// record doesn't exist.
	Get(ctx context.Context, id string) (*E, error)

	// GetSome fetches the subset of ids that exist, skipping any that
	// don't, in no particular order.
	GetSome(ctx context.Context, ids []string) ([]E, error)
}

// WritableDataSet mutates existing records and inserts new ones under a
// caller-chosen id.
type WritableDataSet[E any] interface {
	ValueSet

	// Insert creates a new record at id with e's content. It is
	// idempotent: inserting over an existing id is a no-op that leaves
	// that record's content untouched, rather than overwriting it or
	// failing.
	Insert(ctx context.Context, id string, e E) error

	// Replace overwrites id's entire content with e.
	Replace(ctx context.Context, id string, e E) error

	// Patch merges partial into id's existing content. It returns
	// ErrNotFound if id doesn't exist.
	Patch(ctx context.Context, id string, partial map[string]any) error

	// Delete removes id. It is idempotent: deleting an id that doesn't
	// exist is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll empties the dataset's table.
	DeleteAll(ctx context.Context) error
}

// InsertableDataSet inserts new records under a server- or store-generated
// id, for backends that generate their own ids.
type InsertableDataSet[E any] interface {
	ValueSet

	// InsertReturnID creates a new record with e's content under a
	// generated id and returns that id. Unlike Insert, this is not
	// idempotent: calling it twice with the same e creates two records.
	InsertReturnID(ctx context.Context, e E) (string, error)
}

// DataSet is a full readable/writable/insertable view over one table's
// entities of type E.
type DataSet[E any] interface {
	ReadableDataSet[E]
	WritableDataSet[E]
	InsertableDataSet[E]
}

// TableNameFor derives the default SurrealDB table name for a Go entity
// type name, pluralizing it the way a generated model's table name would
// be derived (e.g. "User" -> "users", "Category" -> "categories").
func TableNameFor(entityName string) string {
	return inflection.Plural(lowerFirst(entityName))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
