package surrealdb

import (
	"context"
	"fmt"

	"github.com/vantage-db/vantage-go/pkg/connection"
	"github.com/vantage-db/vantage-go/query"
)

// QueryResult is one statement's result within a multi-statement Query
// response: SurrealDB returns one of these per semicolon-separated
// statement, in order.
//
// Grounded on query_resolver.go's QueryResult[T], carried over unchanged
// in shape since it already matches the wire response.
type QueryResult[T any] struct {
	Status string `cbor:"status"`
	Time   string `cbor:"time"`
	Result T      `cbor:"result"`
}

// Query sends a raw SurrealQL statement (or several, semicolon-separated)
// with the given bind variables, and returns one QueryResult per
// statement. vars is merged with the session's Let-scoped variables
// before sending, with vars winning on key collision.
func Query[T any](ctx context.Context, db *DB, sql string, vars map[string]any) (*[]QueryResult[T], error) {
	merged := db.sessionVars()
	for k, v := range vars {
		merged[k] = v
	}

	db.logQuery(sql, merged)

	var res connection.RPCResponse[[]QueryResult[T]]
	err := connection.Send(db.conn, ctx, &res, "query", sql, merged)
	db.logResult(sql, err)
	if err != nil {
		return nil, fmt.Errorf("surrealdb: query: %w", err)
	}

	if res.Result == nil {
		empty := []QueryResult[T]{}
		return &empty, nil
	}
	return res.Result, nil
}

// QueryExpr composes e via query.Prepare — merging the session's
// Let-scoped variables first, with e's own bound parameters winning on key
// collision, per the "argument wins" precedence sessionVars exists for —
// flattening it into SurrealQL text plus a "$_argN" parameter map, then
// sends it exactly as Query does. This is the real entry point a composed
// expr.Expression (e.g. contrib/surrealql's Lower) goes through on its way
// to the wire: C10 composes an Expression, C9 flattens and names
// parameters here, C8 ships it below.
func QueryExpr[T any](ctx context.Context, db *DB, e *query.Expr) (*[]QueryResult[T], error) {
	prepared, err := query.Prepare(ctx, e, db.sessionVars(), nil)
	if err != nil {
		return nil, fmt.Errorf("surrealdb: preparing expression: %w", err)
	}
	return Query[T](ctx, db, prepared.SurrealQL, prepared.Params)
}

// Create creates one record in thing (a table name, or "table:id") with
// the given content, and returns the created record.
func Create[T any](ctx context.Context, db *DB, thing string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "create", thing, data); err != nil {
		return nil, fmt.Errorf("surrealdb: create: %w", err)
	}
	return res.Result, nil
}

// Select retrieves a table or a single record.
func Select[T any](ctx context.Context, db *DB, what string) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "select", what); err != nil {
		return nil, fmt.Errorf("surrealdb: select: %w", err)
	}
	return res.Result, nil
}

// Update replaces a table or record's content entirely.
func Update[T any](ctx context.Context, db *DB, what string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "update", what, data); err != nil {
		return nil, fmt.Errorf("surrealdb: update: %w", err)
	}
	return res.Result, nil
}

// Upsert creates the record if it doesn't exist, or updates it if it does.
func Upsert[T any](ctx context.Context, db *DB, what string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "upsert", what, data); err != nil {
		return nil, fmt.Errorf("surrealdb: upsert: %w", err)
	}
	return res.Result, nil
}

// Merge merges data into an existing table or record, leaving fields not
// present in data untouched.
func Merge[T any](ctx context.Context, db *DB, what string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "merge", what, data); err != nil {
		return nil, fmt.Errorf("surrealdb: merge: %w", err)
	}
	return res.Result, nil
}

// Patch applies a sequence of JSON-Patch-style operations to a table or
// record.
func Patch[T any](ctx context.Context, db *DB, what string, patches []Patch) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "patch", what, patches); err != nil {
		return nil, fmt.Errorf("surrealdb: patch: %w", err)
	}
	return res.Result, nil
}

// Delete removes a table or a single record.
func Delete[T any](ctx context.Context, db *DB, what string) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "delete", what); err != nil {
		return nil, fmt.Errorf("surrealdb: delete: %w", err)
	}
	return res.Result, nil
}

// Insert bulk-inserts one or more records into a table.
func Insert[T any](ctx context.Context, db *DB, table string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "insert", table, data); err != nil {
		return nil, fmt.Errorf("surrealdb: insert: %w", err)
	}
	return res.Result, nil
}

// Relate draws a graph edge of type relation from in to out, with
// optional edge content in data.
func Relate[T any](ctx context.Context, db *DB, in, relation, out string, data any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "relate", in, relation, out, data); err != nil {
		return nil, fmt.Errorf("surrealdb: relate: %w", err)
	}
	return res.Result, nil
}

// Run invokes a SurrealQL function by name (e.g. "fn::my_function" or a
// builtin like "time::now") with the given positional arguments.
func Run[T any](ctx context.Context, db *DB, funcName string, version *string, args []any) (*T, error) {
	var res connection.RPCResponse[T]
	if err := connection.Send(db.conn, ctx, &res, "run", funcName, version, args); err != nil {
		return nil, fmt.Errorf("surrealdb: run: %w", err)
	}
	return res.Result, nil
}
