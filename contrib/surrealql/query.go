// Package surrealql provides a query builder for SurrealQL queries.
// It allows you to construct SurrealQL queries programmatically with type safety.
package surrealql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vantage-db/vantage-go/expr"
	"github.com/vantage-db/vantage-go/ident"
	"github.com/vantage-db/vantage-go/query"
)

// Constants for common return clauses
const (
	ReturnNoneClause   = "NONE"
	ReturnDiffClause   = "DIFF"
	ReturnBeforeClause = "BEFORE"
	ReturnAfterClause  = "AFTER"
	StatusOK           = "OK"
	ExplainClause      = "EXPLAIN"
	ExplainFullClause  = "EXPLAIN FULL"
)

// Query represents a SurrealQL query that can be built and executed.
type Query interface {
	// Build returns the SurrealQL string and parameters for the query
	Build() (string, map[string]any)

	// build generates the SurrealQL string in the provided build context.
	// The build mutates the context, and the context is propagated across
	// multiple sub queries so that variables are unique.
	build(c *queryBuildContext, b *strings.Builder)

	// String returns the SurrealQL string for the query
	String() string
}

// queryBuildContext holds the context for building queries.
// It enables building a query with unique variable names.
type queryBuildContext struct {
	vars map[string]any

	ctx        string
	underlying *queryBuildContext
}

// newQueryBuildContext creates a new base query
func newQueryBuildContext() queryBuildContext {
	return queryBuildContext{
		vars: make(map[string]any),
	}
}

func (q *queryBuildContext) in(ctx string) *queryBuildContext {
	return &queryBuildContext{
		ctx:        ctx,
		underlying: q,
	}
}

// generateParamName generates a unique parameter name
func (q *queryBuildContext) generateParamName(prefix string) string {
	if q.underlying != nil {
		panic("unreachable")
	}

	for i := 1; ; i++ {
		name := fmt.Sprintf("%s_%d", prefix, i)
		if _, exists := q.vars[name]; !exists {
			return name
		}
	}
}

// generateAndAddParam generates a unique parameter name and adds it to the query context
func (q *queryBuildContext) generateAndAddParam(prefix string, value any) string {
	if q.underlying != nil {
		return q.underlying.generateAndAddParam(q.ctx+"_"+prefix, value)
	}

	name := q.generateParamName(prefix)
	q.vars[name] = value
	return name
}

// baseQuery is the bind-variable context shared by every top-level query
// builder (SelectQuery, CreateQuery, and so on). It's a queryBuildContext
// with a name that reads naturally when embedded: `CreateQuery{ baseQuery
// ... }` rather than `CreateQuery{ queryBuildContext ... }`.
type baseQuery struct {
	queryBuildContext
}

// newBaseQuery creates a fresh, empty bind-variable context for a top-level
// query builder.
func newBaseQuery() baseQuery {
	return baseQuery{queryBuildContext: newQueryBuildContext()}
}

// addParam records a resolved bind variable under name.
func (b *baseQuery) addParam(name string, value any) {
	b.vars[name] = value
}

// escapeIdent escapes an identifier for use in SurrealQL, using the
// angle-bracket quoting scheme the wire protocol expects.
func escapeIdent(raw string) string {
	return ident.Quote(raw)
}

// Lower reconstructs q's rendered SurrealQL text and ad hoc bind-variable
// map as an expr.Expression, so a caller can compose it into the real
// expression/executor pipeline (surrealdb.QueryExpr flattens and binds it
// via query.Prepare) instead of sending Build's output as a raw string —
// "C10 composes an Expression, C9 flattens and names parameters, C8
// ships it".
func Lower(q Query) *query.Expr {
	sql, vars := q.Build()
	return toExpression(sql, vars)
}

// toExpression turns a rendered SurrealQL string containing "$name"
// placeholders (one per entry in vars) into an expr.Expression template,
// in the order the names actually appear in sql, so it can be re-bound
// through query.Prepare.
func toExpression(sql string, vars map[string]any) *query.Expr {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	// Check longer names first so "$param_10" isn't cut short by a
	// "$param_1" match.
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	var tmpl strings.Builder
	var args []interface{}
	remaining := sql
	for {
		idx, name := firstParam(remaining, names)
		if idx < 0 {
			tmpl.WriteString(remaining)
			break
		}
		tmpl.WriteString(remaining[:idx])
		tmpl.WriteString("{}")
		args = append(args, vars[name])
		remaining = remaining[idx+1+len(name):]
	}

	e, err := expr.New[query.Value](tmpl.String(), args...)
	if err != nil {
		// toExpression emits exactly one "{}" per matched "$name" token, so
		// a mismatch here would be a bug in this function, not in q.
		panic(err)
	}
	return e
}

// firstParam returns the position and name of the first "$name" token in s
// that matches one of names on a full token boundary (so "$param_1" isn't
// matched inside "$param_10"), or -1 if none is found.
func firstParam(s string, names []string) (int, string) {
	for i := 0; i < len(s); i++ {
		if s[i] != '$' {
			continue
		}
		for _, name := range names {
			if !strings.HasPrefix(s[i+1:], name) {
				continue
			}
			end := i + 1 + len(name)
			if end < len(s) && isIdentByte(s[end]) {
				continue
			}
			return i, name
		}
	}
	return -1, ""
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
