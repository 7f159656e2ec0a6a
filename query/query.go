// Package query implements the query executor and binder (C9): it takes a
// composed expr.Expression, flattens it, resolves any deferred parameters,
// and produces the SurrealQL text plus a $_argN parameter map ready to send
// over the wire.
//
// Grounded on vantage-surrealdb/src/surrealdb.rs's prepare_query in the
// original implementation: deferred parameters are invoked (not stubbed).
// A parameter of any other kind that survives flattening makes Prepare
// return an error; it is neither rendered nor executed.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/vantage-db/vantage-go/expr"
)

// Value is the parameter type every expr.Expression in this module is
// instantiated with: a SurrealQL scalar, record id, or any value the CBOR
// codec can carry.
type Value = interface{}

// Expr is the expression type used throughout Vantage.
type Expr = expr.Expression[Value]

// ErrDeferredReturnedDeferred indicates a Deferred callback violated the
// one-level resolution rule by returning another Deferred value.
var ErrDeferredReturnedDeferred = fmt.Errorf("query: deferred callback returned another deferred value")

// Prepared is the bound form of an Expression: SurrealQL text with
// $_argN placeholders, plus the parameter values those placeholders refer
// to.
type Prepared struct {
	SurrealQL string
	Params    map[string]Value
}

// Prepare flattens e, invokes every deferred parameter it contains, and
// binds each resulting scalar into an ordered "$_argN" placeholder, exactly
// as vantage-surrealdb's prepare_query does. Session vars and vars are
// copied into Params under their own names, not as $_argN; session vars
// are merged first, and vars supplied here win on key collision, per the
// "argument wins" resolution recorded in SPEC_FULL.md.
func Prepare(ctx context.Context, e *Expr, sessionVars map[string]Value, vars map[string]Value) (*Prepared, error) {
	flat, err := expr.Flatten(e)
	if err != nil {
		return nil, fmt.Errorf("query: preparing expression: %w", err)
	}

	params := make(map[string]Value, len(sessionVars)+len(vars))
	for k, v := range sessionVars {
		params[k] = v
	}
	for k, v := range vars {
		params[k] = v
	}

	var sb strings.Builder
	argCounter := 0
	if err := bind(ctx, flat, &sb, params, &argCounter); err != nil {
		return nil, err
	}

	return &Prepared{SurrealQL: sb.String(), Params: params}, nil
}

func bind(ctx context.Context, flat expr.Flat[Value], sb *strings.Builder, params map[string]Value, argCounter *int) error {
	for i, part := range flat.Parts {
		sb.WriteString(part)
		if i >= len(flat.Params) {
			continue
		}
		p := flat.Params[i]
		switch p.Kind {
		case expr.KindScalar:
			bindScalar(sb, params, argCounter, p.Scalar)
		case expr.KindDeferred:
			resolved, err := p.Deferred.Call(ctx)
			if err != nil {
				return fmt.Errorf("query: resolving deferred parameter: %w", err)
			}
			switch resolved.Kind() {
			case expr.KindScalar:
				bindScalar(sb, params, argCounter, resolved.ScalarValue())
			case expr.KindNested:
				nestedFlat, err := expr.Flatten(resolved.NestedValue())
				if err != nil {
					return fmt.Errorf("query: resolving deferred parameter: %w", err)
				}
				if err := bind(ctx, nestedFlat, sb, params, argCounter); err != nil {
					return err
				}
			case expr.KindDeferred:
				return ErrDeferredReturnedDeferred
			}
		default:
			// Nested should never survive Flatten; if the flattener has a
			// bug, fail loud with an error naming the position and the
			// template text before it rather than silently dropping the
			// parameter.
			return fmt.Errorf("query: unflattened nested parameter in position %d: %s", i, flat.Parts[i])
		}
	}
	return nil
}

func bindScalar(sb *strings.Builder, params map[string]Value, argCounter *int, v Value) {
	*argCounter++
	name := fmt.Sprintf("_arg%d", *argCounter)
	params[name] = v
	sb.WriteString("$")
	sb.WriteString(name)
}
