// Package expr implements the typed expression/query-composition core:
// Expression templates with ordered parameters, a structural flattener that
// inlines nested expressions, and deferred callbacks whose value is resolved
// only at execution time.
//
// The design is grounded on the teacher's contrib/surrealql expression
// builder (template string plus parameter list, placeholders rendered as
// bound variables) generalized with Go generics and extended with the
// deferred-callback and nested-expression composition modeled in the
// original Rust vantage-expressions crate.
package expr

import (
	"context"
	"fmt"
	"strings"
)

// Kind distinguishes the three things a parameter slot in an Expression can
// hold: an already-known value, a nested sub-expression, or a callback whose
// value isn't known until execution time.
type Kind int

const (
	KindScalar Kind = iota
	KindNested
	KindDeferred
)

// DeferredFunc produces a parameter value on demand. It may itself return a
// Nested parameter (e.g. "the current limit, as its own sub-query"), but
// must never return another Deferred — callers resolve exactly one level.
type DeferredFunc[V any] func(ctx context.Context) (Param[V], error)

// Deferred wraps a DeferredFunc so it can be carried as an ordinary
// parameter value and invoked later by the query executor.
type Deferred[V any] struct {
	fn DeferredFunc[V]
}

// NewDeferred builds a Deferred from a plain callback.
func NewDeferred[V any](fn DeferredFunc[V]) Deferred[V] {
	return Deferred[V]{fn: fn}
}

// Call invokes the underlying callback.
func (d Deferred[V]) Call(ctx context.Context) (Param[V], error) {
	if d.fn == nil {
		var zero Param[V]
		return zero, fmt.Errorf("expr: deferred callback is nil")
	}
	return d.fn(ctx)
}

// Param is one parameter slot in an Expression or its flattened form.
type Param[V any] struct {
	kind     Kind
	scalar   V
	nested   *Expression[V]
	deferred Deferred[V]
}

func Scalar[V any](v V) Param[V] {
	return Param[V]{kind: KindScalar, scalar: v}
}

func Nested[V any](e *Expression[V]) Param[V] {
	return Param[V]{kind: KindNested, nested: e}
}

func DeferredParam[V any](d Deferred[V]) Param[V] {
	return Param[V]{kind: KindDeferred, deferred: d}
}

func (p Param[V]) Kind() Kind               { return p.kind }
func (p Param[V]) ScalarValue() V           { return p.scalar }
func (p Param[V]) NestedValue() *Expression[V] { return p.nested }
func (p Param[V]) DeferredValue() Deferred[V]  { return p.deferred }

// Preview renders a parameter for debugging without resolving deferreds,
// matching the teacher/original convention that a deferred previews as a
// fixed placeholder string rather than being invoked.
func (p Param[V]) Preview() string {
	switch p.kind {
	case KindScalar:
		return fmt.Sprintf("%v", p.scalar)
	case KindNested:
		return p.nested.Preview()
	case KindDeferred:
		return "**deferred()"
	default:
		return "?"
	}
}

// Expressive is implemented by any type that can render itself as an
// Expression, so it composes directly as a New() argument. ident.Ident and
// ident.Thing both implement this.
type Expressive[V any] interface {
	Expr() *Expression[V]
}

// Expression is a template string with "{}" placeholders plus an ordered
// list of parameters, one per placeholder.
type Expression[V any] struct {
	Template string
	Params   []Param[V]
}

// New builds an Expression from a template and a list of arguments. Each
// argument must be a V (a scalar value), a *Expression[V] (a nested
// expression), a Deferred[V] (a value resolved later), or an Expressive[V]
// (rendered as its own nested expression). It fails with *MismatchedArity
// if the template's "{}" placeholder count doesn't equal len(args).
func New[V any](template string, args ...interface{}) (*Expression[V], error) {
	placeholders := strings.Count(template, "{}")
	if placeholders != len(args) {
		return nil, &MismatchedArity{Placeholders: placeholders, Params: len(args)}
	}

	params := make([]Param[V], 0, len(args))
	for _, a := range args {
		params = append(params, toParam[V](a))
	}
	return &Expression[V]{Template: template, Params: params}, nil
}

func toParam[V any](a interface{}) Param[V] {
	switch t := a.(type) {
	case *Expression[V]:
		return Nested(t)
	case Deferred[V]:
		return DeferredParam(t)
	case Expressive[V]:
		return Nested(t.Expr())
	case V:
		return Scalar(t)
	default:
		panic(fmt.Sprintf("expr.New: argument of type %T is not a valid parameter", a))
	}
}

// Preview renders the expression's template with each parameter previewed
// in place, for logging and error messages. It never invokes deferreds.
func (e *Expression[V]) Preview() string {
	var out string
	parts := splitTemplate(e.Template)
	for i, part := range parts {
		out += part
		if i < len(e.Params) {
			out += e.Params[i].Preview()
		}
	}
	return out
}
