package expr

import (
	"context"
	"strings"
)

// FromVec composes a list of sub-expressions into one, joining their
// rendered text with separator — e.g. FromVec of three "{} = {}"-shaped
// conditions and " AND " yields a single expression equivalent to
// "cond1 AND cond2 AND cond3". Each item becomes a Nested parameter of the
// result, so Flatten inlines them in order.
//
// Grounded on the "from_vec" combinator exercised in
// vantage-expressions/tests/readme_examples.rs, which builds a WHERE
// clause the same way: compose the individual conditions first, then join
// them, rather than interpolating separators into raw SQL text.
func FromVec[V any](items []*Expression[V], separator string) *Expression[V] {
	if len(items) == 0 {
		return &Expression[V]{}
	}

	var tmpl strings.Builder
	params := make([]Param[V], 0, len(items))
	for i, item := range items {
		if i > 0 {
			tmpl.WriteString(separator)
		}
		tmpl.WriteString("{}")
		params = append(params, Nested(item))
	}
	return &Expression[V]{Template: tmpl.String(), Params: params}
}

// Map converts an Expression[V] into an Expression[V2] by applying convert
// to every scalar value it carries, including ones a Deferred only
// produces at execution time. The template itself is untouched, since only
// parameter values change type — this is the "map<V, V2>()" combinator
// named alongside from_vec, used to adapt a generic expression built over
// one value type (e.g. any) into the concrete type a specific backend
// expects.
func Map[V, V2 any](e *Expression[V], convert func(V) V2) *Expression[V2] {
	params := make([]Param[V2], len(e.Params))
	for i, p := range e.Params {
		params[i] = mapParam(p, convert)
	}
	return &Expression[V2]{Template: e.Template, Params: params}
}

func mapParam[V, V2 any](p Param[V], convert func(V) V2) Param[V2] {
	switch p.Kind() {
	case KindNested:
		return Nested(Map(p.NestedValue(), convert))
	case KindDeferred:
		d := p.DeferredValue()
		return DeferredParam(NewDeferred(func(ctx context.Context) (Param[V2], error) {
			resolved, err := d.Call(ctx)
			if err != nil {
				var zero Param[V2]
				return zero, err
			}
			return mapParam(resolved, convert), nil
		}))
	default:
		return Scalar(convert(p.ScalarValue()))
	}
}
