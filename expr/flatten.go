package expr

import "strings"

// splitTemplate splits a template string on its "{}" placeholders, returning
// one more part than there were placeholders.
func splitTemplate(template string) []string {
	return strings.Split(template, "{}")
}

// FlatParam is one parameter slot in a Flat expression: either a value
// already known, or a Deferred still to be invoked. A flattened expression
// never carries a Nested param — Flatten inlines every nested expression it
// finds into the surrounding template.
type FlatParam[V any] struct {
	Deferred Deferred[V]
	Scalar   V
	Kind     Kind
}

// Flat is the output of Flatten: a template whose "{}" placeholders line up
// one-to-one with Params, with every nested sub-expression already spliced
// in.
type Flat[V any] struct {
	Parts  []string
	Params []FlatParam[V]
}

// Flatten walks an Expression, inlining every Nested parameter's template
// and parameters into the surrounding one, recursively. Scalars and
// Deferreds pass through untouched — deferreds are resolved later, by the
// query executor, not by the flattener. It fails with *MismatchedArity
// rather than panicking if e's Params count doesn't match its Template's
// placeholder count — New already guards against this for callers that go
// through it, but Expression's fields are exported, so Flatten re-checks
// for anyone who built one by hand.
func Flatten[V any](e *Expression[V]) (Flat[V], error) {
	var out Flat[V]
	parts := splitTemplate(e.Template)
	if len(parts)-1 != len(e.Params) {
		return out, &MismatchedArity{Placeholders: len(parts) - 1, Params: len(e.Params)}
	}

	out.Parts = append(out.Parts, parts[0])
	for i, param := range e.Params {
		switch param.Kind() {
		case KindScalar:
			out.Params = append(out.Params, FlatParam[V]{Kind: KindScalar, Scalar: param.ScalarValue()})
			out.Parts = append(out.Parts, parts[i+1])
		case KindDeferred:
			out.Params = append(out.Params, FlatParam[V]{Kind: KindDeferred, Deferred: param.DeferredValue()})
			out.Parts = append(out.Parts, parts[i+1])
		case KindNested:
			nestedFlat, err := Flatten(param.NestedValue())
			if err != nil {
				return out, err
			}
			mergeInto(&out, nestedFlat)
			out.Parts[len(out.Parts)-1] += parts[i+1]
		}
	}
	return out, nil
}

// mergeInto splices a nested Flat expression into the tail of out: out's
// last part gets the nested expression's first part appended, the nested
// expression's remaining parts and params are appended in order, and the
// caller is left to append whatever followed the placeholder in the parent
// template onto the new last part.
func mergeInto[V any](out *Flat[V], nested Flat[V]) {
	out.Parts[len(out.Parts)-1] += nested.Parts[0]
	out.Params = append(out.Params, nested.Params...)
	out.Parts = append(out.Parts, nested.Parts[1:]...)
}
