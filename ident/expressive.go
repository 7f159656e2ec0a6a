package ident

import "github.com/vantage-db/vantage-go/expr"

// Expr renders the identifier as a scalar, pre-escaped expression so it
// composes directly inside query templates, e.g. expr.New[any]("SELECT *
// FROM {}", someIdent).
func (i Ident) Expr() *expr.Expression[any] {
	return mustExpr(i.String())
}

func (t Thing) Expr() *expr.Expression[any] {
	return mustExpr(t.String())
}

// mustExpr wraps a single already-rendered string as a one-placeholder
// expression. "{}" and a single argument always match arity, so the only
// way New fails here is an expr package bug, not a caller mistake.
func mustExpr(s string) *expr.Expression[any] {
	e, err := expr.New[any]("{}", s)
	if err != nil {
		panic(err)
	}
	return e
}
