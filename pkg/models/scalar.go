package models

// Table identifies a SurrealDB table by name, tag 7 on the wire. It has no
// Expr method, so it does not implement expr.Expressive; String returns the
// bare name without identifier escaping.
type Table string

func (t Table) String() string { return string(t) }

// Decimal carries an arbitrary-precision decimal value as its canonical
// string representation, tag 10 on the wire. SurrealDB decimals exceed the
// range/precision of float64, so they are kept as strings end to end.
type Decimal string
