package ident

import "fmt"

// Thing is a SurrealDB record identifier: a table name plus a record key.
// Both sides are individually quoted per the identifier rules in Quote.
type Thing struct {
	Table string
	ID    string
}

func NewThing(table, id string) Thing {
	return Thing{Table: table, ID: id}
}

func (t Thing) String() string {
	return Quote(t.Table) + ":" + Quote(t.ID)
}

func (t Thing) SurrealString() string { return t.String() }

// Inclusivity marks whether a range endpoint includes its boundary value.
type Inclusivity int

const (
	Excluded Inclusivity = iota
	Included
)

// Range renders a record-id range such as table:1..10 or table:1>..=10.
// The begin sigil ">" marks an excluded lower bound; the end sigil "="
// marks an included upper bound, mirroring SurrealQL range syntax.
type Range struct {
	Table      string
	Begin      string
	BeginIncl  Inclusivity
	End        string
	EndIncl    Inclusivity
}

func (r Range) String() string {
	beginSigil := ""
	if r.BeginIncl == Excluded {
		beginSigil = ">"
	}
	endSigil := ""
	if r.EndIncl == Included {
		endSigil = "="
	}
	return fmt.Sprintf("%s:%s%s..%s%s", Quote(r.Table), r.Begin, beginSigil, endSigil, r.End)
}

func (r Range) SurrealString() string { return r.String() }
