package expr

import "fmt"

// MismatchedArity reports that an Expression's template placeholder count
// doesn't match its parameter count. New returns it when the caller passes
// the wrong number of arguments; Flatten returns it if it ever encounters
// an Expression value built by some other means (e.g. a struct literal)
// whose Params slice was never validated against its Template.
type MismatchedArity struct {
	Placeholders int
	Params       int
}

func (e *MismatchedArity) Error() string {
	return fmt.Sprintf("expr: template has %d placeholder(s) but %d parameter(s) given", e.Placeholders, e.Params)
}
