package surrealdb

import "github.com/fxamacker/cbor/v2"

// Auth holds the credentials for one of SurrealDB's signin/signup variants:
// root (Username/Password only), namespace (+Namespace), database
// (+Namespace+Database), scope/record access (+Scope or +Access plus
// whatever extra fields the access method's SIGNIN/SIGNUP query expects,
// carried via Params), or a bare Token.
//
// Grounded on pkg/model/model.go's Auth struct, generalized to the scope
// and record-access variants named in the governing specification.
type Auth struct {
	Namespace string         `cbor:"ns,omitempty"`
	Database  string         `cbor:"db,omitempty"`
	Scope     string         `cbor:"sc,omitempty"`
	Access    string         `cbor:"ac,omitempty"`
	Username  string         `cbor:"user,omitempty"`
	Password  string         `cbor:"pass,omitempty"`
	Params    map[string]any `cbor:"-"`
}

// MarshalCBOR flattens Auth's named fields together with any extra Params
// into a single CBOR map, so that scope/access SIGNIN queries that expect
// arbitrary extra fields (e.g. "email", "confirm_password") can ride along
// with the standard ones.
func (a Auth) MarshalCBOR() ([]byte, error) {
	m := make(map[string]any, len(a.Params)+6)
	for k, v := range a.Params {
		m[k] = v
	}
	if a.Namespace != "" {
		m["ns"] = a.Namespace
	}
	if a.Database != "" {
		m["db"] = a.Database
	}
	if a.Scope != "" {
		m["sc"] = a.Scope
	}
	if a.Access != "" {
		m["ac"] = a.Access
	}
	if a.Username != "" {
		m["user"] = a.Username
	}
	if a.Password != "" {
		m["pass"] = a.Password
	}
	return cbor.Marshal(m)
}

// Patch describes one JSON-Patch-style operation for the PATCH RPC method.
type Patch struct {
	Op    string `cbor:"op"`
	Path  string `cbor:"path"`
	Value any    `cbor:"value,omitempty"`
}
