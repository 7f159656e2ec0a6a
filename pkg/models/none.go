package models

import "github.com/fxamacker/cbor/v2"

// CustomNil represents the SurrealDB NONE value, tag 6, distinct from a
// JSON/CBOR null. Use the None value rather than constructing one directly.
type CustomNil struct{}

// None is the canonical NONE value.
var None = CustomNil{}

func (c CustomNil) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cbor.Tag{Number: TagNone, Content: nil})
}

func (c *CustomNil) UnmarshalCBOR(data []byte) error {
	var tag cbor.Tag
	if err := cbor.Unmarshal(data, &tag); err != nil {
		return err
	}
	return nil
}

// AnySurrealValue type-erases any of the CBOR-tagged Vantage types
// (CustomNil, RecordID, Decimal, CustomDateTime, CustomDuration, UUID,
// Table, the Geometry family) or a plain scalar/map/slice behind a single
// value that round-trips through CBOR without the caller needing to know
// which concrete SurrealDB type a given field holds ahead of time.
type AnySurrealValue struct {
	Value interface{}
}

func (a AnySurrealValue) MarshalCBOR() ([]byte, error) {
	em := getCborEncoder()
	return em.Marshal(a.Value)
}

func (a *AnySurrealValue) UnmarshalCBOR(data []byte) error {
	dm := getCborDecoder()
	var v interface{}
	if err := dm.Unmarshal(data, &v); err != nil {
		return err
	}
	a.Value = v
	return nil
}
