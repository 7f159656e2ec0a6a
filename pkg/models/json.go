package models

import (
	"encoding/json"
	"io"

	"github.com/vantage-db/vantage-go/internal/codec"
)

// JSONMarshaler and JSONUnmarshaler are the JSON-engine counterparts to
// CborMarshaler/CborUnmarshaler, used by the ws+json connection builder
// path. Unlike the CBOR side, none of this package's SurrealQL value types
// (RecordID, CustomDuration, CustomDateTime, UUID, the Geometry family,
// Decimal, Table) carry MarshalJSON/UnmarshalJSON methods, so they round
// trip through encoding/json's default struct encoding rather than
// SurrealDB's JSON-mode sigil encoding. Callers who need exact fidelity for
// those types over the JSON engine should prefer the CBOR engine until
// dedicated JSON codecs exist for them.
type JSONMarshaler struct{}

func (j JSONMarshaler) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j JSONMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	return json.NewEncoder(w)
}

type JSONUnmarshaler struct{}

func (j JSONUnmarshaler) Unmarshal(data []byte, dst interface{}) error {
	return json.Unmarshal(data, dst)
}

func (j JSONUnmarshaler) NewDecoder(r io.Reader) codec.Decoder {
	return json.NewDecoder(r)
}
