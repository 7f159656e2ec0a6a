package models

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vantage-db/vantage-go/internal/codec"
	"io"
	"reflect"
	"time"
)

// registerCborTags builds the tag set used for both marshaling and
// unmarshaling. Every Vantage CBOR type in this package (NONE, RecordID,
// Decimal, CustomDateTime, CustomDuration, UUID, Table, the Geometry family)
// gets an entry here so that a tag encountered while decoding into an `any`
// field can be resolved to its concrete Go type; each type's own MarshalCBOR/
// UnmarshalCBOR still does the actual encoding.
func registerCborTags() cbor.TagSet {
	customTags := map[uint64]interface{}{
		TagGeometryPoint:         GeometryPoint{},
		TagGeometryLine:          GeometryLine{},
		TagGeometryPolygon:       GeometryPolygon{},
		TagGeometryMultiPoint:    GeometryMultiPoint{},
		TagGeometryMultiLine:     GeometryMultiLine{},
		TagGeometryMultiPolygon:  GeometryMultiPolygon{},
		TagGeometryCollection:    GeometryCollection{},

		TagTable:          Table(""),
		TagDecimalString:  Decimal(""),
		TagSpecBinaryUUID: UUID{},
		TagNone:           CustomNil{},

		TagRecordID:       RecordID{},
		TagCustomDatetime: CustomDateTime{Time: time.Now()},
		TagCustomDuration: CustomDuration{},
	}

	tags := cbor.NewTagSet()
	for tag, customType := range customTags {
		err := tags.Add(
			cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
			reflect.TypeOf(customType),
			tag,
		)
		if err != nil {
			panic(err)
		}
	}

	return tags
}

type CborMarshaler struct {
}

func (c CborMarshaler) Marshal(v interface{}) ([]byte, error) {
	//v = replacerBeforeEncode(v)
	em := getCborEncoder()
	return em.Marshal(v)
}

func (c CborMarshaler) NewEncoder(w io.Writer) codec.Encoder {
	em := getCborEncoder()
	return em.NewEncoder(w)
}

type CborUnmarshaler struct {
}

func (c CborUnmarshaler) Unmarshal(data []byte, dst interface{}) error {
	dm := getCborDecoder()
	err := dm.Unmarshal(data, dst)
	if err != nil {
		return err
	}

	//replacerAfterDecode(&dst)
	return nil
}

func (c CborUnmarshaler) NewDecoder(r io.Reader) codec.Decoder {
	dm := getCborDecoder()
	return dm.NewDecoder(r)
}

func getCborEncoder() cbor.EncMode {
	tags := registerCborTags()
	em, err := cbor.EncOptions{
		Time:    cbor.TimeRFC3339,
		TimeTag: cbor.EncTagRequired,
	}.EncModeWithTags(tags)
	if err != nil {
		panic(err)
	}

	return em
}

func getCborDecoder() cbor.DecMode {
	tags := registerCborTags()
	dm, err := cbor.DecOptions{
		TimeTagToAny: cbor.TimeTagToTime,
	}.DecModeWithTags(tags)
	if err != nil {
		panic(err)
	}

	return dm
}
