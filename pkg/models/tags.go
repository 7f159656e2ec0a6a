package models

// CBOR tag numbers used on the SurrealDB wire protocol. Values above 1000
// are reserved by SurrealDB for user-defined extensions and are never
// assigned here.
const (
	TagNone              = 6
	TagTable             = 7
	TagRecordID          = 8
	TagUUIDString        = 9
	TagDecimalString     = 10
	TagCustomDatetime    = 12
	TagCustomDuration    = 14
	TagSpecBinaryUUID    = 37
	TagBoundIncluded     = 50
	TagBoundExcluded     = 51
	TagRange             = 49
	TagGeometryPoint     = 88
	TagGeometryLine      = 89
	TagGeometryPolygon   = 90
	TagGeometryMultiPoint   = 91
	TagGeometryMultiLine    = 92
	TagGeometryMultiPolygon = 93
	TagGeometryCollection   = 94
)
