package constants

import (
	"errors"
	"time"
)

// Errors
var (
	InvalidResponse = errors.New("invalid SurrealDB response") //nolint:stylecheck
	ErrQuery        = errors.New("error occurred processing the SurrealDB query")
	ErrNoRow        = errors.New("error no row")
)

var (
	WebsocketScheme      = "ws"
	WebsocketSucerScheme = "wss"
	HTTPScheme           = "http"
	HTTPSecureScheme     = "https"
)

// OneSecondToNanoSecond is the scale factor used when splitting a duration
// or timestamp into whole seconds and a nanosecond remainder for the
// two-element CBOR representation SurrealDB expects.
const OneSecondToNanoSecond = int64(1_000_000_000)

// Request id length, close-frame code and default Send timeout used by the
// WebSocket engines in pkg/connection.
const (
	RequestIDLength  = 16
	CloseMessageCode = 1000
	DefaultWSTimeout = 30 * time.Second
)
