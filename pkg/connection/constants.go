package connection

import (
	"errors"
	"time"
)

const (
	// RequestIDLength size of id sent on WS request
	RequestIDLength = 16
	// CloseMessageCode identifier the message id for a close request
	CloseMessageCode = 1000
	// DefaultTimeout timeout in seconds
	DefaultTimeout = 30
	// DefaultWSTimeout is the default Send timeout for a WebSocketConnection.
	DefaultWSTimeout = 30 * time.Second
)

var (
	ErrIDInUse           = errors.New("id already in use")
	ErrTimeout           = errors.New("timeout")
	ErrInvalidResponseID = errors.New("invalid response id")
)

const (
	AuthTokenKey          = "auth_token"
	WebsocketScheme       = "ws"
	SecureWebsocketScheme = "wss"
)
