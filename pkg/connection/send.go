package connection

import (
	"context"
)

// Send is a thin generic wrapper over Connection.Send, letting callers pass
// a typed *RPCResponse[Result] destination instead of an untyped interface{}.
// The underlying Connection implementation (e.g. WebSocketConnection.Send)
// unmarshals directly into res, so there's nothing left to do here but
// forward the call with res as a bare interface{} if it's nil, since a
// typed nil *RPCResponse[Result] would otherwise compare unequal to untyped
// nil deep inside the unmarshaling path.
func Send[Result any](c Connection, ctx context.Context, res *RPCResponse[Result], method string, params ...interface{}) error {
	if res == nil {
		return c.Send(ctx, nil, method, params...)
	}
	return c.Send(ctx, res, method, params...)
}
