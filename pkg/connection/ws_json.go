package connection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"reflect"
	"sync"
	"time"

	"github.com/vantage-db/vantage-go/internal/codec"
	"github.com/vantage-db/vantage-go/internal/rand"
	"github.com/vantage-db/vantage-go/pkg/constants"
	"github.com/vantage-db/vantage-go/pkg/logger"
	vantagelog "github.com/vantage-db/vantage-go/pkg/logger/slog"

	gorilla "github.com/gorilla/websocket"
)

// JSONDialer is DefaultDialer's JSON-engine counterpart. It carries no
// Subprotocols entry: the JSON engine is what a SurrealDB server speaks
// when the client doesn't negotiate the "cbor" subprotocol at all, per the
// connection builder's "one framing per content type" contract.
var JSONDialer = &gorilla.Dialer{
	Proxy:             gorilla.DefaultDialer.Proxy,
	HandshakeTimeout:  gorilla.DefaultDialer.HandshakeTimeout,
	EnableCompression: true,
}

// JSONWebSocketConnection is the JSON-framed counterpart to
// WebSocketConnection: the same connect/reconnect state machine and RPC
// request/response/notification shape, but frames are written as
// gorilla.TextMessage carrying encoding/json rather than
// gorilla.BinaryMessage carrying CBOR, and the raw wire value threaded
// through RPCResponse is json.RawMessage rather than cbor.RawMessage.
//
// It is kept as its own type rather than a second instantiation of
// WebSocketConnection because WebSocketConnection's response/notification
// channels are hard-typed to cbor.RawMessage; duplicating the thin
// RPC-transport logic below was judged lower risk than making
// WebSocketConnection generic over its raw message type and touching every
// existing CBOR call site to pin the type argument.
type JSONWebSocketConnection struct {
	BaseURL     string
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler
	logger      logger.Logger

	Conn     *gorilla.Conn
	connLock sync.Mutex

	stateLock sync.RWMutex
	state     WebSocketConnectionState

	Timeout time.Duration
	Option  []func(ws *JSONWebSocketConnection) error

	responseChannels     map[string]chan RPCResponse[json.RawMessage]
	responseChannelsLock sync.RWMutex

	notificationChannels     map[string]chan Notification
	notificationChannelsLock sync.RWMutex

	connCloseCh    chan int
	connCloseError error
}

var _ Connection = (*JSONWebSocketConnection)(nil)

// NewJSONWebSocketConnection builds a JSONWebSocketConnection from the same
// NewConnectionParams the CBOR builder uses; pass models.JSONMarshaler{}/
// models.JSONUnmarshaler{} as the Marshaler/Unmarshaler, as the ws+json DSN
// scheme's connection builder path does.
func NewJSONWebSocketConnection(p NewConnectionParams) *JSONWebSocketConnection {
	return &JSONWebSocketConnection{
		BaseURL:     p.BaseURL,
		Marshaler:   p.Marshaler,
		Unmarshaler: p.Unmarshaler,

		responseChannels:     make(map[string]chan RPCResponse[json.RawMessage]),
		notificationChannels: make(map[string]chan Notification),

		Timeout: constants.DefaultWSTimeout,
		logger:  vantagelog.New(slog.NewJSONHandler(os.Stdout, nil)),
		state:   WebSocketStatePending,
	}
}

func (ws *JSONWebSocketConnection) preConnectionChecks() error {
	if ws.BaseURL == "" {
		return constants.ErrNoBaseURL
	}
	if ws.Marshaler == nil {
		return constants.ErrNoMarshaler
	}
	if ws.Unmarshaler == nil {
		return constants.ErrNoUnmarshaler
	}
	return nil
}

func (ws *JSONWebSocketConnection) Connect(ctx context.Context) error {
	if err := ws.preConnectionChecks(); err != nil {
		return err
	}
	return ws.tryConnecting(ctx)
}

func (ws *JSONWebSocketConnection) IsDisconnected() bool {
	ws.stateLock.RLock()
	defer ws.stateLock.RUnlock()
	return ws.state == WebSocketStateDisconnected
}

func (ws *JSONWebSocketConnection) transitionToConnecting() error {
	ws.stateLock.Lock()
	defer ws.stateLock.Unlock()

	switch ws.state {
	case WebSocketStateConnected:
		return errors.New("JSONWebSocketConnection is already connected")
	case WebSocketStateConnecting:
		return errors.New("JSONWebSocketConnection is already connecting")
	}

	ws.state = WebSocketStateConnecting
	return nil
}

func (ws *JSONWebSocketConnection) transitionToDisconnecting() error {
	ws.stateLock.Lock()
	defer ws.stateLock.Unlock()

	switch ws.state {
	case WebSocketStateConnecting:
		return errors.New("JSONWebSocketConnection is connecting, cannot disconnect")
	case WebSocketStateDisconnected:
		return errors.New("JSONWebSocketConnection is already disconnected")
	case WebSocketStatePending:
		return errors.New("JSONWebSocketConnection is pending, no need to disconnect")
	}

	ws.state = WebSocketStateDisconnecting
	return nil
}

func (ws *JSONWebSocketConnection) tryConnecting(ctx context.Context) error {
	if err := ws.transitionToConnecting(); err != nil {
		return err
	}

	if err := ws.connect(ctx); err != nil {
		ws.state = WebSocketStateDisconnected
		ws.logger.Error("failed to connect JSONWebSocketConnection", "error", err)
		return err
	}

	ws.state = WebSocketStateConnected
	ws.logger.Debug("JSONWebSocketConnection is connected")
	return nil
}

func (ws *JSONWebSocketConnection) connect(ctx context.Context) error {
	conn, res, err := JSONDialer.DialContext(ctx, fmt.Sprintf("%s/rpc", ws.BaseURL), nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	ws.connLock.Lock()
	defer ws.connLock.Unlock()

	ws.Conn = conn

	for _, option := range ws.Option {
		if err := option(ws); err != nil {
			return err
		}
	}

	ws.connCloseCh = make(chan int)
	go ws.readLoop()

	return nil
}

func (ws *JSONWebSocketConnection) SetTimeOut(timeout time.Duration) *JSONWebSocketConnection {
	ws.Option = append(ws.Option, func(ws *JSONWebSocketConnection) error {
		ws.Timeout = timeout
		return nil
	})
	return ws
}

func (ws *JSONWebSocketConnection) Logger(logData logger.Logger) *JSONWebSocketConnection {
	ws.logger = logData
	return ws
}

func (ws *JSONWebSocketConnection) Close(ctx context.Context) error {
	if err := ws.transitionToDisconnecting(); err != nil {
		return err
	}
	defer func() { ws.state = WebSocketStateDisconnected }()

	close(ws.connCloseCh)

	ws.connLock.Lock()
	defer ws.connLock.Unlock()

	conn := ws.Conn
	ws.Conn = nil

	writeErr := make(chan error, 1)
	go func() {
		if deadline, ok := ctx.Deadline(); ok {
			if err := conn.SetWriteDeadline(deadline); err != nil {
				writeErr <- err
				return
			}
			defer conn.SetWriteDeadline(time.Time{})
		}
		err := conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(constants.CloseMessageCode, ""))
		select {
		case writeErr <- err:
		case <-ctx.Done():
		}
	}()

	select {
	case err := <-writeErr:
		if err != nil {
			ws.logger.Error("failed to write close message", "error", err)
		}
	case <-ctx.Done():
	}

	return conn.Close()
}

func (ws *JSONWebSocketConnection) Use(ctx context.Context, namespace, database string) error {
	return ws.Send(ctx, nil, "use", namespace, database)
}

func (ws *JSONWebSocketConnection) Let(ctx context.Context, key string, value interface{}) error {
	return ws.Send(ctx, nil, "let", key, value)
}

func (ws *JSONWebSocketConnection) Unset(ctx context.Context, key string) error {
	return ws.Send(ctx, nil, "unset", key)
}

func (ws *JSONWebSocketConnection) GetUnmarshaler() codec.Unmarshaler {
	return ws.Unmarshaler
}

func (ws *JSONWebSocketConnection) createResponseChannel(id string) (chan RPCResponse[json.RawMessage], error) {
	ws.responseChannelsLock.Lock()
	defer ws.responseChannelsLock.Unlock()

	if _, ok := ws.responseChannels[id]; ok {
		return nil, fmt.Errorf("%w: %v", constants.ErrIDInUse, id)
	}
	ch := make(chan RPCResponse[json.RawMessage])
	ws.responseChannels[id] = ch
	return ch, nil
}

func (ws *JSONWebSocketConnection) getResponseChannel(id string) (chan RPCResponse[json.RawMessage], bool) {
	ws.responseChannelsLock.RLock()
	defer ws.responseChannelsLock.RUnlock()
	ch, ok := ws.responseChannels[id]
	return ch, ok
}

func (ws *JSONWebSocketConnection) removeResponseChannel(id string) {
	ws.responseChannelsLock.Lock()
	defer ws.responseChannelsLock.Unlock()
	delete(ws.responseChannels, id)
}

func (ws *JSONWebSocketConnection) LiveNotifications(liveQueryID string) (chan Notification, error) {
	ws.notificationChannelsLock.Lock()
	defer ws.notificationChannelsLock.Unlock()

	if _, ok := ws.notificationChannels[liveQueryID]; ok {
		return nil, fmt.Errorf("%w: %v", constants.ErrIDInUse, liveQueryID)
	}
	ch := make(chan Notification)
	ws.notificationChannels[liveQueryID] = ch
	return ch, nil
}

func (ws *JSONWebSocketConnection) getNotificationChannel(id string) (chan Notification, bool) {
	ws.notificationChannelsLock.RLock()
	defer ws.notificationChannelsLock.RUnlock()
	ch, ok := ws.notificationChannels[id]
	return ch, ok
}

// Send mirrors WebSocketConnection.Send; see its doc comment for the
// timeout/cancellation contract, which is identical here.
func (ws *JSONWebSocketConnection) Send(ctx context.Context, dest interface{}, method string, params ...interface{}) error {
	if ws.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ws.Timeout)
		defer cancel()
	}

	select {
	case <-ws.connCloseCh:
		return ws.connCloseError
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	id := rand.String(constants.RequestIDLength)
	request := &RPCRequest{
		ID:     id,
		Method: method,
		Params: params,
	}

	responseChan, err := ws.createResponseChannel(id)
	if err != nil {
		return err
	}
	defer ws.removeResponseChannel(id)

	if err := ws.write(request); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	case res, open := <-responseChan:
		if !open {
			return errors.New("response channel closed")
		}

		if nilOrTypedNil(dest) || res.Result == nil || res.Error != nil {
			return eliminateTypedNilError(res.Error)
		}

		if err := ws.unmarshalRes(res, dest); err != nil {
			return fmt.Errorf("error unmarshaling response: %w", err)
		}

		return eliminateTypedNilError(res.Error)
	}
}

func (ws *JSONWebSocketConnection) unmarshalRes(res RPCResponse[json.RawMessage], dest interface{}) error {
	return UnmarshalJSONResult(ws.Unmarshaler, res, dest)
}

// UnmarshalJSONResult is UnmarshalResult's json.RawMessage counterpart: it
// unmarshals only the Result portion of an already ID/Error-decoded
// RPCResponse into dest, for the same reasons UnmarshalResult avoids
// decoding the envelope twice.
func UnmarshalJSONResult(unmarshaler codec.Unmarshaler, responseRaw RPCResponse[json.RawMessage], responseDest interface{}) error {
	var rawJSONBytes []byte
	if responseRaw.Result != nil {
		rawJSONBytes = []byte(*responseRaw.Result)
	}

	kind := reflect.TypeOf(responseDest).Kind()
	if kind != reflect.Ptr {
		return fmt.Errorf("Send: dest must be a pointer, got %T", responseDest)
	}

	const (
		FieldID     = "ID"
		FieldResult = "Result"
	)

	var destStruct reflect.Value
	switch structOrIfacePtrStruct := reflect.ValueOf(responseDest).Elem(); structOrIfacePtrStruct.Kind() {
	case reflect.Interface:
		ptrStruct := structOrIfacePtrStruct.Elem()
		if ptrStruct.Kind() == reflect.Ptr {
			destStruct = ptrStruct.Elem()
		} else {
			return fmt.Errorf("Send: dest must be a pointer to a struct, got %T", responseDest)
		}
	case reflect.Struct:
		destStruct = structOrIfacePtrStruct
	default:
		return fmt.Errorf("Send: dest must be a pointer to a struct or an interface, got %T", responseDest)
	}

	if responseRaw.ID != nil {
		destStruct.FieldByName(FieldID).Set(reflect.ValueOf(responseRaw.ID))
	}

	destStructDotResult := destStruct.FieldByName(FieldResult).Interface()
	if nilOrTypedNil(destStructDotResult) {
		destStructDotResult = reflect.New(destStruct.FieldByName(FieldResult).Type().Elem()).Interface()
		destStruct.FieldByName(FieldResult).Set(reflect.ValueOf(destStructDotResult))
	}

	if err := unmarshaler.Unmarshal(rawJSONBytes, destStructDotResult); err != nil {
		return fmt.Errorf("Send: error unmarshaling result: %w", err)
	}

	return nil
}

func (ws *JSONWebSocketConnection) write(v interface{}) error {
	data, err := ws.Marshaler.Marshal(v)
	if err != nil {
		return err
	}

	ws.connLock.Lock()
	defer ws.connLock.Unlock()
	return ws.Conn.WriteMessage(gorilla.TextMessage, data)
}

func (ws *JSONWebSocketConnection) readLoop() {
	for {
		select {
		case <-ws.connCloseCh:
			return
		default:
			_, data, err := ws.Conn.ReadMessage()
			if err != nil {
				shouldExit := ws.handleError(err)
				if shouldExit {
					ws.state = WebSocketStateDisconnected
					ws.logger.Error("JSONWebSocketConnection readLoop: connection closed", "error", err)
					return
				}
				continue
			}
			go ws.handleResponse(data)
		}
	}
}

func (ws *JSONWebSocketConnection) handleError(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		ws.connCloseError = net.ErrClosed
		return true
	}
	if gorilla.IsUnexpectedCloseError(err) {
		ws.connCloseError = io.ErrClosedPipe
		<-ws.connCloseCh
		return true
	}

	ws.logger.Error(err.Error())
	return false
}

func (ws *JSONWebSocketConnection) handleResponse(res []byte) {
	var rpcRes RPCResponse[json.RawMessage]
	if err := ws.Unmarshaler.Unmarshal(res, &rpcRes); err != nil {
		ws.logger.Error(fmt.Sprintf("error unmarshaling RPC response: %v", err))
		return
	}

	if rpcRes.ID != nil && rpcRes.ID != "" {
		responseChan, ok := ws.getResponseChannel(fmt.Sprintf("%v", rpcRes.ID))
		if !ok {
			ws.logger.Error(fmt.Sprintf("unavailable ResponseChannel %+v", rpcRes.ID))
			return
		}
		defer close(responseChan)
		responseChan <- rpcRes
		return
	}

	// No id: a live-query notification.
	var notificationBytes []byte
	if rpcRes.Result != nil {
		notificationBytes = []byte(*rpcRes.Result)
	}

	var notification Notification
	if err := ws.Unmarshaler.Unmarshal(notificationBytes, &notification); err != nil {
		ws.logger.Error(fmt.Sprintf("error unmarshaling as notification: %v", err))
		return
	}

	if notification.ID == nil {
		ws.logger.Error("response did not contain an 'id' field")
		return
	}

	liveChan, ok := ws.getNotificationChannel(notification.ID.String())
	if !ok {
		ws.logger.Error(fmt.Sprintf("unavailable ResponseChannel %+v", notification.ID.String()))
		return
	}

	liveChan <- notification
}
