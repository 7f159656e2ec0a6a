package connection

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	vantagelog "github.com/vantage-db/vantage-go/pkg/logger/slog"
	"github.com/vantage-db/vantage-go/pkg/models"
)

// NewConfig creates a new NewConnectionParams with the SurrealDB endpoint
// specified by the URL. The URL should be a valid SurrealDB endpoint URL,
// such as "ws://localhost:8000/rpc" or "http://localhost:8000". It is not
// absolutely necessary to create connection params using this function, but
// it is recommended to use this function to ensure that everything needed
// for the connection is set up correctly.
func NewConfig(u *url.URL) *NewConnectionParams {
	return &NewConnectionParams{
		URL:         *u,
		Marshaler:   &models.CborMarshaler{},
		Unmarshaler: &models.CborUnmarshaler{},
		BaseURL:     fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		Logger:      vantagelog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}

// NewJSONConfig is NewConfig's counterpart for the JSON WebSocket engine:
// same URL/BaseURL derivation, but with the JSON codec pair so that
// NewJSONWebSocketConnection gets a Marshaler/Unmarshaler that actually
// matches the frames it writes.
func NewJSONConfig(u *url.URL) *NewConnectionParams {
	return &NewConnectionParams{
		URL:         *u,
		Marshaler:   &models.JSONMarshaler{},
		Unmarshaler: &models.JSONUnmarshaler{},
		BaseURL:     fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		Logger:      vantagelog.New(slog.NewTextHandler(os.Stdout, nil)),
	}
}
