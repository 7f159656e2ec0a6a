// Package testenv provides utilities for testing code written against the
// Vantage client, connecting to a real SurrealDB instance configured via
// environment variables.
package testenv

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	surrealdb "github.com/vantage-db/vantage-go"
	"github.com/vantage-db/vantage-go/pkg/connection"
)

const (
	// DefaultWSURL is the default WebSocket URL for SurrealDB.
	DefaultWSURL = "ws://localhost:8000"

	// EnvWSURL is the environment variable that specifies the SurrealDB WebSocket URL.
	// If not set, it defaults to DefaultWSURL.
	EnvWSURL = "SURREALDB_URL"

	// EnvReconnectionCheckInterval is the environment variable that specifies the
	// reconnection check interval for WebSocket connections.
	EnvReconnectionCheckInterval = "SURREALDB_RECONNECTION_CHECK_INTERVAL"
)

var (
	currentURL = os.Getenv(EnvWSURL)
	reconnect  = os.Getenv(EnvReconnectionCheckInterval)
)

func GetSurrealDBURL() string {
	if currentURL == "" {
		return DefaultWSURL
	}
	return currentURL
}

func MustParseSurrealDBURL() *url.URL {
	u, err := url.Parse(GetSurrealDBURL())
	if err != nil {
		panic(fmt.Sprintf("Failed to parse SurrealDB URL: %v", err))
	}
	return u
}

// Config describes how to connect to the SurrealDB instance used by a test.
type Config struct {
	Endpoint string

	Namespace string
	Database  string
	Tables    []string

	// ReconnectDuration is the interval between reconnection attempts once
	// the connection is lost. Zero disables automatic reconnection.
	ReconnectDuration time.Duration
}

func MustNew(namespace, database string, tables ...string) *surrealdb.DB {
	db, err := New(namespace, database, tables...)
	if err != nil {
		panic(fmt.Sprintf("Failed to create SurrealDB connection: %v", err))
	}
	return db
}

// New creates a new SurrealDB connection with the specified database and tables.
// The connection information is derived from environment variables.
func New(namespace, database string, tables ...string) (*surrealdb.DB, error) {
	c, err := NewConfig(namespace, database, tables...)
	if err != nil {
		return nil, err
	}

	return c.New()
}

func MustNewConfig(namespace, database string, tables ...string) *Config {
	c, err := NewConfig(namespace, database, tables...)
	if err != nil {
		panic(err)
	}
	return c
}

func NewConfig(namespace, database string, tables ...string) (*Config, error) {
	var reconnectDuration time.Duration
	if reconnect != "" {
		var err error
		reconnectDuration, err = time.ParseDuration(reconnect)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", EnvReconnectionCheckInterval, reconnect)
		}
	}

	return &Config{
		Endpoint:          GetSurrealDBURL(),
		Namespace:         namespace,
		Database:          database,
		Tables:            tables,
		ReconnectDuration: reconnectDuration,
	}, nil
}

func (c *Config) MustNew() *surrealdb.DB {
	db, err := c.New()
	if err != nil {
		panic(fmt.Sprintf("Failed to create SurrealDB connection: %v", err))
	}
	return db
}

func (c *Config) New() (*surrealdb.DB, error) {
	if c.Database == "" {
		return nil, fmt.Errorf("database name must be specified")
	}

	if len(c.Tables) == 0 {
		return nil, fmt.Errorf("at least one table name must be specified")
	}

	u, err := url.ParseRequestURI(c.Endpoint)
	if err != nil {
		return nil, err
	}

	params := connection.NewConfig(u)

	var conn connection.Connection
	ws := connection.NewWebSocketConnection(*params)
	if c.ReconnectDuration > 0 {
		conn = connection.NewAutoReconnectingWebSocketConnection(ws, c.ReconnectDuration)
	} else {
		conn = ws
	}

	db, err := surrealdb.FromConnection(context.Background(), conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	return Init(db, c.Namespace, c.Database, c.Tables...)
}

// Init initializes the testing environment.
// It cleans up the specified tables in the namespace/database.
func Init(db *surrealdb.DB, namespace, database string, tables ...string) (*surrealdb.DB, error) {
	var err error

	if err = db.Use(context.Background(), namespace, database); err != nil {
		return nil, fmt.Errorf("failed to use database: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: "root",
		Password: "root",
	}
	token, err := db.SignIn(context.Background(), authData)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Authenticate(context.Background(), token); err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if len(tables) == 0 {
		query := "INFO FOR DB"
		if result, infoErr := surrealdb.Query[map[string]any](context.Background(), db, query, nil); infoErr == nil && len(*result) > 0 {
			if info, ok := (*result)[0].Result["tables"].(map[string]any); ok {
				for tableName := range info {
					tables = append(tables, tableName)
				}
			}
		}
	}

	for _, table := range tables {
		if _, err = surrealdb.Query[[]any](context.Background(), db, "REMOVE TABLE IF EXISTS "+table, nil); err != nil {
			return nil, fmt.Errorf("failed to remove table %s: %w", table, err)
		}
	}

	return db, nil
}

func getSurrealDBHTTPURL() string {
	if currentURL == "" {
		return "http://localhost:8000"
	}
	return strings.ReplaceAll(currentURL, "ws", "http")
}
