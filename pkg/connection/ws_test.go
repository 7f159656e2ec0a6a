package connection

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	vantagelog "github.com/vantage-db/vantage-go/pkg/logger/slog"
	"github.com/vantage-db/vantage-go/pkg/models"
)

type WsTestSuite struct {
	suite.Suite
	name                string
	connImplementations map[string]*WebSocketConnection
}

func TestSurrealDBSuite(t *testing.T) {
	ts := new(WsTestSuite)
	ts.connImplementations = make(map[string]*WebSocketConnection)

	// Default
	ts.connImplementations["ws"] = NewWebSocketConnection(NewConnectionParams{
		BaseURL:     "ws://localhost:8000",
		Marshaler:   &models.CborMarshaler{},
		Unmarshaler: &models.CborUnmarshaler{},
		Logger:      vantagelog.New(slog.NewTextHandler(os.Stdout, nil)),
	})

	RunWsMap(t, ts)
}

func RunWsMap(t *testing.T, s *WsTestSuite) {
	for wsName := range s.connImplementations {
		t.Run(wsName, func(t *testing.T) {
			s.name = wsName
			suite.Run(t, s)
		})
	}
}

// SetupSuite is called before the s starts running
func (s *WsTestSuite) SetupSuite() {
	con := s.connImplementations[s.name]

	err := con.Connect(context.Background())
	s.Require().NoError(err)

	setNamespace(s, con)

	_ = signIn(s, con)
}

func (s *WsTestSuite) TearDownSuite() {
	con := s.connImplementations[s.name]
	err := con.Close(context.Background())
	s.Require().NoError(err)
}

func signIn(s *WsTestSuite, con *WebSocketConnection) string {
	var token RPCResponse[string]
	err := con.Send(context.Background(), &token, "signin", map[string]interface{}{
		"user": "root",
		"pass": "root",
	})
	s.Require().NoError(err)
	if token.Result == nil {
		return ""
	}
	return *token.Result
}

func setNamespace(s *WsTestSuite, con *WebSocketConnection) {
	err := con.Use(context.Background(), "test", "test")
	s.Require().NoError(err)
}

func (s *WsTestSuite) TestEngine_WsMakeRequest() {
	con := s.connImplementations[s.name]

	params := []interface{}{
		"SELECT marketing, count() FROM $tb GROUP BY marketing",
		map[string]interface{}{
			"datetime": time.Now(),
			"testnil":  nil,
		},
	}

	var res RPCResponse[interface{}]
	err := con.Send(context.Background(), &res, "query", params...)
	s.Require().NoError(err, "no error returned when sending a query")

	fmt.Println(res)
}
