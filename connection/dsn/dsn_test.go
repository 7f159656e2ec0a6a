package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_concreteScenario covers spec scenario #1 verbatim.
func TestParse_concreteScenario(t *testing.T) {
	d, err := Parse("ws://root:root@localhost:8000/test/integration?version_check=false")
	require.NoError(t, err)

	assert.Equal(t, EngineWebSocketCBOR, d.Engine)
	assert.Equal(t, "localhost:8000", d.Host)
	assert.Equal(t, "test", d.Namespace)
	assert.Equal(t, "integration", d.Database)
	assert.Equal(t, AuthRoot, d.Auth.Kind)
	assert.Equal(t, "root", d.Auth.Username)
	assert.Equal(t, "root", d.Auth.Password)
	assert.Equal(t, "false", d.Flags["version_check"])
}

func TestParse_rootAuthSurvivesNamespaceAndDatabaseInPath(t *testing.T) {
	// A regression guard for the auth-kind overwrite bug: embedded root
	// userinfo plus a namespace/database in the path must stay AuthRoot,
	// not get silently downgraded to AuthDatabase.
	d, err := Parse("ws://admin:hunter2@localhost:8000/ns/db")
	require.NoError(t, err)
	assert.Equal(t, AuthRoot, d.Auth.Kind)
	assert.Equal(t, "admin", d.Auth.Username)
}

func TestParse_namespaceOnlyNoUserinfoInfersNamespaceAuth(t *testing.T) {
	d, err := Parse("ws://localhost:8000/ns")
	require.NoError(t, err)
	assert.Equal(t, AuthNamespace, d.Auth.Kind)
}

func TestParse_databaseOnlyNoUserinfoInfersDatabaseAuth(t *testing.T) {
	d, err := Parse("ws://localhost:8000/ns/db")
	require.NoError(t, err)
	assert.Equal(t, AuthDatabase, d.Auth.Kind)
}

func TestParse_noUserinfoNoPathIsAuthNone(t *testing.T) {
	d, err := Parse("ws://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, AuthNone, d.Auth.Kind)
	assert.Empty(t, d.Namespace)
	assert.Empty(t, d.Database)
}

func TestParse_tokenFlag(t *testing.T) {
	d, err := Parse("ws://localhost:8000?token=abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, AuthToken, d.Auth.Kind)
	assert.Equal(t, "abc.def.ghi", d.Auth.Token)
}

func TestParse_scopeFlagRequiresRootUserinfo(t *testing.T) {
	d, err := Parse("ws://user:pass@localhost:8000/ns/db?scope=user_scope")
	require.NoError(t, err)
	assert.Equal(t, AuthScope, d.Auth.Kind)
	assert.Equal(t, "user_scope", d.Auth.Scope)
}

func TestParse_jsonEngineScheme(t *testing.T) {
	d, err := Parse("ws+json://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, EngineWebSocketJSON, d.Engine)
}

func TestParse_cborAliasScheme(t *testing.T) {
	d, err := Parse("cbor://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, EngineWebSocketCBOR, d.Engine)
}

func TestParse_httpSchemeRejected(t *testing.T) {
	_, err := Parse("http://localhost:8000")
	require.Error(t, err)
}

func TestParse_unrecognizedScheme(t *testing.T) {
	_, err := Parse("ftp://localhost:8000")
	require.Error(t, err)
}

func TestDSN_WebSocketURL(t *testing.T) {
	d, err := Parse("ws://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8000/rpc", d.WebSocketURL(false))
	assert.Equal(t, "wss://localhost:8000/rpc", d.WebSocketURL(true))
}
