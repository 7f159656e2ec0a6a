// The [surrealdb] package implements the SurrealDB RPC protocol over a
// WebSocket connection in the Go way.
//
// # Connection Engines
//
// Vantage speaks SurrealDB's WebSocket RPC in two wire encodings, CBOR and
// JSON, selected by the connection string's scheme (see
// [github.com/vantage-db/vantage-go/connection/dsn]). The legacy HTTP
// engine is not implemented; new code should use one of the WebSocket
// engines.
//
// Provide a connection string to [FromEndpointURLString] so that it
// builds the right engine for you, or construct a
// [github.com/vantage-db/vantage-go/pkg/connection.Connection] yourself
// and pass it to [FromConnection] for full control.
//
// # Data Models
//
// The [surrealdb] package communicates with the backend using the
// Concise Binary Object Representation (CBOR) format by default.
//
// For more information on CBOR and how it relates to SurrealDB's
// data models, see the [github.com/vantage-db/vantage-go/pkg/models] package.
//
// # Use Query for most use cases
//
// For most use cases, use the [Query] function to execute SurrealQL
// statements. [Query] is recommended for simple and complex queries,
// transactions, and anywhere you need full control over bind variables.
//
// To compose queries with more type-safety than raw strings, see
// [github.com/vantage-db/vantage-go/contrib/surrealql], and to compose
// expressions with deferred parameter resolution, see
// [github.com/vantage-db/vantage-go/expr] and
// [github.com/vantage-db/vantage-go/query].
//
// [SurrealDB RPC protocol]: https://surrealdb.com/docs/surrealdb/integration/rpc
package surrealdb
