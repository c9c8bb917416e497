// Package http implements the admin RPC transport over HTTP.
//
// Every admin request is the body of a POST to the server root, the encoded
// response is the body of the answer. The server additionally exposes the
// process metrics in the Prometheus text format on GET /metrics.
//
// Key Components:
//
//   - httpClientTransport: Implements IRPCClientTransport. It selects the endpoint
//     by round robin and retries failed requests on the next endpoint.
//
//   - httpServerTransport: Implements IRPCServerTransport on top of net/http. In
//     debug mode every request is logged with its status and duration.
//
// Thread Safety:
//
//	The client transport is safe for concurrent use after Connect.
package http
