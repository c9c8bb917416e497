// Package server implements the cache hosting side of the admin RPC system.
//
// A server creates the caches listed in its configuration and answers admin
// requests received by its transport. Every request is decoded by its message
// type, performed through its CreateResponse method with the server as context,
// and the encoded response is returned to the transport. Requests that cannot be
// decoded, or that exceed the configured rate limit, are answered with an
// admin.ErrorResponse.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Caches:        []common.ServerCache{{ID: 1, Name: "main"}},
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	  Transport:     common.ServerTransportConfig{Endpoint: "0.0.0.0:8080"},
//	}
//
//	s := server.NewRPCServer(config, http.NewHttpServerTransport())
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Metrics:
//
//	The server counts handled requests per message type and action, decode and
//	encode failures and rate limited requests, and records the request duration.
//	The http transport exposes them on GET /metrics.
//
// Thread Safety:
//
//	Requests are handled concurrently. Serve should be called only once.
package server
