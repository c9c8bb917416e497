// Package base provides the protocol independent part of the admin RPC transports.
// Protocol specific packages (tcp, unix) only contribute a connector that dials,
// listens and tunes sockets.
//
// Every request and response travels in a frame:
//
//	| requestID uint64 | length uint32 | payload |
//
// The payload is an encoded admin message. It starts with its own message type,
// so the frame carries no routing information besides the request id.
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations.
//
//   - clientTransport: Manages several connections per endpoint, picks one by
//     round robin and correlates responses by request id. Failed sends are retried
//     with jittered exponential backoff; a broken connection fails all waiting
//     requests and is re-established.
//
//   - serverTransport: Accepts connections and runs the registered handler for each
//     frame. The number of parallel workers per connection is bounded and read
//     buffers are pooled.
//
// Thread Safety:
//
//	All public methods are thread-safe.
package base
