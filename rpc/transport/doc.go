// Package transport defines the interfaces between the admin RPC layer and the
// network. A transport moves opaque byte slices; encoding and decoding of admin
// messages happens in the rpc/server and rpc/client packages.
//
// Key Components:
//
//   - IRPCClientTransport: Connects to one or more endpoints and sends requests.
//
//   - IRPCServerTransport: Listens on an endpoint and passes every request to the
//     registered handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
//
// Implementations live in the sub packages http, tcp and unix.
package transport
