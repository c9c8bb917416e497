// Package rpc provides the administration channel of dGrid. Admin members use it
// to look up and create regions in caches hosted by other processes.
//
// The package is organized into several subpackages:
//
//   - admin: The admin messages (RegionRequest, RegionResponse, ErrorResponse),
//     the message registry and the dispatch of requests against local caches.
//
//   - serializer: The binary data format of admin messages, including nullable
//     strings and polymorphic objects identified by a type tag.
//
//   - common: Configuration structures and logging setup shared by client and server.
//
//   - transport: Network communication abstractions with pluggable implementations
//     (TCP, Unix sockets, HTTP).
//
//   - client: The region admin client, which sends requests and turns failures
//     reported by the remote process back into errors.
//
//   - server: The cache hosting process, which decodes requests, performs them
//     and sends back the responses.
package rpc
