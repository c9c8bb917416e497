// Package admin contains the administrative messages exchanged between an admin
// member and the processes hosting caches.
//
// Every message is encoded as its MessageType (uint16) followed by the Header
// (message id, sender) and the message fields, all written with the serializer
// package. DecodeMessage looks up the message type in a registry, so new
// messages only need to call RegisterMessage in an init function.
//
// RegionRequest is the only request right now. It carries one of three actions:
//
//   - ActionGetRegion: look up a region by its full path
//   - ActionCreateRootRegion: create a new top level region
//   - ActionCreateSubregion: create a region below an existing one
//
// The receiving process calls CreateResponse with a ResponseContext giving
// access to its caches. Failures are reported in the RegionResponse, never by
// failing the exchange, so the sender always gets an answer.
package admin
