// Package unix implements the admin RPC transport over Unix domain sockets, for
// admin tools running on the same machine as the cache process.
//
// The package only provides connectors for the base package. A stale socket file
// at the endpoint path is removed before listening.
package unix
