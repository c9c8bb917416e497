package server

import (
	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/rpc/admin"
)

// IRPCServer is a cache hosting process that answers admin requests
type IRPCServer interface {
	// The server is the context its admin requests are performed in
	admin.ResponseContext

	// Serve creates the configured caches and starts the transport layer.
	// It blocks until the server is closed or the transport fails
	Serve() error

	// Close stops the transport layer and closes all caches
	Close() error

	// Caches returns the running caches ordered by id
	Caches() []cache.ICache
}
