package client

import (
	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/rcrowley/go-metrics"
)

// RegionInfo describes a region of a remote cache
type RegionInfo struct {
	// FullPath is the path of the region from the root, e.g. "/orders/eu"
	FullPath string
	// Attributes is the configuration snapshot of the region
	Attributes *region.Attributes
}

// IRegionAdmin manages the regions of remote caches.
// All methods send one admin request and wait for its response. Errors reported
// by the remote process are returned as errors.
type IRegionAdmin interface {
	// GetRegion returns the region with the given full path.
	// If the region does not exist, ok is false and err is nil
	GetRegion(c cache.Handle, path string) (info RegionInfo, ok bool, err error)

	// CreateRootRegion creates a new top level region with the given attributes
	CreateRootRegion(c cache.Handle, name string, attrs region.IAttributes) (RegionInfo, error)

	// CreateSubregion creates a new region below the region at parentPath
	CreateSubregion(c cache.Handle, parentPath, name string, attrs region.IAttributes) (RegionInfo, error)

	// MemberID returns the id this client sends its requests with
	MemberID() string

	// Stats returns the latency timer of all requests sent by this client
	Stats() metrics.Timer

	// Close closes the underlying transport
	Close() error
}
