package cache

import (
	"errors"

	"github.com/dgrid/dgrid/lib/region"
)

var (
	ErrRegionExists   = errors.New("region already exists")
	ErrRegionNotFound = errors.New("region not found")
	ErrCacheClosed    = errors.New("cache is closed")
	// ErrInvalidName is an alias of region.ErrInvalidName so callers only need this package
	ErrInvalidName = region.ErrInvalidName
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Handle identifies a running cache inside a (possibly remote) process
type Handle interface {
	// ID returns the administrative identifier of the cache
	ID() int32
}

// Info is a Handle for a cache known only by its id and name, e.g. a remote cache
type Info struct {
	Id   int32
	Name string
}

// ID implements Handle
func (i Info) ID() int32 {
	return i.Id
}

// ICache is the interface of a cache holding a tree of named regions.
// All paths use region.Separator, leading and trailing separators are optional.
type ICache interface {
	Handle
	// Name returns the name of the cache
	Name() string
	// GetRegion returns the region with the given full path.
	// The boolean return value indicates whether the region was found.
	GetRegion(path string) (r *Region, ok bool, err error)
	// CreateRootRegion creates a new top level region.
	// Returns ErrRegionExists if a root region with the name exists.
	CreateRootRegion(name string, attrs region.IAttributes) (r *Region, err error)
	// CreateSubregion creates a new region below the region at parentPath.
	// Returns ErrRegionNotFound if the parent does not exist and ErrRegionExists
	// if the parent already has a subregion with the name.
	CreateSubregion(parentPath, name string, attrs region.IAttributes) (r *Region, err error)
	// RootRegions returns all top level regions sorted by name
	RootRegions() (regions []*Region, err error)
	// Close closes the cache. All further operations return ErrCacheClosed
	Close() error
}
