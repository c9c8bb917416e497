package cache

import (
	"fmt"
	"sync/atomic"

	"github.com/dgrid/dgrid/lib/region"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("cache")

type localCache struct {
	id     int32
	name   string
	roots  *xsync.MapOf[string, *Region]
	closed atomic.Bool
}

// NewLocalCache creates a new, empty cache which lives in the memory of this process.
func NewLocalCache(id int32, name string) ICache {
	return &localCache{
		id:    id,
		name:  name,
		roots: xsync.NewMapOf[string, *Region](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache/interface.go)
// --------------------------------------------------------------------------

func (c *localCache) ID() int32 {
	return c.id
}

func (c *localCache) Name() string {
	return c.name
}

func (c *localCache) GetRegion(path string) (*Region, bool, error) {
	if c.closed.Load() {
		return nil, false, ErrCacheClosed
	}
	r, ok := c.lookup(region.SplitPath(path))
	return r, ok, nil
}

func (c *localCache) CreateRootRegion(name string, attrs region.IAttributes) (*Region, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	if err := region.ValidateName(name); err != nil {
		return nil, err
	}

	r := newRegion("", name, region.Snapshot(attrs))
	if _, loaded := c.roots.LoadOrStore(name, r); loaded {
		return nil, fmt.Errorf("%w: %s", ErrRegionExists, r.fullPath)
	}

	Logger.Infof("cache %d: created root region %s", c.id, r.fullPath)
	return r, nil
}

func (c *localCache) CreateSubregion(parentPath, name string, attrs region.IAttributes) (*Region, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	if err := region.ValidateName(name); err != nil {
		return nil, err
	}

	parent, ok := c.lookup(region.SplitPath(parentPath))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRegionNotFound, region.JoinPath(parentPath))
	}

	r, err := parent.createSubregion(name, region.Snapshot(attrs))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, region.JoinPath(parent.fullPath, name))
	}

	Logger.Infof("cache %d: created region %s", c.id, r.fullPath)
	return r, nil
}

func (c *localCache) RootRegions() ([]*Region, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	return sortedRegions(c.roots), nil
}

func (c *localCache) Close() error {
	if c.closed.Swap(true) {
		return ErrCacheClosed
	}
	Logger.Infof("cache %d (%s) closed", c.id, c.name)
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// lookup walks the region tree along names. The empty path matches no region
func (c *localCache) lookup(names []string) (*Region, bool) {
	if len(names) == 0 {
		return nil, false
	}
	r, ok := c.roots.Load(names[0])
	for _, name := range names[1:] {
		if !ok {
			return nil, false
		}
		r, ok = r.Subregion(name)
	}
	return r, ok
}
