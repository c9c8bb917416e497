package cache

import (
	"sort"

	"github.com/dgrid/dgrid/lib/region"
	"github.com/puzpuzpuz/xsync/v3"
)

// Region is a named node in the region tree of a cache.
//
// Thread-safety: Regions are safe for concurrent use. The name, path and
// attributes never change after creation.
type Region struct {
	name       string
	fullPath   string
	attributes *region.Attributes
	subregions *xsync.MapOf[string, *Region]
}

// newRegion creates a region below the given parent path ("" for root regions)
func newRegion(parentPath, name string, attrs *region.Attributes) *Region {
	return &Region{
		name:       name,
		fullPath:   region.JoinPath(parentPath, name),
		attributes: attrs,
		subregions: xsync.NewMapOf[string, *Region](),
	}
}

// Name returns the name of the region
func (r *Region) Name() string {
	return r.name
}

// FullPath returns the path of the region starting at the root, e.g. "/orders/pending"
func (r *Region) FullPath() string {
	return r.fullPath
}

// Attributes returns the configuration the region was created with
func (r *Region) Attributes() *region.Attributes {
	return r.attributes
}

// Subregion returns the direct subregion with the given name
func (r *Region) Subregion(name string) (*Region, bool) {
	return r.subregions.Load(name)
}

// Subregions returns all direct subregions sorted by name
func (r *Region) Subregions() []*Region {
	return sortedRegions(r.subregions)
}

// createSubregion adds a new subregion. It fails if the name is taken
func (r *Region) createSubregion(name string, attrs *region.Attributes) (*Region, error) {
	sub := newRegion(r.fullPath, name, attrs)
	if _, loaded := r.subregions.LoadOrStore(name, sub); loaded {
		return nil, ErrRegionExists
	}
	return sub, nil
}

// sortedRegions returns the values of m sorted by name
func sortedRegions(m *xsync.MapOf[string, *Region]) []*Region {
	regions := make([]*Region, 0, m.Size())
	m.Range(func(_ string, r *Region) bool {
		regions = append(regions, r)
		return true
	})
	sort.Slice(regions, func(i, j int) bool { return regions[i].name < regions[j].name })
	return regions
}
