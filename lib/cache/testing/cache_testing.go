package testing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
)

// CacheFactory is a function that creates a new, empty instance of an ICache implementation
type CacheFactory func() cache.ICache

// RunCacheTests runs a comprehensive test suite for an ICache implementation.
func RunCacheTests(t *testing.T, name string, factory CacheFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("CreateRoot&Get", func(t *testing.T) {
			testCreateRootGet(t, factory())
		})

		t.Run("CreateSubregion", func(t *testing.T) {
			testCreateSubregion(t, factory())
		})

		t.Run("Duplicates", func(t *testing.T) {
			testDuplicates(t, factory())
		})

		t.Run("MissingParent", func(t *testing.T) {
			testMissingParent(t, factory())
		})

		t.Run("InvalidNames", func(t *testing.T) {
			testInvalidNames(t, factory())
		})

		t.Run("PathForms", func(t *testing.T) {
			testPathForms(t, factory())
		})

		t.Run("AttributesSnapshot", func(t *testing.T) {
			testAttributesSnapshot(t, factory())
		})

		t.Run("Close", func(t *testing.T) {
			testClose(t, factory())
		})

		t.Run("ConcurrentCreate", func(t *testing.T) {
			testConcurrentCreate(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateRootGet(t *testing.T, c cache.ICache) {
	defer c.Close()

	r, err := c.CreateRootRegion("orders", region.NewConfig())
	if err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if r.Name() != "orders" || r.FullPath() != "/orders" {
		t.Errorf("Expected region orders at /orders, got %s at %s", r.Name(), r.FullPath())
	}

	found, ok, err := c.GetRegion("/orders")
	if err != nil || !ok {
		t.Fatalf("Expected region /orders to exist, got ok=%v err=%v", ok, err)
	}
	if found.FullPath() != "/orders" {
		t.Errorf("Expected /orders, got %s", found.FullPath())
	}

	_, ok, err = c.GetRegion("/nonexistent")
	if err != nil || ok {
		t.Errorf("Expected nonexistent region to return ok=false and no error, got ok=%v err=%v", ok, err)
	}

	_, ok, _ = c.GetRegion("/")
	if ok {
		t.Errorf("Expected the empty path to match no region")
	}

	roots, err := c.RootRegions()
	if err != nil || len(roots) != 1 {
		t.Errorf("Expected one root region, got %d (%v)", len(roots), err)
	}
}

func testCreateSubregion(t *testing.T, c cache.ICache) {
	defer c.Close()

	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if _, err := c.CreateSubregion("/orders", "eu", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create subregion: %v", err)
	}
	sub, err := c.CreateSubregion("/orders/eu", "pending", region.NewConfig())
	if err != nil {
		t.Fatalf("Failed to create nested subregion: %v", err)
	}
	if sub.FullPath() != "/orders/eu/pending" {
		t.Errorf("Expected /orders/eu/pending, got %s", sub.FullPath())
	}

	if _, err := c.CreateSubregion("/orders", "us", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create subregion: %v", err)
	}

	parent, ok, err := c.GetRegion("/orders")
	if err != nil || !ok {
		t.Fatalf("Expected /orders to exist, got ok=%v err=%v", ok, err)
	}
	subs := parent.Subregions()
	if len(subs) != 2 || subs[0].Name() != "eu" || subs[1].Name() != "us" {
		t.Errorf("Expected subregions [eu us], got %v", names(subs))
	}
}

func testDuplicates(t *testing.T, c cache.ICache) {
	defer c.Close()

	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if _, err := c.CreateRootRegion("orders", region.NewConfig()); !errors.Is(err, cache.ErrRegionExists) {
		t.Errorf("Expected ErrRegionExists for duplicate root, got %v", err)
	}

	if _, err := c.CreateSubregion("/orders", "eu", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create subregion: %v", err)
	}
	if _, err := c.CreateSubregion("/orders", "eu", region.NewConfig()); !errors.Is(err, cache.ErrRegionExists) {
		t.Errorf("Expected ErrRegionExists for duplicate subregion, got %v", err)
	}

	// the same name below another parent is fine
	if _, err := c.CreateRootRegion("eu", region.NewConfig()); err != nil {
		t.Errorf("Expected root region eu to be created, got %v", err)
	}
}

func testMissingParent(t *testing.T, c cache.ICache) {
	defer c.Close()

	if _, err := c.CreateSubregion("/missing", "eu", region.NewConfig()); !errors.Is(err, cache.ErrRegionNotFound) {
		t.Errorf("Expected ErrRegionNotFound, got %v", err)
	}
	if _, err := c.CreateSubregion("", "eu", region.NewConfig()); !errors.Is(err, cache.ErrRegionNotFound) {
		t.Errorf("Expected ErrRegionNotFound for empty parent path, got %v", err)
	}
}

func testInvalidNames(t *testing.T, c cache.ICache) {
	defer c.Close()

	for _, name := range []string{"", "a/b", "/"} {
		if _, err := c.CreateRootRegion(name, region.NewConfig()); !errors.Is(err, cache.ErrInvalidName) {
			t.Errorf("CreateRootRegion(%q): expected ErrInvalidName, got %v", name, err)
		}
	}

	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if _, err := c.CreateSubregion("/orders", "eu/west", region.NewConfig()); !errors.Is(err, cache.ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName for subregion, got %v", err)
	}
}

func testPathForms(t *testing.T, c cache.ICache) {
	defer c.Close()

	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if _, err := c.CreateSubregion("orders/", "eu", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create subregion: %v", err)
	}

	for _, path := range []string{"/orders/eu", "orders/eu", "/orders/eu/", "//orders//eu"} {
		r, ok, err := c.GetRegion(path)
		if err != nil || !ok {
			t.Errorf("GetRegion(%q): expected region, got ok=%v err=%v", path, ok, err)
			continue
		}
		if r.FullPath() != "/orders/eu" {
			t.Errorf("GetRegion(%q): expected /orders/eu, got %s", path, r.FullPath())
		}
	}
}

func testAttributesSnapshot(t *testing.T, c cache.ICache) {
	defer c.Close()

	conf := region.NewConfig().SetScope(region.ScopeGlobal)
	r, err := c.CreateRootRegion("orders", conf)
	if err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}

	conf.SetScope(region.ScopeLocal)
	if r.Attributes().Scope() != region.ScopeGlobal {
		t.Errorf("Expected region to keep scope %s, got %s", region.ScopeGlobal, r.Attributes().Scope())
	}
}

func testClose(t *testing.T, c cache.ICache) {
	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Failed to close cache: %v", err)
	}

	if _, _, err := c.GetRegion("/orders"); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("GetRegion: expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.CreateRootRegion("other", region.NewConfig()); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("CreateRootRegion: expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.CreateSubregion("/orders", "eu", region.NewConfig()); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("CreateSubregion: expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.RootRegions(); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("RootRegions: expected ErrCacheClosed, got %v", err)
	}
	if err := c.Close(); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("Close: expected ErrCacheClosed on second call, got %v", err)
	}
}

func testConcurrentCreate(t *testing.T, c cache.ICache) {
	defer c.Close()

	if _, err := c.CreateRootRegion("orders", region.NewConfig()); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}

	const workers = 16
	const regions = 50

	var created atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// all workers race for the same names
			for i := 0; i < regions; i++ {
				if _, err := c.CreateSubregion("/orders", fmt.Sprintf("r%d", i), nil); err == nil {
					created.Add(1)
				} else if !errors.Is(err, cache.ErrRegionExists) {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if created.Load() != regions {
		t.Errorf("Expected %d regions to be created exactly once, got %d", regions, created.Load())
	}
}

// names returns the names of the given regions
func names(regions []*cache.Region) []string {
	result := make([]string, len(regions))
	for i, r := range regions {
		result[i] = r.Name()
	}
	return result
}
