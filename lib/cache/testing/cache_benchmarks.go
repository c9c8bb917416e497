package testing

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/dgrid/dgrid/lib/region"
)

// RunCacheBenchmarks runs all benchmarks for an ICache implementation
func RunCacheBenchmarks(b *testing.B, name string, factory CacheFactory) {
	b.Run(name+"/GetRegion", func(b *testing.B) {
		c := factory()
		b.Cleanup(func() { _ = c.Close() })

		if _, err := c.CreateRootRegion("bench", region.NewConfig()); err != nil {
			b.Fatalf("Failed to create root region: %v", err)
		}
		paths := make([]string, 100)
		for i := range paths {
			r, err := c.CreateSubregion("/bench", fmt.Sprintf("r%d", i), region.NewConfig())
			if err != nil {
				b.Fatalf("Failed to create subregion: %v", err)
			}
			paths[i] = r.FullPath()
		}

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if _, ok, _ := c.GetRegion(paths[counter%len(paths)]); !ok {
					b.Errorf("Region %s not found", paths[counter%len(paths)])
				}
				counter++
			}
		})
	})

	b.Run(name+"/CreateSubregion", func(b *testing.B) {
		c := factory()
		b.Cleanup(func() { _ = c.Close() })

		if _, err := c.CreateRootRegion("bench", region.NewConfig()); err != nil {
			b.Fatalf("Failed to create root region: %v", err)
		}
		attrs := region.NewConfig()
		var counter atomic.Int64

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := c.CreateSubregion("/bench", fmt.Sprintf("r%d", counter.Add(1)), attrs); err != nil {
					b.Errorf("Failed to create subregion: %v", err)
				}
			}
		})
	})
}
