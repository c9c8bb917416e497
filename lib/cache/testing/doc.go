// Package testing provides standardised tests and benchmarks for cache
// implementations that satisfy the cache.ICache interface.
//
// Example usage:
//
//	factory := func() cache.ICache {
//		return cache.NewLocalCache(1, "main")
//	}
//
//	cachetesting.RunCacheTests(t, "LocalCache", factory)
//	cachetesting.RunCacheBenchmarks(b, "LocalCache", factory)
package testing
