// Package cache provides the cache abstraction region requests operate on.
//
// A cache holds a tree of named regions. Root regions are addressed by their
// name, every other region by the path of names from its root, e.g.
// "/orders/eu". Each region keeps the attributes snapshot it was created with.
//
// Key Components:
//
//   - Handle: Identifies a cache by its administrative id. Info is a Handle for
//     caches living in another process.
//
//   - ICache: Lookup and creation of regions.
//
//   - NewLocalCache: ICache implementation living in the memory of this process.
//     The region tree is built on lock free maps, so lookups never block.
//
// The package testing contains a conformance test suite for ICache implementations.
package cache
