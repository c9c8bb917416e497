// Package client implements the admin side of the region administration RPC.
//
// NewRegionAdmin returns an IRegionAdmin that sends admin.RegionRequest messages
// to cache hosting processes through a transport and turns their responses into
// RegionInfo values. Errors reported in a response are returned as Go errors.
//
// Usage Example:
//
//	config := common.ClientConfig{
//	  TimeoutSecond: 5,
//	  Transport: common.ClientTransportConfig{
//	    Endpoints:  []string{"localhost:8080"},
//	    RetryCount: 3,
//	  },
//	}
//
//	regions, _ := client.NewRegionAdmin(config, tcp.NewTCPClientTransport())
//	defer regions.Close()
//
//	main := cache.Info{Id: 1, Name: "main"}
//	root, _ := regions.CreateRootRegion(main, "orders", region.NewConfig())
//	info, found, _ := regions.GetRegion(main, root.FullPath)
//
// Every request is stamped with a new message id and the member id of the
// client (a random UUID unless configured). The latency of all requests is
// recorded in the timer returned by Stats.
//
// Thread Safety:
//
//	All client implementations are thread-safe and can be used concurrently from
//	multiple goroutines without additional synchronization.
package client
