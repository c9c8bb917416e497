package client

import (
	"fmt"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/admin"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
)

// NewRegionAdmin creates a new RPC region admin
// The function takes a config and a transport as parameters
// It connects the transport and returns an IRegionAdmin and an error
func NewRegionAdmin(config common.ClientConfig, transport transport.IRPCClientTransport) (IRegionAdmin, error) {
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	if config.MemberID == "" {
		config.MemberID = uuid.NewString()
	}

	return &rpcRegionAdmin{
		rpcClientAdapter{
			config:    config,
			transport: transport,
			timer:     metrics.NewTimer(),
		},
	}, nil
}

type rpcRegionAdmin struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see client.IRegionAdmin)
// --------------------------------------------------------------------------

func (a *rpcRegionAdmin) GetRegion(c cache.Handle, path string) (RegionInfo, bool, error) {
	resp, err := a.invokeRegionRequest(admin.NewGetRegionRequest(c, path))
	if err != nil {
		return RegionInfo{}, false, err
	}
	info, ok := regionInfo(resp)
	return info, ok, nil
}

func (a *rpcRegionAdmin) CreateRootRegion(c cache.Handle, name string, attrs region.IAttributes) (RegionInfo, error) {
	return a.create(admin.NewCreateRootRegionRequest(c, name, attrs))
}

func (a *rpcRegionAdmin) CreateSubregion(c cache.Handle, parentPath, name string, attrs region.IAttributes) (RegionInfo, error) {
	return a.create(admin.NewCreateSubregionRequest(c, parentPath, name, attrs))
}

func (a *rpcRegionAdmin) MemberID() string {
	return a.config.MemberID
}

func (a *rpcRegionAdmin) Stats() metrics.Timer {
	return a.timer
}

func (a *rpcRegionAdmin) Close() error {
	return a.transport.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// create sends a create request, a response without region is an error
func (a *rpcRegionAdmin) create(req *admin.RegionRequest) (RegionInfo, error) {
	resp, err := a.invokeRegionRequest(req)
	if err != nil {
		return RegionInfo{}, err
	}
	info, ok := regionInfo(resp)
	if !ok {
		return RegionInfo{}, fmt.Errorf("%s: response does not describe a region", req.Action())
	}
	return info, nil
}

// invokeRegionRequest sends a region request and checks that the answer is a region response
func (a *rpcRegionAdmin) invokeRegionRequest(req *admin.RegionRequest) (*admin.RegionResponse, error) {
	resp, err := a.invokeRPCRequest(req)
	if err != nil {
		return nil, err
	}
	regionResp, ok := resp.(*admin.RegionResponse)
	if !ok {
		return nil, fmt.Errorf("RPC RegionAdmin - Unexpected message type: %s, expected %s", resp.MessageType(), admin.MsgTRegionResponse)
	}
	return regionResp, nil
}

// regionInfo converts a response into a RegionInfo
func regionInfo(resp *admin.RegionResponse) (RegionInfo, bool) {
	path, ok := resp.Path()
	if !ok {
		return RegionInfo{}, false
	}
	return RegionInfo{FullPath: path, Attributes: resp.Attributes()}, true
}
