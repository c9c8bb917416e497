package client

import (
	"fmt"
	"time"

	"github.com/dgrid/dgrid/rpc/admin"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rcrowley/go-metrics"
)

var (
	Logger = logger.GetLogger("rpc")
)

// rpcClientAdapter is a struct that stores all data needed for an implementation of an RPC client
// Used by the RPC clients with composition pattern
type rpcClientAdapter struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
	timer     metrics.Timer
}

// invokeRPCRequest is a helper function used for all RPC Clients to send requests
// It stamps the request header, encodes the request, sends it and decodes the response.
// This method also checks if the response reports an error and if the response
// answers this request
func (a *rpcClientAdapter) invokeRPCRequest(req admin.AdminRequest) (admin.AdminResponse, error) {
	start := time.Now()
	defer a.timer.UpdateSince(start)

	// Stamp the header
	header := req.GetHeader()
	header.MsgID = admin.NextMsgID()
	sender := a.config.MemberID
	header.Sender = &sender

	reqBytes, err := admin.EncodeMessage(req)
	if err != nil {
		return nil, err
	}

	respBytes, err := a.transport.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	resp, err := admin.DecodeResponse(respBytes)
	if err != nil {
		return nil, fmt.Errorf("RPC RegionAdmin - Error: %w", err)
	}

	// Check if the response is an error response
	if err := resp.Err(); err != nil {
		return nil, fmt.Errorf("RPC RegionAdmin - Error: %w", err)
	}

	// Check if the response answers this request
	if id := resp.GetHeader().MsgID; id != header.MsgID {
		return nil, fmt.Errorf("RPC RegionAdmin - Unexpected message id: %d, expected %d", id, header.MsgID)
	}

	Logger.Debugf("%s answered by %s in %s", req.Description(), senderOf(resp), time.Since(start))
	return resp, nil
}

// senderOf returns the sender of a message for log output
func senderOf(msg admin.AdminMessage) string {
	if s := msg.GetHeader().Sender; s != nil {
		return *s
	}
	return "<unknown>"
}
