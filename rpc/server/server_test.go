package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/lib/region"
	"github.com/dgrid/dgrid/rpc/admin"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
)

// fakeTransport captures the registered handler instead of listening
type fakeTransport struct {
	handler transport.ServerHandleFunc
	closed  int
}

func (f *fakeTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	f.handler = handler
}

func (f *fakeTransport) Listen(common.ServerConfig) error {
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed++
	return nil
}

func newTestServer(t *testing.T, config common.ServerConfig) (IRPCServer, *fakeTransport) {
	t.Helper()
	if config.LogLevel == "" {
		config.LogLevel = "error"
	}
	ft := &fakeTransport{}
	s := NewRPCServer(config, ft)
	if err := s.Serve(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, ft
}

// call encodes req, passes it to the handler and decodes the response
func call(t *testing.T, ft *fakeTransport, req admin.AdminRequest) admin.AdminResponse {
	t.Helper()
	data, err := admin.EncodeMessage(req)
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}
	resp, err := admin.DecodeResponse(ft.handler(data))
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

var mainCache = cache.Info{Id: 1, Name: "main"}

// TestServerCaches tests that the configured caches are created
func TestServerCaches(t *testing.T) {
	s, _ := newTestServer(t, common.ServerConfig{
		Caches: []common.ServerCache{{ID: 2, Name: "sessions"}, {ID: 1, Name: "main"}},
	})

	caches := s.Caches()
	if len(caches) != 2 || caches[0].ID() != 1 || caches[1].ID() != 2 {
		t.Fatalf("Expected caches 1 and 2, got %v", caches)
	}
	if c, ok := s.Cache(2); !ok || c.Name() != "sessions" {
		t.Errorf("Expected cache 2 to be sessions")
	}
	if _, ok := s.Cache(3); ok {
		t.Errorf("Expected no cache 3")
	}
	if s.MemberID() == "" {
		t.Errorf("Expected a generated member id")
	}
}

// TestServerDuplicateCache tests that cache ids must be unique
func TestServerDuplicateCache(t *testing.T) {
	s := NewRPCServer(common.ServerConfig{
		LogLevel: "error",
		Caches:   []common.ServerCache{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}},
	}, &fakeTransport{})
	defer s.Close()

	if err := s.Serve(); err == nil {
		t.Errorf("Expected duplicate cache ids to fail")
	}
}

// TestServerInvalidLogLevel tests that an invalid log level prevents startup
func TestServerInvalidLogLevel(t *testing.T) {
	s := NewRPCServer(common.ServerConfig{LogLevel: "verbose"}, &fakeTransport{})
	if err := s.Serve(); err == nil {
		t.Errorf("Expected an invalid log level to fail")
	}
}

// TestServerHandle tests the handling of region requests
func TestServerHandle(t *testing.T) {
	_, ft := newTestServer(t, common.ServerConfig{
		MemberID: "server-1",
		Caches:   []common.ServerCache{{ID: 1, Name: "main"}},
	})

	req := admin.NewCreateRootRegionRequest(mainCache, "orders", region.NewConfig())
	req.MsgID = admin.NextMsgID()
	resp := call(t, ft, req)
	if err := resp.Err(); err != nil {
		t.Fatalf("Failed to create root region: %v", err)
	}
	if resp.GetHeader().MsgID != req.MsgID {
		t.Errorf("Expected msg id %d, got %d", req.MsgID, resp.GetHeader().MsgID)
	}
	if s := resp.GetHeader().Sender; s == nil || *s != "server-1" {
		t.Errorf("Expected sender server-1, got %v", s)
	}

	resp = call(t, ft, admin.NewGetRegionRequest(mainCache, "/orders"))
	rr, ok := resp.(*admin.RegionResponse)
	if !ok {
		t.Fatalf("Expected *admin.RegionResponse, got %T", resp)
	}
	if path, found := rr.Path(); !found || path != "/orders" {
		t.Errorf("Expected region /orders, got %q (found=%v)", path, found)
	}

	resp = call(t, ft, admin.NewGetRegionRequest(cache.Info{Id: 5}, "/orders"))
	if err := resp.Err(); err == nil || !strings.Contains(err.Error(), "no cache with id 5") {
		t.Errorf("Expected missing cache error, got %v", err)
	}
}

// TestServerHandleGarbage tests that undecodable requests get an error response
func TestServerHandleGarbage(t *testing.T) {
	_, ft := newTestServer(t, common.ServerConfig{})

	for _, data := range [][]byte{nil, {0x03}, {0xff, 0xff, 0, 0, 0, 1}} {
		resp, err := admin.DecodeResponse(ft.handler(data))
		if err != nil {
			t.Fatalf("Failed to decode response for %v: %v", data, err)
		}
		if resp.MessageType() != admin.MsgTError {
			t.Errorf("Expected %s for %v, got %s", admin.MsgTError, data, resp.MessageType())
		}
		if !strings.Contains(resp.Err().Error(), "failed to decode request") {
			t.Errorf("Unexpected error %v", resp.Err())
		}
	}
}

// TestServerRateLimit tests that requests above the burst are rejected
func TestServerRateLimit(t *testing.T) {
	_, ft := newTestServer(t, common.ServerConfig{
		Caches:    []common.ServerCache{{ID: 1, Name: "main"}},
		RateLimit: 0.001,
		RateBurst: 2,
	})

	var limited int
	for i := 0; i < 5; i++ {
		resp := call(t, ft, admin.NewGetRegionRequest(mainCache, "/orders"))
		if err := resp.Err(); err != nil {
			if err.Error() != ErrRateLimited.Error() {
				t.Errorf("Unexpected error %v", err)
			}
			limited++
		}
	}
	if limited != 3 {
		t.Errorf("Expected 3 of 5 requests to be rate limited, got %d", limited)
	}
}

// TestServerClose tests that Close stops the transport and the caches once
func TestServerClose(t *testing.T) {
	s, ft := newTestServer(t, common.ServerConfig{Caches: []common.ServerCache{{ID: 1, Name: "main"}}})
	c, _ := s.Cache(1)

	if err := s.Close(); err != nil {
		t.Fatalf("Failed to close server: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Expected second close to succeed, got %v", err)
	}
	if ft.closed != 1 {
		t.Errorf("Expected transport to be closed once, got %d", ft.closed)
	}
	if _, err := c.RootRegions(); !errors.Is(err, cache.ErrCacheClosed) {
		t.Errorf("Expected cache to be closed, got %v", err)
	}
}

// TestActionLabel tests that unknown actions share one metric label
func TestActionLabel(t *testing.T) {
	tests := []struct {
		action   admin.ActionKind
		expected string
	}{
		{admin.ActionGetRegion, admin.ActionGetRegion.String()},
		{admin.ActionCreateRootRegion, admin.ActionCreateRootRegion.String()},
		{admin.ActionCreateSubregion, admin.ActionCreateSubregion.String()},
		{0, "unknown"},
		{999, "unknown"},
		{-7, "unknown"},
	}

	for _, tc := range tests {
		if got := actionLabel(tc.action); got != tc.expected {
			t.Errorf("actionLabel(%d) = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
