package base_test

import (
	"bytes"
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
	"github.com/dgrid/dgrid/rpc/transport/tcp"
	"github.com/dgrid/dgrid/rpc/transport/unix"
)

// echoHandler answers every request with its reversed payload
func echoHandler(req []byte) []byte {
	resp := make([]byte, len(req))
	for i, b := range req {
		resp[len(req)-1-i] = b
	}
	return resp
}

// freeTCPEndpoint returns a local address that was free a moment ago
func freeTCPEndpoint(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}

// startServer runs the server transport in the background and returns a connected client
func startServer(t *testing.T, server transport.IRPCServerTransport, client transport.IRPCClientTransport, endpoint string) {
	t.Helper()

	server.RegisterHandler(echoHandler)
	done := make(chan error, 1)
	go func() {
		done <- server.Listen(common.ServerConfig{
			TimeoutSecond: 5,
			Transport:     common.ServerTransportConfig{Endpoint: endpoint},
		})
	}()
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
		if err := <-done; err != nil {
			t.Errorf("Listen returned an error after Close: %v", err)
		}
	})

	config := common.ClientConfig{
		TimeoutSecond: 5,
		Transport: common.ClientTransportConfig{
			Endpoints:              []string{endpoint},
			RetryCount:             2,
			ConnectionsPerEndpoint: 2,
		},
	}

	// the listener is created asynchronously
	var err error
	for i := 0; i < 100; i++ {
		if err = client.Connect(config); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("Failed to connect to %s: %v", endpoint, err)
}

// TestTransports tests request/response exchange over each socket transport
func TestTransports(t *testing.T) {
	tests := []struct {
		name     string
		server   func() transport.IRPCServerTransport
		client   func() transport.IRPCClientTransport
		endpoint func(t *testing.T) string
	}{
		{
			name:     "tcp",
			server:   func() transport.IRPCServerTransport { return tcp.NewTCPServerTransport(0, 4) },
			client:   tcp.NewTCPClientTransport,
			endpoint: freeTCPEndpoint,
		},
		{
			name:   "unix",
			server: func() transport.IRPCServerTransport { return unix.NewUnixServerTransport(128, 4) },
			client: unix.NewUnixClientTransport,
			endpoint: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "dgrid.sock")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := tc.client()
			startServer(t, tc.server(), client, tc.endpoint(t))

			t.Run("Single", func(t *testing.T) {
				resp, err := client.Send([]byte{1, 2, 3})
				if err != nil {
					t.Fatalf("Failed to send request: %v", err)
				}
				if !bytes.Equal(resp, []byte{3, 2, 1}) {
					t.Errorf("Expected [3 2 1], got %v", resp)
				}
			})

			t.Run("Large", func(t *testing.T) {
				req := bytes.Repeat([]byte("region"), 50_000)
				resp, err := client.Send(req)
				if err != nil {
					t.Fatalf("Failed to send request: %v", err)
				}
				if !bytes.Equal(resp, echoHandler(req)) {
					t.Errorf("Response mismatch for %d byte request", len(req))
				}
			})

			t.Run("Concurrent", func(t *testing.T) {
				var wg sync.WaitGroup
				for i := 0; i < 20; i++ {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						req := []byte(fmt.Sprintf("request-%03d", i))
						resp, err := client.Send(req)
						if err != nil {
							t.Errorf("Request %d failed: %v", i, err)
							return
						}
						if !bytes.Equal(resp, echoHandler(req)) {
							t.Errorf("Request %d got the response of another request: %q", i, resp)
						}
					}(i)
				}
				wg.Wait()
			})
		})
	}
}

// TestSendAfterClose tests that a closed client transport refuses requests
func TestSendAfterClose(t *testing.T) {
	endpoint := filepath.Join(t.TempDir(), "dgrid.sock")
	client := unix.NewUnixClientTransport()
	startServer(t, unix.NewUnixServerTransport(0, 1), client, endpoint)

	if err := client.Close(); err != nil {
		t.Fatalf("Failed to close client: %v", err)
	}
	if _, err := client.Send([]byte{1}); err == nil {
		t.Errorf("Expected send on a closed transport to fail")
	}
}

// TestListenWithoutHandler tests that a server transport needs a handler
func TestListenWithoutHandler(t *testing.T) {
	server := tcp.NewTCPServerTransport(0, 1)
	err := server.Listen(common.ServerConfig{Transport: common.ServerTransportConfig{Endpoint: "127.0.0.1:0"}})
	if err == nil {
		t.Errorf("Expected Listen without handler to fail")
	}
}

// TestConnectWithoutEndpoints tests that a client transport needs endpoints
func TestConnectWithoutEndpoints(t *testing.T) {
	if err := tcp.NewTCPClientTransport().Connect(common.ClientConfig{}); err == nil {
		t.Errorf("Expected Connect without endpoints to fail")
	}
}
