package http

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/dgrid/dgrid/rpc/common"
)

// newTestServer serves the admin routes of an httpServerTransport with the given handler
func newTestServer(t *testing.T, handler func([]byte) []byte) *httptest.Server {
	t.Helper()
	st := &httpServerTransport{}
	st.RegisterHandler(handler)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /{$}", loggerMiddleware(st.handleRequest))
	mux.HandleFunc("GET /metrics", handleMetrics)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestHttpRoundTrip tests a request through the client and server transport
func TestHttpRoundTrip(t *testing.T) {
	server := newTestServer(t, func(req []byte) []byte {
		return append([]byte("ok:"), req...)
	})

	client := NewHttpClientTransport()
	err := client.Connect(common.ClientConfig{
		TimeoutSecond: 5,
		Transport: common.ClientTransportConfig{
			// plain host:port, the scheme is added by the client
			Endpoints: []string{strings.TrimPrefix(server.URL, "http://")},
		},
	})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	for _, req := range [][]byte{[]byte("region"), {}} {
		resp, err := client.Send(req)
		if err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
		if expected := append([]byte("ok:"), req...); !bytes.Equal(resp, expected) {
			t.Errorf("Expected %q, got %q", expected, resp)
		}
	}
}

// TestHttpRetries tests that the client reports failures after all attempts
func TestHttpRetries(t *testing.T) {
	var calls atomic.Int32
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	client := NewHttpClientTransport()
	err := client.Connect(common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoints: []string{failing.URL}, RetryCount: 3},
	})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	if _, err := client.Send([]byte("region")); err == nil {
		t.Fatalf("Expected send to fail")
	}
	if calls.Load() != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls.Load())
	}
}

// TestHttpRoutes tests the methods and paths served by the transport
func TestHttpRoutes(t *testing.T) {
	metrics.GetOrCreateCounter("dgrid_http_transport_test_total").Inc()
	server := newTestServer(t, func(req []byte) []byte { return req })

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected GET / to be rejected with 405, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if !strings.Contains(string(body), "dgrid_http_transport_test_total 1") {
		t.Errorf("Expected metrics output to contain the test counter, got:\n%s", body)
	}
}

// TestSendWithoutConnect tests that an unconnected client fails
func TestSendWithoutConnect(t *testing.T) {
	if _, err := NewHttpClientTransport().Send([]byte{1}); err == nil {
		t.Errorf("Expected send without connect to fail")
	}
	if err := NewHttpClientTransport().Connect(common.ClientConfig{}); err == nil {
		t.Errorf("Expected connect without endpoints to fail")
	}
}
