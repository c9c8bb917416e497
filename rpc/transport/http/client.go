package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
)

func NewHttpClientTransport() transport.IRPCClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	serverURLs []string
	client     *http.Client
	counter    uint32
	retryCount int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	if len(config.Transport.Endpoints) == 0 {
		return fmt.Errorf("no endpoints provided")
	}

	// Parse each server URL, plain host:port endpoints default to http
	serverURLs := make([]string, len(config.Transport.Endpoints))
	for i, endpoint := range config.Transport.Endpoints {
		if !strings.Contains(endpoint, "://") {
			endpoint = "http://" + endpoint
		}
		parsedURL, err := url.Parse(endpoint)
		if err != nil {
			return err
		}
		parsedURL.Path = "/"
		serverURLs[i] = parsedURL.String()
	}

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	t.client = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: max(1, config.Transport.ConnectionsPerEndpoint),
			IdleConnTimeout:     90 * time.Second,
		},
	}
	t.serverURLs = serverURLs
	t.counter = 0
	t.retryCount = max(1, config.Transport.RetryCount)

	return nil
}

func (t *httpClientTransport) Send(req []byte) ([]byte, error) {
	if t.client == nil {
		return nil, fmt.Errorf("http transport not initialized")
	}

	var lastErr error
	for i := 0; i < t.retryCount; i++ {
		// Select the next server via round-robin
		idx := atomic.AddUint32(&t.counter, 1) % uint32(len(t.serverURLs))

		resp, err := t.post(t.serverURLs[idx], req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		Logger.Debugf("Request attempt %d/%d failed: %v", i+1, t.retryCount, err)
	}

	return nil, fmt.Errorf("failed to send request after %d attempts: %w", t.retryCount, lastErr)
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	t.client = nil
	t.serverURLs = nil
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// post sends one request to a server and returns the response body
func (t *httpClientTransport) post(serverURL string, req []byte) ([]byte, error) {
	httpResponse, err := t.client.Post(serverURL, "application/octet-stream", bytes.NewReader(req))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error: %s", httpResponse.Status)
	}

	return io.ReadAll(httpResponse.Body)
}
