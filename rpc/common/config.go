package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared transport settings
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings (0 = operating system default)
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific socket settings
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerCache describes a cache hosted by the server
type ServerCache struct {
	// ID is the administrative identifier of the cache
	ID int32
	// Name is the display name of the cache
	Name string
}

// ServerTransportConfig holds the settings of the server transport layer
type ServerTransportConfig struct {
	// Endpoint is the address the server listens on (host:port or socket path)
	Endpoint string
	// BufferSize is the size of pooled read buffers in bytes
	BufferSize int
	// MaxWorkersPerConn limits the requests processed in parallel per connection
	MaxWorkersPerConn int
	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters of a cache hosting process.
type ServerConfig struct {
	// MemberID identifies this process as sender of responses
	MemberID string
	// Caches are created on startup
	Caches []ServerCache

	// TimeoutSecond is the read and write timeout of connections (0 = none)
	TimeoutSecond int64

	// RateLimit is the number of admin requests per second (0 = unlimited)
	RateLimit float64
	// RateBurst is the number of requests allowed at once above RateLimit
	RateBurst int

	Transport ServerTransportConfig

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Member ID", c.MemberID)
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Workers Per Conn", strconv.Itoa(c.Transport.MaxWorkersPerConn))
	if c.RateLimit > 0 {
		addField("Rate Limit", fmt.Sprintf("%.1f req/sec (burst %d)", c.RateLimit, c.RateBurst))
	} else {
		addField("Rate Limit", "unlimited")
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Caches
	addSection("Caches")
	for _, cache := range c.Caches {
		addField(strconv.FormatInt(int64(cache.ID), 10), cache.Name)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConfig holds the settings of the client transport layer
type ClientTransportConfig struct {
	Endpoints              []string
	RetryCount             int
	ConnectionsPerEndpoint int
	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters of an admin client
type ClientConfig struct {
	// MemberID identifies the admin client as sender of requests ("" = generate one)
	MemberID      string
	TimeoutSecond int
	Transport     ClientTransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Member ID", c.MemberID)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Transport.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
