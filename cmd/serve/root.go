package serve

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	cmdUtil "github.com/dgrid/dgrid/cmd/util"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start a dGrid cache server",
		Long:    `Start a process hosting the configured caches and answering admin requests. The configuration can be set via command line flags or environment variables. The format of the environment variables is DGRID_<flag> (e.g. DGRID_RATE_LIMIT=100)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	key := "caches"
	ServeCmd.PersistentFlags().String(key, "1=main", cmdUtil.WrapString("Comma-separated list of caches to host. Format: ID=NAME"))

	key = "member-id"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The member id sent with every response (default: a random UUID)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Read and write timeout of connections in seconds (0 = none)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080, /tmp/dgrid.sock, ...)"))

	key = "rate-limit"
	ServeCmd.PersistentFlags().Float64(key, 0, cmdUtil.WrapString("Admin requests per second (0 = unlimited)"))

	key = "rate-burst"
	ServeCmd.PersistentFlags().Int(key, 10, cmdUtil.WrapString("Admin requests allowed at once above the rate limit"))

	key = "buffer-size"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("Size of pooled read buffers in KB (0 = transport default, ignored for http)"))

	key = "workers-per-conn"
	ServeCmd.PersistentFlags().Int(key, 16, cmdUtil.WrapString("Requests processed in parallel per connection (ignored for http)"))

	key = "transport-write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the socket write buffer (in KB, 0 = system default, ignored for http)"))

	key = "transport-read-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the socket read buffer (in KB, 0 = system default, ignored for http)"))

	key = "transport-tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "transport-tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval (in seconds, only for tcp)"))

	key = "transport-tcp-linger"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The linger time (in seconds, 0 = system default, only for tcp)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	caches, err := ParseCaches(viper.GetString("caches"))
	if err != nil {
		return err
	}

	serveCmdConfig.Caches = caches
	serveCmdConfig.MemberID = viper.GetString("member-id")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.RateLimit = viper.GetFloat64("rate-limit")
	serveCmdConfig.RateBurst = viper.GetInt("rate-burst")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Transport = common.ServerTransportConfig{
		Endpoint:          viper.GetString("endpoint"),
		BufferSize:        viper.GetInt("buffer-size") * 1024,
		MaxWorkersPerConn: viper.GetInt("workers-per-conn"),
		SocketConf: common.SocketConf{
			WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
			ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
		},
		TCPConf: common.TCPConf{
			TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
			TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
			TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
		},
	}

	if serveCmdConfig.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative: %v", serveCmdConfig.RateLimit)
	}

	return nil
}

// ParseCaches parses a list of caches in the format "ID=NAME,ID=NAME"
func ParseCaches(list string) ([]common.ServerCache, error) {
	caches := []common.ServerCache{}
	seen := make(map[int32]bool)

	for _, entry := range cmdUtil.SplitList(list) {
		parts := strings.Split(entry, "=")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid cache format: %s (expected ID=NAME)", entry)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid cache ID %s: %v", parts[0], err)
		}

		name := strings.TrimSpace(parts[1])
		if name == "" {
			return nil, fmt.Errorf("missing name for cache %d", id)
		}

		if seen[int32(id)] {
			return nil, fmt.Errorf("duplicate cache ID %d", id)
		}
		seen[int32(id)] = true

		caches = append(caches, common.ServerCache{ID: int32(id), Name: name})
	}

	if len(caches) == 0 {
		return nil, fmt.Errorf("at least one cache is required")
	}
	return caches, nil
}

// run starts the dGrid server and stops it on SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	t, err := cmdUtil.GetServerTransport(*serveCmdConfig)
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		sig, ok := <-signals
		if !ok {
			return
		}
		server.Logger.Infof("received %s, shutting down", sig)
		if err := serv.Close(); err != nil {
			server.Logger.Errorf("failed to close server: %v", err)
		}
	}()

	return serv.Serve()
}
