package server

import (
	"errors"
	"fmt"
	"os/signal"
	"runtime"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/dgrid/dgrid/lib/cache"
	"github.com/dgrid/dgrid/rpc/admin"
	"github.com/dgrid/dgrid/rpc/common"
	"github.com/dgrid/dgrid/rpc/transport"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/time/rate"
)

var Logger = logger.GetLogger("rpc")

var ErrRateLimited = errors.New("rate limit exceeded")

var (
	decodeErrors   = metrics.NewCounter(`dgrid_admin_decode_errors_total`)
	encodeErrors   = metrics.NewCounter(`dgrid_admin_encode_errors_total`)
	rateLimited    = metrics.NewCounter(`dgrid_admin_rate_limited_total`)
	requestSeconds = metrics.NewHistogram(`dgrid_admin_request_duration_seconds`)
)

// NewRPCServer creates a new RPC server
// It takes a config and transport as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		tcp.NewTCPServerTransport(0, 10),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(config common.ServerConfig, transport transport.IRPCServerTransport) IRPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	if config.MemberID == "" {
		config.MemberID = uuid.NewString()
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), max(1, config.RateBurst))
	}

	return &rpcServer{
		config:    config,
		transport: transport,
		caches:    xsync.NewMapOf[int32, cache.ICache](),
		limiter:   limiter,
	}
}

type rpcServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	caches    *xsync.MapOf[int32, cache.ICache]
	limiter   *rate.Limiter
	closeOnce sync.Once
}

// --------------------------------------------------------------------------
// Interface Methods (docu see server.IRPCServer)
// --------------------------------------------------------------------------

func (s *rpcServer) Serve() error {
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}

func (s *rpcServer) Close() (err error) {
	s.closeOnce.Do(func() {
		err = s.transport.Close()
		s.caches.Range(func(id int32, c cache.ICache) bool {
			if cerr := c.Close(); cerr != nil && !errors.Is(cerr, cache.ErrCacheClosed) {
				Logger.Errorf("failed to close cache %d: %v", id, cerr)
			}
			return true
		})
	})
	return err
}

func (s *rpcServer) Caches() []cache.ICache {
	caches := make([]cache.ICache, 0, s.caches.Size())
	s.caches.Range(func(_ int32, c cache.ICache) bool {
		caches = append(caches, c)
		return true
	})
	sort.Slice(caches, func(i, j int) bool { return caches[i].ID() < caches[j].ID() })
	return caches
}

func (s *rpcServer) Cache(id int32) (cache.ICache, bool) {
	return s.caches.Load(id)
}

func (s *rpcServer) MemberID() string {
	return s.config.MemberID
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// init creates the configured caches and registers the request handler
func (s *rpcServer) init() error {
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", s.config.String())

	for _, cacheConfig := range s.config.Caches {
		c := cache.NewLocalCache(cacheConfig.ID, cacheConfig.Name)
		if _, loaded := s.caches.LoadOrStore(cacheConfig.ID, c); loaded {
			return fmt.Errorf("duplicate cache id %d", cacheConfig.ID)
		}
		Logger.Infof("created cache %q with id %d", cacheConfig.Name, cacheConfig.ID)
	}

	s.transport.RegisterHandler(s.handle)

	Logger.Infof("dGrid setup completed successfully")
	return nil
}

// handle decodes an admin request, performs it and returns the encoded response.
// Requests that cannot be decoded or are rejected are answered with an ErrorResponse
func (s *rpcServer) handle(data []byte) []byte {
	start := time.Now()
	defer requestSeconds.UpdateDuration(start)

	req, err := admin.DecodeRequest(data)
	if err != nil {
		decodeErrors.Inc()
		Logger.Warningf("failed to decode admin request: %v", err)
		return s.encode(admin.NewErrorResponse(s.config.MemberID, 0, fmt.Errorf("failed to decode request: %w", err)))
	}

	header := req.GetHeader()
	if s.limiter != nil && !s.limiter.Allow() {
		rateLimited.Inc()
		return s.encode(admin.NewErrorResponse(s.config.MemberID, header.MsgID, ErrRateLimited))
	}

	requestCounter(req).Inc()

	resp := req.CreateResponse(s)
	if err := resp.Err(); err != nil {
		Logger.Debugf("request %d (%s) failed: %v", header.MsgID, req.Description(), err)
	}
	return s.encode(resp)
}

// encode encodes a response. Failures are answered with an ErrorResponse
func (s *rpcServer) encode(resp admin.AdminResponse) []byte {
	data, err := admin.EncodeMessage(resp)
	if err == nil {
		return data
	}

	encodeErrors.Inc()
	Logger.Errorf("failed to encode response: %v", err)
	data, err = admin.EncodeMessage(admin.NewErrorResponse(s.config.MemberID, resp.GetHeader().MsgID, fmt.Errorf("failed to encode response: %w", err)))
	if err != nil {
		Logger.Errorf("failed to encode error response: %v", err)
		return nil
	}
	return data
}

// requestCounter returns the counter of handled requests for the kind of req
func requestCounter(req admin.AdminRequest) *metrics.Counter {
	action := "none"
	if rr, ok := req.(*admin.RegionRequest); ok {
		action = actionLabel(rr.Action())
	}
	return metrics.GetOrCreateCounter(fmt.Sprintf(`dgrid_admin_requests_total{type=%q,action=%q}`, req.MessageType(), action))
}

// actionLabel folds all unknown actions into one label so senders cannot add series
func actionLabel(a admin.ActionKind) string {
	if !a.IsKnown() {
		return "unknown"
	}
	return a.String()
}
