package server

import (
	"context"
	"sync"

	"github.com/yamafumi/line-mcp/internal/config"
	"github.com/yamafumi/line-mcp/internal/instrumentation"
	"github.com/yamafumi/line-mcp/internal/line"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx        context.Context
	cancel     context.CancelFunc
	cfg        *config.Config
	lineClient *line.Client
	metrics    *instrumentation.Metrics
	mu         sync.RWMutex
	shutdown   bool
}

// NewServerContext creates a new server context with a LINE client built
// from the given configuration.
func NewServerContext(ctx context.Context, cfg *config.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	opts := []line.Option{line.WithTimeout(cfg.Timeout)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, line.WithBaseURL(cfg.APIEndpoint))
	}

	client, err := line.NewClient(cfg.ChannelAccessToken, opts...)
	if err != nil {
		cancel()
		return nil, err
	}

	return &ServerContext{
		ctx:        shutdownCtx,
		cancel:     cancel,
		cfg:        cfg,
		lineClient: client,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the immutable process configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.cfg
}

// LineClient returns the LINE Messaging API client.
func (sc *ServerContext) LineClient() *line.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.lineClient
}

// SetLineClient replaces the LINE client. Used by tests.
func (sc *ServerContext) SetLineClient(client *line.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.lineClient = client
}

// Metrics returns the metrics recorder, or nil if instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
