package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/yamafumi/line-mcp/internal/instrumentation"
)

const (
	// DefaultReadHeaderTimeout bounds how long a client may take to send
	// request headers.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultIdleTimeout closes idle keep-alive connections.
	DefaultIdleTimeout = 120 * time.Second
)

// InfoResponse is the JSON served at the root endpoint.
type InfoResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// HTTPServer serves the streamable MCP transport together with the health,
// info and LINE webhook endpoints on a single listener.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	httpServer    *http.Server
	healthChecker *HealthChecker
	metrics       *instrumentation.Metrics
	version       string
}

// NewHTTPServer creates an HTTP server for the given MCP server and context.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, sc *ServerContext, version string) *HTTPServer {
	return &HTTPServer{
		mcpServer:     mcpSrv,
		serverContext: sc,
		healthChecker: NewHealthChecker(sc),
		version:       version,
	}
}

// SetMetrics enables HTTP request instrumentation.
func (s *HTTPServer) SetMetrics(metrics *instrumentation.Metrics) {
	s.metrics = metrics
}

// HealthChecker returns the health checker so callers can flip readiness.
func (s *HTTPServer) HealthChecker() *HealthChecker {
	return s.healthChecker
}

// Handler builds the full request mux. Exposed for tests.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// MCP endpoint (streamable HTTP transport)
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
	)
	mux.Handle("/mcp", streamable)

	// Health probes
	s.healthChecker.RegisterHealthEndpoints(mux)

	// LINE webhook receiver
	mux.Handle("/webhook", NewWebhookHandler(s.serverContext))

	// Server info
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(InfoResponse{
			Name:        "LINE MCP Server",
			Version:     s.version,
			Description: "MCP server for sending messages to LINE groups and personal chats",
		})
	})

	return s.instrumented(mux)
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.healthChecker.SetReady(false)
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// instrumented wraps the handler with HTTP request metrics when configured.
func (s *HTTPServer) instrumented(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush forwards flushes so the streamable transport keeps working under
// the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
