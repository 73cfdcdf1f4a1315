// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/springdocs/internal/knowledge"
)

const (
	serverName           = "springdocs-mcp"
	defaultServerVersion = "0.1.0"

	// maxMessageSize is the largest message accepted on either transport.
	maxMessageSize = 1 << 20
	// shutdownTimeout is how long the HTTP server waits for the in-flight
	// requests on shutdown.
	shutdownTimeout = 5 * time.Second
)

const instructions = `You are connected to the Spring documentation MCP server.

Available tools allow you to:
- List all Spring documentation resources (getAllDocumentation)
- List the resources of a category (getDocumentationByCategory)
- Search resources by comma-separated keywords (searchDocumentation)
- List the categories (getCategories)

All data is read-only.
`

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout, one JSON message per line (default,
	// suitable for local agent integrations).
	TransportStdio Transport = "stdio"
	// TransportSSE serves HTTP: a server-sent events stream on GET /mcp/sse
	// and synchronous requests on POST /mcp/message.
	TransportSSE Transport = "sse"
	// TransportBoth runs both transports at the same time.
	TransportBoth Transport = "both"
)

// ParseTransport parses the transport name, ignoring case.  The empty string
// is stdio.
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(strings.ToLower(s)); t {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportSSE, TransportBoth:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transport %q (use %q, %q or %q)", s, TransportStdio, TransportSSE, TransportBoth)
	}
}

// Server is the MCP server over the knowledge base.
type Server struct {
	kb      knowledge.Querier
	logger  *slog.Logger
	version string

	router map[mcplib.MCPMethod]methodHandler
	tools  *toolRegistry

	// HTTP transport
	conns      *connRegistry
	sseTimeout time.Duration
	rateLimit  float64
	started    time.Time
	// index is served on the paths not handled by the transport.
	index http.Handler

	// stdio transport
	stdin  io.Reader
	stdout io.Writer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger is replaced with slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithVersion sets the server version announced on initialize.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithSSETimeout closes the event streams after d.  Zero (default) keeps
// them open until the client disconnects or the server shuts down.
func WithSSETimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.sseTimeout = d
		}
	}
}

// WithRateLimit limits POST /mcp/message to rps requests per second.  Zero
// (default) disables the limit.
func WithRateLimit(rps float64) Option {
	return func(s *Server) {
		if rps > 0 {
			s.rateLimit = rps
		}
	}
}

// WithIndex serves h on the HTTP paths that the transport does not handle,
// such as "/".
func WithIndex(h http.Handler) Option {
	return func(s *Server) {
		s.index = h
	}
}

// New creates a new MCP server backed by the knowledge base kb.  The server
// does not start listening until one of the Serve* methods is called.
func New(kb knowledge.Querier, opts ...Option) *Server {
	s := &Server{
		kb:      kb,
		logger:  slog.Default(),
		version: defaultServerVersion,
		conns:   newConnRegistry(),
		started: time.Now(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.methods()
	s.tools = newToolRegistry(s.toolList()...)
	return s
}

// Serve runs the server on the transport t until ctx is cancelled.  addr is
// the listen address of the HTTP transport.  With TransportBoth, closing
// stdin stops the stdio transport only.
func (s *Server) Serve(ctx context.Context, t Transport, addr string) error {
	switch t {
	case TransportStdio, "":
		return s.ServeStdio(ctx)
	case TransportSSE:
		return s.ServeHTTP(ctx, addr)
	case TransportBoth:
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("mcp http server error: %w", err)
		}
		return s.serveBoth(ctx, ln)
	default:
		return fmt.Errorf("mcp: unknown transport %q", t)
	}
}

// serveBoth runs the stdio transport and the HTTP transport on ln.  The end
// of stdin stops the stdio transport only.
func (s *Server) serveBoth(ctx context.Context, ln net.Listener) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := s.ServeStdio(ctx); err != nil {
			return err
		}
		s.logger.InfoContext(ctx, "mcp: stdio closed, http transport continues")
		return nil
	})
	eg.Go(func() error {
		return s.serveHTTP(ctx, ln)
	})
	return eg.Wait()
}

// ServeStdio runs the MCP server over stdin/stdout until stdin is closed or
// ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := s.ServeIO(ctx, s.stdin, s.stdout); err != nil {
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the HTTP transport on addr until ctx is cancelled.  addr
// should be a host:port string such as "127.0.0.1:8484".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp http server error: %w", err)
	}
	return s.serveHTTP(ctx, ln)
}

// serveHTTP serves the HTTP transport on ln until ctx is cancelled.  ln is
// closed on return.
func (s *Server) serveHTTP(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down", "sse_connections", s.conns.len())
		s.conns.closeAll()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(sctx); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
