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

// In this file: HTTP transport, server-sent events stream and the
// connection registry.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	eventMessage = "message"
	// readyEvent is sent on every new stream.
	readyEvent = `{"type":"connection","status":"ready"}`
)

// sseConn is an open event stream.
type sseConn struct {
	id          string
	connectedAt time.Time

	mu     sync.Mutex // guards w
	w      io.Writer
	flush  func()
	cancel context.CancelFunc
}

// send writes a single event and flushes it to the client.
func (c *sseConn) send(event, data string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, formatEvent(event, data)); err != nil {
		return err
	}
	c.flush()
	return nil
}

// formatEvent formats an event in the text/event-stream format.
func formatEvent(event, data string) string {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(event)
	b.WriteString("\n")
	for line := range strings.SplitSeq(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// connRegistry is the table of open event streams.  It is safe for
// concurrent use.
type connRegistry struct {
	mu    sync.RWMutex
	conns map[string]*sseConn
}

func newConnRegistry() *connRegistry {
	return &connRegistry{conns: make(map[string]*sseConn)}
}

func (r *connRegistry) add(c *sseConn) {
	r.mu.Lock()
	r.conns[c.id] = c
	r.mu.Unlock()
}

// remove removes the connection with the given id.  It reports whether the
// connection was registered, removing an unknown id is a no-op.
func (r *connRegistry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return false
	}
	delete(r.conns, id)
	return true
}

func (r *connRegistry) get(id string) (*sseConn, bool) {
	r.mu.RLock()
	c, ok := r.conns[id]
	r.mu.RUnlock()
	return c, ok
}

func (r *connRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// ids returns the sorted ids of the open connections.
func (r *connRegistry) ids() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// closeAll cancels all open streams.  The handlers remove their
// connections once they return.
func (r *connRegistry) closeAll() {
	r.mu.RLock()
	conns := make([]*sseConn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()
	for _, c := range conns {
		c.cancel()
	}
}

// Handler returns the HTTP handler of the HTTP transport.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	// stdout may be carrying the stdio transport.
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
		NoColor: true,
	}))
	r.Get("/healthcheck", s.handleHealthcheck)
	r.Route("/mcp", func(r chi.Router) {
		r.Get("/sse", s.handleSSE)
		if s.rateLimit > 0 {
			burst := max(1, int(s.rateLimit))
			r.With(rateLimitMware(rate.NewLimiter(rate.Limit(s.rateLimit), burst))).Post("/message", s.handleMessage)
		} else {
			r.Post("/message", s.handleMessage)
		}
	})
	if s.index != nil {
		r.Mount("/", s.index)
	}
	return r
}

// handleSSE opens an event stream and keeps it open until the client goes
// away, the server shuts down or the stream times out.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if s.sseTimeout > 0 {
		ctx, cancel = context.WithTimeout(r.Context(), s.sseTimeout)
	} else {
		ctx, cancel = context.WithCancel(r.Context())
	}
	defer cancel()

	conn := &sseConn{
		id:          uuid.NewString(),
		connectedAt: time.Now(),
		w:           w,
		flush: func() {
			_ = rc.Flush()
		},
		cancel: cancel,
	}
	lg := s.logger.With("conn_id", conn.id)

	s.conns.add(conn)
	defer func() {
		if s.conns.remove(conn.id) {
			lg.DebugContext(ctx, "mcp: sse: connection removed", "open", s.conns.len())
		}
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := conn.send(eventMessage, readyEvent); err != nil {
		lg.WarnContext(ctx, "mcp: sse: send failed", "error", err)
		s.conns.remove(conn.id)
		return
	}
	lg.InfoContext(ctx, "mcp: sse: connection open", "remote", r.RemoteAddr, "open", s.conns.len())

	<-ctx.Done()
	reason := "closed"
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = "timeout"
	}
	lg.InfoContext(ctx, "mcp: sse: connection done", "reason", reason, "duration", time.Since(conn.connectedAt))
}

// handleMessage handles a single JSON-RPC message.  It is not related to any
// open event stream: the response is returned in the response body.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMessageSize))
	if err != nil {
		var mbErr *http.MaxBytesError
		if errors.As(err, &mbErr) {
			http.Error(w, fmt.Sprintf("message exceeds %d bytes", mbErr.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read the request body", http.StatusBadRequest)
		return
	}
	resp := s.Handle(r.Context(), body)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeResponse(w, http.StatusOK, resp)
}

func writeResponse(w http.ResponseWriter, status int, resp *Response) {
	data, err := Encode(resp)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// rateLimitMware rejects requests that exceed the limiter's rate.
func rateLimitMware(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeResponse(w, http.StatusTooManyRequests, newError(nil, codeRateLimited, "rate limit exceeded", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type healthStatus struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
	Started     string `json:"started"`
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthStatus{
		Status:      "ok",
		Connections: s.conns.len(),
		Started:     humanize.Time(s.started),
	})
}
