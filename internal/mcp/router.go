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

// In this file: method routing.

import (
	"context"
	"encoding/json"
	"slices"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// protocolVersion is the MCP protocol revision announced on initialize.
// Clients compare it verbatim.
const protocolVersion = "2024-11-05"

// methodHandler handles a single method.  It returns the result to send to
// the client.
type methodHandler func(ctx context.Context, params json.RawMessage) any

// methods returns the routing table.
func (s *Server) methods() map[mcplib.MCPMethod]methodHandler {
	return map[mcplib.MCPMethod]methodHandler{
		mcplib.MethodInitialize: s.handleInitialize,
		mcplib.MethodToolsList:  s.handleToolsList,
		mcplib.MethodToolsCall:  s.handleToolsCall,
	}
}

// Methods returns the names of the methods the server responds to, sorted.
// Any other method, including notifications/initialized, is accepted
// silently and produces no response.
func (s *Server) Methods() []string {
	names := make([]string, 0, len(s.router))
	for m := range s.router {
		names = append(names, string(m))
	}
	slices.Sort(names)
	return names
}

// dispatch routes the method.  ok is false if the method is not handled, in
// which case nothing should be sent to the client.
func (s *Server) dispatch(ctx context.Context, method string, params json.RawMessage) (result any, ok bool) {
	h, ok := s.router[mcplib.MCPMethod(method)]
	if !ok {
		s.logger.DebugContext(ctx, "mcp: ignoring method", "method", method)
		return nil, false
	}
	return h(ctx, params), true
}

// Handle processes one raw message and returns the response that should be
// sent to the client, or nil if there is nothing to send.
func (s *Server) Handle(ctx context.Context, data []byte) *Response {
	req, dErr := decode(data)
	if dErr != nil {
		s.logger.WarnContext(ctx, "mcp: invalid message", "kind", dErr.Kind, "error", dErr.Err)
		return dErr.Response()
	}
	s.logger.DebugContext(ctx, "mcp: request", "method", req.Method, "id", string(req.ID))
	result, ok := s.dispatch(ctx, req.Method, req.Params)
	if !ok || req.IsNotification() {
		return nil
	}
	return newResult(req.ID, result)
}

// ─── initialize ───────────────────────────────────────────────────────────────

type initializeResult struct {
	ProtocolVersion string                `json:"protocolVersion"`
	Capabilities    serverCapabilities    `json:"capabilities"`
	ServerInfo      mcplib.Implementation `json:"serverInfo"`
	Instructions    string                `json:"instructions,omitempty"`
}

type serverCapabilities struct {
	Tools toolsCapability `json:"tools"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

func (s *Server) handleInitialize(ctx context.Context, _ json.RawMessage) any {
	return initializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: serverCapabilities{
			Tools: toolsCapability{ListChanged: true},
		},
		ServerInfo: mcplib.Implementation{
			Name:    serverName,
			Version: s.version,
		},
		Instructions: instructions,
	}
}

// ─── tools/list ───────────────────────────────────────────────────────────────

func (s *Server) handleToolsList(ctx context.Context, _ json.RawMessage) any {
	return mcplib.ListToolsResult{Tools: s.tools.descriptors()}
}

// ─── tools/call ───────────────────────────────────────────────────────────────

// callParams are the tools/call parameters.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// callResult is the tools/call result.
type callResult struct {
	Content []mcplib.Content `json:"content"`
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) any {
	var p callParams
	if len(params) > 0 {
		// Members of the wrong type or shape are left empty: an unreadable
		// name is an unknown tool, unreadable arguments are empty.
		_ = json.Unmarshal(params, &p)
	}
	return callResult{Content: s.tools.invoke(ctx, p.Name, p.Arguments)}
}
