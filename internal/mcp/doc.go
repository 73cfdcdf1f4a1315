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

// Package mcp implements a Model Context Protocol (MCP) server for the Spring
// documentation knowledge base.  It exposes the knowledge base through four
// read-only tools that AI agents can call to list and search the
// documentation resources.
//
// Messages are JSON-RPC 2.0.  The server answers initialize, tools/list and
// tools/call, every other method is accepted silently.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio: one message per line on stdin, one response per line on stdout
//     (default); suitable for local agent integration.
//   - sse: HTTP server with a server-sent events stream on GET /mcp/sse and
//     synchronous request handling on POST /mcp/message.
//
// Both transports can run at the same time.
package mcp
