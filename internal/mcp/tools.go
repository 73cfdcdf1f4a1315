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

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rusq/springdocs/internal/knowledge"
)

// Tool names.
const (
	ToolGetAllDocumentation        = "getAllDocumentation"
	ToolGetDocumentationByCategory = "getDocumentationByCategory"
	ToolSearchDocumentation        = "searchDocumentation"
	ToolGetCategories              = "getCategories"
)

// toolHandler produces the content of a tool call.  Absent arguments are
// absent from args.
type toolHandler func(ctx context.Context, args map[string]any) []mcplib.Content

// serverTool is a tool descriptor together with its handler.
type serverTool struct {
	Tool    mcplib.Tool
	Handler toolHandler
}

// toolRegistry is the fixed, ordered catalogue of tools.  It is not modified
// after construction.
type toolRegistry struct {
	tools []serverTool
	index map[string]int
}

func newToolRegistry(tools ...serverTool) *toolRegistry {
	r := &toolRegistry{
		tools: tools,
		index: make(map[string]int, len(tools)),
	}
	for i, t := range tools {
		if _, dup := r.index[t.Tool.Name]; dup {
			panic("mcp: duplicate tool " + t.Tool.Name)
		}
		r.index[t.Tool.Name] = i
	}
	return r
}

// descriptors returns the tool descriptors in registration order.
func (r *toolRegistry) descriptors() []mcplib.Tool {
	ret := make([]mcplib.Tool, len(r.tools))
	for i, t := range r.tools {
		ret[i] = t.Tool
	}
	return ret
}

// invoke calls the named tool.  An unknown tool yields empty content.
func (r *toolRegistry) invoke(ctx context.Context, name string, args map[string]any) []mcplib.Content {
	i, ok := r.index[name]
	if !ok {
		return []mcplib.Content{}
	}
	return r.tools[i].Handler(ctx, args)
}

// toolList returns all MCP tools that this server exposes.
func (s *Server) toolList() []serverTool {
	return []serverTool{
		s.toolGetAllDocumentation(),
		s.toolGetDocumentationByCategory(),
		s.toolSearchDocumentation(),
		s.toolGetCategories(),
	}
}

// ─── getAllDocumentation ──────────────────────────────────────────────────────

func (s *Server) toolGetAllDocumentation() serverTool {
	tool := mcplib.NewTool(ToolGetAllDocumentation,
		mcplib.WithDescription("List every Spring documentation resource known to the server."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return serverTool{Tool: tool, Handler: s.handleGetAllDocumentation}
}

func (s *Server) handleGetAllDocumentation(ctx context.Context, _ map[string]any) []mcplib.Content {
	return textResult(formatEntries(s.kb.All()))
}

// ─── getDocumentationByCategory ───────────────────────────────────────────────

func (s *Server) toolGetDocumentationByCategory() serverTool {
	tool := mcplib.NewTool(ToolGetDocumentationByCategory,
		mcplib.WithDescription("List the documentation resources of a category.  The category is matched ignoring case."),
		mcplib.WithString("category",
			mcplib.Description("Category (Spring Boot, Spring Security, etc.)"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return serverTool{Tool: tool, Handler: s.handleGetDocumentationByCategory}
}

func (s *Server) handleGetDocumentationByCategory(ctx context.Context, args map[string]any) []mcplib.Content {
	category := stringArg(args, "category")
	entries := s.kb.ByCategory(category)
	s.logger.DebugContext(ctx, "mcp: by category", "category", category, "n", len(entries))
	return textResult(formatEntries(entries))
}

// ─── searchDocumentation ──────────────────────────────────────────────────────

func (s *Server) toolSearchDocumentation() serverTool {
	tool := mcplib.NewTool(ToolSearchDocumentation,
		mcplib.WithDescription("Search documentation resources by keywords.  A resource matches if any of its keywords contains any of the given keywords, ignoring case."),
		mcplib.WithString("keywords",
			mcplib.Description("Comma-separated keywords"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return serverTool{Tool: tool, Handler: s.handleSearchDocumentation}
}

func (s *Server) handleSearchDocumentation(ctx context.Context, args map[string]any) []mcplib.Content {
	tokens := knowledge.SplitKeywords(stringArg(args, "keywords"))
	entries := s.kb.SearchByKeywords(tokens)
	s.logger.DebugContext(ctx, "mcp: search", "tokens", tokens, "n", len(entries))
	return textResult(formatEntries(entries))
}

// ─── getCategories ────────────────────────────────────────────────────────────

func (s *Server) toolGetCategories() serverTool {
	tool := mcplib.NewTool(ToolGetCategories,
		mcplib.WithDescription("List the documentation categories."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return serverTool{Tool: tool, Handler: s.handleGetCategories}
}

func (s *Server) handleGetCategories(ctx context.Context, _ map[string]any) []mcplib.Content {
	return textResult(formatCategories(s.kb.Categories()))
}

// ─── formatting ───────────────────────────────────────────────────────────────

// formatEntries renders the entries as a single text block with a header
// line stating the number of entries.
func formatEntries(entries []knowledge.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Documentation (%d resources):\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "## %s\n", e.Title)
		fmt.Fprintf(&sb, "- Category: %s\n", e.Category)
		fmt.Fprintf(&sb, "- Version: %s\n", e.Version)
		fmt.Fprintf(&sb, "- URL: %s\n\n", e.URL)
	}
	return sb.String()
}

func formatCategories(cats []string) string {
	var sb strings.Builder
	sb.WriteString("Available categories:\n")
	for _, c := range cats {
		sb.WriteString("- ")
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	return sb.String()
}

// textResult wraps text in a content slice.
func textResult(text string) []mcplib.Content {
	return []mcplib.Content{mcplib.NewTextContent(text)}
}

// stringArg returns the named string argument.  It returns an empty string
// if the argument is absent or is not a string.
func stringArg(args map[string]any, name string) string {
	v, ok := args[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
