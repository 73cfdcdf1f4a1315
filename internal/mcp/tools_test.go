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

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/springdocs/internal/knowledge"
	"github.com/rusq/springdocs/internal/knowledge/mock_knowledge"
)

// newMockServer creates a *Server backed by a MockQuerier.
func newMockServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock_knowledge.MockQuerier) {
	t.Helper()
	m := mock_knowledge.NewMockQuerier(ctrl)
	srv := New(m, WithLogger(discardLogger))
	require.NotNil(t, srv)
	return srv, m
}

// callTool issues tools/call with the given params and returns the text of
// the single content item.
func callTool(t *testing.T, srv *Server, params string) string {
	t.Helper()
	data := roundtrip(t, srv, fmt.Sprintf(`{"jsonrpc":"2.0","method":"tools/call","params":%s,"id":1}`, params))
	require.NotNil(t, data)
	var resp struct {
		Result struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.Result.Content, 1)
	assert.Equal(t, "text", resp.Result.Content[0].Type)
	return resp.Result.Content[0].Text
}

// textOf returns the text of the single text content item.
func textOf(t *testing.T, content []mcplib.Content) string {
	t.Helper()
	require.Len(t, content, 1)
	tc, ok := content[0].(mcplib.TextContent)
	require.True(t, ok, "expected TextContent, got %T", content[0])
	return tc.Text
}

// resourceCount returns the number of "## " headings in text.
func resourceCount(text string) int {
	return strings.Count(text, "## ")
}

// ─── registry ─────────────────────────────────────────────────────────────────

func TestNewToolRegistry_duplicate(t *testing.T) {
	tool := serverTool{Tool: mcplib.NewTool("x")}
	assert.Panics(t, func() {
		newToolRegistry(tool, tool)
	})
}

func TestToolRegistry_invoke(t *testing.T) {
	var called bool
	r := newToolRegistry(serverTool{
		Tool: mcplib.NewTool("echo"),
		Handler: func(_ context.Context, args map[string]any) []mcplib.Content {
			called = true
			return textResult(stringArg(args, "s"))
		},
	})
	got := r.invoke(context.Background(), "echo", map[string]any{"s": "hello"})
	assert.True(t, called)
	assert.Equal(t, "hello", textOf(t, got))

	got = r.invoke(context.Background(), "nope", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ─── handlers (mocked knowledge base) ─────────────────────────────────────────

func TestGetAllDocumentation(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, m := newMockServer(t, ctrl)
	m.EXPECT().All().Return(testEntries[:2])

	got := callTool(t, srv, `{"name":"getAllDocumentation"}`)
	want := "Documentation (2 resources):\n\n" +
		"## Spring Boot Reference\n" +
		"- Category: Spring Boot\n" +
		"- Version: 3.2.0\n" +
		"- URL: https://docs.spring.io/spring-boot/reference/\n\n" +
		"## Spring Data JPA Reference\n" +
		"- Category: Spring Data\n" +
		"- Version: 3.2.0\n" +
		"- URL: https://docs.spring.io/spring-data/jpa/reference/\n\n"
	assert.Equal(t, want, got)
}

func TestGetDocumentationByCategory(t *testing.T) {
	tests := []struct {
		name     string
		params   string
		wantCall string
	}{
		{"category given", `{"name":"getDocumentationByCategory","arguments":{"category":"spring boot"}}`, "spring boot"},
		{"no arguments", `{"name":"getDocumentationByCategory"}`, ""},
		{"empty arguments", `{"name":"getDocumentationByCategory","arguments":{}}`, ""},
		{"unrelated argument", `{"name":"getDocumentationByCategory","arguments":{"keywords":"jpa"}}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, m := newMockServer(t, ctrl)
			m.EXPECT().ByCategory(tt.wantCall).Return(nil)

			got := callTool(t, srv, tt.params)
			assert.Equal(t, "Documentation (0 resources):\n\n", got)
		})
	}
}

func TestSearchDocumentation(t *testing.T) {
	tests := []struct {
		name       string
		keywords   string
		wantTokens []string
	}{
		{"single", "jpa", []string{"jpa"}},
		{"multiple", "jpa,security", []string{"jpa", "security"}},
		{"spaces and empties", " jpa , ,security,, ", []string{"jpa", "security"}},
		{"empty", "", nil},
		{"only commas", ",,,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			srv, m := newMockServer(t, ctrl)
			m.EXPECT().SearchByKeywords(tt.wantTokens).Return(testEntries[2:3])

			params := fmt.Sprintf(`{"name":"searchDocumentation","arguments":{"keywords":%q}}`, tt.keywords)
			got := callTool(t, srv, params)
			assert.True(t, strings.HasPrefix(got, "Documentation (1 resources):\n\n"), got)
			assert.Contains(t, got, "## Spring Security Reference\n")
		})
	}
}

func TestGetCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, m := newMockServer(t, ctrl)
	m.EXPECT().Categories().Return([]string{"Spring Boot", "Spring Data"})

	got := callTool(t, srv, `{"name":"getCategories","arguments":{}}`)
	assert.Equal(t, "Available categories:\n- Spring Boot\n- Spring Data\n", got)
}

func TestUnknownTool_noQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newMockServer(t, ctrl)
	// no expectations: an unknown tool must not touch the knowledge base.
	data := roundtrip(t, srv, `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"getAll"},"id":2}`)
	assert.JSONEq(t, `{"jsonrpc":"2.0","result":{"content":[]},"id":2}`, string(data))
}

// ─── handlers (built-in dataset) ──────────────────────────────────────────────

func newBuiltinServer(t *testing.T) *Server {
	t.Helper()
	kb, err := knowledge.Builtin()
	require.NoError(t, err)
	return New(kb, WithLogger(discardLogger))
}

func TestBuiltin_getAllDocumentation(t *testing.T) {
	srv := newBuiltinServer(t)
	got := callTool(t, srv, `{"name":"getAllDocumentation"}`)
	assert.True(t, strings.HasPrefix(got, "Documentation (11 resources):\n\n"), got)
	assert.Equal(t, 11, resourceCount(got))
}

func TestBuiltin_categoryIgnoresCase(t *testing.T) {
	srv := newBuiltinServer(t)
	want := callTool(t, srv, `{"name":"getDocumentationByCategory","arguments":{"category":"Spring Boot"}}`)
	assert.Equal(t, 2, resourceCount(want))
	for _, variant := range []string{"spring boot", "SPRING BOOT", "sPrInG bOoT"} {
		got := callTool(t, srv, fmt.Sprintf(`{"name":"getDocumentationByCategory","arguments":{"category":%q}}`, variant))
		assert.Equal(t, want, got, variant)
	}
	// exact match only
	got := callTool(t, srv, `{"name":"getDocumentationByCategory","arguments":{"category":"Spring"}}`)
	assert.Equal(t, "Documentation (0 resources):\n\n", got)
}

func TestBuiltin_search(t *testing.T) {
	srv := newBuiltinServer(t)
	t.Run("jpa", func(t *testing.T) {
		got := callTool(t, srv, `{"name":"searchDocumentation","arguments":{"keywords":"jpa"}}`)
		assert.Contains(t, got, "## Spring Data JPA Reference\n- Category: Spring Data\n")
	})
	t.Run("case and substring", func(t *testing.T) {
		got := callTool(t, srv, `{"name":"searchDocumentation","arguments":{"keywords":"JP"}}`)
		assert.Contains(t, got, "- Category: Spring Data\n")
	})
	t.Run("empty keywords match nothing", func(t *testing.T) {
		got := callTool(t, srv, `{"name":"searchDocumentation","arguments":{"keywords":""}}`)
		assert.Equal(t, "Documentation (0 resources):\n\n", got)
	})
	t.Run("absent keywords match nothing", func(t *testing.T) {
		got := callTool(t, srv, `{"name":"searchDocumentation"}`)
		assert.Equal(t, "Documentation (0 resources):\n\n", got)
	})
}

func TestBuiltin_getCategories(t *testing.T) {
	srv := newBuiltinServer(t)
	got := callTool(t, srv, `{"name":"getCategories"}`)
	assert.Equal(t, "Available categories:\n"+
		"- Spring Boot\n"+
		"- Spring Framework\n"+
		"- Spring Data\n"+
		"- Spring Security\n"+
		"- Spring Cloud\n"+
		"- Spring Integration\n"+
		"- Spring Batch\n", got)
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func TestStringArg(t *testing.T) {
	args := map[string]any{"s": "x", "n": 1, "b": true}
	assert.Equal(t, "x", stringArg(args, "s"))
	assert.Equal(t, "", stringArg(args, "n"))
	assert.Equal(t, "", stringArg(args, "b"))
	assert.Equal(t, "", stringArg(args, "missing"))
	assert.Equal(t, "", stringArg(nil, "s"))
}

func TestFormatEntries_empty(t *testing.T) {
	assert.Equal(t, "Documentation (0 resources):\n\n", formatEntries(nil))
}

func TestFormatCategories_empty(t *testing.T) {
	assert.Equal(t, "Available categories:\n", formatCategories(nil))
}
