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
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantReq  *Request
		wantKind ErrorKind
		wantID   json.RawMessage
	}{
		{
			name: "request with numeric id",
			data: `{"jsonrpc":"2.0","method":"tools/list","id":1}`,
			wantReq: &Request{
				JSONRPC: "2.0",
				Method:  "tools/list",
				ID:      json.RawMessage(`1`),
			},
		},
		{
			name: "request with string id and params",
			data: `{"jsonrpc":"2.0","method":"tools/call","params":{"name":"getCategories"},"id":"abc"}`,
			wantReq: &Request{
				JSONRPC: "2.0",
				Method:  "tools/call",
				Params:  json.RawMessage(`{"name":"getCategories"}`),
				ID:      json.RawMessage(`"abc"`),
			},
		},
		{
			name: "explicit null id is kept",
			data: `{"jsonrpc":"2.0","method":"initialize","id":null}`,
			wantReq: &Request{
				JSONRPC: "2.0",
				Method:  "initialize",
				ID:      json.RawMessage(`null`),
			},
		},
		{
			name: "notification",
			data: `{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			wantReq: &Request{
				JSONRPC: "2.0",
				Method:  "notifications/initialized",
			},
		},
		{
			name: "method of wrong type decodes to empty",
			data: `{"jsonrpc":"2.0","method":42,"id":7}`,
			wantReq: &Request{
				JSONRPC: "2.0",
				ID:      json.RawMessage(`7`),
			},
		},
		{
			name:     "not json",
			data:     `{not json`,
			wantKind: ParseFailure,
		},
		{
			name:     "empty input",
			data:     ``,
			wantKind: ParseFailure,
		},
		{
			name:     "wrong version",
			data:     `{"jsonrpc":"1.0","method":"initialize","id":3}`,
			wantKind: InvalidVersion,
			wantID:   json.RawMessage(`3`),
		},
		{
			name:     "missing version",
			data:     `{"method":"initialize","id":"x"}`,
			wantKind: InvalidVersion,
			wantID:   json.RawMessage(`"x"`),
		},
		{
			name:     "version of wrong type",
			data:     `{"jsonrpc":2.0,"method":"initialize","id":4}`,
			wantKind: InvalidVersion,
			wantID:   json.RawMessage(`4`),
		},
		{
			name:     "array is valid json but not a request",
			data:     `[1,2,3]`,
			wantKind: InvalidVersion,
		},
		{
			name:     "scalar",
			data:     `"2.0"`,
			wantKind: InvalidVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if tt.wantKind != 0 {
				require.Error(t, err)
				var dErr *DecodeError
				require.ErrorAs(t, err, &dErr)
				assert.Equal(t, tt.wantKind, dErr.Kind)
				assert.Equal(t, tt.wantID, dErr.ID)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReq, got)
		})
	}
}

func TestDecode_sentinels(t *testing.T) {
	_, err := Decode([]byte(`{`))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Decode([]byte(`{"jsonrpc":"1.0"}`))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestRequest_IsNotification(t *testing.T) {
	assert.True(t, (&Request{}).IsNotification())
	assert.False(t, (&Request{ID: json.RawMessage(`0`)}).IsNotification())
	assert.False(t, (&Request{ID: json.RawMessage(`null`)}).IsNotification())
}

func TestDecodeError_Response(t *testing.T) {
	t.Run("parse failure has null id", func(t *testing.T) {
		_, err := Decode([]byte(`{not json`))
		var dErr *DecodeError
		require.ErrorAs(t, err, &dErr)

		resp := dErr.Response()
		require.NotNil(t, resp.Error)
		assert.Equal(t, mcplib.PARSE_ERROR, resp.Error.Code)
		assert.Equal(t, "Parse error", resp.Error.Message)

		data, err := Encode(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"jsonrpc":"2.0","error":{"code":-32700,"message":"Parse error","data":"parse error"},"id":null}`, string(data))
	})
	t.Run("invalid version echoes id", func(t *testing.T) {
		_, err := Decode([]byte(`{"jsonrpc":"1.0","method":"initialize","id":"q"}`))
		var dErr *DecodeError
		require.ErrorAs(t, err, &dErr)

		resp := dErr.Response()
		require.NotNil(t, resp.Error)
		assert.Equal(t, mcplib.INVALID_REQUEST, resp.Error.Code)
		assert.Equal(t, "Invalid Request", resp.Error.Message)
		assert.Equal(t, json.RawMessage(`"q"`), resp.ID)
	})
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "ParseFailure", ParseFailure.String())
	assert.Equal(t, "InvalidVersion", InvalidVersion.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		resp    *Response
		want    string
		wantErr bool
	}{
		{
			name: "result with numeric id",
			resp: &Response{ID: json.RawMessage(`1`), Result: map[string]int{"a": 1}},
			want: `{"jsonrpc":"2.0","result":{"a":1},"id":1}`,
		},
		{
			name: "result with string id",
			resp: &Response{ID: json.RawMessage(`"1"`), Result: []int{}},
			want: `{"jsonrpc":"2.0","result":[],"id":"1"}`,
		},
		{
			name: "error without id",
			resp: &Response{Error: &Error{Code: -32600, Message: "Invalid Request"}},
			want: `{"jsonrpc":"2.0","error":{"code":-32600,"message":"Invalid Request"},"id":null}`,
		},
		{
			name:    "neither result nor error",
			resp:    &Response{ID: json.RawMessage(`1`)},
			wantErr: true,
		},
		{
			name:    "both result and error",
			resp:    &Response{ID: json.RawMessage(`1`), Result: 1, Error: &Error{}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.resp)
			if tt.wantErr {
				assert.ErrorIs(t, err, errMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}
