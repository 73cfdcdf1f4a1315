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

// In this file: JSON-RPC envelope decoding and encoding.

import (
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
)

// Request is a decoded JSON-RPC request or notification.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	// Params is kept raw, each method decodes it into its own type.
	Params json.RawMessage `json:"params,omitempty"`
	// ID is nil when the message is a notification.  An explicit null id
	// decodes to the literal "null" and is echoed back.
	ID json.RawMessage `json:"id,omitempty"`
}

// IsNotification returns true if the request carries no id.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// Response is a JSON-RPC response.  Exactly one of Result or Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error messages for the codes this server emits.
const (
	msgParseError     = "Parse error"
	msgInvalidRequest = "Invalid Request"
)

// codeRateLimited is a server-defined error code, used by the HTTP transport
// only.
const codeRateLimited = -32000

var (
	// ErrParse is returned when the message is not valid JSON.
	ErrParse = errors.New("parse error")
	// ErrInvalidVersion is returned when the jsonrpc member is missing or is
	// not "2.0".
	ErrInvalidVersion = errors.New("invalid JSON-RPC version")

	errMalformedResponse = errors.New("response must have exactly one of result or error")
)

// ErrorKind classifies decoding failures.
type ErrorKind uint8

const (
	ParseFailure ErrorKind = iota + 1
	InvalidVersion
)

func (k ErrorKind) String() string {
	switch k {
	case ParseFailure:
		return "ParseFailure"
	case InvalidVersion:
		return "InvalidVersion"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// DecodeError is returned by [Decode].
type DecodeError struct {
	Kind ErrorKind
	// ID is the request id, if it could be recovered.
	ID  json.RawMessage
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Response returns the error response that should be sent to the client.
func (e *DecodeError) Response() *Response {
	switch e.Kind {
	case ParseFailure:
		return newError(nil, mcplib.PARSE_ERROR, msgParseError, e.Err.Error())
	default:
		return newError(e.ID, mcplib.INVALID_REQUEST, msgInvalidRequest, e.Err.Error())
	}
}

// Decode decodes a single message.  Any valid JSON is accepted, members of the
// wrong type decode to their zero value.  It returns a *DecodeError if data
// is not valid JSON, or if the jsonrpc version does not match.
func Decode(data []byte) (*Request, error) {
	req, err := decode(data)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func decode(data []byte) (*Request, *DecodeError) {
	if !json.Valid(data) {
		return nil, &DecodeError{Kind: ParseFailure, Err: ErrParse}
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &DecodeError{Kind: ParseFailure, Err: fmt.Errorf("%w: %w", ErrParse, err)}
		}
		// the remaining members are still decoded.
	}
	if req.JSONRPC != mcplib.JSONRPC_VERSION {
		return nil, &DecodeError{
			Kind: InvalidVersion,
			ID:   req.ID,
			Err:  fmt.Errorf("%w: %q", ErrInvalidVersion, req.JSONRPC),
		}
	}
	return &req, nil
}

// Encode encodes the response.
func Encode(resp *Response) ([]byte, error) {
	if (resp.Result == nil) == (resp.Error == nil) {
		return nil, errMalformedResponse
	}
	resp.JSONRPC = mcplib.JSONRPC_VERSION
	return json.Marshal(resp)
}

func newResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: mcplib.JSONRPC_VERSION, ID: id, Result: result}
}

func newError(id json.RawMessage, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: mcplib.JSONRPC_VERSION,
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	}
}
