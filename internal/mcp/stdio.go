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

// In this file: line-oriented stdio transport.

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// ServeIO reads one message per line from r and writes one response per line
// to w.  Each message is fully processed and its response flushed before
// the next line is read.  It returns nil when r reaches EOF or ctx is
// cancelled.
func (s *Server) ServeIO(ctx context.Context, r io.Reader, w io.Writer) error {
	// stops the reader goroutine on any return.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	var (
		lines = make(chan []byte)
		next  = make(chan struct{})
		errC  = make(chan error, 1)
	)
	// the reader does not scan the next line until the current one is
	// processed.
	go func() {
		defer close(lines)
		for sc.Scan() {
			select {
			case lines <- sc.Bytes():
			case <-ctx.Done():
				return
			}
			select {
			case <-next:
			case <-ctx.Done():
				return
			}
		}
		errC <- sc.Err()
	}()

	bw := bufio.NewWriter(w)
	var nreq int
	for {
		select {
		case <-ctx.Done():
			s.logger.DebugContext(ctx, "mcp: stdio: context done", "requests", nreq)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errC:
					if err != nil {
						return fmt.Errorf("read: %w", err)
					}
				default:
				}
				s.logger.DebugContext(ctx, "mcp: stdio: input closed", "requests", nreq)
				return nil
			}
			answered, err := s.processLine(ctx, bw, line)
			if err != nil {
				return err
			}
			if answered {
				nreq++
			}
			select {
			case next <- struct{}{}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// processLine handles a single line, and writes the response, if any, to bw.
// It returns true if the line was a request that got a result.  Blank lines,
// notifications and undecodable messages return false.
func (s *Server) processLine(ctx context.Context, bw *bufio.Writer, line []byte) (bool, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return false, nil
	}
	resp := s.Handle(ctx, line)
	if resp == nil {
		return false, nil
	}
	data, err := Encode(resp)
	if err != nil {
		return false, fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	if _, err := bw.Write(data); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return false, fmt.Errorf("write: %w", err)
	}
	return resp.Error == nil, nil
}
