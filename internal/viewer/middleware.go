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

package viewer

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/rusq/springdocs/internal/knowledge"
)

// cacheMwareFunc returns a middleware that sets cache control headers.  If
// maxAge is zero, responses are not cached.  When etag is not empty, it is
// sent with the response, and a request carrying a matching If-None-Match
// gets 304 Not Modified without reaching next.
//
// [Mozilla reference].
//
// [Mozilla reference]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Cache-Control
func cacheMwareFunc(maxAge time.Duration, etag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if maxAge <= 0 {
				w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
			if etag != "" {
				w.Header().Set("ETag", etag)
				if r.Header.Get("If-None-Match") == etag {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// datasetETag returns a strong entity tag that changes whenever any of the
// rendered fields of entries change.
func datasetETag(entries []knowledge.Entry) string {
	h := fnv.New64a()
	for _, e := range entries {
		for _, s := range []string{e.Title, e.Description, e.Category, e.URL, e.Version} {
			h.Write([]byte(s))
			h.Write([]byte{0})
		}
	}
	return fmt.Sprintf(`"%x"`, h.Sum64())
}
