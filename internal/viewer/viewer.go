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

// Package viewer serves a browsable HTML index of the documentation
// knowledge base.
package viewer

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/rusq/springdocs/internal/knowledge"
)

// Viewer is the documentation index viewer.
type Viewer struct {
	kb   knowledge.Querier
	tmpl *template.Template
	r    Renderer
	lg   *slog.Logger
	mux  *http.ServeMux
}

const hour = 60 * time.Minute

// Option configures the Viewer.
type Option func(*Viewer)

// WithLogger sets the logger.  A nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(v *Viewer) {
		if lg != nil {
			v.lg = lg
		}
	}
}

// WithRenderer sets the description renderer.  The default renders
// markdown.
func WithRenderer(r Renderer) Option {
	return func(v *Viewer) {
		if r != nil {
			v.r = r
		}
	}
}

// New creates new viewer instance over the knowledge base kb.
func New(kb knowledge.Querier, opts ...Option) *Viewer {
	v := &Viewer{
		kb: kb,
		lg: slog.Default(),
		r:  NewGoldmark(),
	}
	for _, opt := range opts {
		opt(v)
	}
	initTemplates(v)

	mux := http.NewServeMux()
	cache := cacheMwareFunc(hour, datasetETag(kb.All()))
	mux.Handle("GET /{$}", cache(http.HandlerFunc(v.indexHandler)))
	mux.Handle("GET /category/{name}", cache(http.HandlerFunc(v.categoryHandler)))
	mux.Handle("GET /search", cacheMwareFunc(0, "")(http.HandlerFunc(v.searchHandler)))
	v.mux = mux
	return v
}

// ServeHTTP implements http.Handler.
func (v *Viewer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	v.mux.ServeHTTP(w, r)
}
