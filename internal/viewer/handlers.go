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
	"net/http"
	"strings"

	"github.com/rusq/springdocs/internal/knowledge"
)

// group is a category with its entries.
type group struct {
	Name    string
	Entries []knowledge.Entry
}

type page struct {
	Title  string
	Query  string
	Groups []group
	Count  int
}

func (v *Viewer) indexHandler(w http.ResponseWriter, r *http.Request) {
	all := v.kb.All()
	v.render(w, "page", page{
		Title:  "Spring documentation",
		Groups: groupEntries(v.kb.Categories(), all),
		Count:  len(all),
	})
}

func (v *Viewer) categoryHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	entries := v.kb.ByCategory(name)
	if len(entries) == 0 {
		http.NotFound(w, r)
		return
	}
	v.render(w, "page", page{
		Title:  entries[0].Category,
		Groups: []group{{Name: entries[0].Category, Entries: entries}},
		Count:  len(entries),
	})
}

func (v *Viewer) searchHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	entries := v.kb.SearchByKeywords(knowledge.SplitKeywords(q))
	v.lg.DebugContext(r.Context(), "viewer: search", "q", q, "n", len(entries))
	var groups []group
	if len(entries) > 0 {
		groups = []group{{Name: "Results", Entries: entries}}
	}
	v.render(w, "page", page{
		Title:  "Search",
		Query:  q,
		Groups: groups,
		Count:  len(entries),
	})
}

func (v *Viewer) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.tmpl.ExecuteTemplate(w, name, data); err != nil {
		v.lg.Error("viewer: template", "name", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// groupEntries groups entries by category, in the order of cats.
func groupEntries(cats []string, entries []knowledge.Entry) []group {
	idx := make(map[string]int, len(cats))
	groups := make([]group, len(cats))
	for i, c := range cats {
		idx[c] = i
		groups[i].Name = c
	}
	for _, e := range entries {
		i, ok := idx[e.Category]
		if !ok {
			continue
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
