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

// Package knowledge holds the read-only Spring documentation dataset and the
// queries the MCP tools run against it.
//
// The dataset is fixed at build time (it is embedded in the binary), and can
// be replaced at deploy time with a TOML file of the same shape.  Once loaded,
// a [Base] is never mutated, so it is safe for concurrent use without locking.
package knowledge

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Querier is the read-only query interface of the knowledge base.
//
//go:generate mockgen -destination=mock_knowledge/mock_knowledge.go . Querier
type Querier interface {
	// All returns every entry in dataset order.
	All() []Entry
	// ByCategory returns entries whose category equals category, ignoring
	// case.
	ByCategory(category string) []Entry
	// SearchByKeywords returns entries that have at least one keyword that
	// contains at least one of the given tokens, ignoring case.  Empty tokens
	// never match.
	SearchByKeywords(tokens []string) []Entry
	// Categories returns the distinct categories in order of first
	// occurrence.
	Categories() []string
}

// Base is the in-memory knowledge base.
type Base struct {
	entries    []Entry
	categories []string
}

var _ Querier = (*Base)(nil)

// New creates a Base from entries.  The slice is copied, the caller may reuse
// it.
func New(entries []Entry) *Base {
	b := &Base{
		entries: slices.Clone(entries),
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range b.entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		b.categories = append(b.categories, e.Category)
	}
	return b
}

func (b *Base) All() []Entry {
	return slices.Clone(b.entries)
}

func (b *Base) ByCategory(category string) []Entry {
	want := fold(category)
	var ret []Entry
	for _, e := range b.entries {
		if fold(e.Category) == want {
			ret = append(ret, e)
		}
	}
	return ret
}

func (b *Base) SearchByKeywords(tokens []string) []Entry {
	folded := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		folded = append(folded, fold(t))
	}
	if len(folded) == 0 {
		return nil
	}
	var ret []Entry
	for _, e := range b.entries {
		if e.matchesAny(folded) {
			ret = append(ret, e)
		}
	}
	return ret
}

// SplitKeywords splits a comma-separated keyword list.  Tokens are trimmed,
// empty tokens are dropped.
func SplitKeywords(s string) []string {
	var tokens []string
	for tok := range strings.SplitSeq(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func (b *Base) Categories() []string {
	return slices.Clone(b.categories)
}

// Len returns the number of entries.
func (b *Base) Len() int {
	return len(b.entries)
}

// matchesAny reports whether any keyword of e contains any of the folded
// tokens.
func (e Entry) matchesAny(folded []string) bool {
	for _, kw := range e.Keywords {
		fkw := fold(kw)
		for _, tok := range folded {
			if strings.Contains(fkw, tok) {
				return true
			}
		}
	}
	return false
}

// fold returns the case-folded s.  A Caser is stateful, so a new one is
// created on each call.
func fold(s string) string {
	return cases.Fold().String(s)
}
