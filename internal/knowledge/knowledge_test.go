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

package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(ee []Entry) []string {
	ret := make([]string, 0, len(ee))
	for _, e := range ee {
		ret = append(ret, e.Title)
	}
	return ret
}

var testEntries = []Entry{
	{Title: "A", Category: "Spring Boot", URL: "https://a.example/", Keywords: []string{"spring-boot", "actuator"}, Version: "1"},
	{Title: "B", Category: "Spring Data", URL: "https://b.example/", Keywords: []string{"spring-data", "jpa"}, Version: "1"},
	{Title: "C", Category: "spring boot", URL: "https://c.example/", Keywords: []string{"Starters"}, Version: "1"},
	{Title: "D", Category: "Spring Data", URL: "https://d.example/", Keywords: []string{"mongodb"}, Version: "1"},
}

func TestBase_ByCategory(t *testing.T) {
	b := New(testEntries)
	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"exact", "Spring Data", []string{"B", "D"}},
		{"lower case", "spring data", []string{"B", "D"}},
		{"mixed case matches both spellings", "SPRING boot", []string{"A", "C"}},
		{"empty", "", []string{}},
		{"substring is not enough", "Spring", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(b.ByCategory(tt.category)))
		})
	}
}

func TestBase_SearchByKeywords(t *testing.T) {
	b := New(testEntries)
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{"single token", []string{"jpa"}, []string{"B"}},
		{"substring of keyword", []string{"boot"}, []string{"A"}},
		{"case insensitive", []string{"STARTER"}, []string{"C"}},
		{"any of tokens", []string{"mongo", "actuator"}, []string{"A", "D"}},
		{"shared prefix", []string{"spring"}, []string{"A", "B"}},
		{"empty token matches nothing", []string{""}, []string{}},
		{"no tokens", nil, []string{}},
		{"no match", []string{"kafka"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(b.SearchByKeywords(tt.tokens)))
		})
	}
}

func TestBase_Categories(t *testing.T) {
	b := New(testEntries)
	// "spring boot" differs from "Spring Boot" and is distinct.
	assert.Equal(t, []string{"Spring Boot", "Spring Data", "spring boot"}, b.Categories())
}

func TestBase_immutable(t *testing.T) {
	src := []Entry{{Title: "A", Category: "X"}}
	b := New(src)
	src[0].Title = "changed"
	all := b.All()
	assert.Equal(t, "A", all[0].Title)
	all[0].Title = "changed again"
	assert.Equal(t, "A", b.All()[0].Title)

	cats := b.Categories()
	cats[0] = "Y"
	assert.Equal(t, []string{"X"}, b.Categories())
}

func TestBuiltin(t *testing.T) {
	b, err := Builtin()
	require.NoError(t, err)
	assert.Equal(t, 11, b.Len())
	assert.Equal(t, []string{
		"Spring Boot",
		"Spring Framework",
		"Spring Data",
		"Spring Security",
		"Spring Cloud",
		"Spring Integration",
		"Spring Batch",
	}, b.Categories())

	again, err := Builtin()
	require.NoError(t, err)
	assert.Same(t, b, again)

	jpa := b.SearchByKeywords([]string{"jpa"})
	require.NotEmpty(t, jpa)
	assert.Equal(t, "Spring Data", jpa[0].Category)
	assert.Contains(t, jpa[0].Keywords, "jpa")
}

func TestLoad(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		b, err := Load(strings.NewReader(`
[[entry]]
title = "T"
category = "C"
url = "https://example.com/"
keywords = ["k"]
version = "1.0"
`))
		require.NoError(t, err)
		assert.Equal(t, 1, b.Len())
	})
	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(strings.NewReader(`[[entry]`))
		assert.Error(t, err)
	})
	t.Run("empty dataset", func(t *testing.T) {
		_, err := Load(strings.NewReader(``))
		assert.ErrorIs(t, err, ErrInvalidDataset)
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
[[entry]]
title = "T"
category = "C"
url = "https://example.com/"
keywords = ["k"]
version = "1.0"
author = "me"
`))
		assert.ErrorIs(t, err, ErrInvalidDataset)
	})
	t.Run("validation errors are translated", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
[[entry]]
title = "T"
url = "not a url"
keywords = []
version = "1.0"
`))
		require.ErrorIs(t, err, ErrInvalidDataset)
		msg := err.Error()
		assert.Contains(t, msg, `entry 0 ("T")`)
		assert.Contains(t, msg, "Category is a required field")
		assert.Contains(t, msg, "URL must be a valid URL")
	})
}

func TestOpen(t *testing.T) {
	t.Run("empty path opens builtin", func(t *testing.T) {
		b, err := Open("")
		require.NoError(t, err)
		builtin, _ := Builtin()
		assert.Same(t, builtin, b)
	})
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docs.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[[entry]]
title = "T"
category = "C"
url = "https://example.com/"
keywords = ["k"]
version = "1.0"
`), 0o644))
		b, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, b.Categories())
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"jpa", []string{"jpa"}},
		{"a,b", []string{"a", "b"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b,", []string{"a", "b"}},
		{" , ", nil},
		{"spring boot,web", []string{"spring boot", "web"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitKeywords(tt.in))
		})
	}
}
