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

// In this file: dataset loading.

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed assets/springdocs.toml
var springdocsTOML string

// dataset is the on-disk shape of the dataset.
type dataset struct {
	Entries []Entry `toml:"entry"`
}

// Load reads a TOML dataset from r and returns a validated Base.
func Load(r io.Reader) (*Base, error) {
	var ds dataset
	md, err := toml.NewDecoder(r).Decode(&ds)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("%w: unknown keys: %v", ErrInvalidDataset, undec)
	}
	if err := validateEntries(ds.Entries); err != nil {
		return nil, err
	}
	return New(ds.Entries), nil
}

// LoadFile loads the dataset from the TOML file at path.
func LoadFile(path string) (*Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

var builtin = sync.OnceValues(func() (*Base, error) {
	return Load(strings.NewReader(springdocsTOML))
})

// Builtin returns the knowledge base compiled into the binary.  It is loaded
// once, subsequent calls return the same instance.
func Builtin() (*Base, error) {
	return builtin()
}

// Open returns the builtin dataset if path is empty, otherwise it loads the
// file at path.
func Open(path string) (*Base, error) {
	if path == "" {
		return Builtin()
	}
	return LoadFile(path)
}
