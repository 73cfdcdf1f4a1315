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

package osext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.NoError(t, DirExists(dir))
	assert.ErrorIs(t, DirExists(file), ErrNotADir)
	assert.ErrorIs(t, DirExists(filepath.Join(dir, "missing")), os.ErrNotExist)
}

func TestIsEmptyDir(t *testing.T) {
	empty := t.TempDir()
	got, err := IsEmptyDir(empty)
	require.NoError(t, err)
	assert.True(t, got)

	full := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(full, "f"), nil, 0o644))
	got, err = IsEmptyDir(full)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = IsEmptyDir(filepath.Join(empty, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTerminal(f))
}
