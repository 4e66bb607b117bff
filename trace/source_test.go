// Copyright © 2025 The failtrace authors

package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\nthird\n"), 0o600))

	r := NewFileReader()
	assert.Equal(t, "first", r.Line(path, 1))
	assert.Equal(t, "third", r.Line(path, 3))
	assert.Equal(t, "", r.Line(path, 0))
	assert.Equal(t, "", r.Line(path, 99))
	assert.Equal(t, "", r.Line("", 1))
	assert.Equal(t, "", r.Line(filepath.Join(dir, "missing.py"), 1))
}

func TestFileReaderCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("before\n"), 0o600))

	r := NewFileReader()
	assert.Equal(t, "before", r.Line(path, 1))
	require.NoError(t, os.WriteFile(path, []byte("after\n"), 0o600))
	assert.Equal(t, "before", r.Line(path, 1), "cached content wins for the render")
}

func TestFileReaderCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dos.py")
	require.NoError(t, os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0o600))

	r := NewFileReader()
	assert.Equal(t, "one", r.Line(path, 1))
	assert.Equal(t, "two", r.Line(path, 2))
}
