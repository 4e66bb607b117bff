// Copyright © 2025 The failtrace authors

package trace

import (
	"os"
	"strings"
	"sync"
)

// SourceReader returns the text of one line of a source file.  An empty
// string means the line could not be read; rendering degrades rather than
// failing.
type SourceReader interface {
	Line(path string, lineno int) string
}

// FileReader is a SourceReader backed by an in-memory file cache so that
// rendering a deep trace reads each file at most once.  It is safe for
// concurrent use.
type FileReader struct {
	mu    sync.Mutex
	files map[string][]string
}

var _ SourceReader = (*FileReader)(nil)

// NewFileReader returns an empty FileReader.
func NewFileReader() *FileReader {
	return &FileReader{files: make(map[string][]string)}
}

// Line implements SourceReader.  Line numbers start at 1.
func (r *FileReader) Line(path string, lineno int) string {
	if path == "" || lineno < 1 {
		return ""
	}
	r.mu.Lock()
	lines, ok := r.files[path]
	if !ok {
		lines = readLines(path)
		r.files[path] = lines
	}
	r.mu.Unlock()
	if lineno > len(lines) {
		return ""
	}
	return lines[lineno-1]
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n")
}
