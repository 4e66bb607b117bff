// Copyright © 2025 The failtrace authors

// Package dump reads and writes serialized failure chains captured at the
// point of error, so a trace recorded in one process (or one language
// runtime) can be rendered elsewhere.  Dumps are JSON for interchange and
// msgpack for compactness; the format is chosen by file extension.
package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/quillsoft/failtrace/inspect"
	"github.com/quillsoft/failtrace/trace"
)

// Dump is the serialized form of one failure chain.
type Dump struct {
	// Version guards the dump layout.  Readers accept version 1 only.
	Version int    `json:"version" msgpack:"version"`
	Lang    string `json:"lang,omitempty" msgpack:"lang,omitempty"`
	Failure *Entry `json:"failure" msgpack:"failure"`
}

// CurrentVersion is the dump layout written by Write.
const CurrentVersion = 1

// Entry is one failure link with its frames and chain links.
type Entry struct {
	Kind            string   `json:"kind" msgpack:"kind"`
	Message         string   `json:"message,omitempty" msgpack:"message,omitempty"`
	Frames          []Record `json:"frames,omitempty" msgpack:"frames,omitempty"`
	Cause           *Entry   `json:"cause,omitempty" msgpack:"cause,omitempty"`
	Context         *Entry   `json:"context,omitempty" msgpack:"context,omitempty"`
	SuppressContext bool     `json:"suppress_context,omitempty" msgpack:"suppress_context,omitempty"`
}

// Record is one captured frame with its recorded variable tiers.
type Record struct {
	File     string                 `json:"file" msgpack:"file"`
	Line     int                    `json:"line" msgpack:"line"`
	Function string                 `json:"function,omitempty" msgpack:"function,omitempty"`
	Source   string                 `json:"source,omitempty" msgpack:"source,omitempty"`
	Locals   map[string]interface{} `json:"locals,omitempty" msgpack:"locals,omitempty"`
	Globals  map[string]interface{} `json:"globals,omitempty" msgpack:"globals,omitempty"`
}

// Load reads a dump from path, decoding by extension: ".json" as JSON and
// ".msgpack" or ".bin" as msgpack.
func Load(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	var d Dump
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &d)
	case ".msgpack", ".bin":
		err = msgpack.Unmarshal(data, &d)
	default:
		return nil, fmt.Errorf("dump: unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("dump: decode %s: %w", path, err)
	}
	if d.Version != CurrentVersion {
		return nil, fmt.Errorf("dump: unsupported version %d", d.Version)
	}
	if d.Failure == nil {
		return nil, fmt.Errorf("dump: no failure recorded in %s", path)
	}
	return &d, nil
}

// Write serializes d to path, encoding by the same extension rules as Load.
func Write(path string, d *Dump) error {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(d, "", "  ")
	case ".msgpack", ".bin":
		data, err = msgpack.Marshal(d)
	default:
		return fmt.Errorf("dump: unsupported extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("dump: encode: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Chain adapts the dump's failure entry to a trace.Failure.  The adapter
// graph has stable link identity, so rendering visits each recorded entry
// exactly once even if rendered repeatedly.
func (d *Dump) Chain() trace.Failure {
	return adapt(d.Failure, make(map[*Entry]*link))
}

type link struct {
	entry  *Entry
	frames []trace.Frame
	cause  trace.Failure
	ctx    trace.Failure
}

var _ trace.Failure = (*link)(nil)

func adapt(e *Entry, seen map[*Entry]*link) trace.Failure {
	if e == nil {
		return nil
	}
	if l, ok := seen[e]; ok {
		return l
	}
	l := &link{entry: e}
	seen[e] = l
	for _, rec := range e.Frames {
		l.frames = append(l.frames, trace.Frame{
			File:     rec.File,
			Line:     rec.Line,
			Function: rec.Function,
			Source:   rec.Source,
			Scope:    &inspect.TieredScope{Local: rec.Locals, Global: rec.Globals},
		})
	}
	l.cause = adapt(e.Cause, seen)
	l.ctx = adapt(e.Context, seen)
	return l
}

func (l *link) Kind() string           { return l.entry.Kind }
func (l *link) Message() string        { return l.entry.Message }
func (l *link) Cause() trace.Failure   { return l.cause }
func (l *link) Context() trace.Failure { return l.ctx }
func (l *link) SuppressContext() bool  { return l.entry.SuppressContext }
func (l *link) Frames() []trace.Frame  { return l.frames }
