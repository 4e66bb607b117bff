// Copyright © 2025 The failtrace authors

// Package trace assembles annotated failure reports.  It walks a failure's
// frame chain and its cause/context links, rendering every frame's source
// line with the live values of the identifiers it references.
package trace

import (
	"path/filepath"
	"runtime"

	"github.com/quillsoft/failtrace/inspect"
)

// Frame is one level of a failure's propagation chain.  A chain is always
// ordered outermost first.
type Frame struct {
	File     string
	Line     int
	Function string

	// Source is the raw text of the failing line.  When empty the
	// formatter acquires it through its SourceReader.
	Source string

	// Scope exposes the frame's variable bindings for annotation.  A nil
	// scope renders the source line unannotated.
	Scope inspect.Scope
}

// Capture records the caller's stack as a frame chain, outermost first.
// skip drops that many additional innermost frames beyond Capture itself,
// letting a renderer that captures on a caller's behalf omit its own
// bookkeeping frames from the chain.
func Capture(skip int) []Frame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2+skip, pcs)
	if n == 0 {
		return nil
	}
	iter := runtime.CallersFrames(pcs[:n])
	var innermost []Frame
	for {
		fr, more := iter.Next()
		if fr.File != "" {
			innermost = append(innermost, Frame{
				File:     fr.File,
				Line:     fr.Line,
				Function: fr.Function,
			})
		}
		if !more {
			break
		}
	}
	out := make([]Frame, len(innermost))
	for i, fr := range innermost {
		out[len(out)-1-i] = fr
	}
	return out
}

// DefaultSkipFrame elides the interactive shell's execution shim, which
// otherwise shows up in every trace raised under a host REPL.  The pairing
// is historical; embedders with a different shim inject their own predicate
// through WithSkipFrame.
func DefaultSkipFrame(f Frame) bool {
	return f.Function == "runcode" && filepath.Base(f.File) == "code.py"
}
