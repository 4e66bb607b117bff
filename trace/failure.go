// Copyright © 2025 The failtrace authors

package trace

import (
	"errors"
	"fmt"
)

// FrameSource supplies a propagation chain, outermost frame first.
type FrameSource interface {
	// Frames returns the propagation chain, outermost first.  An empty
	// chain on the entry failure makes the formatter capture the current
	// point itself.
	Frames() []Frame
}

// Failure is one link in a propagating-failure chain.  Cause links a
// failure that was deliberately raised because of another; Context links a
// failure that was already in flight when this one occurred.  Cause takes
// precedence over Context during rendering, and SuppressContext hides the
// context link only.
//
// Implementations must have identity: the chain walk tracks visited links
// by interface equality, so links should be pointers.  Two structurally
// equal but distinct links are rendered separately.
type Failure interface {
	// Kind is the failure's reported type name.
	Kind() string
	// Message is the failure's reported message, possibly empty.
	Message() string

	Cause() Failure
	Context() Failure
	SuppressContext() bool

	FrameSource
}

// wrapped adapts a Go error chain to a Failure chain.
type wrapped struct {
	err    error
	frames []Frame
	cause  Failure
}

var _ Failure = (*wrapped)(nil)

// Wrap adapts a Go error to a Failure, capturing the caller's stack as the
// frame chain.  The error's unwrap chain becomes the cause chain; inner
// links carry no frames of their own since Go errors do not retain stacks.
func Wrap(err error) Failure {
	if err == nil {
		return nil
	}
	w := &wrapped{err: err, frames: Capture(1)}
	w.cause = wrapCause(errors.Unwrap(err))
	return w
}

func wrapCause(err error) Failure {
	if err == nil {
		return nil
	}
	return &wrapped{err: err, cause: wrapCause(errors.Unwrap(err))}
}

func (w *wrapped) Kind() string          { return fmt.Sprintf("%T", w.err) }
func (w *wrapped) Message() string       { return w.err.Error() }
func (w *wrapped) Cause() Failure        { return w.cause }
func (w *wrapped) Context() Failure      { return nil }
func (w *wrapped) SuppressContext() bool { return false }
func (w *wrapped) Frames() []Frame       { return w.frames }
