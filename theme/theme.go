// Copyright © 2025 The failtrace authors

// Package theme maps report roles to pure text decorations.
package theme

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Role names one decoratable region of a rendered report.  The set is
// closed: every Theme covers every role.
type Role uint

const (
	Introduction Role = iota
	Cause
	Context
	Location
	ExceptionType
	ExceptionValue
	Pipe
	Cap
	Value
	Comment
	Keyword
	Literal

	numRoles
)

// NumRoles is the size of the closed role set.
const NumRoles = int(numRoles)

func (r Role) String() string {
	roleStrings := [numRoles]string{
		Introduction:   "introduction",
		Cause:          "cause",
		Context:        "context",
		Location:       "location",
		ExceptionType:  "exception-type",
		ExceptionValue: "exception-value",
		Pipe:           "pipe",
		Cap:            "cap",
		Value:          "value",
		Comment:        "comment",
		Keyword:        "keyword",
		Literal:        "literal",
	}
	if r >= numRoles {
		return "invalid"
	}
	return roleStrings[r]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, numRoles)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

// Func decorates a fragment of report text.  Implementations must be pure.
type Func func(string) string

// Theme maps every role to its decoration.  Themes are immutable after
// construction and safe to share between concurrent renders.
type Theme map[Role]Func

// Apply decorates s for role r, passing s through when the theme carries no
// decoration for it.
func (t Theme) Apply(r Role, s string) string {
	if t == nil {
		return s
	}
	fn, ok := t[r]
	if !ok || fn == nil {
		return s
	}
	return fn(s)
}

// Default returns the standard colored theme.  Decorations emit ANSI escape
// sequences unconditionally; whether a decoration is applied at all is the
// renderer's decision.
func Default() Theme {
	return Theme{
		Introduction:   sprint(color.Bold),
		Cause:          sprint(color.Bold),
		Context:        sprint(color.Bold),
		Location:       identity,
		ExceptionType:  sprint(color.FgRed, color.Bold),
		ExceptionValue: sprint(color.FgRed),
		Pipe:           sprint(color.FgCyan),
		Cap:            sprint(color.FgCyan),
		Value:          sprint(color.FgCyan),
		Comment:        sprint(color.Faint),
		Keyword:        sprint(color.FgYellow, color.Bold),
		Literal:        sprint(color.FgRed),
	}
}

// NoColor returns a theme whose every decoration is the identity.
func NoColor() Theme {
	t := make(Theme, numRoles)
	for _, r := range Roles() {
		t[r] = identity
	}
	return t
}

// Supported reports whether w can be assumed to understand ANSI colors.
// It is only a default; callers always get the final say.
func Supported(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func identity(s string) string { return s }

func sprint(attrs ...color.Attribute) Func {
	c := color.New(attrs...)
	c.EnableColor()
	f := c.SprintFunc()
	return func(s string) string { return f(s) }
}
