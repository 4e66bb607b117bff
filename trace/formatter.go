// Copyright © 2025 The failtrace authors

package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/indent"

	"github.com/quillsoft/failtrace/inspect"
	"github.com/quillsoft/failtrace/layout"
	"github.com/quillsoft/failtrace/theme"
	"github.com/quillsoft/failtrace/token"
)

// ErrNoChain reports that there was no failure chain to render at all.
// Every lesser problem degrades locally instead of surfacing.
var ErrNoChain = errors.New("failtrace: no failure chain to render")

// DefaultEmptyMessageKind is the failure kind whose empty message is
// replaced with the last rendered source fragment, keeping bare assertions
// legible.
const DefaultEmptyMessageKind = "AssertionError"

const (
	introBanner   = "Traceback (most recent call last):"
	causeBanner   = "The above exception was the direct cause of the following exception:"
	contextBanner = "During handling of the above exception, another exception occurred:"
	noSource      = "(no source available)"
)

// frameIndent is the annotation block indentation under a location line.
const frameIndent = 4

// Formatter renders failures as annotated trace reports.  A Formatter is
// immutable after construction and safe for concurrent use on independent
// failures.
type Formatter struct {
	colored   bool
	theme     theme.Theme
	maxLength int
	pipeGlyph string
	capGlyph  string
	glyphsSet bool
	ascii     bool
	lang      string
	skipFrame func(Frame) bool
	reader    SourceReader
	dynamic   func() string
	emptyKind string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor enables or disables colorized output.
func WithColor(on bool) Option {
	return func(f *Formatter) { f.colored = on }
}

// WithTheme overrides the theme used for colorized output.
func WithTheme(t theme.Theme) Option {
	return func(f *Formatter) { f.theme = t }
}

// WithMaxLength bounds formatted value representations.  Zero removes the
// bound.
func WithMaxLength(n int) Option {
	return func(f *Formatter) { f.maxLength = n }
}

// WithGlyphs overrides the pipe and cap connector glyphs.
func WithGlyphs(pipe, capGlyph string) Option {
	return func(f *Formatter) {
		f.pipeGlyph = pipe
		f.capGlyph = capGlyph
		f.glyphsSet = true
	}
}

// WithASCII restricts output to ASCII: connector glyphs fall back to their
// ASCII forms and non-ASCII runes are escaped, never dropped.
func WithASCII() Option {
	return func(f *Formatter) { f.ascii = true }
}

// WithLang names the chroma lexer used to scan source lines.  Empty means
// per-line detection.
func WithLang(lang string) Option {
	return func(f *Formatter) { f.lang = lang }
}

// WithSkipFrame injects the predicate that elides host-shim frames from
// reports.  A nil predicate keeps every frame.
func WithSkipFrame(fn func(Frame) bool) Option {
	return func(f *Formatter) { f.skipFrame = fn }
}

// WithSourceReader overrides how source lines are acquired.
func WithSourceReader(r SourceReader) Option {
	return func(f *Formatter) { f.reader = r }
}

// WithDynamicSource overrides the fallback used to recover the source of
// dynamically-executed code.
func WithDynamicSource(fn func() string) Option {
	return func(f *Formatter) { f.dynamic = fn }
}

// WithEmptyMessageKind overrides the failure kind that substitutes the last
// rendered source fragment for an empty message.
func WithEmptyMessageKind(kind string) Option {
	return func(f *Formatter) { f.emptyKind = kind }
}

// New returns a Formatter with the given options applied over the
// defaults: uncolored, default theme, default value length bound, unicode
// connector glyphs, per-line language detection, the historical shim-frame
// filter, a caching file reader, and the command-line dynamic source
// fallback.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		theme:     theme.Default(),
		maxLength: inspect.DefaultMaxLength,
		pipeGlyph: layout.Pipe,
		capGlyph:  layout.Cap,
		skipFrame: DefaultSkipFrame,
		reader:    NewFileReader(),
		dynamic:   CommandLineSource,
		emptyKind: DefaultEmptyMessageKind,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.ascii && !f.glyphsSet {
		f.pipeGlyph = layout.ASCIIPipe
		f.capGlyph = layout.ASCIICap
	}
	return f
}

// FormatFailure renders the complete report for fail, one element per
// output line.  Chained causes and contexts render before the failure they
// led to, separated by banner lines; cyclic chains terminate with every
// link rendered exactly once.  FormatFailure returns ErrNoChain when fail
// is nil; any lesser problem degrades locally and a report is still
// produced.
func (f *Formatter) FormatFailure(fail Failure) ([]string, error) {
	if fail == nil {
		return nil, ErrNoChain
	}
	var captured []Frame
	if len(fail.Frames()) == 0 {
		// Capture here so the renderer's own bookkeeping frames stay
		// out of the report.
		captured = Capture(1)
	}
	seen := make(map[Failure]bool)
	seen[nil] = true
	return f.formatChain(fail, seen, captured), nil
}

// WriteFailure renders fail and writes the report to w, one line at a
// time.
func (f *Formatter) WriteFailure(w io.Writer, fail Failure) error {
	lines, err := f.FormatFailure(fail)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatChain walks cause/context links depth-first, earliest first.  The
// seen set is keyed by link identity, includes nil, and only ever grows, so
// the walk terminates on any finite or cyclic chain.
func (f *Formatter) formatChain(fail Failure, seen map[Failure]bool, captured []Frame) []string {
	if seen[fail] {
		return nil
	}
	seen[fail] = true
	var out []string
	if cause := fail.Cause(); !seen[cause] {
		out = append(out, f.formatChain(cause, seen, nil)...)
		out = append(out, "", f.decorate(theme.Cause, causeBanner), "")
	} else if ctx := fail.Context(); !fail.SuppressContext() && !seen[ctx] {
		out = append(out, f.formatChain(ctx, seen, nil)...)
		out = append(out, "", f.decorate(theme.Context, contextBanner), "")
	}
	return append(out, f.formatBlock(fail, captured)...)
}

// formatBlock renders one link: introduction banner, per-frame blocks
// outermost first, and the kind/message summary.
func (f *Formatter) formatBlock(fail Failure, captured []Frame) []string {
	frames := fail.Frames()
	if len(frames) == 0 {
		frames = captured
	}

	lines := []string{f.decorate(theme.Introduction, introBanner)}
	lastSource := ""
	for _, fr := range frames {
		if f.skipFrame != nil && f.skipFrame(fr) {
			continue
		}
		frameLines, src := f.formatFrame(fr)
		if src != "" {
			lastSource = src
		}
		lines = append(lines, frameLines...)
	}

	kind, msg := fail.Kind(), fail.Message()
	if msg == "" && kind == f.emptyKind {
		msg = lastSource
	}
	summary := f.decorate(theme.ExceptionType, kind)
	if msg != "" {
		summary += ": " + f.decorate(theme.ExceptionValue, msg)
	}
	lines = append(lines, summary)

	if f.ascii {
		for i := range lines {
			lines[i] = escapeASCII(lines[i])
		}
	}
	return lines
}

// formatFrame renders one frame's location line and annotated source
// block.  The second return value is the rendered source fragment, used for
// empty-message substitution.  Problems acquiring or scanning the source
// degrade to an unannotated or placeholder block.
func (f *Formatter) formatFrame(fr Frame) ([]string, string) {
	src := fr.Source
	if src == "" {
		if fr.File == StringSourceFile {
			if f.dynamic != nil {
				src = f.dynamic()
			}
		} else if f.reader != nil {
			src = f.reader.Line(fr.File, fr.Line)
		}
	}
	src = strings.TrimSpace(src)

	loc := fmt.Sprintf("  File %q, line %d, in %s", fr.File, fr.Line, fr.Function)
	lines := []string{f.decorate(theme.Location, loc)}
	if src == "" {
		return append(lines, indentBlock(noSource)), ""
	}

	toks := token.Scan(f.lang, src)
	var values []inspect.Value
	if fr.Scope != nil {
		values = inspect.Resolve(toks, fr.Scope, &inspect.Formatter{MaxLength: f.maxLength})
	}
	annot := layout.Annotate(src, values, f.pipeGlyph, f.capGlyph)
	annot[0] = f.colorizeSource(src, toks)
	for i := 1; i < len(annot); i++ {
		annot[i] = f.colorizeAnnotation(annot[i])
	}
	block := indentBlock(strings.Join(annot, "\n"))
	return append(lines, strings.Split(block, "\n")...), annot[0]
}

func indentBlock(s string) string {
	return indent.String(s, frameIndent)
}

func (f *Formatter) decorate(r theme.Role, s string) string {
	if !f.colored {
		return s
	}
	return f.theme.Apply(r, s)
}

// colorizeSource decorates comment, keyword, and literal tokens in place,
// leaving byte layout untouched when color is off.
func (f *Formatter) colorizeSource(line string, toks []token.Token) string {
	if !f.colored {
		return line
	}
	var b strings.Builder
	prev := 0
	for _, t := range toks {
		role, ok := sourceRole(t.Kind)
		if !ok {
			continue
		}
		if t.Col < prev || t.Col+len(t.Text) > len(line) {
			continue
		}
		b.WriteString(line[prev:t.Col])
		b.WriteString(f.theme.Apply(role, t.Text))
		prev = t.Col + len(t.Text)
	}
	b.WriteString(line[prev:])
	return b.String()
}

func sourceRole(k token.Kind) (theme.Role, bool) {
	switch k {
	case token.Keyword:
		return theme.Keyword, true
	case token.String, token.Number:
		return theme.Literal, true
	case token.Comment:
		return theme.Comment, true
	}
	return 0, false
}

// colorizeAnnotation decorates one laid-out annotation line: pipes, then
// the cap and value text, or the padded continuation of a multi-line value.
func (f *Formatter) colorizeAnnotation(line string) string {
	if !f.colored {
		return line
	}
	pipeColored := f.theme.Apply(theme.Pipe, f.pipeGlyph)
	if i := strings.Index(line, f.capGlyph); i >= 0 {
		prefix := strings.ReplaceAll(line[:i], f.pipeGlyph, pipeColored)
		text := strings.TrimPrefix(line[i+len(f.capGlyph):], " ")
		return prefix + f.theme.Apply(theme.Cap, f.capGlyph) + " " + f.theme.Apply(theme.Value, text)
	}
	trimmed := strings.TrimLeft(line, " "+f.pipeGlyph)
	prefix := strings.ReplaceAll(line[:len(line)-len(trimmed)], f.pipeGlyph, pipeColored)
	return prefix + f.theme.Apply(theme.Value, trimmed)
}

// escapeASCII replaces every rune outside ASCII with a \u escape.  Runes
// are never dropped.
func escapeASCII(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case r > 0xFFFF:
			fmt.Fprintf(&b, `\U%08x`, r)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String()
}
