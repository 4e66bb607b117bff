// Copyright © 2025 The failtrace authors

package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsoft/failtrace/token"
)

func TestTieredScopeLocalWins(t *testing.T) {
	s := &TieredScope{
		Local:  map[string]interface{}{"x": 1},
		Global: map[string]interface{}{"x": 2, "y": 3},
	}
	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = s.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = s.Lookup("z")
	assert.False(t, ok)
}

type pair struct {
	Left  int
	Right int
	inner string
}

func TestAttr(t *testing.T) {
	p := pair{Left: 1, Right: 2, inner: "hidden"}

	v, ok := Attr(p, "Left")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = Attr(&p, "Right")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = Attr(p, "inner")
	assert.False(t, ok, "unexported fields are not attributes")

	_, ok = Attr(p, "Missing")
	assert.False(t, ok)

	v, ok = Attr(map[string]int{"n": 7}, "n")
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = Attr(map[int]int{1: 1}, "n")
	assert.False(t, ok, "non-string map keys are not attributes")

	_, ok = Attr(nil, "x")
	assert.False(t, ok)

	var np *pair
	_, ok = Attr(np, "Left")
	assert.False(t, ok)
}

func TestFormatTruncation(t *testing.T) {
	f := &Formatter{MaxLength: 10}
	long := strings.Repeat("a", 100)
	out := f.Format(long)
	assert.LessOrEqual(t, len(out), 10+len(Ellipsis))
	assert.True(t, strings.HasSuffix(out, Ellipsis))

	// Applying Format to its own output stays length-bounded.
	twice := f.Format(f.Format(long))
	assert.LessOrEqual(t, len(twice), 10+len(Ellipsis))
}

func TestFormatTruncationRuneBoundary(t *testing.T) {
	f := &Formatter{MaxLength: 4}
	out := f.Format("日本語")
	for _, r := range out {
		assert.NotEqual(t, '�', r)
	}
}

func TestFormatUnbounded(t *testing.T) {
	f := &Formatter{}
	long := strings.Repeat("a", 1000)
	assert.NotContains(t, f.Format(long), Ellipsis)
}

type explosive struct{}

func (explosive) GoString() string { panic("boom") }

func TestFormatUnprintable(t *testing.T) {
	f := NewFormatter()
	out := f.Format(explosive{})
	assert.Contains(t, out, "<unprintable")
}

func scan(t *testing.T, line string) []token.Token {
	t.Helper()
	toks := token.Scan("python", line)
	require.NotEmpty(t, toks)
	return toks
}

func TestResolveSimple(t *testing.T) {
	scope := &TieredScope{Local: map[string]interface{}{"x": 1, "y": 2}}
	values := Resolve(scan(t, "x = y + z"), scope, NewFormatter())
	require.Len(t, values, 2)
	assert.Equal(t, 0, values[0].Col)
	assert.Equal(t, 4, values[1].Col)
}

func TestResolveColumnsSorted(t *testing.T) {
	scope := &TieredScope{Local: map[string]interface{}{
		"a": 1, "b": 2, "c": 3,
	}}
	values := Resolve(scan(t, "c = a + b"), scope, NewFormatter())
	require.Len(t, values, 3)
	for i := 1; i < len(values); i++ {
		assert.Less(t, values[i-1].Col, values[i].Col)
	}
}

func TestResolveAttributeChain(t *testing.T) {
	type middle struct{ Baz int }
	type outer struct{ Bar middle }
	scope := &TieredScope{Local: map[string]interface{}{"foo": outer{Bar: middle{Baz: 9}}}}

	values := Resolve(scan(t, "foo.bar.baz"), scope, NewFormatter())
	// Attribute names are case sensitive; "bar" misses the exported "Bar"
	// field so only "foo" resolves.
	require.Len(t, values, 1)
	assert.Equal(t, 0, values[0].Col)

	values = Resolve(scan(t, "foo.Bar.Baz"), scope, NewFormatter())
	require.Len(t, values, 3)
	assert.Equal(t, []int{0, 4, 8}, []int{values[0].Col, values[1].Col, values[2].Col})
	assert.Equal(t, "9", values[2].Text)
}

func TestResolveAttributeMissKillsChain(t *testing.T) {
	type thing struct{ Bar map[string]int }
	scope := &TieredScope{Local: map[string]interface{}{"foo": thing{Bar: map[string]int{}}}}

	// "baz" is absent from the map so foo and foo.Bar annotate, baz does not.
	values := Resolve(scan(t, "foo.Bar.baz"), scope, NewFormatter())
	require.Len(t, values, 2)
	assert.Equal(t, 0, values[0].Col)
	assert.Equal(t, 4, values[1].Col)
}

func TestResolveMissIsSilent(t *testing.T) {
	scope := &TieredScope{Local: map[string]interface{}{"x": 1}}
	values := Resolve(scan(t, "undefined_name(x)"), scope, NewFormatter())
	require.Len(t, values, 1)
	assert.Equal(t, 15, values[0].Col)
}

func TestResolveKeywordNeverResolves(t *testing.T) {
	scope := &TieredScope{Local: map[string]interface{}{
		"if": "nope", "x": 1, "y": 2,
	}}
	values := Resolve(scan(t, "if x: return y"), scope, NewFormatter())
	require.Len(t, values, 2)
	assert.Equal(t, 3, values[0].Col)
	assert.Equal(t, 13, values[1].Col)
}

func TestResolveNilScope(t *testing.T) {
	assert.Nil(t, Resolve(scan(t, "x + y"), nil, NewFormatter()))
}
