// Copyright © 2025 The failtrace authors

package inspect

import (
	"sort"

	"github.com/quillsoft/failtrace/token"
)

// Value pairs the byte column of an identifier with the formatted value it
// referenced at the time of the failure.
type Value struct {
	Col  int
	Text string
}

// Resolve walks a scanned line left to right and resolves every bare
// identifier against scope, following ".attr" chains on already-resolved
// values with static attribute lookups.  Identifiers missing from both
// scope tiers are silently skipped, and a missing attribute kills the rest
// of its chain until the next bare name.  The result is stable-sorted by
// column ascending; ties keep resolution order.
func Resolve(toks []token.Token, scope Scope, f *Formatter) []Value {
	if scope == nil {
		return nil
	}
	if f == nil {
		f = NewFormatter()
	}
	var (
		values   []Value
		current  interface{}
		attrMode bool
		valid    bool
	)
	for _, tok := range toks {
		switch {
		case tok.Kind == token.Name && !attrMode:
			v, ok := scope.Lookup(tok.Text)
			if ok {
				current = v
				valid = true
				values = append(values, Value{Col: tok.Col, Text: f.Format(v)})
			} else {
				valid = false
			}
		case tok.Kind == token.Name:
			// Attribute step on the current value.
			attrMode = false
			if !valid {
				continue
			}
			v, ok := Attr(current, tok.Text)
			if ok {
				current = v
				values = append(values, Value{Col: tok.Col, Text: f.Format(v)})
			} else {
				valid = false
			}
		case tok.Kind == token.Operator && tok.Text == ".":
			attrMode = true
		default:
			attrMode = false
			valid = false
		}
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Col < values[j].Col
	})
	return values
}
