// Copyright © 2025 The failtrace authors

// Package inspect resolves the identifiers of a scanned source line against
// a stack frame's variable scope and renders the resolved values as bounded
// debug representations.
package inspect

// Scope resolves identifier names to live values.  Implementations are
// supplied externally per frame and are never mutated here.
type Scope interface {
	// Lookup returns the value bound to name.  The second return value
	// reports whether a binding exists.
	Lookup(name string) (interface{}, bool)
}

// TieredScope is a Scope backed by two binding tiers.  The local tier is
// consulted before the global tier, mirroring how a frame sees names.
type TieredScope struct {
	Local  map[string]interface{}
	Global map[string]interface{}
}

var _ Scope = (*TieredScope)(nil)

// Lookup implements Scope.
func (s *TieredScope) Lookup(name string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	if v, ok := s.Local[name]; ok {
		return v, true
	}
	if v, ok := s.Global[name]; ok {
		return v, true
	}
	return nil, false
}
