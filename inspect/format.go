// Copyright © 2025 The failtrace authors

package inspect

import (
	"fmt"
	"unicode/utf8"

	"github.com/alecthomas/repr"
)

// DefaultMaxLength bounds formatted values unless configured otherwise.
const DefaultMaxLength = 128

// Ellipsis is appended to truncated representations.
const Ellipsis = "..."

// Formatter renders arbitrary values as bounded debug representations.
// The zero value renders unbounded; NewFormatter applies DefaultMaxLength.
type Formatter struct {
	// MaxLength is the maximum representation length in bytes before
	// truncation.  Zero means unbounded.
	MaxLength int
}

// NewFormatter returns a Formatter with the default length bound.
func NewFormatter() *Formatter {
	return &Formatter{MaxLength: DefaultMaxLength}
}

// Format renders v as a single debug representation.  Format is total: a
// representation routine that panics yields an "<unprintable TYPE>"
// placeholder instead.  Representations longer than MaxLength are truncated
// at a rune boundary with an ellipsis marker appended.
func (f *Formatter) Format(v interface{}) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<unprintable %T>", v)
		}
	}()
	s = f.truncate(repr.String(v))
	return s
}

func (f *Formatter) truncate(s string) string {
	if f.MaxLength <= 0 || len(s) <= f.MaxLength {
		return s
	}
	cut := f.MaxLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + Ellipsis
}
