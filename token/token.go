// Copyright © 2025 The failtrace authors

// Package token classifies the lexical elements of a single source line so
// that identifier positions can be annotated with live values.  It is not a
// parser; classification only needs to be good enough to locate names,
// attribute accesses, and comments.
package token

// Kind classifies a scanned token.
type Kind uint

const (
	Invalid Kind = iota

	// Name is a plain identifier and the only kind eligible for value
	// resolution.
	Name
	// Keyword is a reserved word.  Keywords never resolve to values.
	Keyword

	Operator
	String
	Number
	Comment

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		Invalid:  "invalid",
		Name:     "name",
		Keyword:  "keyword",
		Operator: "operator",
		String:   "string",
		Number:   "number",
		Comment:  "comment",
	}
	if k >= numKinds {
		return kindStrings[Invalid]
	}
	return kindStrings[k]
}

// Token is one lexical element of a source line.  Col is the byte offset of
// the token's first byte within the line.  Tokens are produced fresh for
// every scanned line and never shared.
type Token struct {
	Kind Kind
	Text string
	Col  int
}
