// Copyright © 2025 The failtrace authors

package token

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Scan classifies one line of source text into tokens.  lang names a chroma
// lexer ("python", "go", ...); when empty or unknown the lexer is guessed
// from the text, falling back to plain text.
//
// Scan never fails.  A line that cannot be classified, including fragments
// with unterminated string literals, yields a nil slice so callers render
// the raw line unannotated.  Token columns are monotonically non-decreasing.
func Scan(lang, line string) []Token {
	if unterminated(line) {
		return nil
	}
	lexer := lookupLexer(lang, line)
	chromaToks, err := chroma.Tokenise(lexer, nil, line)
	if err != nil {
		return nil
	}
	toks := make([]Token, 0, len(chromaToks))
	col := 0
	for _, tok := range chromaToks {
		if tok.Type == chroma.EOFType {
			break
		}
		if tok.Type == chroma.Error {
			return nil
		}
		kind := classify(tok.Type)
		if kind != Invalid && strings.TrimSpace(tok.Value) != "" {
			toks = append(toks, Token{Kind: kind, Text: tok.Value, Col: col})
		}
		col += len(tok.Value)
	}
	return toks
}

func lookupLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func classify(t chroma.TokenType) Kind {
	switch {
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t.InCategory(chroma.Name):
		return Name
	case t.InCategory(chroma.Operator), t.InCategory(chroma.Punctuation):
		return Operator
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t.InCategory(chroma.Comment):
		return Comment
	}
	return Invalid
}

// unterminated reports whether line ends inside a quoted literal.  Quoting
// state is tracked across escapes; an end-of-line comment outside quotes
// stops the scan.
func unterminated(line string) bool {
	var quote rune
	escaped := false
	prev := rune(0)
	for _, c := range line {
		switch {
		case escaped:
			escaped = false
		case quote != 0:
			if c == '\\' && quote != '`' {
				escaped = true
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '#':
			return false
		case c == '/' && prev == '/':
			return false
		}
		prev = c
	}
	return quote != 0
}
