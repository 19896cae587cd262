//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import (
	"strings"
	"testing"
)

type expectedLexerResult struct {
	typ tokenType
	val string
}

// drainLexerChannel reads from the given channel until it closes.
func drainLexerChannel(c chan token) {
	for {
		_, ok := <-c
		if !ok {
			break
		}
	}
}

func verifyLexerResults(t *testing.T, input string, expected []expectedLexerResult) {
	c := lex("unit", input)
	for i, e := range expected {
		tok, ok := <-c
		if !ok {
			t.Fatalf("lexer channel closed early at token %d", i)
		}
		if tok.typ != e.typ {
			t.Errorf("expected type %d, got %d for %q (token %d)", e.typ, tok.typ, e.val, i)
		}
		if tok.val != e.val {
			t.Errorf("expected %q, got %q (token %d)", e.val, tok.val, i)
		}
	}
	drainLexerChannel(c)
}

func verifyLexerError(t *testing.T, input string, errSubstr string) {
	c := lex("unit", input)
	tok, ok := <-c
	if !ok {
		t.Fatalf("lexer channel closed before error")
	}
	if tok.typ != tokenError {
		t.Errorf("expected %q to fail, got type %d", input, tok.typ)
	}
	if !strings.Contains(tok.val, errSubstr) {
		t.Errorf("expected error containing %q, got %q", errSubstr, tok.val)
	}
	drainLexerChannel(c)
}

func TestLexerParens(t *testing.T) {
	verifyLexerResults(t, "()", []expectedLexerResult{
		{tokenOpenParen, "("},
		{tokenCloseParen, ")"},
		{tokenEOF, ""},
	})
}

func TestLexerComment(t *testing.T) {
	input := "; a comment\n(foo)"
	verifyLexerResults(t, input, []expectedLexerResult{
		{tokenOpenParen, "("},
		{tokenIdentifier, "foo"},
		{tokenCloseParen, ")"},
		{tokenEOF, ""},
	})
}

func TestLexerIdentifiers(t *testing.T) {
	verifyLexerResults(t, "foo bar-baz set! list->vector", []expectedLexerResult{
		{tokenIdentifier, "foo"},
		{tokenIdentifier, "bar-baz"},
		{tokenIdentifier, "set!"},
		{tokenIdentifier, "list->vector"},
		{tokenEOF, ""},
	})
}

func TestLexerIntegers(t *testing.T) {
	verifyLexerResults(t, "0 42 -7 +3", []expectedLexerResult{
		{tokenInteger, "0"},
		{tokenInteger, "42"},
		{tokenInteger, "-7"},
		{tokenInteger, "+3"},
		{tokenEOF, ""},
	})
}

func TestLexerBooleans(t *testing.T) {
	verifyLexerResults(t, "#t #f #T #F", []expectedLexerResult{
		{tokenBoolean, "#t"},
		{tokenBoolean, "#f"},
		{tokenBoolean, "#T"},
		{tokenBoolean, "#F"},
		{tokenEOF, ""},
	})
}

func TestLexerCharacters(t *testing.T) {
	verifyLexerResults(t, `#\a #\space #\newline #\tab`, []expectedLexerResult{
		{tokenCharacter, "#\\a"},
		{tokenCharacter, "#\\ "},
		{tokenCharacter, "#\\\n"},
		{tokenCharacter, "#\\\t"},
		{tokenEOF, ""},
	})
}

func TestLexerString(t *testing.T) {
	verifyLexerResults(t, `"hello, world"`, []expectedLexerResult{
		{tokenString, `"hello, world"`},
		{tokenEOF, ""},
	})
}

func TestLexerUnterminatedString(t *testing.T) {
	verifyLexerError(t, `"hello`, "unterminated string")
}

func TestLexerQuoteForms(t *testing.T) {
	verifyLexerResults(t, "'a `b ,c ,@d", []expectedLexerResult{
		{tokenQuote, "'"},
		{tokenIdentifier, "a"},
		{tokenQuote, "`"},
		{tokenIdentifier, "b"},
		{tokenQuote, ","},
		{tokenIdentifier, "c"},
		{tokenQuote, ",@"},
		{tokenIdentifier, "d"},
		{tokenEOF, ""},
	})
}

func TestLexerDottedPair(t *testing.T) {
	verifyLexerResults(t, "(a . b)", []expectedLexerResult{
		{tokenOpenParen, "("},
		{tokenIdentifier, "a"},
		{tokenDot, "."},
		{tokenIdentifier, "b"},
		{tokenCloseParen, ")"},
		{tokenEOF, ""},
	})
}

func TestLexerVectorOpen(t *testing.T) {
	verifyLexerResults(t, "#(1 2 3)", []expectedLexerResult{
		{tokenVectorOpen, "#("},
		{tokenInteger, "1"},
		{tokenInteger, "2"},
		{tokenInteger, "3"},
		{tokenCloseParen, ")"},
		{tokenEOF, ""},
	})
}

func TestLexerMalformedIdentifier(t *testing.T) {
	verifyLexerError(t, `foo#bar`, "malformed identifier")
}
