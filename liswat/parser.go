//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

//
// Parser turns the lexer's token stream into a sequence of Datum trees,
// per the grammar in spec §4.2. It performs the quote/quasiquote/unquote
// rewriting and dotted-pair assembly; it does not otherwise transform
// the tree (no macro expansion — special forms are recognized later, at
// evaluation time, by what they're bound to in the environment).
//

import "strconv"

var quoteSym = Symbol("quote")
var quasiquoteSym = Symbol("quasiquote")
var unquoteSym = Symbol("unquote")
var unquotesplicingSym = Symbol("unquote-splicing")

// ParseAll lexes and parses every top-level datum in text, returning them
// in source order.
func ParseAll(text string) ([]interface{}, *LispError) {
	c := lex("input", text)
	var data []interface{}
	for {
		t, ok := <-c
		if !ok {
			return data, nil
		}
		if t.typ == tokenEOF {
			return data, nil
		}
		datum, err := parseDatum(t, c)
		if err != nil {
			return nil, err
		}
		data = append(data, datum)
	}
}

// parseDatum reads one complete Datum from the channel, given its
// already-read first token.
func parseDatum(t token, c chan token) (interface{}, *LispError) {
	switch t.typ {
	case tokenError:
		return nil, newLexError(t.val)
	case tokenEOF:
		return nil, newParseError(ESYNTAX, "unexpected end of input")
	case tokenOpenParen:
		return parseList(c)
	case tokenVectorOpen:
		return parseVector(c)
	case tokenCloseParen:
		return nil, newParseError(ESYNTAX, "unexpected )")
	case tokenDot:
		return nil, newParseError(ESYNTAX, "unexpected . outside of a list")
	case tokenString:
		return NewString(t.contents()), nil
	case tokenInteger:
		return parseInteger(t.val)
	case tokenBoolean:
		return t.val == "#t" || t.val == "#T", nil
	case tokenCharacter:
		r := []rune(t.val)
		if len(r) < 3 {
			return nil, newParseError(ESYNTAX, "malformed character literal: "+t.val)
		}
		return Character(r[2]), nil
	case tokenQuote:
		var sym Symbol
		switch t.val {
		case "'":
			sym = quoteSym
		case "`":
			sym = quasiquoteSym
		case ",":
			sym = unquoteSym
		case ",@":
			sym = unquotesplicingSym
		default:
			return nil, newParseError(ESYNTAX, "unrecognized quote syntax: "+t.val)
		}
		next, ok := <-c
		if !ok {
			return nil, newParseError(ESYNTAX, "unexpected end of input after "+t.val)
		}
		datum, err := parseDatum(next, c)
		if err != nil {
			return nil, err
		}
		return NewList(sym, datum), nil
	case tokenIdentifier:
		return Symbol(lowercaseASCII(t.val)), nil
	}
	panic("unreachable lexer token type")
}

// lowercaseASCII folds ASCII letters to lower case. parseDatum applies it
// to every symbol token read from source text (spec §4.7); the lexer
// itself passes identifier text through unchanged.
func lowercaseASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// parseList reads datums up to the closing paren, handling the optional
// dotted tail: '(' datum* ('.' datum)? ')'.
func parseList(c chan token) (interface{}, *LispError) {
	var items []interface{}
	for {
		t, ok := <-c
		if !ok {
			return nil, newParseError(ESYNTAX, "unexpected end of input in list")
		}
		switch t.typ {
		case tokenCloseParen:
			return SliceToList(items), nil
		case tokenDot:
			if len(items) == 0 {
				return nil, newParseError(ESYNTAX, "unexpected . at start of list")
			}
			tailTok, ok := <-c
			if !ok {
				return nil, newParseError(ESYNTAX, "unexpected end of input after .")
			}
			tail, err := parseDatum(tailTok, c)
			if err != nil {
				return nil, err
			}
			closeTok, ok := <-c
			if !ok || closeTok.typ != tokenCloseParen {
				return nil, newParseError(ESYNTAX, "expected ) after dotted tail")
			}
			list := NewList(items...)
			list.Join(tail)
			return list, nil
		default:
			datum, err := parseDatum(t, c)
			if err != nil {
				return nil, err
			}
			items = append(items, datum)
		}
	}
}

// parseVector reads datums up to the closing paren for a #( ... ) vector
// literal; vectors cannot contain a dotted tail.
func parseVector(c chan token) (interface{}, *LispError) {
	var items []interface{}
	for {
		t, ok := <-c
		if !ok {
			return nil, newParseError(ESYNTAX, "unexpected end of input in vector")
		}
		if t.typ == tokenCloseParen {
			return &Vector{Items: items}, nil
		}
		datum, err := parseDatum(t, c)
		if err != nil {
			return nil, err
		}
		items = append(items, datum)
	}
}

func parseInteger(text string) (int64, *LispError) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, newParseError(ENUMRANGE, "number out of range: "+text)
		}
		return 0, newParseError(EINVALNUM, "invalid number: "+text)
	}
	return v, nil
}
