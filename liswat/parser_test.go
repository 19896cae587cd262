//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, text string) interface{} {
	t.Helper()
	data, err := ParseAll(text)
	require.Nil(t, err, "ParseAll(%q)", text)
	require.Len(t, data, 1, "ParseAll(%q)", text)
	return data[0]
}

func TestParseAtoms(t *testing.T) {
	assert.Equal(t, int64(42), parseOne(t, "42"))
	assert.Equal(t, int64(-7), parseOne(t, "-7"))
	assert.Equal(t, true, parseOne(t, "#t"))
	assert.Equal(t, false, parseOne(t, "#f"))
	assert.Equal(t, Symbol("foo"), parseOne(t, "Foo"), "reader should lowercase bare symbols")
	assert.Equal(t, `"hi"`, stringify(parseOne(t, `"hi"`)))
}

func TestParseList(t *testing.T) {
	v := parseOne(t, "(1 2 3)")
	p, ok := v.(*Pair)
	require.True(t, ok, "expected a pair, got %T", v)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "(1 2 3)", stringify(p))
}

func TestParseDottedPair(t *testing.T) {
	assert.Equal(t, "(1 . 2)", stringify(parseOne(t, "(1 . 2)")))
}

func TestParseQuote(t *testing.T) {
	assert.Equal(t, "(quote a)", stringify(parseOne(t, "'a")))
}

func TestParseVector(t *testing.T) {
	v := parseOne(t, "#(1 2 3)")
	vec, ok := v.(*Vector)
	require.True(t, ok, "expected a vector, got %T", v)
	assert.Len(t, vec.Items, 3)
}

func TestParseEmptyList(t *testing.T) {
	assert.Equal(t, theEmptyList, parseOne(t, "()"))
}

func TestParseUnexpectedCloseParen(t *testing.T) {
	_, err := ParseAll(")")
	assert.Error(t, err)
}

func TestParseUnterminatedList(t *testing.T) {
	_, err := ParseAll("(1 2")
	assert.Error(t, err)
}
