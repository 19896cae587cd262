//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import (
	"bytes"
	"fmt"
)

// Symbol represents a variable or procedure name in a Scheme expression.
// It is essentially a string but is treated as a distinct Datum variant.
type Symbol string

// Character represents a single Scheme character (e.g. #\a or #\space).
type Character rune

// String represents a Scheme string: mutable, hence a pointer to a rune
// slice rather than a bare Go string.
type String struct {
	Chars []rune
}

// NewString builds a Scheme String datum from Go text.
func NewString(s string) *String {
	return &String{Chars: []rune(s)}
}

func (s *String) String() string {
	return string(s.Chars)
}

// Vector is an ordered, mutable sequence of Datum values.
type Vector struct {
	Items []interface{}
}

// emptyListType is the unique type of the empty list singleton. It is a
// distinct Datum variant from a pair and from false, per spec.
type emptyListType struct{}

func (emptyListType) String() string {
	return "()"
}

// theEmptyList is the single instance representing the Scheme '().
var theEmptyList = emptyListType{}

// Pair is a cons cell: (car . cdr). Both fields hold arbitrary Datum
// values, so a Pair can represent both proper and dotted lists; the cdr
// is typically either *Pair, theEmptyList (the list terminator), or some
// other Datum (forming a dotted pair).
type Pair struct {
	car interface{}
	cdr interface{}
}

// Cons constructs a new pair holding a as the car and b as the cdr.
func Cons(a, b interface{}) *Pair {
	return &Pair{car: a, cdr: b}
}

// NewPair starts a new single-element list containing just first.
func NewPair(first interface{}) *Pair {
	return &Pair{car: first, cdr: theEmptyList}
}

// NewList builds a proper list from the given elements.
func NewList(items ...interface{}) *Pair {
	if len(items) == 0 {
		return nil
	}
	head := NewPair(items[0])
	tail := head
	for _, item := range items[1:] {
		tail = tail.Append(item)
	}
	return head
}

// Car returns the car of p, or theEmptyList if p is nil.
func Car(p *Pair) interface{} {
	if p == nil {
		return theEmptyList
	}
	return p.car
}

// Cdr returns the cdr of p, which may be another *Pair, theEmptyList, or
// (for a dotted pair) any other Datum.
func Cdr(p *Pair) interface{} {
	if p == nil {
		return theEmptyList
	}
	return p.cdr
}

// First is an alias for Car that reads naturally at call sites built
// around list structure rather than raw pairs.
func (p *Pair) First() interface{} {
	return Car(p)
}

// Rest returns the cdr, same as Cdr(p).
func (p *Pair) Rest() interface{} {
	return Cdr(p)
}

// Second returns the second element of a (proper-prefixed) list.
func (p *Pair) Second() interface{} {
	if p == nil {
		return theEmptyList
	}
	if next, ok := p.cdr.(*Pair); ok {
		return Car(next)
	}
	return theEmptyList
}

// Third returns the third element of a (proper-prefixed) list.
func (p *Pair) Third() interface{} {
	if p == nil {
		return theEmptyList
	}
	if next, ok := p.cdr.(*Pair); ok {
		return next.Second()
	}
	return theEmptyList
}

// Append adds v as a new final element, extending a proper list whose
// current tail is theEmptyList, and returns the newly created tail pair.
// On a dotted list the non-pair final cdr is overwritten by the new pair
// (no error is raised); callers only use it while building lists fresh,
// where the list is always proper.
func (p *Pair) Append(v interface{}) *Pair {
	tail := p
	for {
		if next, ok := tail.cdr.(*Pair); ok {
			tail = next
			continue
		}
		break
	}
	newTail := NewPair(v)
	tail.cdr = newTail
	return newTail
}

// Join splices another list onto the end of p, replacing p's terminal
// theEmptyList with other's first pair (or other itself, if it is the
// empty list).
func (p *Pair) Join(other interface{}) {
	tail := p
	for {
		if next, ok := tail.cdr.(*Pair); ok {
			tail = next
			continue
		}
		break
	}
	tail.cdr = other
}

// Len counts the pairs in the proper-list spine of p. A dotted tail does
// not contribute to the count.
func (p *Pair) Len() int {
	n := 0
	for p != nil {
		n++
		if next, ok := p.cdr.(*Pair); ok {
			p = next
		} else {
			break
		}
	}
	return n
}

// IsProperList reports whether x is either theEmptyList or a Pair whose
// spine terminates in theEmptyList.
func IsProperList(x interface{}) bool {
	if x == theEmptyList {
		return true
	}
	p, ok := x.(*Pair)
	if !ok {
		return false
	}
	for p != nil {
		switch cdr := p.cdr.(type) {
		case emptyListType:
			return true
		case *Pair:
			p = cdr
		default:
			return false
		}
	}
	return true
}

// ListToSlice converts a proper list to a Go slice of its elements. It
// returns ok=false if x is not a proper list.
func ListToSlice(x interface{}) (items []interface{}, ok bool) {
	if x == theEmptyList {
		return nil, true
	}
	p, ispair := x.(*Pair)
	if !ispair {
		return nil, false
	}
	for p != nil {
		items = append(items, p.car)
		switch cdr := p.cdr.(type) {
		case emptyListType:
			return items, true
		case *Pair:
			p = cdr
		default:
			return nil, false
		}
	}
	return items, true
}

// SliceToList converts a Go slice into a freshly constructed proper list.
func SliceToList(items []interface{}) interface{} {
	if len(items) == 0 {
		return theEmptyList
	}
	return NewList(items...)
}

// Stringify renders any Datum value in the exact printed form specified
// for the language (see spec §6 "Printed form"). Exported for callers
// outside the package, such as the cmd/liswat REPL driver.
func Stringify(x interface{}) string {
	return stringify(x)
}

// stringify renders any Datum value in the exact printed form specified
// for the language (see spec §6 "Printed form").
func stringify(x interface{}) string {
	buf := new(bytes.Buffer)
	stringifyBuffer(x, buf)
	return buf.String()
}

func stringifyBuffer(x interface{}, buf *bytes.Buffer) {
	switch v := x.(type) {
	case emptyListType:
		buf.WriteString("()")
	case nil:
		buf.WriteString("()")
	case bool:
		if v {
			buf.WriteString("#t")
		} else {
			buf.WriteString("#f")
		}
	case Symbol:
		buf.WriteString(string(v))
	case *String:
		buf.WriteString(quoteString(v.String()))
	case int64:
		fmt.Fprintf(buf, "%d", v)
	case Character:
		buf.WriteString(stringifyCharacter(v))
	case *Pair:
		stringifyPair(v, buf)
	case *Vector:
		buf.WriteString("#(")
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteString(" ")
			}
			stringifyBuffer(item, buf)
		}
		buf.WriteString(")")
	case *Native:
		if v.Name != "" {
			fmt.Fprintf(buf, "#<procedure:%s>", v.Name)
		} else {
			buf.WriteString("#<procedure>")
		}
	case *Lambda:
		if v.Name != "" {
			fmt.Fprintf(buf, "#<procedure:%s>", v.Name)
		} else {
			buf.WriteString("#<procedure>")
		}
	case *SpecialForm:
		fmt.Fprintf(buf, "#<special:%s>", v.Tag)
	default:
		fmt.Fprintf(buf, "%v", v)
	}
}

func stringifyCharacter(c Character) string {
	switch c {
	case ' ':
		return "#\\space"
	case '\n':
		return "#\\newline"
	case '\t':
		return "#\\tab"
	}
	return fmt.Sprintf("#\\%c", rune(c))
}

func quoteString(s string) string {
	buf := new(bytes.Buffer)
	buf.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteRune(r)
	}
	buf.WriteByte('"')
	return buf.String()
}

// stringifyPair renders a pair as "(a b c)" if proper, or "(a b . c)" if
// it ends in a dotted tail.
func stringifyPair(p *Pair, buf *bytes.Buffer) {
	buf.WriteString("(")
	first := true
	for {
		if !first {
			buf.WriteString(" ")
		}
		first = false
		stringifyBuffer(p.car, buf)
		switch cdr := p.cdr.(type) {
		case emptyListType:
			buf.WriteString(")")
			return
		case *Pair:
			p = cdr
		default:
			buf.WriteString(" . ")
			stringifyBuffer(cdr, buf)
			buf.WriteString(")")
			return
		}
	}
}
