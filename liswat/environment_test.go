//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import "testing"

func TestEnvironment(t *testing.T) {
	e := NewEnvironment(nil)
	if e == nil {
		t.Fatalf("constructing new environment failed")
	}
	foo := Symbol("foo")
	v := e.Find(foo)
	if v != nil {
		t.Errorf("expected undefined var to return nil")
	}
	err := e.Set(foo, "bar")
	if err == nil {
		t.Errorf("expected set of undefined var to fail")
	}
	e.Define(foo, "bar")
	v = e.Find(foo)
	if v != "bar" {
		t.Errorf("expected defined var to return 'bar'")
	}
}

func TestEnvironmentParent(t *testing.T) {
	p := NewEnvironment(nil)
	foo := Symbol("foo")
	p.Define(foo, "bar")
	e := NewEnvironment(p)
	if e == nil {
		t.Fatalf("constructing new environment failed")
	}
	v := e.Find(foo)
	if v != "bar" {
		t.Errorf("expected 'bar' but got '%v'", v)
	}
	err := e.Set(foo, "qux")
	if err != nil {
		t.Errorf("set of parent-defined var failed: %v", err)
	}
	// check parent
	v = p.Find(foo)
	if v != "qux" {
		t.Errorf("expected 'qux' but got '%v'", v)
	}
	// check child delegates to parent
	v = e.Find(foo)
	if v != "qux" {
		t.Errorf("expected 'qux' but got '%v'", v)
	}
}

func TestEnvironmentOverride(t *testing.T) {
	p := NewEnvironment(nil)
	foo := Symbol("foo")
	p.Define(foo, "bar")
	e := NewEnvironment(p)
	e.Define(foo, "qux")
	// child should see its own binding
	if v := e.Find(foo); v != "qux" {
		t.Errorf("expected 'qux' but got '%v'", v)
	}
	// parent is unaffected
	if v := p.Find(foo); v != "bar" {
		t.Errorf("expected 'bar' but got '%v'", v)
	}
}

func TestEnvironmentExtend(t *testing.T) {
	p := NewEnvironment(nil)
	p.Define(Symbol("x"), int64(1))
	child := p.Extend([]Symbol{Symbol("x"), Symbol("y")}, []interface{}{int64(10), int64(20)})
	if v := child.Find(Symbol("x")); v != int64(10) {
		t.Errorf("expected child binding to shadow parent; got %v", v)
	}
	if v := p.Find(Symbol("x")); v != int64(1) {
		t.Errorf("expected parent binding unaffected; got %v", v)
	}
	if v := child.Find(Symbol("y")); v != int64(20) {
		t.Errorf("expected 20 but got %v", v)
	}
}

func TestUninitializedLookup(t *testing.T) {
	e := NewEnvironment(nil)
	name := Symbol("a")
	e.Define(name, uninitialized{name: name})
	v, ok := e.Lookup(name)
	if !ok {
		t.Fatalf("expected binding to be found")
	}
	if _, isUninit := v.(uninitialized); !isUninit {
		t.Errorf("expected an uninitialized sentinel, got %v", v)
	}
}
