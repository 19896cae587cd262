//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

// Environment is a lexically scoped frame mapping Symbol to Datum
// bindings, with an optional parent frame to search when a name is not
// found locally.
type Environment struct {
	vars   map[Symbol]interface{}
	parent *Environment
}

// NewEnvironment constructs a new, empty frame with the given parent
// (nil for the root frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[Symbol]interface{}), parent: parent}
}

// Lookup searches this frame then its ancestors for name, returning the
// bound value and true, or nil and false if unbound anywhere in the chain.
func (e *Environment) Lookup(name Symbol) (interface{}, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Find is a convenience wrapper over Lookup that returns nil when name is
// unbound, for callers that don't need to distinguish "unbound" from "bound
// to nil" (no Datum value is ever the Go nil, so this is unambiguous).
func (e *Environment) Find(name Symbol) interface{} {
	v, _ := e.Lookup(name)
	return v
}

// Define unconditionally binds name to value in this frame, shadowing any
// binding of the same name in a parent frame.
func (e *Environment) Define(name Symbol, value interface{}) {
	e.vars[name] = value
}

// Set mutates the nearest existing binding of name, walking outward from
// this frame. It returns an EUNBOUND error if name is not bound anywhere.
func (e *Environment) Set(name Symbol, value interface{}) *LispError {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = value
			return nil
		}
	}
	return newRuntimeError(EUNBOUND, "set!: unbound variable: "+string(name))
}

// Extend creates a child frame rooted at e containing the given bindings,
// applied in the order given. Used to implement let's parallel binding.
func (e *Environment) Extend(names []Symbol, values []interface{}) *Environment {
	child := NewEnvironment(e)
	for i, name := range names {
		child.Define(name, values[i])
	}
	return child
}

// uninitialized is the sentinel value letrec binds names to before their
// initializer expressions have run; reading one is an error.
type uninitialized struct{ name Symbol }
