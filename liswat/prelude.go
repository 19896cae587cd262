//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package liswat

import _ "embed"

//go:embed prelude.scm
var preludeSource string

// loadPrelude parses and evaluates the embedded prelude text in env,
// defining the derived forms spec §4.6/§9 calls for. Per spec §4.6, the
// prelude is loaded exactly once and any error during its load is fatal
// to Interpreter construction.
func loadPrelude(env *Environment) *LispError {
	datums, err := ParseAll(preludeSource)
	if err != nil {
		return err
	}
	for _, d := range datums {
		if _, err := eval(env, d); err != nil {
			return err
		}
	}
	return nil
}
