//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command liswat is a Scheme interpreter: run it with no arguments for a
// REPL, with -e to evaluate a single expression, or with a file argument
// to run a script.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"

	"github.com/kford/liswat/liswat"
	"github.com/spf13/cobra"
)

func main() {
	var (
		eval    string
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:   "liswat [file]",
		Short: "A Scheme interpreter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()
			// NewInterpreter panics if the prelude fails to load; turn that
			// into an error so the process exits with status 1.
			var ip *liswat.Interpreter
			if err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%v", r)
					}
				}()
				ip = liswat.NewInterpreter()
				return nil
			}(); err != nil {
				return err
			}

			if eval != "" {
				return runOneShot(ip, eval, os.Stdout)
			}
			if len(args) == 1 {
				return runScript(ip, args[0], os.Stdout)
			}
			ip.RunREPL(os.Stdin, os.Stdout)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&eval, "eval", "e", "", "evaluate a single expression and exit")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output (reserved for future use)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "liswat:", err)
		os.Exit(1)
	}
}

// runOneShot evaluates a single expression passed via -e/--eval and
// prints its result, per spec §6's exit-code contract (1 on error).
func runOneShot(ip *liswat.Interpreter, text string, out io.Writer) error {
	value, err := ip.Evaluate(text)
	if err != nil {
		if err.Error() == "" {
			return nil
		}
		return err
	}
	fmt.Fprintln(out, liswat.Stringify(value))
	return nil
}

// runScript loads a file and evaluates each top-level form in it in
// turn, printing the value of the last one.
func runScript(ip *liswat.Interpreter, path string, out io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	value, everr := ip.Evaluate(string(source))
	if everr != nil {
		if everr.Error() == "" {
			return nil
		}
		return everr
	}
	fmt.Fprintln(out, liswat.Stringify(value))
	return nil
}

// setupLogging directs the standard logger to a file under the user's
// home directory, the way the original goswat debugger command did
// (see the teacher's main.go setupLogging), so interpreter diagnostics
// never clutter the REPL's stdout.
func setupLogging() {
	usr, err := user.Current()
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	dir := filepath.Join(usr.HomeDir, ".liswat")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.Mkdir(dir, 0755)
	}
	logfile, err := os.OpenFile(filepath.Join(dir, "messages.log"),
		os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(logfile)
}
