// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clicore registers named commands and dispatches argument vectors to
// them.
//
// A command is a handler plus declarations: its aliases, its positional
// parameters (with optional defaults) and its flags (with defaults and
// aliases). The parser resolves the command token, splits the remaining
// arguments into flags and positionals, binds them to the declarations and
// calls the handler with a fresh Context.
//
// # Basic Usage
//
//	p, err := clicore.New("greet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p.MustCommand("hello", func(ctx *clicore.Context) error {
//	    greeting := ctx.Flags.String("greeting")
//	    if ctx.Flags.Bool("shout") {
//	        greeting = strings.ToUpper(greeting)
//	    }
//	    fmt.Printf("%s, %s!\n", greeting, ctx.Args.Get("name"))
//	    return nil
//	},
//	    clicore.WithAliases("hi"),
//	    clicore.WithParams(clicore.OptionalArg("name", "world")),
//	    clicore.WithFlag(clicore.Flag{Name: "greeting", Default: "Hello", Aliases: []string{"g"}}),
//	    clicore.WithFlag(clicore.Flag{Name: "shout", Default: false}),
//	)
//	os.Exit(p.Main(context.Background(), os.Args))
//
// # Flag Syntax
//
// The syntax is deliberately small:
//   - Boolean flags: --shout
//   - Flags with values: -g Howdy (the value is always the next token)
//
// There are no combined short flags and no --flag=value form. A value flag
// followed by another dash token, or by nothing, is a syntax error. Flags the
// command does not declare are reported and ignored.
//
// # Flag State
//
// Flag declarations never change after registration. Whether a flag was
// passed in a given call is recorded on that call's Context:
//
//	if ctx.Flags.Passed("greeting") { ... }
//
// so one command may be invoked from several goroutines at once.
package clicore
