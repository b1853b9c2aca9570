// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"context"

	"github.com/google/uuid"
)

// Context is handed to every handler. It is created for a single invocation
// and carries everything the handler may learn about it: where it was run
// from, which command was resolved, and the bound arguments and flags.
type Context struct {
	// ID uniquely identifies the invocation.
	ID uuid.UUID
	// Dir is the working directory captured when the command was dispatched.
	Dir string
	// Command is the resolved command.
	Command *Command
	// Args holds the positional arguments bound to the command's params.
	Args Args
	// Flags holds every declared flag of the command, passed or defaulted.
	Flags FlagSet

	ctx context.Context
}

// Context returns the context.Context the invocation was started with. It is
// never nil.
func (c *Context) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Flag returns the value of a declared flag by name or alias.
func (c *Context) Flag(name string) (any, bool) {
	if c.Command != nil {
		name = c.Command.canonicalFlag(name)
	}
	return c.Flags.Lookup(name)
}

// Args holds positional arguments keyed by parameter name.
type Args struct {
	names  []string
	values map[string]string
	rest   []string
}

// Get returns the named argument, or "" if the command has no such param.
func (a Args) Get(name string) string {
	return a.values[name]
}

// Lookup returns the named argument and whether it is bound.
func (a Args) Lookup(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Names returns the bound parameter names in declaration order.
func (a Args) Names() []string {
	return append([]string(nil), a.names...)
}

// Rest returns positionals supplied beyond the declared params.
func (a Args) Rest() []string {
	return append([]string(nil), a.rest...)
}

// Len returns the number of bound params.
func (a Args) Len() int { return len(a.names) }
