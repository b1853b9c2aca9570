// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"strconv"

	"tailscale.com/util/mak"
)

// HandlerFunc runs a command. Its error is returned to the caller of Parse
// unchanged.
type HandlerFunc func(ctx *Context) error

// Param declares a positional parameter of a command.
type Param struct {
	Name     string
	Default  string
	Optional bool // Default is used when no positional is supplied
}

// Arg declares a required positional parameter.
func Arg(name string) Param {
	return Param{Name: name}
}

// OptionalArg declares a positional parameter that falls back to def.
func OptionalArg(name, def string) Param {
	return Param{Name: name, Default: def, Optional: true}
}

// Command is a named, invocable unit with declared parameters and flags.
// Commands are built with NewCommand and must not be modified after they are
// registered.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Help    string
	Params  []Param
	Handler HandlerFunc

	flags      map[string]Flag   // canonical name -> declaration
	flagOrder  []string          // canonical names in declaration order
	flagLookup map[string]string // alias or name -> canonical name

	// err is the first declaration error from an Option; Register reports it.
	err error
}

// Option configures a Command.
type Option func(*Command)

// WithAliases adds alternate tokens that resolve to the command.
func WithAliases(aliases ...string) Option {
	return func(c *Command) { c.Aliases = append(c.Aliases, aliases...) }
}

// WithUsage sets the usage line shown in help, e.g. "NAME [GREETING]".
func WithUsage(usage string) Option {
	return func(c *Command) { c.Usage = usage }
}

// WithHelp sets the command's description.
func WithHelp(help string) Option {
	return func(c *Command) { c.Help = help }
}

// WithParams appends positional parameter declarations.
func WithParams(params ...Param) Option {
	return func(c *Command) { c.Params = append(c.Params, params...) }
}

// WithFlag declares a flag. A bad declaration surfaces when the command is
// registered.
func WithFlag(f Flag) Option {
	return func(c *Command) {
		if err := c.DeclareFlag(f); err != nil && c.err == nil {
			c.err = err
		}
	}
}

// NewCommand returns a command named name that runs h.
func NewCommand(name string, h HandlerFunc, opts ...Option) *Command {
	c := &Command{Name: name, Handler: h}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeclareFlag adds f to the command. The flag's name and aliases must be
// non-empty, must not start with "-", and must not collide with any name or
// alias already declared on the command.
func (c *Command) DeclareFlag(f Flag) error {
	idents := append([]string{f.Name}, f.Aliases...)
	seen := make(map[string]bool, len(idents))
	for _, id := range idents {
		if !validFlagIdent(id) {
			return &FlagError{Command: c.Name, Flag: f.Name, Reason: "invalid name or alias " + strconv.Quote(id)}
		}
		if seen[id] {
			return &FlagError{Command: c.Name, Flag: f.Name, Reason: "duplicate alias " + strconv.Quote(id)}
		}
		seen[id] = true
		if owner, ok := c.flagLookup[id]; ok {
			return &FlagError{Command: c.Name, Flag: f.Name, Reason: strconv.Quote(id) + " is already used by flag " + strconv.Quote(owner)}
		}
	}

	f.Aliases = append([]string(nil), f.Aliases...)
	mak.Set(&c.flags, f.Name, f)
	c.flagOrder = append(c.flagOrder, f.Name)
	for _, id := range idents {
		mak.Set(&c.flagLookup, id, f.Name)
	}
	return nil
}

// Flag returns the declaration of the flag named or aliased by name.
func (c *Command) Flag(name string) (Flag, bool) {
	f, ok := c.flags[c.canonicalFlag(name)]
	return f, ok
}

// Flags returns the declared flags in declaration order.
func (c *Command) Flags() []Flag {
	out := make([]Flag, 0, len(c.flagOrder))
	for _, name := range c.flagOrder {
		out = append(out, c.flags[name])
	}
	return out
}

// canonicalFlag maps an alias to its flag's name. Unknown names are returned
// unchanged.
func (c *Command) canonicalFlag(name string) string {
	if canon, ok := c.flagLookup[name]; ok {
		return canon
	}
	return name
}

func (c *Command) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}
