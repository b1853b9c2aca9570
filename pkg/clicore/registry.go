// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"tailscale.com/util/mak"
	"tailscale.com/util/set"
)

// Registry maps command names and aliases to commands. The zero value is an
// empty registry ready to use. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command // canonical name -> command
	aliases  map[string]string   // alias or canonical name -> canonical name
}

// Register adds cmd to the registry and returns it.
//
// It fails if the command is malformed, or if its name or any alias is
// already taken by a registered command. A failed registration leaves the
// registry unchanged.
func (r *Registry) Register(cmd *Command) (*Command, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[cmd.Name]; ok {
		return nil, &DuplicateCommandError{Name: cmd.Name}
	}
	if _, ok := r.aliases[cmd.Name]; ok {
		return nil, &DuplicateCommandError{Name: cmd.Name}
	}
	seen := set.Of(cmd.Name)
	for _, alias := range cmd.Aliases {
		if _, ok := r.aliases[alias]; ok || seen.Contains(alias) {
			return nil, &DuplicateCommandError{Name: cmd.Name, Alias: alias}
		}
		seen.Add(alias)
	}

	mak.Set(&r.commands, cmd.Name, cmd)
	for _, name := range cmd.names() {
		mak.Set(&r.aliases, name, cmd.Name)
	}
	return cmd, nil
}

func validateCommand(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("%w: nil command", ErrInvalidName)
	}
	if !validToken(cmd.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q: %w", cmd.Name, ErrNoHandler)
	}
	if cmd.err != nil {
		return cmd.err
	}
	for _, alias := range cmd.Aliases {
		if !validToken(alias) {
			return fmt.Errorf("command %q: %w: %q", cmd.Name, ErrInvalidAlias, alias)
		}
	}
	params := make(set.Set[string], len(cmd.Params))
	for _, p := range cmd.Params {
		if p.Name == "" || params.Contains(p.Name) {
			return fmt.Errorf("command %q: %w: %q", cmd.Name, ErrInvalidParam, p.Name)
		}
		params.Add(p.Name)
	}
	return nil
}

func validToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\r\n")
}

// Resolve returns the command whose name or alias is token.
func (r *Registry) Resolve(token string) (*Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.aliases[token]
	if !ok {
		return nil, &CommandNotFoundError{Name: token}
	}
	return r.commands[name], nil
}

// Get returns the command registered under the canonical name. Aliases are
// not consulted.
func (r *Registry) Get(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Unregister removes the named command and every alias pointing at it. It is
// a no-op for names that were never registered.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[name]; !ok {
		return
	}
	delete(r.commands, name)
	for alias, canon := range r.aliases {
		if canon == name {
			delete(r.aliases, alias)
		}
	}
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, b *Command) int { return strings.Compare(a.Name, b.Name) })
	return cmds
}
