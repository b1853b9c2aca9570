// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"context"
	"log"

	"github.com/google/uuid"
	"tailscale.com/types/logger"
	"tailscale.com/util/set"
)

// Binder turns a resolved command plus tokenized input into a handler call.
type Binder struct {
	// Logf receives diagnostics for unexpected flags. Nil means log.Printf.
	Logf logger.Logf
}

func (b *Binder) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Invoke binds positionals and flags to cmd and runs its handler in dir.
//
// Positionals fill cmd.Params in order; unfilled params take their default,
// and a param without one is a *MissingArgumentError. Flags are mapped to
// their canonical names in command-line order, so the last occurrence wins
// even across aliases. Flags the command does not declare are reported
// through Logf and dropped, also when the call then fails on a missing
// argument. Every declared flag ends up in the Context, either with the
// supplied value or with its default.
//
// The handler's error is returned as is.
func (b *Binder) Invoke(ctx context.Context, cmd *Command, dir string, positionals []string, flags []FlagArg) error {
	if cmd == nil || cmd.Handler == nil {
		return ErrNoHandler
	}
	fs := b.bindFlags(cmd, flags)
	args, err := bindArgs(cmd, positionals)
	if err != nil {
		return err
	}

	return cmd.Handler(&Context{
		ID:      uuid.New(),
		Dir:     dir,
		Command: cmd,
		Args:    args,
		Flags:   fs,
		ctx:     ctx,
	})
}

func bindArgs(cmd *Command, positionals []string) (Args, error) {
	args := Args{
		names:  make([]string, 0, len(cmd.Params)),
		values: make(map[string]string, len(cmd.Params)),
	}
	for i, p := range cmd.Params {
		switch {
		case i < len(positionals):
			args.values[p.Name] = positionals[i]
		case p.Optional:
			args.values[p.Name] = p.Default
		default:
			return Args{}, &MissingArgumentError{Command: cmd.Name, Param: p.Name}
		}
		args.names = append(args.names, p.Name)
	}
	if len(positionals) > len(cmd.Params) {
		args.rest = append([]string(nil), positionals[len(cmd.Params):]...)
	}
	return args, nil
}

func (b *Binder) bindFlags(cmd *Command, flags []FlagArg) FlagSet {
	passed := make(map[string]any, len(flags))
	reported := set.Set[string]{}
	for _, f := range flags {
		canon := cmd.canonicalFlag(f.Name)
		if _, ok := cmd.flags[canon]; !ok {
			if !reported.Contains(canon) {
				reported.Add(canon)
				b.logf("%v", &UnexpectedFlagError{Command: cmd.Name, Flag: canon})
			}
			continue
		}
		passed[canon] = f.Value
	}

	values := make(map[string]FlagValue, len(cmd.flags))
	for name, f := range cmd.flags {
		if v, ok := passed[name]; ok {
			values[name] = FlagValue{Value: v, Passed: true}
			continue
		}
		values[name] = FlagValue{Value: f.Default}
	}
	return FlagSet{values: values}
}
