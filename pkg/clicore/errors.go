// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below match them with errors.Is.
var (
	// ErrCommandNotProvided is returned by Run when argv carries no command token.
	ErrCommandNotProvided = errors.New("no command was provided")

	// ErrCommandNotFound matches *CommandNotFoundError.
	ErrCommandNotFound = errors.New("command not found")

	// ErrDuplicateCommand matches *DuplicateCommandError.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrInvalidName is returned when a command name is empty or contains whitespace.
	ErrInvalidName = errors.New("invalid command name")

	// ErrInvalidAlias is returned when a command alias is empty or contains whitespace.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrNoHandler is returned when a command has no handler to call.
	ErrNoHandler = errors.New("command has no handler")

	// ErrInvalidParam is returned when a positional parameter is unnamed or
	// declared twice.
	ErrInvalidParam = errors.New("invalid parameter declaration")

	// ErrInvalidFlag matches *FlagError.
	ErrInvalidFlag = errors.New("invalid flag declaration")

	// ErrFlagSyntax matches *FlagSyntaxError.
	ErrFlagSyntax = errors.New("flag syntax error")

	// ErrMissingArgument matches *MissingArgumentError.
	ErrMissingArgument = errors.New("missing argument")
)

// CommandNotFoundError is returned when a token matches no registered command
// name or alias.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s is not a registered command or alias", e.Name)
}

func (e *CommandNotFoundError) Is(target error) bool { return target == ErrCommandNotFound }

// DuplicateCommandError is returned when a registration collides with an
// existing command name or alias. Alias is empty when the name itself collided.
type DuplicateCommandError struct {
	Name  string
	Alias string
}

func (e *DuplicateCommandError) Error() string {
	if e.Alias != "" {
		return fmt.Sprintf("alias %q of command %q has already been registered", e.Alias, e.Name)
	}
	return fmt.Sprintf("command %q has already been registered", e.Name)
}

func (e *DuplicateCommandError) Is(target error) bool { return target == ErrDuplicateCommand }

// FlagError describes a malformed flag declaration.
type FlagError struct {
	Command string
	Flag    string
	Reason  string
}

func (e *FlagError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("flag %q: %s", e.Flag, e.Reason)
	}
	return fmt.Sprintf("command %q: flag %q: %s", e.Command, e.Flag, e.Reason)
}

func (e *FlagError) Is(target error) bool { return target == ErrInvalidFlag }

// FlagSyntaxError is returned by Tokenize and Scan when a value flag has no value.
type FlagSyntaxError struct {
	Flag string // as typed, e.g. "-o"
	EOF  bool   // the flag was the last token
}

func (e *FlagSyntaxError) Error() string {
	if e.EOF {
		return fmt.Sprintf("unexpected end of input after flag %s", e.Flag)
	}
	return fmt.Sprintf("no value was provided for flag %s", e.Flag)
}

func (e *FlagSyntaxError) Is(target error) bool { return target == ErrFlagSyntax }

// MissingArgumentError is returned when a declared positional parameter has
// neither a supplied value nor a default. The handler is not invoked.
type MissingArgumentError struct {
	Command string
	Param   string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("'%s' is missing required argument %q", e.Command, e.Param)
}

func (e *MissingArgumentError) Is(target error) bool { return target == ErrMissingArgument }

// UnexpectedFlagError describes a flag that was passed but is not declared on
// the command. It is never returned; the binder only reports it.
type UnexpectedFlagError struct {
	Command string
	Flag    string
}

func (e *UnexpectedFlagError) Error() string {
	return fmt.Sprintf("ignoring unexpected flag: %q", e.Flag)
}
