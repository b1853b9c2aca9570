// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Masterminds/semver/v3"
	"github.com/yeetrun/clicore/pkg/tui"
	"tailscale.com/types/logger"
)

// Parser owns a command registry and dispatches argument vectors to it.
type Parser struct {
	Registry

	name        string
	description string
	version     *semver.Version
	binder      Binder
	getwd       func() (string, error)
	stdout      io.Writer
	stderr      io.Writer
}

// ParserOption configures a Parser.
type ParserOption func(*Parser) error

// WithDescription sets the one-line program description used in help.
func WithDescription(desc string) ParserOption {
	return func(p *Parser) error {
		p.description = desc
		return nil
	}
}

// WithVersion sets the program version. It must be a semantic version.
func WithVersion(v string) ParserOption {
	return func(p *Parser) error {
		sv, err := semver.NewVersion(v)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", v, err)
		}
		p.version = sv
		return nil
	}
}

// WithLogf sets the sink for non-fatal diagnostics such as unexpected flags.
func WithLogf(logf logger.Logf) ParserOption {
	return func(p *Parser) error {
		p.binder.Logf = logf
		return nil
	}
}

// WithGetwd overrides how the working directory is captured.
func WithGetwd(getwd func() (string, error)) ParserOption {
	return func(p *Parser) error {
		p.getwd = getwd
		return nil
	}
}

// WithOutput sets where Main writes help and diagnostics.
func WithOutput(stdout, stderr io.Writer) ParserOption {
	return func(p *Parser) error {
		p.stdout = stdout
		p.stderr = stderr
		return nil
	}
}

// New returns a Parser for the program called name.
func New(name string, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		name:   name,
		getwd:  os.Getwd,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Name returns the program name.
func (p *Parser) Name() string { return p.name }

// Version returns the program version, or nil if none was set.
func (p *Parser) Version() *semver.Version { return p.version }

// Command builds a command and registers it.
func (p *Parser) Command(name string, h HandlerFunc, opts ...Option) (*Command, error) {
	return p.Register(NewCommand(name, h, opts...))
}

// MustCommand is like Command but panics if registration fails.
func (p *Parser) MustCommand(name string, h HandlerFunc, opts ...Option) *Command {
	cmd, err := p.Command(name, h, opts...)
	if err != nil {
		panic(fmt.Sprintf("clicore: %v", err))
	}
	return cmd
}

// Parse resolves token to a command, tokenizes args and invokes the command.
func (p *Parser) Parse(ctx context.Context, token string, args []string) error {
	return p.parse(ctx, &p.binder, token, args)
}

// Run dispatches a full argument vector: argv[0] is the program, argv[1] the
// command token and the rest its arguments.
func (p *Parser) Run(ctx context.Context, argv []string) error {
	return p.run(ctx, &p.binder, argv)
}

func (p *Parser) run(ctx context.Context, b *Binder, argv []string) error {
	if len(argv) < 2 {
		return ErrCommandNotProvided
	}
	return p.parse(ctx, b, argv[1], argv[2:])
}

func (p *Parser) parse(ctx context.Context, b *Binder, token string, args []string) error {
	cmd, err := p.Resolve(token)
	if err != nil {
		return err
	}
	flags, positionals, err := Scan(args)
	if err != nil {
		return err
	}
	dir, err := p.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return b.Invoke(ctx, cmd, dir, positionals, flags)
}

// Main is the high-level entry point: it runs argv, reports any failure and
// returns the process exit code.
//
// A missing or unknown command is reported without failing hard; bad input
// exits with 2 and handler errors with 1. "help", "-h" and "--help" print
// help unless a command of that name exists, and "--version" prints the
// version.
func (p *Parser) Main(ctx context.Context, argv []string) int {
	rep := tui.NewReporter(p.stderr)
	b := p.binder
	if b.Logf == nil {
		b.Logf = rep.Logf
	}

	if code, ok := p.builtin(argv); ok {
		return code
	}

	err := p.run(ctx, &b, argv)
	var notFound *CommandNotFoundError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrCommandNotProvided):
		rep.Errorf("%v", err)
		fmt.Fprint(p.stderr, p.Usage())
		return 2
	case errors.As(err, &notFound):
		rep.Errorf("%v", err)
		fmt.Fprintf(p.stderr, "Run '%s help' for a list of commands.\n", p.name)
		return 2
	case errors.Is(err, ErrFlagSyntax), errors.Is(err, ErrMissingArgument):
		rep.Errorf("%v", err)
		return 2
	default:
		rep.Errorf("%v", err)
		return 1
	}
}

// builtin handles help and version requests that do not shadow a registered
// command.
func (p *Parser) builtin(argv []string) (int, bool) {
	if len(argv) < 2 {
		return 0, false
	}
	token := argv[1]
	if cmd, err := p.Resolve(token); err == nil {
		if _, declared := cmd.Flag("help"); !declared && slices.Contains(argv[2:], "--help") {
			return p.printCommandHelp(cmd.Name), true
		}
		return 0, false
	}
	switch token {
	case "help", "-h", "--help":
		if len(argv) > 2 {
			return p.printCommandHelp(argv[2]), true
		}
		fmt.Fprint(p.stdout, p.Usage())
		return 0, true
	case "--version":
		if p.version == nil {
			fmt.Fprintf(p.stdout, "%s (unversioned)\n", p.name)
		} else {
			fmt.Fprintf(p.stdout, "%s %s\n", p.name, p.version)
		}
		return 0, true
	}
	return 0, false
}

func (p *Parser) printCommandHelp(token string) int {
	help, err := p.CommandHelp(token)
	if err != nil {
		tui.NewReporter(p.stderr).Errorf("%v", err)
		return 2
	}
	fmt.Fprint(p.stdout, help)
	return 0
}
