// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

func newTestParser(t *testing.T, opts ...ParserOption) (*Parser, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]ParserOption{
		WithOutput(&stdout, &stderr),
		WithGetwd(func() (string, error) { return "/home/ann", nil }),
	}, opts...)
	p, err := New("app", opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p, &stdout, &stderr
}

func TestParserGreetEndToEnd(t *testing.T) {
	p, _, _ := newTestParser(t)
	var got []string
	p.MustCommand("greet", func(ctx *Context) error {
		got = append(got, ctx.Args.Get("name"))
		return nil
	}, WithParams(OptionalArg("name", "world")))

	ctx := context.Background()
	if err := p.Run(ctx, []string{"app", "greet"}); err != nil {
		t.Fatalf("Run(greet) failed: %v", err)
	}
	if err := p.Run(ctx, []string{"app", "greet", "Ann"}); err != nil {
		t.Fatalf("Run(greet Ann) failed: %v", err)
	}
	want := []string{"world", "Ann"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("names = %q, want %q", got, want)
	}
}

func TestParserParseResolvesAliasesAndFlags(t *testing.T) {
	p, _, _ := newTestParser(t)
	var seen *Context
	p.MustCommand("greet", func(ctx *Context) error {
		seen = ctx
		return nil
	},
		WithAliases("hi"),
		WithParams(OptionalArg("name", "world")),
		WithFlag(Flag{Name: "greeting", Default: "Hello", Aliases: []string{"g"}}),
		WithFlag(Flag{Name: "shout", Default: false}),
	)

	if err := p.Parse(context.Background(), "hi", []string{"-g", "Howdy", "Bob", "--shout"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if seen.Command.Name != "greet" {
		t.Errorf("resolved %q, want greet", seen.Command.Name)
	}
	if got := seen.Flags.String("greeting"); got != "Howdy" {
		t.Errorf("greeting = %q, want Howdy", got)
	}
	if !seen.Flags.Bool("shout") || !seen.Flags.Passed("shout") {
		t.Errorf("shout not passed")
	}
	if got := seen.Args.Get("name"); got != "Bob" {
		t.Errorf("name = %q, want Bob", got)
	}
	if seen.Dir != "/home/ann" {
		t.Errorf("Dir = %q, want /home/ann", seen.Dir)
	}
}

func TestParserPassesContext(t *testing.T) {
	p, _, _ := newTestParser(t)
	type key struct{}
	var got any
	p.MustCommand("show", func(ctx *Context) error {
		got = ctx.Context().Value(key{})
		return nil
	})
	ctx := context.WithValue(context.Background(), key{}, "v")
	if err := p.Parse(ctx, "show", nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != "v" {
		t.Fatalf("handler saw context value %v, want v", got)
	}
}

func TestParserRunErrors(t *testing.T) {
	p, _, _ := newTestParser(t)
	called := false
	p.MustCommand("build", func(*Context) error {
		called = true
		return nil
	})
	ctx := context.Background()

	if err := p.Run(ctx, []string{"app"}); !errors.Is(err, ErrCommandNotProvided) {
		t.Errorf("Run without command = %v, want ErrCommandNotProvided", err)
	}
	if err := p.Run(ctx, []string{"app", "biuld"}); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Run with unknown command = %v, want ErrCommandNotFound", err)
	}
	if err := p.Run(ctx, []string{"app", "build", "-o"}); !errors.Is(err, ErrFlagSyntax) {
		t.Errorf("Run with dangling flag = %v, want ErrFlagSyntax", err)
	}
	if called {
		t.Fatalf("handler ran on a failed parse")
	}
}

func TestParserGetwdFailure(t *testing.T) {
	p, _, _ := newTestParser(t, WithGetwd(func() (string, error) { return "", errors.New("gone") }))
	p.MustCommand("x", nop)
	if err := p.Parse(context.Background(), "x", nil); err == nil || !strings.Contains(err.Error(), "gone") {
		t.Fatalf("Parse error = %v, want wrapped getwd error", err)
	}
}

func TestParserUnexpectedFlagUsesLogf(t *testing.T) {
	var logs captureLogf
	p, _, _ := newTestParser(t, WithLogf(logs.logf))
	var ran bool
	p.MustCommand("deploy", func(ctx *Context) error {
		ran = true
		if _, ok := ctx.Flags.Lookup("force"); ok {
			t.Errorf("unexpected flag visible to handler")
		}
		return nil
	})
	if err := p.Parse(context.Background(), "deploy", []string{"--force"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !ran {
		t.Fatalf("handler did not run")
	}
	if len(logs.lines) != 1 || !strings.Contains(logs.lines[0], `"force"`) {
		t.Fatalf("diagnostics = %q", logs.lines)
	}
}

func TestParserConcurrentInvocations(t *testing.T) {
	p, _, _ := newTestParser(t)
	var mu sync.Mutex
	results := make(map[string]string)
	p.MustCommand("tag", func(ctx *Context) error {
		mu.Lock()
		defer mu.Unlock()
		results[ctx.Args.Get("id")] = fmt.Sprintf("%s/%v", ctx.Flags.String("label"), ctx.Flags.Passed("label"))
		return nil
	},
		WithParams(Arg("id")),
		WithFlag(Flag{Name: "label", Default: "none"}),
	)

	var g errgroup.Group
	for i := range 50 {
		id := fmt.Sprint(i)
		g.Go(func() error {
			args := []string{id}
			if i%2 == 0 {
				args = append(args, "-label", "l"+id)
			}
			return p.Parse(context.Background(), "tag", args)
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for i := range 50 {
		id := fmt.Sprint(i)
		want := "none/false"
		if i%2 == 0 {
			want = "l" + id + "/true"
		}
		if results[id] != want {
			t.Errorf("invocation %s saw %q, want %q", id, results[id], want)
		}
	}
}

func TestMainExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		argv       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "success", argv: []string{"app", "ok"}, wantCode: 0},
		{name: "no command", argv: []string{"app"}, wantCode: 2, wantStderr: "error: no command was provided"},
		{name: "unknown command", argv: []string{"app", "nope"}, wantCode: 2, wantStderr: "nope is not a registered command or alias"},
		{name: "flag syntax", argv: []string{"app", "ok", "-x"}, wantCode: 2, wantStderr: "unexpected end of input after flag -x"},
		{name: "missing argument", argv: []string{"app", "need"}, wantCode: 2, wantStderr: `missing required argument "what"`},
		{name: "handler error", argv: []string{"app", "fail"}, wantCode: 1, wantStderr: "error: handler failed"},
		{name: "unexpected flag", argv: []string{"app", "ok", "--bogus"}, wantCode: 0, wantStderr: `warning: ignoring unexpected flag: "bogus"`},
		{name: "help", argv: []string{"app", "help"}, wantCode: 0, wantStdout: "COMMANDS:"},
		{name: "help command", argv: []string{"app", "help", "need"}, wantCode: 0, wantStdout: "WHAT"},
		{name: "help unknown command", argv: []string{"app", "help", "nope"}, wantCode: 2, wantStderr: "nope is not a registered"},
		{name: "command --help", argv: []string{"app", "need", "--help"}, wantCode: 0, wantStdout: "USAGE:"},
		{name: "version", argv: []string{"app", "--version"}, wantCode: 0, wantStdout: "app 1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stdout, stderr := newTestParser(t, WithVersion("1.2.3"))
			p.MustCommand("ok", nop)
			p.MustCommand("need", nop, WithParams(Arg("what")))
			p.MustCommand("fail", func(*Context) error { return errors.New("handler failed") })

			code := p.Main(context.Background(), tt.argv)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestMainHelpShadowedByCommand(t *testing.T) {
	p, stdout, _ := newTestParser(t)
	ran := false
	p.MustCommand("help", func(*Context) error {
		ran = true
		return nil
	})
	if code := p.Main(context.Background(), []string{"app", "help"}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !ran {
		t.Fatalf("registered help command did not run")
	}
	if stdout.Len() != 0 {
		t.Fatalf("built-in help printed despite registered command: %q", stdout.String())
	}
}

func TestNewRejectsBadVersion(t *testing.T) {
	if _, err := New("app", WithVersion("not-a-version")); err == nil {
		t.Fatalf("New accepted an invalid version")
	}
}

func TestMustCommandPanicsOnDuplicate(t *testing.T) {
	p, _, _ := newTestParser(t)
	p.MustCommand("dup", nop)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on duplicate register")
		}
	}()
	p.MustCommand("dup", nop)
}

func TestParserFlagAliasOrder(t *testing.T) {
	p, _, _ := newTestParser(t)
	var got string
	p.MustCommand("greet", func(ctx *Context) error {
		got = ctx.Flags.String("greeting")
		return nil
	}, WithFlag(Flag{Name: "greeting", Default: "Hello", Aliases: []string{"g"}}))

	for _, tt := range []struct {
		argv []string
		want string
	}{
		{[]string{"app", "greet", "-greeting", "first", "-g", "last"}, "last"},
		{[]string{"app", "greet", "-g", "first", "-greeting", "last"}, "last"},
	} {
		if err := p.Run(context.Background(), tt.argv); err != nil {
			t.Fatalf("Run(%q) failed: %v", tt.argv, err)
		}
		if got != tt.want {
			t.Errorf("Run(%q): greeting = %q, want %q", tt.argv, got, tt.want)
		}
	}
}
