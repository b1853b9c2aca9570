// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/yeetrun/clicore/pkg/clicore"
	"github.com/yeetrun/clicore/pkg/manifest"
)

//go:embed commands.toml
var commandsTOML []byte

type handlers struct {
	out io.Writer
}

func (h handlers) greet(ctx *clicore.Context) error {
	greeting := ctx.Flags.String("greeting")
	msg := fmt.Sprintf("%s, %s!", greeting, ctx.Args.Get("name"))
	if ctx.Flags.Bool("shout") {
		msg = strings.ToUpper(msg)
	}
	fmt.Fprintln(h.out, msg)
	return nil
}

func (h handlers) echo(ctx *clicore.Context) error {
	words := append([]string{ctx.Args.Get("word")}, ctx.Args.Rest()...)
	fmt.Fprintln(h.out, strings.Join(words, ctx.Flags.String("sep")))
	return nil
}

func (h handlers) where(ctx *clicore.Context) error {
	fmt.Fprintln(h.out, ctx.Dir)
	return nil
}

func newParser(out io.Writer, opts ...clicore.ParserOption) (*clicore.Parser, error) {
	h := handlers{out: out}
	opts = append([]clicore.ParserOption{
		clicore.WithDescription("Greets people and echoes words"),
		clicore.WithVersion("0.4.0"),
	}, opts...)
	p, err := clicore.New("greet", opts...)
	if err != nil {
		return nil, err
	}
	_, err = p.Command("greet", h.greet,
		clicore.WithAliases("hi", "hello"),
		clicore.WithUsage("[NAME]"),
		clicore.WithHelp("Print a greeting"),
		clicore.WithParams(clicore.OptionalArg("name", "world")),
		clicore.WithFlag(clicore.Flag{Name: "greeting", Default: "Hello", Aliases: []string{"g"}, Description: "Greeting word"}),
		clicore.WithFlag(clicore.Flag{Name: "shout", Default: false, Description: "Print in upper case"}),
	)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Parse(commandsTOML, manifest.FormatTOML)
	if err != nil {
		return nil, err
	}
	byName := map[string]clicore.HandlerFunc{
		"echo":  h.echo,
		"where": h.where,
	}
	if err := m.Apply(p, byName); err != nil {
		return nil, err
	}
	return p, nil
}

func main() {
	p, err := newParser(os.Stdout)
	if err != nil {
		log.Fatalf("failed to set up commands: %v", err)
	}
	os.Exit(p.Main(context.Background(), os.Args))
}
