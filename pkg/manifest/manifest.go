// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest declares commands in TOML or YAML files and registers
// them against Go handlers.
//
// A TOML manifest looks like:
//
//	[[command]]
//	name = "greet"
//	aliases = ["hi"]
//	usage = "[NAME]"
//	help = "Print a greeting"
//
//	[[command.param]]
//	name = "name"
//	default = "world"
//
//	[[command.flag]]
//	name = "greeting"
//	default = "Hello"
//	aliases = ["g"]
//
// The YAML form uses the same keys with plural lists: commands, params, flags.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/clicore/pkg/clicore"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a manifest.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnknownHandler is returned by Apply when a command names a handler that
// was not provided.
var ErrUnknownHandler = errors.New("unknown handler")

// File is a decoded manifest.
type File struct {
	Commands []Command `toml:"command" yaml:"commands"`
}

// Command declares one command.
type Command struct {
	Name    string   `toml:"name" yaml:"name"`
	Handler string   `toml:"handler" yaml:"handler"` // defaults to Name
	Aliases []string `toml:"aliases" yaml:"aliases"`
	Usage   string   `toml:"usage" yaml:"usage"`
	Help    string   `toml:"help" yaml:"help"`
	Params  []Param  `toml:"param" yaml:"params"`
	Flags   []Flag   `toml:"flag" yaml:"flags"`
}

// Param declares a positional parameter. A nil Default makes it required;
// scalar defaults of any type are stored in their string form.
type Param struct {
	Name    string `toml:"name" yaml:"name"`
	Default any    `toml:"default" yaml:"default"`
}

// Flag declares a flag.
type Flag struct {
	Name        string   `toml:"name" yaml:"name"`
	Default     any      `toml:"default" yaml:"default"`
	Aliases     []string `toml:"aliases" yaml:"aliases"`
	Description string   `toml:"description" yaml:"description"`
}

// DetectFormat picks a format from a file extension. Unknown extensions are
// treated as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and decodes the manifest at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	f, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a manifest. Unknown keys are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown manifest key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %v", format)
	}
	for i := range f.Commands {
		normalizeDefaults(f.Commands[i].Flags)
	}
	return &f, nil
}

// normalizeDefaults maps decoder-specific numeric types onto int so that
// FlagSet.Int works the same for both formats.
func normalizeDefaults(flags []Flag) {
	for i, fl := range flags {
		if n, ok := fl.Default.(int64); ok {
			flags[i].Default = int(n)
		}
	}
}

// Registrar is the subset of *clicore.Registry that Apply needs.
type Registrar interface {
	Register(*clicore.Command) (*clicore.Command, error)
	Unregister(name string)
}

// Apply registers every command in f, binding each to handlers[cmd.Handler]
// (or handlers[cmd.Name] when no handler is named). Either every command is
// registered or, on error, none are.
func (f *File) Apply(reg Registrar, handlers map[string]clicore.HandlerFunc) error {
	cmds := make([]*clicore.Command, 0, len(f.Commands))
	for _, c := range f.Commands {
		cmd, err := c.build(handlers)
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
	}

	var done []string
	for _, cmd := range cmds {
		if _, err := reg.Register(cmd); err != nil {
			for _, name := range done {
				reg.Unregister(name)
			}
			return err
		}
		done = append(done, cmd.Name)
	}
	return nil
}

func (c Command) build(handlers map[string]clicore.HandlerFunc) (*clicore.Command, error) {
	key := c.Handler
	if key == "" {
		key = c.Name
	}
	h, ok := handlers[key]
	if !ok {
		return nil, fmt.Errorf("command %q: %w %q", c.Name, ErrUnknownHandler, key)
	}

	opts := []clicore.Option{
		clicore.WithAliases(c.Aliases...),
		clicore.WithUsage(c.Usage),
		clicore.WithHelp(c.Help),
	}
	for _, p := range c.Params {
		switch v := p.Default.(type) {
		case nil:
			opts = append(opts, clicore.WithParams(clicore.Arg(p.Name)))
		case string, bool, int, int64, float64:
			opts = append(opts, clicore.WithParams(clicore.OptionalArg(p.Name, fmt.Sprint(v))))
		default:
			return nil, fmt.Errorf("command %q: param %q: default must be a scalar, got %T", c.Name, p.Name, v)
		}
	}
	cmd := clicore.NewCommand(c.Name, h, opts...)
	for _, fl := range c.Flags {
		err := cmd.DeclareFlag(clicore.Flag{
			Name:        fl.Name,
			Default:     fl.Default,
			Aliases:     fl.Aliases,
			Description: fl.Description,
		})
		if err != nil {
			return nil, err
		}
	}
	return cmd, nil
}
