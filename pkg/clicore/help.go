// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shayne/yargs"
)

// HelpConfig describes the registered commands as yargs help metadata.
func (p *Parser) HelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for _, cmd := range p.Commands() {
		subcommands[cmd.Name] = toSubCommandInfo(cmd)
	}
	desc := p.description
	if p.version != nil {
		desc = strings.TrimSpace(fmt.Sprintf("%s (v%s)", desc, p.version))
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        p.name,
			Description: desc,
		},
		SubCommands: subcommands,
	}
}

func toSubCommandInfo(cmd *Command) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        cmd.Name,
		Description: firstLine(cmd.Help),
		Usage:       cmd.Usage,
		Aliases:     cmd.Aliases,
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// Usage renders help for the whole program.
func (p *Parser) Usage() string {
	return yargs.GenerateGlobalHelp(p.HelpConfig(), struct{}{})
}

// CommandHelp renders help for the command named or aliased by token,
// including its declared params and flags.
func (p *Parser) CommandHelp(token string) (string, error) {
	cmd, err := p.Resolve(token)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(yargs.GenerateSubCommandHelpFromConfig(p.HelpConfig(), cmd.Name, struct{}{}))
	if strings.Contains(strings.TrimSpace(cmd.Help), "\n") {
		b.WriteString(strings.TrimSpace(cmd.Help))
		b.WriteString("\n\n")
	}

	if len(cmd.Params) > 0 {
		b.WriteString("ARGUMENTS:\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, param := range cmd.Params {
			if param.Optional {
				fmt.Fprintf(tw, "    %s\t(default: %s)\n", strings.ToUpper(param.Name), param.Default)
			} else {
				fmt.Fprintf(tw, "    %s\t(required)\n", strings.ToUpper(param.Name))
			}
		}
		tw.Flush()
		b.WriteString("\n")
	}

	if flags := cmd.Flags(); len(flags) > 0 {
		b.WriteString("FLAGS:\n")
		tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		for _, f := range flags {
			fmt.Fprintf(tw, "    %s\t%s\n", flagSyntax(f), flagDescription(f))
		}
		tw.Flush()
		b.WriteString("\n")
	}
	return b.String(), nil
}

// flagSyntax shows how a flag is spelled on the command line. Flags with a
// bool default are switches; everything else takes a value.
func flagSyntax(f Flag) string {
	names := append([]string{f.Name}, f.Aliases...)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := f.Default.(bool); ok {
			parts = append(parts, "--"+n)
		} else {
			parts = append(parts, "-"+n+" VALUE")
		}
	}
	return strings.Join(parts, ", ")
}

func flagDescription(f Flag) string {
	desc := f.Description
	if f.Default != nil {
		desc = strings.TrimSpace(fmt.Sprintf("%s (default: %v)", desc, f.Default))
	}
	return desc
}
