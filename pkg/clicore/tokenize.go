// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import "strings"

// FlagArg is one flag occurrence on the command line, as typed.
type FlagArg struct {
	Name  string
	Value any // true for "--name", the next token for "-name"
}

// Tokenize splits args into flags and positional arguments.
//
// The rules are applied left to right:
//   - "--name" is a boolean flag and maps name to true
//   - "-name value" is a value flag and maps name to the string value
//   - anything else, including a bare "-" or "--", is positional
//
// A bare "--" is never read as a value flag named "-".
//
// A value flag followed by a token starting with "-", or by nothing at all, is
// a *FlagSyntaxError. Repeated flags overwrite earlier ones. There is no way to
// pass a positional argument that starts with "-".
func Tokenize(args []string) (map[string]any, []string, error) {
	occurrences, positionals, err := Scan(args)
	if err != nil {
		return nil, nil, err
	}
	flags := make(map[string]any, len(occurrences))
	for _, f := range occurrences {
		flags[f.Name] = f.Value
	}
	return flags, positionals, nil
}

// Scan is like Tokenize but returns every flag occurrence in command-line
// order, so a later spelling of a flag can override an earlier alias.
func Scan(args []string) ([]FlagArg, []string, error) {
	var flags []FlagArg
	positionals := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "--") && len(arg) > 2 {
			flags = append(flags, FlagArg{Name: arg[2:], Value: true})
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 && arg != "--" {
			if i+1 >= len(args) {
				return nil, nil, &FlagSyntaxError{Flag: arg, EOF: true}
			}
			next := args[i+1]
			if strings.HasPrefix(next, "-") {
				return nil, nil, &FlagSyntaxError{Flag: arg}
			}
			flags = append(flags, FlagArg{Name: arg[1:], Value: next})
			i++ // value consumed
			continue
		}

		positionals = append(positionals, arg)
	}

	return flags, positionals, nil
}
