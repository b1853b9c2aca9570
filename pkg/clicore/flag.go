// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clicore

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Flag declares a named modifier of a command. A Flag holds no per-call
// state; whether it was passed is recorded on the Context's FlagSet.
type Flag struct {
	Name        string
	Default     any
	Aliases     []string
	Description string
}

func validFlagIdent(s string) bool {
	return s != "" && !strings.HasPrefix(s, "-") && !strings.ContainsAny(s, " \t\n")
}

// FlagValue is the resolved value of a declared flag for one invocation.
type FlagValue struct {
	Value  any
	Passed bool // the user supplied the flag
}

// FlagSet is the per-invocation table of declared flags, keyed by canonical
// name. Undeclared flags never appear in it.
type FlagSet struct {
	values map[string]FlagValue
}

// Lookup returns the value of the named flag and whether it is declared.
func (s FlagSet) Lookup(name string) (any, bool) {
	v, ok := s.values[name]
	return v.Value, ok
}

// Get returns the value of the named flag, or nil.
func (s FlagSet) Get(name string) any {
	return s.values[name].Value
}

// Passed reports whether the named flag was supplied on the command line.
func (s FlagSet) Passed(name string) bool {
	return s.values[name].Passed
}

// String returns the named flag formatted as a string. Missing flags and nil
// defaults yield "".
func (s FlagSet) String(name string) string {
	switch v := s.Get(name).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Bool interprets the named flag as a boolean. Strings are parsed with
// strconv.ParseBool; anything unparseable is false.
func (s FlagSet) Bool(name string) bool {
	switch v := s.Get(name).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Int interprets the named flag as an int.
func (s FlagSet) Int(name string) (int, error) {
	switch v := s.Get(name).(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("flag %q: %w", name, err)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("flag %q: cannot use %T as int", name, v)
	}
}

// Names returns the canonical names in the set, sorted.
func (s FlagSet) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of declared flags in the set.
func (s FlagSet) Len() int { return len(s.values) }
