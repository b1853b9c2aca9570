// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter prints user-facing warnings and errors.
type Reporter struct {
	w    io.Writer
	warn *color.Color
	err  *color.Color
}

// NewReporter returns a Reporter writing to w. Output is colored only when w
// is a terminal and neither NO_COLOR nor a dumb TERM is set.
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{
		w:    w,
		warn: color.New(color.FgYellow),
		err:  color.New(color.FgRed, color.Bold),
	}
	if !ColorEnabled(w) {
		r.warn.DisableColor()
		r.err.DisableColor()
	} else {
		r.warn.EnableColor()
		r.err.EnableColor()
	}
	return r
}

// ColorEnabled reports whether escape codes should be written to w.
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if t := os.Getenv("TERM"); t == "" || t == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Warnf prints a warning line.
func (r *Reporter) Warnf(format string, args ...any) {
	r.line(r.warn, "warning: ", format, args...)
}

// Errorf prints an error line.
func (r *Reporter) Errorf(format string, args ...any) {
	r.line(r.err, "error: ", format, args...)
}

// Logf is a logger.Logf that prints diagnostics as warnings.
func (r *Reporter) Logf(format string, args ...any) {
	r.Warnf(format, args...)
}

func (r *Reporter) line(c *color.Color, prefix, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	c.Fprint(r.w, prefix)
	fmt.Fprintln(r.w, msg)
}
