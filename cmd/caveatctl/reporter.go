package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// reporter prints pass/fail status for caveat checks, colorizing when
// the destination is a terminal -- the same auto-detect-then-colorize
// shape as the teacher's annotation output formatter.
type reporter struct {
	useColor bool
	w        io.Writer
}

func newReporter(w io.Writer) *reporter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f.Fd())
	}
	return &reporter{useColor: useColor, w: w}
}

func (r *reporter) colorize(text string, attr color.Attribute) string {
	if !r.useColor {
		return text
	}
	return color.New(attr).Sprint(text)
}

func (r *reporter) ok(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "%s %s\n", r.colorize("✓", color.FgGreen), fmt.Sprintf(format, args...))
}

func (r *reporter) fail(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "%s %s\n", r.colorize("✗", color.FgRed), fmt.Sprintf(format, args...))
}

func (r *reporter) warn(format string, args ...interface{}) {
	fmt.Fprintf(r.w, "%s %s\n", r.colorize("⚠", color.FgYellow), fmt.Sprintf(format, args...))
}

// isTerminal is a simplified terminal check: stdout/stderr are treated
// as terminals, matching the teacher's annotation formatter rather than
// pulling in a dedicated terminal-detection dependency for one check.
func isTerminal(fd uintptr) bool {
	return fd == uintptr(1) || fd == uintptr(2)
}
