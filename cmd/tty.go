package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTTY reports whether stdout is a terminal, gating colored output the
// same way the teacher's internal/validation/formatters.go does.
func isTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
