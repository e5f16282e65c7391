// Package logging configures the ambient structured logger used across
// the compiler, built on github.com/tliron/commonlog the same way the
// reference CLI/LSP entry points do.
package logging

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("compiler")

// Configure wires up commonlog at the given verbosity (0 = quiet,
// increasing values add more detail), matching the one-line setup the
// reference LSP entry point performs at process start.
func Configure(verbosity int) {
	commonlog.Configure(verbosity, nil)
}

// Debugf logs a per-transform trace line, the Go analogue of the
// reference optimizer's COMPILER_DEBUG macro around each transform
// invocation.
func Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// Errorf logs an unrecoverable internal error (never user-facing; see
// the Optimizer-errors taxonomy — these are logic bugs, not compiler
// diagnostics).
func Errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
