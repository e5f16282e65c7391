// Package semantizer implements the operation-tree verifier: a dispatch
// over each operation's concrete adaptor, composed from reusable traits
// that each append a diagnostic to a shared error buffer on failure.
package semantizer

import (
	"fmt"

	"compiler/internal/optree"
)

// Error is a single verification failure, naming the offending operation.
type Error struct {
	Op      *optree.Operation
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op.Name, e.Message)
}

// ErrorBuffer accumulates Errors across one verification pass.
type ErrorBuffer struct {
	errors []Error
}

func (b *ErrorBuffer) Empty() bool { return len(b.errors) == 0 }

func (b *ErrorBuffer) Errors() []Error { return b.errors }

// Error renders every accumulated diagnostic as one multi-line message,
// matching the "single multi-line diagnostic" user-visible failure mode
// (spec §7).
func (b *ErrorBuffer) Error() string {
	s := ""
	for i, e := range b.errors {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

// Context carries verification state across one Process call: the error
// buffer, and a registry of functions verified so far so that
// FunctionCalls visited after their callee can resolve it.
type Context struct {
	Buffer    ErrorBuffer
	functions map[string]optree.FunctionOp
}

// NewContext creates an empty verification context.
func NewContext() *Context {
	return &Context{functions: map[string]optree.FunctionOp{}}
}

// RegisterFunction records fn under its own name so FunctionCalls visited
// later in the walk can resolve it; a call visited before its callee's
// Function is reported as a call to an undefined function.
func (c *Context) RegisterFunction(fn optree.FunctionOp) {
	c.functions[fn.FuncName()] = fn
}

// FindFunction looks up a previously registered function by name.
func (c *Context) FindFunction(name string) (optree.FunctionOp, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

// pushError appends a bare message with no offending operation — used
// only for truly op-less invariant checks; PushOpError is the common
// case.
func (c *Context) pushError(msg string) {
	c.Buffer.errors = append(c.Buffer.errors, Error{Message: msg})
}

// PushOpError appends a diagnostic naming op, mirroring the reference
// implementation's pushOpError, which prefixes the message with the
// op's name.
func (c *Context) PushOpError(op *optree.Operation, format string, args ...any) {
	c.Buffer.errors = append(c.Buffer.errors, Error{Op: op, Message: fmt.Sprintf(format, args...)})
}
