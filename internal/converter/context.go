package converter

import (
	"compiler/internal/builder"
	cerrors "compiler/internal/errors"
	"compiler/internal/optree"
	"compiler/internal/types"
)

// localVariable records the storage for one declared name: either a
// pointer that must be loaded on every r-value use (an ordinary
// declared variable), or a raw value that is used as-is (a function
// argument, which arrives as an inward rather than an Allocate'd slot).
type localVariable struct {
	value     *optree.Value
	needsLoad bool
}

// context carries everything the lowering passes thread through a
// single Convert call: the insertion cursor, the lexical scope stack,
// the forward-declared function return types, and the diagnostic
// buffer that accumulates every converter error before Convert raises
// them as one aggregate (spec §7).
type context struct {
	op        *optree.Operation
	builder   builder.Builder
	functions map[string]*types.Type
	scopes    []map[string]localVariable
	diags     cerrors.Buffer
}

// pushError appends a converter diagnostic at ref to the buffer; it
// does not stop the walk, matching spec §7's "accumulate then raise as
// one aggregate" propagation policy.
func (c *context) pushError(err cerrors.CompilerError) {
	c.diags.Push(err)
}

func newContext() *context {
	return &context{functions: map[string]*types.Type{}}
}

// goInto repositions the cursor to insert at the end of op's body and
// makes op the "current" operation for subsequent goParent calls.
func (c *context) goInto(op *optree.Operation) {
	c.op = op
	c.builder = builder.AtBodyEnd(op)
}

// goParent moves back to inserting at the end of the current op's
// parent's body. It is a no-op at the root.
func (c *context) goParent() {
	if c.op == nil || c.op.Parent == nil {
		return
	}
	c.goInto(c.op.Parent)
}

// insert attaches op at the cursor and advances past it.
func (c *context) insert(op *optree.Operation) *optree.Operation {
	return c.builder.Insert(op)
}

func (c *context) enterScope() {
	c.scopes = append(c.scopes, map[string]localVariable{})
}

func (c *context) exitScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *context) saveVariable(name string, value *optree.Value, needsLoad bool) {
	c.scopes[len(c.scopes)-1][name] = localVariable{value: value, needsLoad: needsLoad}
}

// findVariable searches every enclosing scope, innermost first.
func (c *context) findVariable(name string) (localVariable, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}
	return localVariable{}, false
}

// wouldBeRedeclaration reports whether name is already bound in the
// innermost scope (shadowing an outer scope is allowed; redeclaring
// within the same one is not).
func (c *context) wouldBeRedeclaration(name string) bool {
	_, ok := c.scopes[len(c.scopes)-1][name]
	return ok
}
