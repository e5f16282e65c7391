package semantizer

import (
	"compiler/internal/attribute"
	"compiler/internal/optree"
	"compiler/internal/types"
)

// Verifier accumulates the boolean result of a chain of trait checks
// against one operation, short-circuiting once any check has failed —
// the Go analogue of the reference implementation's TraitVerifier.
type Verifier struct {
	op  *optree.Operation
	ctx *Context
	ok  bool
}

// NewVerifier starts a trait chain for op.
func NewVerifier(op *optree.Operation, ctx *Context) *Verifier {
	return &Verifier{op: op, ctx: ctx, ok: true}
}

// Verified reports whether every trait checked so far has passed.
func (v *Verifier) Verified() bool { return v.ok }

// Fail unconditionally marks the chain failed, returning the new state —
// used by per-adaptor rules for checks too specific to express as a
// reusable trait.
func (v *Verifier) Fail() bool {
	v.ok = false
	return v.ok
}

// HasOperands requires exactly n operands.
func (v *Verifier) HasOperands(n int) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Operands) != n {
		v.ctx.PushOpError(v.op, "must have %d operand(s), has %d", n, len(v.op.Operands))
		v.ok = false
	}
	return v
}

// HasOperandsOfType requires exactly n operands, all of type t.
func (v *Verifier) HasOperandsOfType(n int, t *types.Type) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Operands) != n {
		v.ctx.PushOpError(v.op, "must have %d operand(s), has %d", n, len(v.op.Operands))
		v.ok = false
		return v
	}
	for _, o := range v.op.Operands {
		if !o.HasType(t) {
			v.ctx.PushOpError(v.op, "operand must have type %s, has %s", t, o.Type)
			v.ok = false
		}
	}
	return v
}

// HasResults requires exactly n results.
func (v *Verifier) HasResults(n int) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Results) != n {
		v.ctx.PushOpError(v.op, "must have %d result(s), has %d", n, len(v.op.Results))
		v.ok = false
	}
	return v
}

// HasResultOfType requires exactly one result, of type t.
func (v *Verifier) HasResultOfType(t *types.Type) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Results) != 1 {
		v.ctx.PushOpError(v.op, "must have exactly one result, has %d", len(v.op.Results))
		v.ok = false
		return v
	}
	if !v.op.Results[0].HasType(t) {
		v.ctx.PushOpError(v.op, "result must have type %s, has %s", t, v.op.Results[0].Type)
		v.ok = false
	}
	return v
}

// HasInwards requires exactly n inwards.
func (v *Verifier) HasInwards(n int) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Inwards) != n {
		v.ctx.PushOpError(v.op, "must have %d inward(s), has %d", n, len(v.op.Inwards))
		v.ok = false
	}
	return v
}

// HasInwardsOfType requires exactly n inwards, all of type t.
func (v *Verifier) HasInwardsOfType(n int, t *types.Type) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Inwards) != n {
		v.ctx.PushOpError(v.op, "must have %d inward(s), has %d", n, len(v.op.Inwards))
		v.ok = false
		return v
	}
	for _, iw := range v.op.Inwards {
		if !iw.HasType(t) {
			v.ctx.PushOpError(v.op, "inward must have type %s, has %s", t, iw.Type)
			v.ok = false
		}
	}
	return v
}

// HasAttributes requires exactly n attributes.
func (v *Verifier) HasAttributes(n int) *Verifier {
	if !v.ok {
		return v
	}
	if len(v.op.Attributes) != n {
		v.ctx.PushOpError(v.op, "must have %d attribute(s), has %d", n, len(v.op.Attributes))
		v.ok = false
	}
	return v
}

// HasNthAttrOfType requires attribute index i to hold variant want.
func (v *Verifier) HasNthAttrOfType(i int, want attribute.Variant) *Verifier {
	if !v.ok {
		return v
	}
	if i >= len(v.op.Attributes) || !v.op.Attributes[i].Is(want) {
		v.ctx.PushOpError(v.op, "must have attribute #%d of other type", i)
		v.ok = false
	}
	return v
}
