package transforms

import (
	"compiler/internal/attribute"
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// FoldControlFlowOps resolves an If whose condition is a boolean
// Constant by hoisting the taken branch's body in place of the If, and
// erases a While whose Condition terminator is a Constant(false) — a
// While with a statically-true or undetermined condition is left alone,
// since it cannot be proven to terminate.
func FoldControlFlowOps() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.IfId, optree.WhileId)
	return optimizer.NewSimple("FoldControlFlowOps", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		switch {
		case op.Is(optree.IfId):
			foldIf(op, b)
		case op.Is(optree.WhileId):
			foldWhile(op, b)
		}
	})
}

func foldIf(op *optree.Operation, b *optimizer.OptBuilder) {
	ifOp, _ := optree.AsIf(op)
	c, ok := optree.AsConstant(ifOp.Cond().Owner)
	if !ok || !c.Value().Is(attribute.NativeBool) {
		return
	}
	var branch *optree.Operation
	if c.Value().AsBool() {
		branch = ifOp.ThenOp()
	} else {
		branch = ifOp.ElseOp()
	}
	if branch != nil {
		hoistBody(branch, b)
	}
	b.Erase(op)
}

func foldWhile(op *optree.Operation, b *optimizer.OptBuilder) {
	w, _ := optree.AsWhile(op)
	cond, ok := w.ConditionOp()
	if !ok {
		return
	}
	term := cond.Terminator()
	if term == nil {
		return
	}
	c, ok := optree.AsConstant(term)
	if !ok || !c.Value().Is(attribute.NativeBool) || c.Value().AsBool() {
		return
	}
	b.Erase(op)
}

// hoistBody clones every child of branch, one at a time, replacing the
// original with the clone at the builder's current cursor (which the
// driver has already positioned immediately before the enclosing If or
// While), then advances past it — moving the branch's statements out to
// the level of the control-flow op they used to be nested under.
// Children are processed in body order so that an operand referencing an
// earlier sibling observes that sibling's already-hoisted replacement.
func hoistBody(branch *optree.Operation, b *optimizer.OptBuilder) {
	children := append([]*optree.Operation(nil), branch.Body...)
	for _, child := range children {
		clone := b.Clone(child)
		b.Replace(child, clone)
		b.SetInsertPointAfter(clone)
	}
}
