package transforms

import (
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// JoinConditionsBranches collapses an If whose Then and Else are
// pairwise similar — same operation name, attributes equal element-wise,
// operand/inward/result types equal, and bodies recursively similar — by
// erasing the Else, hoisting the Then body out in place of the If, and
// erasing the If, since both branches compute the same observable
// effect regardless of which one would have run.
func JoinConditionsBranches() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.IfId)
	return optimizer.NewSimple("JoinConditionsBranches", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		ifOp, _ := optree.AsIf(op)
		then, els := ifOp.ThenOp(), ifOp.ElseOp()
		if then == nil || els == nil {
			return
		}
		if len(then.Body) != len(els.Body) {
			return
		}
		for i := range then.Body {
			if !bodiesSimilar(then.Body[i], els.Body[i]) {
				return
			}
		}
		b.Erase(els)
		b.SetInsertPointBefore(op)
		hoistBody(then, b)
		b.Erase(op)
	})
}

func bodiesSimilar(a, b *optree.Operation) bool {
	if a.Name != b.Name {
		return false
	}
	if len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for i := range a.Attributes {
		if !a.Attributes[i].Equal(b.Attributes[i]) {
			return false
		}
	}
	if !sameTypes(a.Operands, b.Operands) || !sameTypes(a.Inwards, b.Inwards) || !sameTypes(a.Results, b.Results) {
		return false
	}
	if len(a.Body) != len(b.Body) {
		return false
	}
	for i := range a.Body {
		if !bodiesSimilar(a.Body[i], b.Body[i]) {
			return false
		}
	}
	return true
}

func sameTypes(a, b []*optree.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Type.Equal(b[i].Type) {
			return false
		}
	}
	return true
}
