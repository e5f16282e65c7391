package transforms

import (
	"compiler/internal/opkind"
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// OrderingCommutativityOps normalizes the operand order of a commutative
// ArithBinary (AddI/AddF/MulI/MulF) or LogicBinary (And/Or/Equal/
// NotEqual) using a stable rank: FunctionCall results sort first (ties
// broken by callee name), everything else (Load results and any other
// producer) sorts next, Constants sort last. Operands already tied on
// rank (e.g. two Loads) are left in place rather than ordered by an
// arbitrary identity comparison — a deterministic simplification, since
// nothing observable distinguishes them once ranked equal.
func OrderingCommutativityOps() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.ArithBinaryId, optree.LogicBinaryId)
	return optimizer.NewSimple("OrderingCommutativityOps", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		if !isCommutative(op) {
			return
		}
		bin, _ := optree.AsBinaryOp(op)
		lhs, rhs := bin.Lhs(), bin.Rhs()
		if !shouldSwap(lhs, rhs) {
			return
		}
		b.Update(op, func() {
			op.SetOperand(0, rhs)
			op.SetOperand(1, lhs)
		})
	})
}

func isCommutative(op *optree.Operation) bool {
	if a, ok := optree.AsArithBinary(op); ok {
		switch a.Kind() {
		case opkind.AddI, opkind.AddF, opkind.MulI, opkind.MulF:
			return true
		}
		return false
	}
	if l, ok := optree.AsLogicBinary(op); ok {
		switch l.Kind() {
		case opkind.AndI, opkind.OrI, opkind.Equal, opkind.NotEqual:
			return true
		}
		return false
	}
	return false
}

// rankOf assigns the stable ordering priority described above: lower
// ranks sort toward the lhs position.
func rankOf(v *optree.Value) int {
	switch {
	case v.Owner != nil && v.Owner.Is(optree.ConstantId):
		return 2
	case v.Owner != nil && v.Owner.Is(optree.FunctionCallId):
		return 0
	default:
		return 1
	}
}

func shouldSwap(lhs, rhs *optree.Value) bool {
	lr, rr := rankOf(lhs), rankOf(rhs)
	if lr != rr {
		return lr > rr
	}
	if lr == 0 {
		lc, _ := optree.AsFunctionCall(lhs.Owner)
		rc, _ := optree.AsFunctionCall(rhs.Owner)
		return lc.Name() > rc.Name()
	}
	return false
}
