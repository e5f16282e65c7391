package transforms

import (
	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/optimizer"
	"compiler/internal/optree"
	"compiler/internal/types"
)

// MinimizeBoolExpression applies boolean algebra identities to a
// LogicBinary of kind And/Or/Equal/NotEqual: idempotence (x op x),
// complementation (x op ~x), and constant identity/annihilator (And/Or
// against a constant operand).
func MinimizeBoolExpression() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.LogicBinaryId)
	return optimizer.NewSimple("MinimizeBoolExpression", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		l, _ := optree.AsLogicBinary(op)
		kind := l.Kind()
		if kind != opkind.AndI && kind != opkind.OrI && kind != opkind.Equal && kind != opkind.NotEqual {
			return
		}
		lhs, rhs := l.Lhs(), l.Rhs()

		if lhs == rhs {
			switch kind {
			case opkind.AndI, opkind.OrI:
				replaceResultWithValue(op, lhs, b)
			case opkind.Equal:
				replaceWithBoolConstant(op, true, b)
			case opkind.NotEqual:
				replaceWithBoolConstant(op, false, b)
			}
			return
		}

		if isNotOf(lhs, rhs) || isNotOf(rhs, lhs) {
			switch kind {
			case opkind.AndI:
				replaceWithBoolConstant(op, false, b)
			case opkind.OrI:
				replaceWithBoolConstant(op, true, b)
			case opkind.Equal:
				replaceWithBoolConstant(op, false, b)
			case opkind.NotEqual:
				replaceWithBoolConstant(op, true, b)
			}
			return
		}

		if kind != opkind.AndI && kind != opkind.OrI {
			return
		}
		constSide, other, ok := constantOperandSide(lhs, rhs)
		if !ok {
			return
		}
		val := constSide.AsBool()
		switch kind {
		case opkind.AndI:
			if val {
				replaceResultWithValue(op, other, b)
			} else {
				replaceWithBoolConstant(op, false, b)
			}
		case opkind.OrI:
			if !val {
				replaceResultWithValue(op, other, b)
			} else {
				replaceWithBoolConstant(op, true, b)
			}
		}
	})
}

// isNotOf reports whether maybeNot is the result of LogicUnary(Not, other).
func isNotOf(maybeNot, other *optree.Value) bool {
	u, ok := optree.AsLogicUnary(maybeNot.Owner)
	if !ok || u.Kind() != opkind.Not {
		return false
	}
	return u.Operand() == other
}

func constantOperandSide(lhs, rhs *optree.Value) (attribute.Attribute, *optree.Value, bool) {
	if c, ok := optree.AsConstant(lhs.Owner); ok {
		return c.Value(), rhs, true
	}
	if c, ok := optree.AsConstant(rhs.Owner); ok {
		return c.Value(), lhs, true
	}
	return attribute.Attribute{}, nil, false
}

// replaceResultWithValue rewires every use of op's sole result directly
// to value (no new operation is created) and erases op.
func replaceResultWithValue(op *optree.Operation, value *optree.Value, b *optimizer.OptBuilder) {
	result := op.Results[0]
	uses := append([]optree.Use(nil), result.Uses...)
	for _, u := range uses {
		user, idx := u.User, u.OperandNumber
		b.Update(user, func() { user.SetOperand(idx, value) })
	}
	b.Erase(op)
}

func replaceWithBoolConstant(op *optree.Operation, val bool, b *optimizer.OptBuilder) {
	newOp := optree.NewConstant(types.Bool, attribute.Bool(val))
	b.Insert(newOp)
	b.Replace(op, newOp)
}
