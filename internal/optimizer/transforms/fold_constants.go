// Package transforms implements the concrete rewrite rules that the
// optimizer's fixed-point driver applies: constant folding, dead-code
// elimination, control-flow simplification, boolean algebra, operand
// canonicalization, constant propagation, code motion and the
// whole-module unused-function sweep.
package transforms

import (
	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/optimizer"
	"compiler/internal/optree"
)

// FoldConstants replaces an ArithBinary/LogicBinary/ArithCast/LogicUnary
// whose operand(s) are all Constants with a single folded Constant.
// Integer division truncates toward zero; float arithmetic follows
// IEEE-754 double semantics (Go's float64).
func FoldConstants() optimizer.BaseTransform {
	gate := optimizer.KindGate(optree.ArithBinaryId, optree.LogicBinaryId, optree.ArithCastId, optree.LogicUnaryId)
	return optimizer.NewSimple("FoldConstants", gate, func(op *optree.Operation, b *optimizer.OptBuilder) {
		folded, ok := fold(op)
		if !ok {
			return
		}
		newOp := optree.NewConstant(op.Results[0].Type, folded)
		b.Insert(newOp)
		b.Replace(op, newOp)
	})
}

func fold(op *optree.Operation) (attribute.Attribute, bool) {
	switch {
	case op.Is(optree.ArithBinaryId):
		return foldArithBinary(op)
	case op.Is(optree.LogicBinaryId):
		return foldLogicBinary(op)
	case op.Is(optree.ArithCastId):
		return foldArithCast(op)
	case op.Is(optree.LogicUnaryId):
		return foldLogicUnary(op)
	}
	return attribute.Attribute{}, false
}

func constantOperand(v *optree.Value) (attribute.Attribute, bool) {
	c, ok := optree.AsConstant(v.Owner)
	if !ok {
		return attribute.Attribute{}, false
	}
	return c.Value(), true
}

func foldArithBinary(op *optree.Operation) (attribute.Attribute, bool) {
	a, _ := optree.AsArithBinary(op)
	lhs, ok := constantOperand(a.Lhs())
	if !ok {
		return attribute.Attribute{}, false
	}
	rhs, ok := constantOperand(a.Rhs())
	if !ok {
		return attribute.Attribute{}, false
	}
	if a.Kind().IsFloat() {
		x, y := lhs.AsFloat(), rhs.AsFloat()
		switch a.Kind() {
		case opkind.AddF:
			return attribute.Float(x + y), true
		case opkind.SubF:
			return attribute.Float(x - y), true
		case opkind.MulF:
			return attribute.Float(x * y), true
		case opkind.DivF:
			return attribute.Float(x / y), true
		}
		return attribute.Attribute{}, false
	}
	x, y := lhs.AsInt(), rhs.AsInt()
	switch a.Kind() {
	case opkind.AddI:
		return attribute.Int(x + y), true
	case opkind.SubI:
		return attribute.Int(x - y), true
	case opkind.MulI:
		return attribute.Int(x * y), true
	case opkind.DivI:
		if y == 0 {
			return attribute.Attribute{}, false
		}
		return attribute.Int(x / y), true // Go's / on signed ints truncates toward zero
	}
	return attribute.Attribute{}, false
}

func foldLogicBinary(op *optree.Operation) (attribute.Attribute, bool) {
	l, _ := optree.AsLogicBinary(op)
	lhs, ok := constantOperand(l.Lhs())
	if !ok {
		return attribute.Attribute{}, false
	}
	rhs, ok := constantOperand(l.Rhs())
	if !ok {
		return attribute.Attribute{}, false
	}
	switch l.Kind() {
	case opkind.Equal:
		return attribute.Bool(lhs.Equal(rhs)), true
	case opkind.NotEqual:
		return attribute.Bool(!lhs.Equal(rhs)), true
	case opkind.AndI:
		return attribute.Bool(lhs.AsBool() && rhs.AsBool()), true
	case opkind.OrI:
		return attribute.Bool(lhs.AsBool() || rhs.AsBool()), true
	case opkind.LessI:
		return attribute.Bool(lhs.AsInt() < rhs.AsInt()), true
	case opkind.GreaterI:
		return attribute.Bool(lhs.AsInt() > rhs.AsInt()), true
	case opkind.LessEqualI:
		return attribute.Bool(lhs.AsInt() <= rhs.AsInt()), true
	case opkind.GreaterEqualI:
		return attribute.Bool(lhs.AsInt() >= rhs.AsInt()), true
	case opkind.LessF:
		return attribute.Bool(lhs.AsFloat() < rhs.AsFloat()), true
	case opkind.GreaterF:
		return attribute.Bool(lhs.AsFloat() > rhs.AsFloat()), true
	case opkind.LessEqualF:
		return attribute.Bool(lhs.AsFloat() <= rhs.AsFloat()), true
	case opkind.GreaterEqualF:
		return attribute.Bool(lhs.AsFloat() >= rhs.AsFloat()), true
	}
	return attribute.Attribute{}, false
}

func foldArithCast(op *optree.Operation) (attribute.Attribute, bool) {
	c, _ := optree.AsArithCast(op)
	in, ok := constantOperand(c.Operand())
	if !ok {
		return attribute.Attribute{}, false
	}
	switch c.Kind() {
	case opkind.IntToFloat:
		return attribute.Float(float64(in.AsInt())), true
	case opkind.FloatToInt:
		return attribute.Int(int64(in.AsFloat())), true
	case opkind.ExtI, opkind.TruncI:
		return attribute.Int(in.AsInt()), true
	case opkind.ExtF, opkind.TruncF:
		return attribute.Float(in.AsFloat()), true
	}
	return attribute.Attribute{}, false
}

func foldLogicUnary(op *optree.Operation) (attribute.Attribute, bool) {
	u, _ := optree.AsLogicUnary(op)
	in, ok := constantOperand(u.Operand())
	if !ok {
		return attribute.Attribute{}, false
	}
	return attribute.Bool(!in.AsBool()), true
}
