package converter

import (
	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/optree"
	"compiler/internal/types"
)

func attributeInt(v int64) attribute.Attribute    { return attribute.Int(v) }
func attributeBool(v bool) attribute.Attribute    { return attribute.Bool(v) }
func attributeFloat(v float64) attribute.Attribute { return attribute.Float(v) }
func attributeString(v string) attribute.Attribute { return attribute.String(v) }

// zeroAttributeFor returns the zero-value literal attribute used as the
// left operand of a negation lowered to `0 - x`.
func zeroAttributeFor(t *types.Type) attribute.Attribute {
	if t.Kind() == types.KindFloat {
		return attribute.Float(0)
	}
	return attribute.Int(0)
}

// deduceTargetCastType picks the type both operands of a binary
// operator should be cast toward (§4.3.1): in an assignment, always the
// lhs pointee; otherwise the wider of the two when same family, or the
// float type when families differ.
func deduceTargetCastType(outType, inType *types.Type, isAssignment bool) *types.Type {
	if isAssignment {
		return outType
	}
	if outType.Equal(inType) {
		return inType
	}
	fromInt := inType.Kind() == types.KindInteger
	fromFloat := inType.Kind() == types.KindFloat
	toInt := outType.Kind() == types.KindInteger
	toFloat := outType.Kind() == types.KindFloat
	isExt := inType.Width() < outType.Width()
	switch {
	case fromFloat && toInt:
		return inType
	case fromInt && toFloat:
		return outType
	case (fromFloat && toFloat) || (fromInt && toInt):
		if isExt {
			return outType
		}
		return inType
	default:
		return outType
	}
}

// insertNumericCast emits an ArithCast turning value into resultType, or
// returns nil if value is already that type or the conversion isn't a
// numeric int/float pair.
func insertNumericCast(resultType *types.Type, value *optree.Value, ctx *context) *optree.Value {
	inType := value.Type
	if inType.Equal(resultType) {
		return nil
	}
	fromInt := inType.Kind() == types.KindInteger
	fromFloat := inType.Kind() == types.KindFloat
	toInt := resultType.Kind() == types.KindInteger
	toFloat := resultType.Kind() == types.KindFloat
	isExt := inType.Width() < resultType.Width()

	var kind opkind.ArithCast
	switch {
	case fromInt && toInt:
		kind = opkind.ExtI
		if !isExt {
			kind = opkind.TruncI
		}
	case fromFloat && toFloat:
		kind = opkind.ExtF
		if !isExt {
			kind = opkind.TruncF
		}
	case fromInt && toFloat:
		kind = opkind.IntToFloat
	case fromFloat && toInt:
		kind = opkind.FloatToInt
	default:
		return nil
	}
	return ctx.insert(optree.NewArithCast(kind, value, resultType)).Result(0)
}
