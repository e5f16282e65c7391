// Package attribute implements the tagged-union payload attached to
// operations: a by-value, variant type comparable by exact kind and
// payload. The reference implementation's operator bool() reports true
// when an attribute is *empty*; this port exposes that check as the
// named method Empty, so callers write `if attr.Empty() { ... }`
// explicitly rather than relying on a surprising bool conversion.
package attribute

import (
	"fmt"

	"compiler/internal/opkind"
	"compiler/internal/types"
)

// Variant tags which payload an Attribute currently holds.
type Variant int

const (
	Empty Variant = iota
	NativeInt
	NativeBool
	NativeFloat
	NativeString
	TypeRef
	ArithBinaryKind
	ArithCastKind
	LogicBinaryKind
	LogicUnaryKind
)

// Attribute is a by-value tagged union. The zero value is Empty.
type Attribute struct {
	variant Variant
	i       int64
	b       bool
	f       float64
	s       string
	t       *types.Type
	abk     opkind.ArithBinary
	ack     opkind.ArithCast
	lbk     opkind.LogicBinary
	luk     opkind.LogicUnary
}

// Variant reports which payload kind this attribute currently holds.
func (a Attribute) Variant() Variant { return a.variant }

// Empty reports whether the attribute holds no payload.
func (a Attribute) Empty() bool { return a.variant == Empty }

func Int(v int64) Attribute           { return Attribute{variant: NativeInt, i: v} }
func Bool(v bool) Attribute           { return Attribute{variant: NativeBool, b: v} }
func Float(v float64) Attribute       { return Attribute{variant: NativeFloat, f: v} }
func String(v string) Attribute       { return Attribute{variant: NativeString, s: v} }
func TypeValue(v *types.Type) Attribute { return Attribute{variant: TypeRef, t: v} }

func ArithBinaryOf(k opkind.ArithBinary) Attribute { return Attribute{variant: ArithBinaryKind, abk: k} }
func ArithCastOf(k opkind.ArithCast) Attribute     { return Attribute{variant: ArithCastKind, ack: k} }
func LogicBinaryOf(k opkind.LogicBinary) Attribute { return Attribute{variant: LogicBinaryKind, lbk: k} }
func LogicUnaryOf(k opkind.LogicUnary) Attribute   { return Attribute{variant: LogicUnaryKind, luk: k} }

// Is reports whether the attribute holds the payload kind named by v,
// e.g. a.Is(NativeInt).
func (a Attribute) Is(v Variant) bool { return a.variant == v }

func (a Attribute) AsInt() int64                   { return a.i }
func (a Attribute) AsBool() bool                   { return a.b }
func (a Attribute) AsFloat() float64                { return a.f }
func (a Attribute) AsString() string                { return a.s }
func (a Attribute) AsType() *types.Type             { return a.t }
func (a Attribute) AsArithBinary() opkind.ArithBinary { return a.abk }
func (a Attribute) AsArithCast() opkind.ArithCast     { return a.ack }
func (a Attribute) AsLogicBinary() opkind.LogicBinary { return a.lbk }
func (a Attribute) AsLogicUnary() opkind.LogicUnary   { return a.luk }

// CanHold reports whether this attribute's variant could be narrowed to
// the result type t when used as a Constant payload (see semantizer
// Constant rule: int<->NativeInt, bool<->NativeBool, float<->NativeFloat,
// str<->NativeString).
func (a Attribute) CanHold(t *types.Type) bool {
	switch a.variant {
	case NativeInt:
		return t != nil && t.Kind() == types.KindInteger
	case NativeBool:
		return t != nil && t.Kind() == types.KindBool
	case NativeFloat:
		return t != nil && t.Kind() == types.KindFloat
	case NativeString:
		return t != nil && t.Kind() == types.KindStr
	default:
		return false
	}
}

// Equal compares two attributes by exact variant and payload.
func (a Attribute) Equal(other Attribute) bool {
	if a.variant != other.variant {
		return false
	}
	switch a.variant {
	case Empty:
		return true
	case NativeInt:
		return a.i == other.i
	case NativeBool:
		return a.b == other.b
	case NativeFloat:
		return a.f == other.f
	case NativeString:
		return a.s == other.s
	case TypeRef:
		return a.t.Equal(other.t)
	case ArithBinaryKind:
		return a.abk == other.abk
	case ArithCastKind:
		return a.ack == other.ack
	case LogicBinaryKind:
		return a.lbk == other.lbk
	case LogicUnaryKind:
		return a.luk == other.luk
	default:
		return false
	}
}

// Less provides a total, stable ordering over attribute payloads.
// Attributes of different variants order by variant tag first.
func (a Attribute) Less(other Attribute) bool {
	if a.variant != other.variant {
		return a.variant < other.variant
	}
	switch a.variant {
	case NativeInt:
		return a.i < other.i
	case NativeBool:
		return !a.b && other.b
	case NativeFloat:
		return a.f < other.f
	case NativeString:
		return a.s < other.s
	default:
		return false
	}
}

// String renders the dump form used by the operation-tree textual dump:
// `<kind> : <value>`.
func (a Attribute) String() string {
	switch a.variant {
	case Empty:
		return "empty"
	case NativeInt:
		return fmt.Sprintf("int : %d", a.i)
	case NativeBool:
		return fmt.Sprintf("bool : %t", a.b)
	case NativeFloat:
		return fmt.Sprintf("float : %g", a.f)
	case NativeString:
		return fmt.Sprintf("string : %q", a.s)
	case TypeRef:
		return fmt.Sprintf("type : %s", a.t.String())
	case ArithBinaryKind:
		return fmt.Sprintf("arith-binary : %s", a.abk)
	case ArithCastKind:
		return fmt.Sprintf("arith-cast : %s", a.ack)
	case LogicBinaryKind:
		return fmt.Sprintf("logic-binary : %s", a.lbk)
	case LogicUnaryKind:
		return fmt.Sprintf("logic-unary : %s", a.luk)
	default:
		return "?"
	}
}
