// Package types implements the value-type lattice shared by the operation
// tree: none, bool, sized integers and floats, strings, pointers,
// functions and tuples. Types are immutable and compared structurally.
package types

import (
	"fmt"
	"strings"
)

// Kind tags the concrete shape of a Type.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindStr
	KindPointer
	KindFunction
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindPointer:
		return "pointer"
	case KindFunction:
		return "function"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Type is a canonical, immutable node of the type lattice. Instances for
// the common atomic kinds are shared (see storage.go); composite types
// (Pointer, Function, Tuple) are allocated per distinct shape but compare
// structurally, never by identity.
type Type struct {
	kind    Kind
	width   uint32 // Integer/Float/Str: bit width (Str: char width)
	pointee *Type
	args    []*Type
	result  *Type
	members []*Type
}

// Is reports whether t is exactly the kind named by the generic parameter.
// Bool and Integer are disjoint kinds in this port: unlike the reference
// implementation, BoolType does not inherit IntegerType, so is<Bool> never
// matches an Integer(8) and vice versa.
func Is[T any](t *Type) bool {
	if t == nil {
		return false
	}
	switch any(*new(T)).(type) {
	case noneTag:
		return t.kind == KindNone
	case boolTag:
		return t.kind == KindBool
	case integerTag:
		return t.kind == KindInteger
	case floatTag:
		return t.kind == KindFloat
	case strTag:
		return t.kind == KindStr
	case pointerTag:
		return t.kind == KindPointer
	case functionTag:
		return t.kind == KindFunction
	case tupleTag:
		return t.kind == KindTuple
	default:
		return false
	}
}

// tag markers used purely to select a branch in Is[T] without reflection.
type (
	noneTag     struct{}
	boolTag     struct{}
	integerTag  struct{}
	floatTag    struct{}
	strTag      struct{}
	pointerTag  struct{}
	functionTag struct{}
	tupleTag    struct{}
)

func (t *Type) Kind() Kind { return t.kind }

// Width returns the bit width for Integer/Float/Str (8 for Bool), or 0
// otherwise.
func (t *Type) Width() uint32 {
	if t == nil {
		return 0
	}
	return t.width
}

// Pointee returns the pointed-to type for Pointer, or nil otherwise.
func (t *Type) Pointee() *Type {
	if t == nil || t.kind != KindPointer {
		return nil
	}
	return t.pointee
}

// Args returns the argument types for Function, or nil otherwise.
func (t *Type) Args() []*Type {
	if t == nil || t.kind != KindFunction {
		return nil
	}
	return t.args
}

// Result returns the return type for Function, or nil otherwise.
func (t *Type) Result() *Type {
	if t == nil || t.kind != KindFunction {
		return nil
	}
	return t.result
}

// Members returns the element types for Tuple, or nil otherwise.
func (t *Type) Members() []*Type {
	if t == nil || t.kind != KindTuple {
		return nil
	}
	return t.members
}

// IsNumeric reports whether t is an Integer or a Float.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.kind == KindInteger || t.kind == KindFloat)
}

// Equal reports structural equality between two types.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindInteger, KindFloat, KindStr:
		return t.width == other.width
	case KindPointer:
		return t.pointee.Equal(other.pointee)
	case KindFunction:
		if !t.result.Equal(other.result) || len(t.args) != len(other.args) {
			return false
		}
		for i := range t.args {
			if !t.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	case KindTuple:
		if len(t.members) != len(other.members) {
			return false
		}
		for i := range t.members {
			if !t.members[i].Equal(other.members[i]) {
				return false
			}
		}
		return true
	default:
		return true // None, Bool: kind equality is sufficient
	}
}

// String renders the canonical printer form used by the operation-tree
// textual dump (none, int(w), float(w), str(w), ptr(inner), func((a, …) -> r)).
func (t *Type) String() string {
	if t == nil {
		return "none"
	}
	switch t.kind {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInteger:
		return fmt.Sprintf("int(%d)", t.width)
	case KindFloat:
		return fmt.Sprintf("float(%d)", t.width)
	case KindStr:
		return fmt.Sprintf("str(%d)", t.width)
	case KindPointer:
		return fmt.Sprintf("ptr(%s)", t.pointee.String())
	case KindFunction:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("func((%s) -> %s)", strings.Join(parts, ", "), t.result.String())
	case KindTuple:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return fmt.Sprintf("tuple(%s)", strings.Join(parts, ", "))
	default:
		return "?"
	}
}
