// Package optree implements the operation-tree SSA intermediate
// representation: typed values with use-lists, generic operation nodes
// carrying operands/results/inwards/attributes/body, and the adaptor
// catalogue of concrete operation kinds.
package optree

import "compiler/internal/types"

// Use is a back-reference recording that the operation User consumes a
// value at operand index OperandNumber. Use is itself non-owning: it
// never keeps the user alive, it only locates it.
type Use struct {
	User          *Operation
	OperandNumber int
}

// Value is a typed SSA value produced as exactly one result or inward of
// its Owner. Owner and the entries of Uses are non-owning back-references;
// the Operation that produced the value is the sole owner.
type Value struct {
	Type  *types.Type
	Owner *Operation
	Uses  []Use
}

// NewValue allocates a value of the given type with no owner yet. Callers
// that build values through Operation.AddResult/AddInward should prefer
// those, which also assign Owner.
func NewValue(t *types.Type) *Value {
	return &Value{Type: t}
}

// HasType reports whether the value's type equals t.
func (v *Value) HasType(t *types.Type) bool {
	return v.Type.Equal(t)
}

// SameType reports whether v and other share the same type.
func (v *Value) SameType(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.Type.Equal(other.Type)
}

// addUse records that user consumes v at operandNumber.
func (v *Value) addUse(user *Operation, operandNumber int) {
	v.Uses = append(v.Uses, Use{User: user, OperandNumber: operandNumber})
}

// removeUse deletes the use entry matching {user, operandNumber}, if any.
func (v *Value) removeUse(user *Operation, operandNumber int) {
	for i, u := range v.Uses {
		if u.User == user && u.OperandNumber == operandNumber {
			v.Uses = append(v.Uses[:i], v.Uses[i+1:]...)
			return
		}
	}
}

// renumberUsesAbove decrements OperandNumber for every use of v recorded
// against user at an index greater than erased, compacting the index
// space after an operand is removed from user's operand list.
func (v *Value) renumberUsesAbove(user *Operation, erased int) {
	for i := range v.Uses {
		if v.Uses[i].User == user && v.Uses[i].OperandNumber > erased {
			v.Uses[i].OperandNumber--
		}
	}
}

// Unused reports whether v has no recorded uses; erasing the owning
// operation is only permitted when every result/inward is unused.
func (v *Value) Unused() bool {
	return len(v.Uses) == 0
}
