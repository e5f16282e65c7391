package optree

import (
	"compiler/internal/attribute"
	"compiler/internal/types"
)

// SpecId uniquely tags an adaptor kind for fast is/as checks. A handful
// of ids (marked "abstract" below) never appear as an Operation's own
// SpecId; they only appear in ancestor lists so that Is reports true for
// every concrete kind that specializes them, giving the transitive
// `ArithBinaryOp ⊂ BinaryOp ⊂ Adaptor` inheritance the operation tree
// relies on (e.g. OrderingCommutativityOps reads operands via AsBinaryOp).
type SpecId int

const (
	ModuleId SpecId = iota
	FunctionId
	FunctionCallId
	ReturnId
	ConstantId
	ArithBinaryId
	LogicBinaryId
	ArithCastId
	LogicUnaryId
	AllocateId
	LoadId
	StoreId
	IfId
	ThenId
	ElseId
	WhileId
	ConditionId
	ForId
	InputId
	PrintId

	// BinaryOpId is abstract: the common ancestor of ArithBinary and
	// LogicBinary, both of which are two-operand/one-result operations.
	BinaryOpId
)

func (id SpecId) String() string {
	names := [...]string{
		"Module", "Function", "FunctionCall", "Return", "Constant",
		"ArithBinary", "LogicBinary", "ArithCast", "LogicUnary",
		"Allocate", "Load", "Store", "If", "Then", "Else", "While",
		"Condition", "For", "Input", "Print", "BinaryOp",
	}
	if int(id) < 0 || int(id) >= len(names) {
		return "?"
	}
	return names[id]
}

// ancestors maps each concrete SpecId to the set of ids `Is` should
// report true for, including itself.
var ancestors = map[SpecId][]SpecId{
	ModuleId:       {ModuleId},
	FunctionId:     {FunctionId},
	FunctionCallId: {FunctionCallId},
	ReturnId:       {ReturnId},
	ConstantId:     {ConstantId},
	ArithBinaryId:  {ArithBinaryId, BinaryOpId},
	LogicBinaryId:  {LogicBinaryId, BinaryOpId},
	ArithCastId:    {ArithCastId},
	LogicUnaryId:   {LogicUnaryId},
	AllocateId:     {AllocateId},
	LoadId:         {LoadId},
	StoreId:        {StoreId},
	IfId:           {IfId},
	ThenId:         {ThenId},
	ElseId:         {ElseId},
	WhileId:        {WhileId},
	ConditionId:    {ConditionId},
	ForId:          {ForId},
	InputId:        {InputId},
	PrintId:        {PrintId},
}

// Operation is the generic IR node. Adaptors (adaptors.go) are typed
// views over an *Operation selected by SpecId.
type Operation struct {
	Name       string // stable mnemonic, e.g. "Constant", "If"
	SpecId     SpecId
	Operands   []*Value
	Results    []*Value
	Inwards    []*Value
	Attributes []attribute.Attribute
	Body       []*Operation
	Parent     *Operation

	// position is this operation's index within Parent.Body; -1 when
	// detached. Operation.Position() surfaces it; addToBody/erase keep
	// it current, standing in for the reference implementation's body
	// position iterator.
	position int
}

// New allocates a detached operation of the given name/spec-id with no
// operands/results/inwards/attributes/body yet.
func New(name string, id SpecId) *Operation {
	return &Operation{Name: name, SpecId: id, position: -1}
}

// Is reports whether o's spec-id transitively matches id (including
// abstract ancestor ids such as BinaryOpId).
func (o *Operation) Is(id SpecId) bool {
	if o == nil {
		return false
	}
	for _, a := range ancestors[o.SpecId] {
		if a == id {
			return true
		}
	}
	return false
}

// Position reports this operation's index within its parent's body, or
// -1 if detached.
func (o *Operation) Position() int { return o.position }

// AddOperand appends v to o's operand list and installs a use {o, k} on
// v, where k is the new operand's index.
func (o *Operation) AddOperand(v *Value) {
	idx := len(o.Operands)
	o.Operands = append(o.Operands, v)
	v.addUse(o, idx)
}

// Operand returns the operand at index k.
func (o *Operation) Operand(k int) *Value { return o.Operands[k] }

// SetOperand replaces the operand at index k with v, removing the use on
// the previous value and installing one on v.
func (o *Operation) SetOperand(k int, v *Value) {
	old := o.Operands[k]
	if old != nil {
		old.removeUse(o, k)
	}
	o.Operands[k] = v
	v.addUse(o, k)
}

// EraseOperand removes the use entry {o, k} from the referenced value's
// use-list, then compacts the operand list, renumbering the uses of
// operands that shifted down into a lower index.
func (o *Operation) EraseOperand(k int) {
	v := o.Operands[k]
	v.removeUse(o, k)
	for _, later := range o.Operands[k+1:] {
		later.renumberUsesAbove(o, k)
	}
	o.Operands = append(o.Operands[:k], o.Operands[k+1:]...)
}

// AddResult creates and returns a new value of type t, owned by o.
func (o *Operation) AddResult(t *types.Type) *Value {
	v := &Value{Type: t, Owner: o}
	o.Results = append(o.Results, v)
	return v
}

// AddInward creates and returns a new block-argument value of type t,
// owned by o.
func (o *Operation) AddInward(t *types.Type) *Value {
	v := &Value{Type: t, Owner: o}
	o.Inwards = append(o.Inwards, v)
	return v
}

// Result returns the i'th result value.
func (o *Operation) Result(i int) *Value { return o.Results[i] }

// Inward returns the i'th inward value.
func (o *Operation) Inward(i int) *Value { return o.Inwards[i] }

// Attr returns the attribute at index i.
func (o *Operation) Attr(i int) attribute.Attribute { return o.Attributes[i] }

// AddToBody appends child to o's body, setting child's Parent and
// position.
func (o *Operation) AddToBody(child *Operation) {
	child.Parent = o
	child.position = len(o.Body)
	o.Body = append(o.Body, child)
}

// InsertIntoBody inserts child into o's body at index pos, shifting
// later children's positions and re-parenting child.
func (o *Operation) InsertIntoBody(pos int, child *Operation) {
	o.Body = append(o.Body, nil)
	copy(o.Body[pos+1:], o.Body[pos:])
	o.Body[pos] = child
	child.Parent = o
	for i := pos; i < len(o.Body); i++ {
		o.Body[i].position = i
	}
}

// removeFromBody detaches child from o's body, shifting later children's
// positions down, and clears child.Parent and child.position (-1).
func (o *Operation) removeFromBody(child *Operation) {
	idx := child.position
	o.Body = append(o.Body[:idx], o.Body[idx+1:]...)
	for i := idx; i < len(o.Body); i++ {
		o.Body[i].position = i
	}
	child.Parent = nil
	child.position = -1
}

// HasLiveUses reports whether any result or inward of o still has a
// non-empty use-list.
func (o *Operation) HasLiveUses() bool {
	for _, v := range o.Results {
		if !v.Unused() {
			return true
		}
	}
	for _, v := range o.Inwards {
		if !v.Unused() {
			return true
		}
	}
	return false
}

// Erase recursively erases o's body in reverse order, then erases o
// itself. It panics if any result or inward still has a non-empty
// use-list, mirroring the reference implementation's assertion (an
// internal invariant violation, never a user-facing error — see spec's
// Optimizer-errors taxonomy).
func (o *Operation) Erase() {
	for i := len(o.Body) - 1; i >= 0; i-- {
		o.Body[i].Erase()
	}
	o.EraseSelf()
}

// EraseSelf erases o alone: it assumes o's body is already empty (callers
// erasing recursively, such as OptBuilder, erase children first via this
// same method so they can notify per node). It panics on live result/
// inward uses and detaches o from its parent.
func (o *Operation) EraseSelf() {
	if o.HasLiveUses() {
		panic("optree: erasing operation " + o.Name + " with live result/inward uses")
	}
	for k := range o.Operands {
		o.Operands[k].removeUse(o, k)
	}
	if o.Parent != nil {
		o.Parent.removeFromBody(o)
	}
}

// FindParent walks o's ancestors and returns the nearest one whose
// spec-id transitively matches id, or nil.
func (o *Operation) FindParent(id SpecId) *Operation {
	for p := o.Parent; p != nil; p = p.Parent {
		if p.Is(id) {
			return p
		}
	}
	return nil
}

// Clone performs a deep, recursive copy of o and its body. Operands are
// NOT rewired to the clone's own results: they still reference the
// original operands' values (matching the reference implementation,
// which leaves use-rewiring to the caller — e.g. the transforms follow
// OptBuilder.Clone with Replace, which moves uses of the original's
// results onto the clone's results).
func (o *Operation) Clone() *Operation {
	c := &Operation{
		Name:       o.Name,
		SpecId:     o.SpecId,
		Attributes: append([]attribute.Attribute(nil), o.Attributes...),
		position:   -1,
	}
	for _, v := range o.Results {
		c.AddResult(v.Type)
	}
	for _, v := range o.Inwards {
		c.AddInward(v.Type)
	}
	for _, v := range o.Operands {
		c.AddOperand(v)
	}
	for _, child := range o.Body {
		c.AddToBody(child.Clone())
	}
	return c
}
