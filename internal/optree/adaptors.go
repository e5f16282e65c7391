package optree

import (
	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/types"
)

// Adaptor is the common base every typed façade embeds: direct access to
// the underlying generic Operation. Op.Is/Op.FindParent etc. are reached
// through it.
type Adaptor struct {
	Op *Operation
}

// As attempts to view op through adaptor type T, returning ok=false if
// op's spec-id does not transitively match T's. The concrete adaptor
// constructors below (AsFunction, AsConstant, …) are the idiomatic
// entry points; As is the generic one used by the semantizer dispatch
// and by helpers that only know a SpecId at runtime.
func As(op *Operation, id SpecId) (Adaptor, bool) {
	if op == nil || !op.Is(id) {
		return Adaptor{}, false
	}
	return Adaptor{Op: op}, true
}

// ModuleOp is the root operation of a program: no operands, results,
// inwards or attributes; its body holds FunctionOps.
type ModuleOp struct{ Adaptor }

func NewModule() *Operation {
	return New("Module", ModuleId)
}

func AsModule(op *Operation) (ModuleOp, bool) {
	a, ok := As(op, ModuleId)
	return ModuleOp{a}, ok
}

// FunctionOp carries its name and function type as attributes, one
// inward per declared argument, and its statements as body.
type FunctionOp struct{ Adaptor }

func NewFunction(name string, funcType *types.Type) *Operation {
	op := New("Function", FunctionId)
	op.Attributes = []attribute.Attribute{attribute.String(name), attribute.TypeValue(funcType)}
	for _, argT := range funcType.Args() {
		op.AddInward(argT)
	}
	return op
}

func AsFunction(op *Operation) (FunctionOp, bool) {
	a, ok := As(op, FunctionId)
	return FunctionOp{a}, ok
}

func (f FunctionOp) FuncName() string    { return f.Op.Attributes[0].AsString() }
func (f FunctionOp) FuncType() *types.Type { return f.Op.Attributes[1].AsType() }
func (f FunctionOp) ReturnType() *types.Type { return f.FuncType().Result() }
func (f FunctionOp) Args() []*Value      { return f.Op.Inwards }

// FunctionCallOp invokes a named function with evaluated arguments and
// produces one result of the callee's return type.
type FunctionCallOp struct{ Adaptor }

func NewFunctionCall(name string, args []*Value, resultType *types.Type) *Operation {
	op := New("FunctionCall", FunctionCallId)
	op.Attributes = []attribute.Attribute{attribute.String(name)}
	for _, a := range args {
		op.AddOperand(a)
	}
	op.AddResult(resultType)
	return op
}

func AsFunctionCall(op *Operation) (FunctionCallOp, bool) {
	a, ok := As(op, FunctionCallId)
	return FunctionCallOp{a}, ok
}

func (f FunctionCallOp) Name() string { return f.Op.Attributes[0].AsString() }

// ReturnOp ends a function, optionally carrying one value.
type ReturnOp struct{ Adaptor }

func NewReturn(value *Value) *Operation {
	op := New("Return", ReturnId)
	if value != nil {
		op.AddOperand(value)
	}
	return op
}

func AsReturn(op *Operation) (ReturnOp, bool) {
	a, ok := As(op, ReturnId)
	return ReturnOp{a}, ok
}

func (r ReturnOp) HasValue() bool { return len(r.Op.Operands) == 1 }
func (r ReturnOp) Value() *Value {
	if !r.HasValue() {
		return nil
	}
	return r.Op.Operands[0]
}

// ConstantOp produces one result carrying a literal payload attribute.
type ConstantOp struct{ Adaptor }

func NewConstant(resultType *types.Type, payload attribute.Attribute) *Operation {
	op := New("Constant", ConstantId)
	op.Attributes = []attribute.Attribute{payload}
	op.AddResult(resultType)
	return op
}

func AsConstant(op *Operation) (ConstantOp, bool) {
	a, ok := As(op, ConstantId)
	return ConstantOp{a}, ok
}

func (c ConstantOp) Value() attribute.Attribute { return c.Op.Attributes[0] }
func (c ConstantOp) ResultType() *types.Type    { return c.Op.Results[0].Type }

// BinaryOp is the abstract two-operand/one-result base shared by
// ArithBinaryOp and LogicBinaryOp (spec's `ArithBinaryOp ⊂ BinaryOp`).
type BinaryOp struct{ Adaptor }

func AsBinaryOp(op *Operation) (BinaryOp, bool) {
	a, ok := As(op, BinaryOpId)
	return BinaryOp{a}, ok
}

func (b BinaryOp) Lhs() *Value { return b.Op.Operands[0] }
func (b BinaryOp) Rhs() *Value { return b.Op.Operands[1] }

// ArithBinaryOp computes an arithmetic binary result of the same type as
// both (equal) operand types.
type ArithBinaryOp struct{ Adaptor }

func NewArithBinary(kind opkind.ArithBinary, lhs, rhs *Value, resultType *types.Type) *Operation {
	op := New("ArithBinary", ArithBinaryId)
	op.Attributes = []attribute.Attribute{attribute.ArithBinaryOf(kind)}
	op.AddOperand(lhs)
	op.AddOperand(rhs)
	op.AddResult(resultType)
	return op
}

func AsArithBinary(op *Operation) (ArithBinaryOp, bool) {
	a, ok := As(op, ArithBinaryId)
	return ArithBinaryOp{a}, ok
}

func (a ArithBinaryOp) Kind() opkind.ArithBinary { return a.Op.Attributes[0].AsArithBinary() }
func (a ArithBinaryOp) Lhs() *Value              { return a.Op.Operands[0] }
func (a ArithBinaryOp) Rhs() *Value              { return a.Op.Operands[1] }
func (a ArithBinaryOp) Result() *Value           { return a.Op.Results[0] }

// LogicBinaryOp computes a boolean comparison/logical result.
type LogicBinaryOp struct{ Adaptor }

func NewLogicBinary(kind opkind.LogicBinary, lhs, rhs *Value) *Operation {
	op := New("LogicBinary", LogicBinaryId)
	op.Attributes = []attribute.Attribute{attribute.LogicBinaryOf(kind)}
	op.AddOperand(lhs)
	op.AddOperand(rhs)
	op.AddResult(types.Bool)
	return op
}

func AsLogicBinary(op *Operation) (LogicBinaryOp, bool) {
	a, ok := As(op, LogicBinaryId)
	return LogicBinaryOp{a}, ok
}

func (l LogicBinaryOp) Kind() opkind.LogicBinary { return l.Op.Attributes[0].AsLogicBinary() }
func (l LogicBinaryOp) Lhs() *Value              { return l.Op.Operands[0] }
func (l LogicBinaryOp) Rhs() *Value              { return l.Op.Operands[1] }
func (l LogicBinaryOp) Result() *Value           { return l.Op.Results[0] }

// ArithCastOp converts its single operand to the result type, per kind.
type ArithCastOp struct{ Adaptor }

func NewArithCast(kind opkind.ArithCast, operand *Value, resultType *types.Type) *Operation {
	op := New("ArithCast", ArithCastId)
	op.Attributes = []attribute.Attribute{attribute.ArithCastOf(kind)}
	op.AddOperand(operand)
	op.AddResult(resultType)
	return op
}

func AsArithCast(op *Operation) (ArithCastOp, bool) {
	a, ok := As(op, ArithCastId)
	return ArithCastOp{a}, ok
}

func (c ArithCastOp) Kind() opkind.ArithCast { return c.Op.Attributes[0].AsArithCast() }
func (c ArithCastOp) Operand() *Value        { return c.Op.Operands[0] }
func (c ArithCastOp) Result() *Value         { return c.Op.Results[0] }

// LogicUnaryOp computes a boolean negation of its single boolean operand.
type LogicUnaryOp struct{ Adaptor }

func NewLogicUnary(kind opkind.LogicUnary, operand *Value) *Operation {
	op := New("LogicUnary", LogicUnaryId)
	op.Attributes = []attribute.Attribute{attribute.LogicUnaryOf(kind)}
	op.AddOperand(operand)
	op.AddResult(types.Bool)
	return op
}

func AsLogicUnary(op *Operation) (LogicUnaryOp, bool) {
	a, ok := As(op, LogicUnaryId)
	return LogicUnaryOp{a}, ok
}

func (u LogicUnaryOp) Kind() opkind.LogicUnary { return u.Op.Attributes[0].AsLogicUnary() }
func (u LogicUnaryOp) Operand() *Value         { return u.Op.Operands[0] }
func (u LogicUnaryOp) Result() *Value          { return u.Op.Results[0] }

// AllocateOp reserves storage and produces a pointer to it; an optional
// operand gives a dynamic element count.
type AllocateOp struct{ Adaptor }

func NewAllocate(pointeeType *types.Type, dynamicSize *Value) *Operation {
	op := New("Allocate", AllocateId)
	if dynamicSize != nil {
		op.AddOperand(dynamicSize)
	}
	op.AddResult(types.Pointer(pointeeType))
	return op
}

func AsAllocate(op *Operation) (AllocateOp, bool) {
	a, ok := As(op, AllocateId)
	return AllocateOp{a}, ok
}

func (a AllocateOp) Result() *Value { return a.Op.Results[0] }

// LoadOp reads through a pointer operand, optionally offset, producing
// the pointee value.
type LoadOp struct{ Adaptor }

func NewLoad(src *Value, resultType *types.Type, offset *Value) *Operation {
	op := New("Load", LoadId)
	op.AddOperand(src)
	if offset != nil {
		op.AddOperand(offset)
	}
	op.AddResult(resultType)
	return op
}

func AsLoad(op *Operation) (LoadOp, bool) {
	a, ok := As(op, LoadId)
	return LoadOp{a}, ok
}

func (l LoadOp) Src() *Value    { return l.Op.Operands[0] }
func (l LoadOp) Result() *Value { return l.Op.Results[0] }

// StoreOp writes a value through a pointer operand, optionally offset.
type StoreOp struct{ Adaptor }

func NewStore(dst, value *Value, offset *Value) *Operation {
	op := New("Store", StoreId)
	op.AddOperand(dst)
	op.AddOperand(value)
	if offset != nil {
		op.AddOperand(offset)
	}
	return op
}

func AsStore(op *Operation) (StoreOp, bool) {
	a, ok := As(op, StoreId)
	return StoreOp{a}, ok
}

func (s StoreOp) Dst() *Value          { return s.Op.Operands[0] }
func (s StoreOp) ValueToStore() *Value { return s.Op.Operands[1] }

// IfOp branches on a boolean condition; its body holds a Then and
// optionally an Else.
type IfOp struct{ Adaptor }

func NewIf(cond *Value) *Operation {
	op := New("If", IfId)
	op.AddOperand(cond)
	return op
}

func AsIf(op *Operation) (IfOp, bool) {
	a, ok := As(op, IfId)
	return IfOp{a}, ok
}

func (i IfOp) Cond() *Value { return i.Op.Operands[0] }

func (i IfOp) ThenOp() *Operation {
	if len(i.Op.Body) == 0 {
		return nil
	}
	return i.Op.Body[0]
}

func (i IfOp) ElseOp() *Operation {
	if len(i.Op.Body) != 2 {
		return nil
	}
	return i.Op.Body[1]
}

// ThenOp/ElseOp hold the statements of each branch of an If.
type ThenOp struct{ Adaptor }

func NewThen() *Operation { return New("Then", ThenId) }

func AsThen(op *Operation) (ThenOp, bool) {
	a, ok := As(op, ThenId)
	return ThenOp{a}, ok
}

type ElseOp struct{ Adaptor }

func NewElse() *Operation { return New("Else", ElseId) }

func AsElse(op *Operation) (ElseOp, bool) {
	a, ok := As(op, ElseId)
	return ElseOp{a}, ok
}

// WhileOp loops while its Condition child's terminator evaluates truthy.
type WhileOp struct{ Adaptor }

func NewWhile() *Operation { return New("While", WhileId) }

func AsWhile(op *Operation) (WhileOp, bool) {
	a, ok := As(op, WhileId)
	return WhileOp{a}, ok
}

func (w WhileOp) ConditionOp() (ConditionOp, bool) {
	if len(w.Op.Body) == 0 {
		return ConditionOp{}, false
	}
	return AsCondition(w.Op.Body[0])
}

// ConditionOp is the first child of a While; its body's last operation
// must produce exactly one Bool result, which is the loop test.
type ConditionOp struct{ Adaptor }

func NewCondition() *Operation { return New("Condition", ConditionId) }

func AsCondition(op *Operation) (ConditionOp, bool) {
	a, ok := As(op, ConditionId)
	return ConditionOp{a}, ok
}

// Terminator returns Condition's last body operation, whose sole result
// is the boolean test value.
func (c ConditionOp) Terminator() *Operation {
	if len(c.Op.Body) == 0 {
		return nil
	}
	return c.Op.Body[len(c.Op.Body)-1]
}

// ForOp counts an inward iterator from start to stop by step, all
// integer operands.
type ForOp struct{ Adaptor }

func NewFor(start, stop, step *Value, iterType *types.Type) *Operation {
	op := New("For", ForId)
	op.AddOperand(start)
	op.AddOperand(stop)
	op.AddOperand(step)
	op.AddInward(iterType)
	return op
}

func AsFor(op *Operation) (ForOp, bool) {
	a, ok := As(op, ForId)
	return ForOp{a}, ok
}

func (f ForOp) Start() *Value    { return f.Op.Operands[0] }
func (f ForOp) Stop() *Value     { return f.Op.Operands[1] }
func (f ForOp) Step() *Value     { return f.Op.Operands[2] }
func (f ForOp) Iterator() *Value { return f.Op.Inwards[0] }

// InputOp reads external input through a pointer destination.
type InputOp struct{ Adaptor }

func NewInput(dst *Value) *Operation {
	op := New("Input", InputId)
	op.AddOperand(dst)
	return op
}

func AsInput(op *Operation) (InputOp, bool) {
	a, ok := As(op, InputId)
	return InputOp{a}, ok
}

func (i InputOp) Dst() *Value { return i.Op.Operands[0] }

// PrintOp prints zero or more operand values.
type PrintOp struct{ Adaptor }

func NewPrint(args []*Value) *Operation {
	op := New("Print", PrintId)
	for _, a := range args {
		op.AddOperand(a)
	}
	return op
}

func AsPrint(op *Operation) (PrintOp, bool) {
	a, ok := As(op, PrintId)
	return PrintOp{a}, ok
}
