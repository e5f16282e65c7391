package semantizer

import (
	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/optree"
	"compiler/internal/types"
)

// Process verifies op and every operation in its body, accumulating
// failures into ctx.Buffer. Callers should check ctx.Buffer.Empty() when
// Process returns; a non-empty buffer is raised as a single aggregate
// error at pass end (spec §7), never as partial progress.
func Process(op *optree.Operation, ctx *Context) {
	verifyOne(op, ctx)
	for _, child := range op.Body {
		Process(child, ctx)
	}
}

// verifyOne dispatches a single operation to its per-adaptor rule.
func verifyOne(op *optree.Operation, ctx *Context) {
	switch op.SpecId {
	case optree.ModuleId:
		verifyModule(op, ctx)
	case optree.FunctionId:
		verifyFunction(op, ctx)
	case optree.FunctionCallId:
		verifyFunctionCall(op, ctx)
	case optree.ReturnId:
		verifyReturn(op, ctx)
	case optree.ConstantId:
		verifyConstant(op, ctx)
	case optree.ArithBinaryId:
		verifyArithBinary(op, ctx)
	case optree.LogicBinaryId:
		verifyLogicBinary(op, ctx)
	case optree.ArithCastId:
		verifyArithCast(op, ctx)
	case optree.LogicUnaryId:
		verifyLogicUnary(op, ctx)
	case optree.AllocateId:
		verifyAllocate(op, ctx)
	case optree.LoadId:
		verifyLoad(op, ctx)
	case optree.StoreId:
		verifyStore(op, ctx)
	case optree.IfId:
		verifyIf(op, ctx)
	case optree.ThenId:
		verifyThen(op, ctx)
	case optree.ElseId:
		verifyElse(op, ctx)
	case optree.WhileId:
		verifyWhile(op, ctx)
	case optree.ConditionId:
		verifyCondition(op, ctx)
	case optree.ForId:
		verifyFor(op, ctx)
	case optree.InputId:
		verifyInput(op, ctx)
	case optree.PrintId:
		verifyPrint(op, ctx)
	default:
		ctx.PushOpError(op, "unknown operation kind")
	}
}

func verifyModule(op *optree.Operation, ctx *Context) {
	NewVerifier(op, ctx).HasOperands(0).HasResults(0).HasInwards(0).HasAttributes(0)
}

func verifyFunction(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).
		HasAttributes(2).
		HasNthAttrOfType(0, attribute.NativeString).
		HasNthAttrOfType(1, attribute.TypeRef)
	if !v.Verified() {
		return
	}
	fn, _ := optree.AsFunction(op)
	funcType := fn.FuncType()
	args := funcType.Args()
	if len(op.Inwards) != len(args) {
		ctx.PushOpError(op, "must have %d inward(s) matching the function type, has %d", len(args), len(op.Inwards))
		return
	}
	for i, a := range args {
		if !op.Inwards[i].HasType(a) {
			ctx.PushOpError(op, "inward #%d must have type %s", i, a)
		}
	}
	ctx.RegisterFunction(fn)
}

func verifyFunctionCall(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasAttributes(1).HasNthAttrOfType(0, attribute.NativeString)
	if !v.Verified() {
		return
	}
	call, _ := optree.AsFunctionCall(op)
	callee, ok := ctx.FindFunction(call.Name())
	if !ok {
		ctx.PushOpError(op, "call to undefined function %q", call.Name())
		return
	}
	funcType := callee.FuncType()
	if len(op.Results) != 1 || !op.Results[0].HasType(funcType.Result()) {
		ctx.PushOpError(op, "result type must equal callee %q's return type %s", call.Name(), funcType.Result())
	}
	args := funcType.Args()
	if len(op.Operands) != len(args) {
		ctx.PushOpError(op, "call to %q must have %d argument(s), has %d", call.Name(), len(args), len(op.Operands))
		return
	}
	for i, a := range args {
		if !op.Operands[i].HasType(a) {
			ctx.PushOpError(op, "argument #%d to %q must have type %s", i, call.Name(), a)
		}
	}
}

func verifyReturn(op *optree.Operation, ctx *Context) {
	fn := op.FindParent(optree.FunctionId)
	if fn == nil {
		ctx.PushOpError(op, "must appear inside a Function")
		return
	}
	f, _ := optree.AsFunction(fn)
	retType := f.ReturnType()
	if retType.Kind() == types.KindNone {
		NewVerifier(op, ctx).HasOperands(0)
		return
	}
	v := NewVerifier(op, ctx).HasOperandsOfType(1, retType)
	_ = v
}

func verifyConstant(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperands(0).HasAttributes(1).HasResults(1)
	if !v.Verified() {
		return
	}
	c, _ := optree.AsConstant(op)
	if !c.Value().CanHold(c.ResultType()) {
		ctx.PushOpError(op, "attribute variant does not match result type %s", c.ResultType())
	}
}

func verifyArithBinary(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperands(2).HasResults(1).HasAttributes(1).
		HasNthAttrOfType(0, attribute.ArithBinaryKind)
	if !v.Verified() {
		return
	}
	a, _ := optree.AsArithBinary(op)
	if !a.Lhs().SameType(a.Rhs()) {
		ctx.PushOpError(op, "both operands must have the same type")
		return
	}
	if !a.Result().HasType(a.Lhs().Type) {
		ctx.PushOpError(op, "result must have the same type as the operands")
	}
}

func verifyLogicBinary(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperands(2).HasResultOfType(types.Bool).HasAttributes(1).
		HasNthAttrOfType(0, attribute.LogicBinaryKind)
	if !v.Verified() {
		return
	}
	l, _ := optree.AsLogicBinary(op)
	if !l.Lhs().SameType(l.Rhs()) {
		ctx.PushOpError(op, "both operands must have the same type")
	}
}

func verifyArithCast(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperands(1).HasResults(1).HasAttributes(1).
		HasNthAttrOfType(0, attribute.ArithCastKind)
	if !v.Verified() {
		return
	}
	c, _ := optree.AsArithCast(op)
	in := c.Operand().Type
	out := c.Result().Type
	switch c.Kind() {
	case opkind.ExtI:
		if !(in.Kind() == types.KindInteger && out.Kind() == types.KindInteger && out.Width() > in.Width()) {
			ctx.PushOpError(op, "ExtI requires out.width > in.width, both integer")
		}
	case opkind.TruncI:
		if !(in.Kind() == types.KindInteger && out.Kind() == types.KindInteger && out.Width() < in.Width()) {
			ctx.PushOpError(op, "TruncI requires out.width < in.width, both integer")
		}
	case opkind.ExtF:
		if !(in.Kind() == types.KindFloat && out.Kind() == types.KindFloat && out.Width() > in.Width()) {
			ctx.PushOpError(op, "ExtF requires out.width > in.width, both float")
		}
	case opkind.TruncF:
		if !(in.Kind() == types.KindFloat && out.Kind() == types.KindFloat && out.Width() < in.Width()) {
			ctx.PushOpError(op, "TruncF requires out.width < in.width, both float")
		}
	case opkind.IntToFloat:
		if !(in.Kind() == types.KindInteger && out.Kind() == types.KindFloat) {
			ctx.PushOpError(op, "IntToFloat requires an integer operand and a float result")
		}
	case opkind.FloatToInt:
		if !(in.Kind() == types.KindFloat && out.Kind() == types.KindInteger) {
			ctx.PushOpError(op, "FloatToInt requires a float operand and an integer result")
		}
	}
}

func verifyLogicUnary(op *optree.Operation, ctx *Context) {
	NewVerifier(op, ctx).HasOperandsOfType(1, types.Bool).HasResultOfType(types.Bool).
		HasAttributes(1).HasNthAttrOfType(0, attribute.LogicUnaryKind)
}

func verifyAllocate(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasResults(1)
	if !v.Verified() {
		return
	}
	if op.Results[0].Type.Kind() != types.KindPointer {
		ctx.PushOpError(op, "result must be a pointer")
	}
}

func verifyLoad(op *optree.Operation, ctx *Context) {
	if len(op.Operands) == 0 {
		ctx.PushOpError(op, "must have a pointer source operand")
		return
	}
	if len(op.Results) != 1 {
		ctx.PushOpError(op, "must have exactly one result")
		return
	}
	src := op.Operands[0]
	if src.Type.Kind() != types.KindPointer || !src.Type.Pointee().Equal(op.Results[0].Type) {
		ctx.PushOpError(op, "source operand must be Pointer(resultType)")
	}
}

func verifyStore(op *optree.Operation, ctx *Context) {
	if len(op.Operands) < 2 {
		ctx.PushOpError(op, "must have destination and value operands")
		return
	}
	dst, val := op.Operands[0], op.Operands[1]
	if dst.Type.Kind() != types.KindPointer || !dst.Type.Pointee().Equal(val.Type) {
		ctx.PushOpError(op, "destination operand must be Pointer(valueOperandType)")
	}
}

func verifyIf(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperandsOfType(1, types.Bool)
	if !v.Verified() {
		return
	}
	if len(op.Body) == 0 || op.Body[0].SpecId != optree.ThenId {
		ctx.PushOpError(op, "body must begin with a Then")
		return
	}
	if len(op.Body) > 2 {
		ctx.PushOpError(op, "body must contain at most a Then and an Else")
		return
	}
	if len(op.Body) == 2 && op.Body[1].SpecId != optree.ElseId {
		ctx.PushOpError(op, "second body child must be an Else")
	}
}

func verifyThen(op *optree.Operation, ctx *Context) {
	if op.Parent == nil || !op.Parent.Is(optree.IfId) {
		ctx.PushOpError(op, "parent must be an If")
		return
	}
	if op.Position() != 0 {
		ctx.PushOpError(op, "must be the first child of its parent If")
	}
}

func verifyElse(op *optree.Operation, ctx *Context) {
	if op.Parent == nil || !op.Parent.Is(optree.IfId) {
		ctx.PushOpError(op, "parent must be an If")
		return
	}
	if len(op.Parent.Body) != 2 || op.Position() != 1 {
		ctx.PushOpError(op, "must be the last of exactly two children of its parent If")
	}
}

func verifyWhile(op *optree.Operation, ctx *Context) {
	if len(op.Body) == 0 || op.Body[0].SpecId != optree.ConditionId {
		ctx.PushOpError(op, "body must begin with a Condition")
	}
}

func verifyCondition(op *optree.Operation, ctx *Context) {
	if op.Parent == nil || !op.Parent.Is(optree.WhileId) {
		ctx.PushOpError(op, "parent must be a While")
		return
	}
	if op.Position() != 0 {
		ctx.PushOpError(op, "must be the first child of its parent While")
	}
	if len(op.Body) == 0 {
		ctx.PushOpError(op, "body must not be empty")
		return
	}
	last := op.Body[len(op.Body)-1]
	if len(last.Results) != 1 || last.Results[0].Type.Kind() != types.KindBool {
		ctx.PushOpError(op, "body's last operation must have exactly one Bool result")
	}
}

func verifyFor(op *optree.Operation, ctx *Context) {
	if len(op.Operands) != 3 {
		ctx.PushOpError(op, "must have 3 operands (start, stop, step)")
		return
	}
	for i, o := range op.Operands {
		if o.Type.Kind() != types.KindInteger {
			ctx.PushOpError(op, "operand #%d must be an integer", i)
		}
	}
	if len(op.Inwards) != 1 || op.Inwards[0].Type.Kind() != types.KindInteger {
		ctx.PushOpError(op, "must have exactly one integer inward (the iterator)")
	}
}

func verifyInput(op *optree.Operation, ctx *Context) {
	v := NewVerifier(op, ctx).HasOperands(1)
	if !v.Verified() {
		return
	}
	if op.Operands[0].Type.Kind() != types.KindPointer {
		ctx.PushOpError(op, "operand must be a pointer")
	}
}

func verifyPrint(op *optree.Operation, ctx *Context) {
	NewVerifier(op, ctx).HasResults(0)
}
