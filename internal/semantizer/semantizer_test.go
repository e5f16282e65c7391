package semantizer

import (
	"testing"

	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/optree"
	"compiler/internal/types"
)

func buildMainReturningInt(body func(fn *optree.Operation)) *optree.Operation {
	mod := optree.NewModule()
	fn := optree.NewFunction("main", types.Function(nil, types.Int64))
	mod.AddToBody(fn)
	if body != nil {
		body(fn)
	}
	return mod
}

func TestVerifyAcceptsWellFormedProgram(t *testing.T) {
	mod := buildMainReturningInt(func(fn *optree.Operation) {
		c := optree.NewConstant(types.Int64, attribute.Int(6))
		fn.AddToBody(c)
		ret := optree.NewReturn(c.Results[0])
		fn.AddToBody(ret)
	})

	ctx := NewContext()
	Process(mod, ctx)
	if !ctx.Buffer.Empty() {
		t.Fatalf("expected no errors, got: %s", ctx.Buffer.Error())
	}
}

func TestVerifyRejectsReturnOutsideFunction(t *testing.T) {
	mod := optree.NewModule()
	ret := optree.NewReturn(nil)
	mod.AddToBody(ret)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error for a Return outside a Function")
	}
}

func TestVerifyRejectsReturnTypeMismatch(t *testing.T) {
	mod := buildMainReturningInt(func(fn *optree.Operation) {
		c := optree.NewConstant(types.Bool, attribute.Bool(true))
		fn.AddToBody(c)
		ret := optree.NewReturn(c.Results[0])
		fn.AddToBody(ret)
	})

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error for a Return value type mismatching the function's return type")
	}
}

func TestVerifyRejectsConstantAttributeKindMismatch(t *testing.T) {
	mod := optree.NewModule()
	c := optree.NewConstant(types.Int64, attribute.Bool(true))
	mod.AddToBody(c)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error for a Constant whose attribute variant does not match its result type")
	}
}

func TestVerifyRejectsArithBinaryOperandTypeMismatch(t *testing.T) {
	mod := optree.NewModule()
	lhs := optree.NewConstant(types.Int64, attribute.Int(1))
	rhs := optree.NewConstant(types.Int32, attribute.Int(2))
	mod.AddToBody(lhs)
	mod.AddToBody(rhs)
	add := optree.NewArithBinary(opkind.AddI, lhs.Results[0], rhs.Results[0], types.Int64)
	mod.AddToBody(add)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error for operands of differing types")
	}
}

func TestVerifyAcceptsMatchingFunctionCall(t *testing.T) {
	mod := optree.NewModule()
	callee := optree.NewFunction("f", types.Function([]*types.Type{types.Int64}, types.Int64))
	mod.AddToBody(callee)
	arg := optree.NewConstant(types.Int64, attribute.Int(1))
	callee.AddToBody(arg)
	ret := optree.NewReturn(arg.Results[0])
	callee.AddToBody(ret)

	main := optree.NewFunction("main", types.Function(nil, types.None))
	mod.AddToBody(main)
	argForCall := optree.NewConstant(types.Int64, attribute.Int(2))
	main.AddToBody(argForCall)
	call := optree.NewFunctionCall("f", []*optree.Value{argForCall.Results[0]}, types.Int64)
	main.AddToBody(call)

	ctx := NewContext()
	Process(mod, ctx)
	if !ctx.Buffer.Empty() {
		t.Fatalf("expected no errors, got: %s", ctx.Buffer.Error())
	}
}

func TestVerifyRejectsCallToUndefinedFunction(t *testing.T) {
	mod := optree.NewModule()
	call := optree.NewFunctionCall("missing", nil, types.None)
	mod.AddToBody(call)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error for a call to an undefined function")
	}
}

func TestVerifyRejectsElseWithoutThen(t *testing.T) {
	mod := optree.NewModule()
	cond := optree.NewConstant(types.Bool, attribute.Bool(true))
	mod.AddToBody(cond)
	ifOp := optree.NewIf(cond.Results[0])
	mod.AddToBody(ifOp)
	elseOp := optree.NewElse()
	ifOp.AddToBody(elseOp)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error when an If's only body child is an Else")
	}
}

func TestVerifyAcceptsWhileWithBoolCondition(t *testing.T) {
	mod := optree.NewModule()
	whileOp := optree.NewWhile()
	mod.AddToBody(whileOp)
	condOp := optree.NewCondition()
	whileOp.AddToBody(condOp)
	test := optree.NewConstant(types.Bool, attribute.Bool(false))
	condOp.AddToBody(test)

	ctx := NewContext()
	Process(mod, ctx)
	if !ctx.Buffer.Empty() {
		t.Fatalf("expected no errors, got: %s", ctx.Buffer.Error())
	}
}

func TestVerifyRejectsConditionWithNonBoolTerminator(t *testing.T) {
	mod := optree.NewModule()
	whileOp := optree.NewWhile()
	mod.AddToBody(whileOp)
	condOp := optree.NewCondition()
	whileOp.AddToBody(condOp)
	test := optree.NewConstant(types.Int64, attribute.Int(1))
	condOp.AddToBody(test)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error when Condition's terminator is not a single Bool result")
	}
}

func TestVerifyRejectsLoadSourceTypeMismatch(t *testing.T) {
	mod := optree.NewModule()
	alloc := optree.NewAllocate(types.Int64, nil)
	mod.AddToBody(alloc)
	load := optree.NewLoad(alloc.Results[0], types.Bool, nil)
	mod.AddToBody(load)

	ctx := NewContext()
	Process(mod, ctx)
	if ctx.Buffer.Empty() {
		t.Fatalf("expected an error when Load's result type does not match the pointer's pointee")
	}
}

func TestErrorBufferAccumulatesEveryDiagnostic(t *testing.T) {
	mod := optree.NewModule()
	ret := optree.NewReturn(nil)
	mod.AddToBody(ret)
	call := optree.NewFunctionCall("missing", nil, types.None)
	mod.AddToBody(call)

	ctx := NewContext()
	Process(mod, ctx)
	if len(ctx.Buffer.Errors()) != 2 {
		t.Fatalf("expected 2 accumulated errors, got %d", len(ctx.Buffer.Errors()))
	}
}
