package optree

import (
	"strings"
	"testing"

	"compiler/internal/attribute"
	"compiler/internal/opkind"
	"compiler/internal/types"
)

func TestAddOperandInstallsUse(t *testing.T) {
	c1 := NewConstant(types.Int64, attribute.Int(6))
	c2 := NewConstant(types.Int64, attribute.Int(2))
	add := NewArithBinary(opkind.AddI, c1.Results[0], c2.Results[0], types.Int64)

	if len(c1.Results[0].Uses) != 1 {
		t.Fatalf("lhs should have exactly one use, got %d", len(c1.Results[0].Uses))
	}
	use := c1.Results[0].Uses[0]
	if use.User != add || use.OperandNumber != 0 {
		t.Fatalf("unexpected use: %+v", use)
	}
}

func TestEraseOperandCompactsAndRenumbers(t *testing.T) {
	c1 := NewConstant(types.Int64, attribute.Int(1))
	c2 := NewConstant(types.Int64, attribute.Int(2))
	c3 := NewConstant(types.Int64, attribute.Int(3))
	call := NewFunctionCall("f", []*Value{c1.Results[0], c2.Results[0], c3.Results[0]}, types.None)

	call.EraseOperand(0)
	if len(call.Operands) != 2 {
		t.Fatalf("expected 2 operands after erase, got %d", len(call.Operands))
	}
	if len(c1.Results[0].Uses) != 0 {
		t.Fatalf("c1's use should have been removed")
	}
	use := c2.Results[0].Uses[0]
	if use.OperandNumber != 0 {
		t.Fatalf("c2's operand number should have been renumbered to 0, got %d", use.OperandNumber)
	}
	use3 := c3.Results[0].Uses[0]
	if use3.OperandNumber != 1 {
		t.Fatalf("c3's operand number should have been renumbered to 1, got %d", use3.OperandNumber)
	}
}

func TestEraseRejectsLiveUses(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Erase to panic on live uses")
		}
	}()
	c1 := NewConstant(types.Int64, attribute.Int(1))
	c2 := NewConstant(types.Int64, attribute.Int(2))
	NewArithBinary(opkind.AddI, c1.Results[0], c2.Results[0], types.Int64)
	c1.Erase() // c1's result still has a use
}

func TestEraseAllowsDeadConstant(t *testing.T) {
	c := NewConstant(types.Int64, attribute.Int(1))
	c.Erase() // should not panic
}

func TestBodyPositionsTracked(t *testing.T) {
	mod := NewModule()
	fn := NewFunction("main", types.Function(nil, types.None))
	mod.AddToBody(fn)
	ret := NewReturn(nil)
	fn.AddToBody(ret)

	if ret.Position() != 0 {
		t.Fatalf("ret.Position() = %d, want 0", ret.Position())
	}
	if ret.Parent != fn {
		t.Fatalf("ret.Parent should be fn")
	}

	ret2 := NewReturn(nil)
	fn.InsertIntoBody(0, ret2)
	if ret2.Position() != 0 || ret.Position() != 1 {
		t.Fatalf("positions not updated after insert: ret2=%d ret=%d", ret2.Position(), ret.Position())
	}
}

func TestIsTransitiveThroughBinaryOp(t *testing.T) {
	c1 := NewConstant(types.Int64, attribute.Int(1))
	c2 := NewConstant(types.Int64, attribute.Int(2))
	add := NewArithBinary(opkind.AddI, c1.Results[0], c2.Results[0], types.Int64)

	if !add.Is(ArithBinaryId) {
		t.Fatalf("add should be ArithBinary")
	}
	if !add.Is(BinaryOpId) {
		t.Fatalf("add should transitively be BinaryOp")
	}
	if add.Is(LogicBinaryId) {
		t.Fatalf("add should not be LogicBinary")
	}
	if _, ok := AsBinaryOp(add); !ok {
		t.Fatalf("AsBinaryOp should succeed on an ArithBinary")
	}
}

func TestClonePreservesShapeNotIdentity(t *testing.T) {
	c := NewConstant(types.Int64, attribute.Int(7))
	clone := c.Clone()
	if clone == c {
		t.Fatalf("clone should be a distinct operation")
	}
	if clone.Name != c.Name || clone.SpecId != c.SpecId {
		t.Fatalf("clone should preserve name/spec-id")
	}
	if len(clone.Results) != 1 || !clone.Results[0].Type.Equal(types.Int64) {
		t.Fatalf("clone should have its own result of the same type")
	}
}

func TestDumpFormat(t *testing.T) {
	c := NewConstant(types.Int64, attribute.Int(6))
	out := Dump(c)
	if !strings.HasPrefix(out, "Constant [{int : 6}] () -> (#0 : int(64)) [[]]") {
		t.Fatalf("unexpected dump: %q", out)
	}
}

func TestDumpAssignsIdsInEncounterOrder(t *testing.T) {
	c1 := NewConstant(types.Int64, attribute.Int(1))
	c2 := NewConstant(types.Int64, attribute.Int(2))
	add := NewArithBinary(opkind.AddI, c1.Results[0], c2.Results[0], types.Int64)

	mod := NewModule()
	fn := NewFunction("f", types.Function(nil, types.None))
	mod.AddToBody(fn)
	fn.AddToBody(c1)
	fn.AddToBody(c2)
	fn.AddToBody(add)

	out := Dump(mod)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[4], "#0") || !strings.Contains(lines[4], "#1") {
		t.Fatalf("ArithBinary line should reference ids 0 and 1: %s", lines[4])
	}
}
