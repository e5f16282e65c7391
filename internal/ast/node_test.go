package ast

import "testing"

func TestAddChildSetsParent(t *testing.T) {
	root := New(ProgramRoot, SourceRef{Filename: "t.src"})
	fn := New(FunctionDefinition, SourceRef{Filename: "t.src", Line: 1})
	root.AddChild(fn)

	if fn.Parent != root {
		t.Fatalf("expected fn's parent to be root")
	}
	if len(root.Children) != 1 || root.Children[0] != fn {
		t.Fatalf("expected root to have fn as its only child")
	}
}

func TestFirstSecondLastChild(t *testing.T) {
	root := New(FunctionArguments, SourceRef{})
	if root.FirstChild() != nil || root.LastChild() != nil {
		t.Fatalf("expected nil first/last child on an empty node")
	}
	a := New(FunctionArgument, SourceRef{})
	b := New(FunctionArgument, SourceRef{})
	c := New(FunctionArgument, SourceRef{})
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(c)

	if root.FirstChild() != a {
		t.Fatalf("expected a to be first child")
	}
	if root.SecondChild() != b {
		t.Fatalf("expected b to be second child")
	}
	if root.LastChild() != c {
		t.Fatalf("expected c to be last child")
	}
}

func TestPayloadAccessors(t *testing.T) {
	i := NewInt(42, SourceRef{})
	if i.IntNum() != 42 {
		t.Fatalf("expected IntNum to round-trip")
	}
	f := NewFloat(3.5, SourceRef{})
	if f.FpNum() != 3.5 {
		t.Fatalf("expected FpNum to round-trip")
	}
	boolNode := NewBool(true, SourceRef{})
	if !boolNode.Bool() {
		t.Fatalf("expected Bool to round-trip")
	}
	name := NewString(VariableName, "x", SourceRef{})
	if name.Str() != "x" {
		t.Fatalf("expected Str to round-trip")
	}
	op := NewBinaryOp(Add, SourceRef{})
	if op.BinOp() != Add {
		t.Fatalf("expected BinOp to round-trip")
	}
	branch := NewBranchRoot(VariablesTable{"x": 0}, SourceRef{})
	if branch.Variables()["x"] != 0 {
		t.Fatalf("expected Variables to round-trip")
	}
}

func TestDumpNestedBinaryOperation(t *testing.T) {
	expr := New(Expression, SourceRef{})
	binOp := NewBinaryOp(Add, SourceRef{})
	lhs := NewInt(1, SourceRef{})
	rhs := NewInt(2, SourceRef{})
	binOp.AddChild(lhs)
	binOp.AddChild(rhs)
	expr.AddChild(binOp)

	want := "Expression\n" +
		"  BinaryOperation: Add\n" +
		"    IntegerLiteralValue: 1\n" +
		"    IntegerLiteralValue: 2\n"
	if got := Dump(expr); got != want {
		t.Fatalf("unexpected dump:\n%s\nwant:\n%s", got, want)
	}
}
