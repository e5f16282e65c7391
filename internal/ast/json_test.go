package ast

import "testing"

func TestDecodeJSONBuildsLiteralNode(t *testing.T) {
	n, err := DecodeJSON([]byte(`{"type":"IntegerLiteralValue","payload":42,"file":"t.opc","line":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Type != IntegerLiteralValue || n.IntNum() != 42 {
		t.Fatalf("expected IntegerLiteralValue(42), got %v", n)
	}
	if n.SourceRef.Filename != "t.opc" || n.SourceRef.Line != 3 {
		t.Fatalf("expected source ref to round-trip, got %v", n.SourceRef)
	}
}

func TestDecodeJSONBuildsNestedTreeWithParentLinks(t *testing.T) {
	n, err := DecodeJSON([]byte(`{
		"type": "BinaryOperation",
		"payload": "Add",
		"children": [
			{"type": "IntegerLiteralValue", "payload": 1},
			{"type": "IntegerLiteralValue", "payload": 2}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.BinOp() != Add {
		t.Fatalf("expected Add, got %v", n.BinOp())
	}
	if len(n.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(n.Children))
	}
	if n.FirstChild().Parent != n || n.SecondChild().Parent != n {
		t.Fatalf("expected children's Parent to point back to n")
	}
}

func TestDecodeJSONRejectsUnknownType(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"type":"NotARealType"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown node type")
	}
}

func TestDecodeJSONRejectsUnknownBinaryOperator(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"type":"BinaryOperation","payload":"Xor"}`))
	if err == nil {
		t.Fatalf("expected an error for an unknown binary operator")
	}
}
