// Package ast defines the syntax-tree shape the converter consumes.
// The lexer and parser that produce this tree are out of scope here;
// this package only fixes the contract between them and the converter.
package ast

import "fmt"

// SourceRef locates a Node in its original source file, for diagnostics.
type SourceRef struct {
	Filename string
	Line     int
	Column   int
}

func (r SourceRef) String() string {
	return fmt.Sprintf("%s:%d:%d", r.Filename, r.Line, r.Column)
}

// VariablesTable is the per-branch local symbol table carried by a
// BranchRoot node: each declared name's slot index within that branch.
type VariablesTable map[string]int

// Node is a generic syntax-tree node: an n-ary tree where the meaning
// of Payload depends on Type.
//
//	Type                      Payload
//	IntegerLiteralValue       int64
//	FloatingPointLiteralValue float64
//	BooleanLiteralValue       bool
//	StringLiteralValue        string
//	FunctionName              string
//	FunctionReturnType        string   (the return type identifier text)
//	VariableName              string
//	TypeName                  string   (the raw type identifier text)
//	BinaryOperation           BinaryOp
//	UnaryOperation            UnaryOp
//	BranchRoot                VariablesTable
//	anything else             nil
type Node struct {
	Type      Type
	Payload   any
	Children  []*Node
	Parent    *Node
	SourceRef SourceRef
}

// New creates a childless, payload-less node of the given type.
func New(t Type, ref SourceRef) *Node {
	return &Node{Type: t, SourceRef: ref}
}

// NewInt creates an IntegerLiteralValue node.
func NewInt(v int64, ref SourceRef) *Node {
	return &Node{Type: IntegerLiteralValue, Payload: v, SourceRef: ref}
}

// NewFloat creates a FloatingPointLiteralValue node.
func NewFloat(v float64, ref SourceRef) *Node {
	return &Node{Type: FloatingPointLiteralValue, Payload: v, SourceRef: ref}
}

// NewBool creates a BooleanLiteralValue node.
func NewBool(v bool, ref SourceRef) *Node {
	return &Node{Type: BooleanLiteralValue, Payload: v, SourceRef: ref}
}

// NewString creates a node carrying a string payload: StringLiteralValue,
// FunctionName, VariableName, or TypeName are the expected types.
func NewString(t Type, s string, ref SourceRef) *Node {
	return &Node{Type: t, Payload: s, SourceRef: ref}
}

// NewBinaryOp creates a BinaryOperation node tagged with op.
func NewBinaryOp(op BinaryOp, ref SourceRef) *Node {
	return &Node{Type: BinaryOperation, Payload: op, SourceRef: ref}
}

// NewUnaryOp creates a UnaryOperation node tagged with op.
func NewUnaryOp(op UnaryOp, ref SourceRef) *Node {
	return &Node{Type: UnaryOperation, Payload: op, SourceRef: ref}
}

// NewBranchRoot creates a BranchRoot node carrying table as its local
// symbol table.
func NewBranchRoot(table VariablesTable, ref SourceRef) *Node {
	return &Node{Type: BranchRoot, Payload: table, SourceRef: ref}
}

// AddChild appends child to n's children and sets child's Parent to n.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// IntNum returns the IntegerLiteralValue payload.
func (n *Node) IntNum() int64 { return n.Payload.(int64) }

// FpNum returns the FloatingPointLiteralValue payload.
func (n *Node) FpNum() float64 { return n.Payload.(float64) }

// Bool returns the BooleanLiteralValue payload.
func (n *Node) Bool() bool { return n.Payload.(bool) }

// Str returns the string payload (StringLiteralValue, FunctionName,
// VariableName, or TypeName).
func (n *Node) Str() string { return n.Payload.(string) }

// BinOp returns the BinaryOperation payload.
func (n *Node) BinOp() BinaryOp { return n.Payload.(BinaryOp) }

// UnOp returns the UnaryOperation payload.
func (n *Node) UnOp() UnaryOp { return n.Payload.(UnaryOp) }

// Variables returns the BranchRoot payload.
func (n *Node) Variables() VariablesTable { return n.Payload.(VariablesTable) }

// FirstChild returns n's first child, or nil if n has none.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// SecondChild returns n's second child, or nil if n has fewer than two.
func (n *Node) SecondChild() *Node {
	if len(n.Children) < 2 {
		return nil
	}
	return n.Children[1]
}

// LastChild returns n's last child, or nil if n has none.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}
