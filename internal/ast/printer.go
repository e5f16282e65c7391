package ast

import (
	"fmt"
	"strings"
)

// Dump renders n and its descendants as one line per node, indented two
// spaces per nesting level, mirroring each node's payload the way its
// Type implies.
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case IntegerLiteralValue:
		fmt.Fprintf(b, "IntegerLiteralValue: %d\n", n.IntNum())
	case FloatingPointLiteralValue:
		fmt.Fprintf(b, "FloatingPointLiteralValue: %g\n", n.FpNum())
	case BooleanLiteralValue:
		fmt.Fprintf(b, "BooleanLiteralValue: %t\n", n.Bool())
	case StringLiteralValue:
		fmt.Fprintf(b, "StringLiteralValue: %s\n", n.Str())
	case FunctionName:
		fmt.Fprintf(b, "FunctionName: %s\n", n.Str())
	case VariableName:
		fmt.Fprintf(b, "VariableName: %s\n", n.Str())
	case TypeName:
		fmt.Fprintf(b, "TypeName: %s\n", n.Str())
	case BinaryOperation:
		fmt.Fprintf(b, "BinaryOperation: %s\n", n.BinOp())
	case UnaryOperation:
		fmt.Fprintf(b, "UnaryOperation: %s\n", n.UnOp())
	case BranchRoot:
		b.WriteString("BranchRoot")
		if table, ok := n.Payload.(VariablesTable); ok && len(table) > 0 {
			for name := range table {
				fmt.Fprintf(b, " %s", name)
			}
		}
		b.WriteString("\n")
	default:
		fmt.Fprintf(b, "%s\n", n.Type)
	}
	for _, child := range n.Children {
		dump(b, child, depth+1)
	}
}
