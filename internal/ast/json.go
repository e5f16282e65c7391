package ast

import (
	"encoding/json"
	"fmt"
)

// wireNode is the on-disk shape DecodeJSON reads: a syntax tree built by
// a front end outside this module (no lexer or parser lives here) and
// handed to the converter as plain data. Its shape mirrors Node's own
// Type/Payload/Children table one for one.
type wireNode struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Children []wireNode      `json:"children,omitempty"`
	File     string          `json:"file,omitempty"`
	Line     int             `json:"line,omitempty"`
	Column   int             `json:"column,omitempty"`
}

var typeNames = map[string]Type{
	"ProgramRoot":               ProgramRoot,
	"FunctionDefinition":        FunctionDefinition,
	"FunctionName":              FunctionName,
	"FunctionArguments":         FunctionArguments,
	"FunctionArgument":          FunctionArgument,
	"FunctionReturnType":        FunctionReturnType,
	"BranchRoot":                BranchRoot,
	"VariableDeclaration":       VariableDeclaration,
	"TypeName":                  TypeName,
	"VariableName":              VariableName,
	"Expression":                Expression,
	"IfStatement":               IfStatement,
	"ElifStatement":             ElifStatement,
	"ElseStatement":             ElseStatement,
	"WhileStatement":            WhileStatement,
	"BinaryOperation":           BinaryOperation,
	"UnaryOperation":            UnaryOperation,
	"FunctionCall":              FunctionCall,
	"ReturnStatement":           ReturnStatement,
	"IntegerLiteralValue":       IntegerLiteralValue,
	"FloatingPointLiteralValue": FloatingPointLiteralValue,
	"BooleanLiteralValue":       BooleanLiteralValue,
	"StringLiteralValue":        StringLiteralValue,
	"TypeConversion":            TypeConversion,
}

var binaryOpNames = map[string]BinaryOp{
	"Add": Add, "Sub": Sub, "Mult": Mult, "Div": Div,
	"And": And, "Or": Or, "Equal": Equal, "NotEqual": NotEqual,
	"Less": Less, "LessEqual": LessEqual, "Greater": Greater,
	"GreaterEqual": GreaterEqual, "Assign": Assign,
}

var unaryOpNames = map[string]UnaryOp{
	"Not": Not, "Negative": Negative,
}

// DecodeJSON parses a JSON-encoded syntax tree into a live Node tree
// ready for converter.Convert. The expected shape is a ProgramRoot node
// whose Children are FunctionDefinition nodes, matching the table in
// Node's doc comment.
func DecodeJSON(data []byte) (*Node, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("ast: decoding syntax tree: %w", err)
	}
	return w.toNode()
}

func (w wireNode) toNode() (*Node, error) {
	t, ok := typeNames[w.Type]
	if !ok {
		return nil, fmt.Errorf("ast: unknown node type %q", w.Type)
	}
	n := &Node{Type: t, SourceRef: SourceRef{Filename: w.File, Line: w.Line, Column: w.Column}}

	if len(w.Payload) > 0 {
		payload, err := decodePayload(t, w.Payload)
		if err != nil {
			return nil, fmt.Errorf("ast: node %s: %w", t, err)
		}
		n.Payload = payload
	}
	for _, c := range w.Children {
		child, err := c.toNode()
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// decodePayload unmarshals raw according to the Payload type Node's own
// doc table assigns to t. BranchRoot's VariablesTable is never read by
// the converter (it rebuilds scopes itself), so it decodes to nil.
func decodePayload(t Type, raw json.RawMessage) (any, error) {
	switch t {
	case IntegerLiteralValue:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case FloatingPointLiteralValue:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case BooleanLiteralValue:
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case StringLiteralValue, FunctionName, FunctionReturnType, VariableName, TypeName:
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	case BinaryOperation:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		op, ok := binaryOpNames[s]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", s)
		}
		return op, nil
	case UnaryOperation:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		op, ok := unaryOpNames[s]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", s)
		}
		return op, nil
	default:
		return nil, nil
	}
}
