package errors

import (
	"fmt"

	"compiler/internal/ast"
)

// Builder provides a fluent interface for attaching suggestions/notes/
// help text to a CompilerError before it's pushed onto a Buffer.
type Builder struct {
	err CompilerError
}

// NewError starts a Builder for an Error-level diagnostic at ref.
func NewError(code, message string, ref ast.SourceRef) *Builder {
	return &Builder{err: CompilerError{Level: Error, Code: code, Message: message, Ref: ref, Length: 1}}
}

// WithLength sets the length of the error span.
func (b *Builder) WithLength(length int) *Builder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error.
func (b *Builder) WithSuggestion(message string) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error.
func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp sets the help text shown on the error.
func (b *Builder) WithHelp(help string) *Builder {
	b.err.HelpText = help
	return b
}

// Build returns the completed CompilerError.
func (b *Builder) Build() CompilerError { return b.err }

// The constructors below build one CompilerError per converter error
// kind named in spec §7: undeclared variable, redeclaration in the same
// scope, unsupported expression type, invalid assignment l-value,
// misuse of input()/print(), and a call to an undefined function.

// UndeclaredVariable reports a variable name with no declaration in any
// enclosing scope.
func UndeclaredVariable(name string, ref ast.SourceRef) CompilerError {
	return NewError(ErrorUndeclaredVariable, fmt.Sprintf("undeclared variable '%s'", name), ref).
		WithLength(len(name)).
		WithSuggestion("declare the variable before using it").
		Build()
}

// RedeclaredVariable reports name already declared earlier in the same
// scope.
func RedeclaredVariable(name string, ref ast.SourceRef) CompilerError {
	return NewError(ErrorRedeclaredVariable, fmt.Sprintf("'%s' is already declared in this scope", name), ref).
		WithLength(len(name)).
		Build()
}

// UnsupportedExpression reports a syntax-tree node the converter has no
// lowering rule for.
func UnsupportedExpression(nodeType ast.Type, ref ast.SourceRef) CompilerError {
	return NewError(ErrorUnsupportedExpression, fmt.Sprintf("unsupported expression: %s", nodeType), ref).Build()
}

// InvalidAssignTarget reports an assignment whose left-hand side isn't
// a plain variable name.
func InvalidAssignTarget(ref ast.SourceRef) CompilerError {
	return NewError(ErrorInvalidAssignTarget, "left-hand side of an assignment must be a variable", ref).Build()
}

// MisusedInput reports input() appearing anywhere other than the
// r-value of an isolated assignment or a declaration initializer.
func MisusedInput(ref ast.SourceRef) CompilerError {
	return NewError(ErrorMisusedInput, "input() may only appear as an assignment's r-value or a declaration initializer", ref).
		Build()
}

// MisusedPrint reports print(...) appearing anywhere other than a
// statement position.
func MisusedPrint(ref ast.SourceRef) CompilerError {
	return NewError(ErrorMisusedPrint, "print(...) may only appear as a statement", ref).Build()
}

// UndefinedFunctionCall reports a call to a name with no matching
// function definition.
func UndefinedFunctionCall(name string, ref ast.SourceRef) CompilerError {
	return NewError(ErrorUndefinedFunctionCall, fmt.Sprintf("call to undefined function '%s'", name), ref).
		WithLength(len(name)).
		Build()
}
