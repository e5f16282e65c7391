package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compiler/internal/ast"
)

func TestReporterFormatsUndeclaredVariable(t *testing.T) {
	source := "fn test() -> None {\n  x = unknownVar;\n}"
	reporter := NewReporter("test.opc", source)

	err := UndeclaredVariable("unknownVar", ast.SourceRef{Filename: "test.opc", Line: 2, Column: 7})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndeclaredVariable+"]")
	assert.Contains(t, formatted, "undeclared variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "test.opc:2:7")
	assert.Contains(t, formatted, "declare the variable")
}

func TestRedeclaredVariableError(t *testing.T) {
	ref := ast.SourceRef{Filename: "t", Line: 1, Column: 5}
	err := RedeclaredVariable("x", ref)
	assert.Equal(t, ErrorRedeclaredVariable, err.Code)
	assert.Contains(t, err.Message, "'x'")
}

func TestUndefinedFunctionCallError(t *testing.T) {
	ref := ast.SourceRef{Filename: "t", Line: 1, Column: 1}
	err := UndefinedFunctionCall("sender", ref)
	assert.Equal(t, ErrorUndefinedFunctionCall, err.Code)
	assert.Contains(t, err.Message, "sender")
}

func TestMisusedInputAndPrintErrors(t *testing.T) {
	ref := ast.SourceRef{Filename: "t", Line: 1, Column: 1}
	assert.Equal(t, ErrorMisusedInput, MisusedInput(ref).Code)
	assert.Equal(t, ErrorMisusedPrint, MisusedPrint(ref).Code)
}

func TestBufferRaisesAggregateError(t *testing.T) {
	var b Buffer
	assert.True(t, b.Empty())
	assert.Nil(t, b.Raise())

	ref := ast.SourceRef{Filename: "t", Line: 1, Column: 1}
	b.Push(UndeclaredVariable("a", ref))
	b.Push(RedeclaredVariable("b", ref))

	err := b.Raise()
	assert.NotNil(t, err)
	agg, ok := err.(AggregateError)
	assert.True(t, ok)
	assert.Len(t, agg.Errors, 2)
	assert.Contains(t, agg.Error(), "a")
	assert.Contains(t, agg.Error(), "b")
}

func TestFormatAllRendersEveryDiagnostic(t *testing.T) {
	reporter := NewReporter("t", "x = 1;\ny = 2;")
	agg := AggregateError{Errors: []CompilerError{
		UndeclaredVariable("x", ast.SourceRef{Filename: "t", Line: 1, Column: 1}),
		UndeclaredVariable("y", ast.SourceRef{Filename: "t", Line: 2, Column: 1}),
	}}
	out := reporter.FormatAll(agg)
	assert.Contains(t, out, "'x'")
	assert.Contains(t, out, "undeclared variable 'y'")
}

func TestWarningLevelFormatting(t *testing.T) {
	reporter := NewReporter("t", "test")
	ref := ast.SourceRef{Filename: "t", Line: 1, Column: 1}
	warningErr := CompilerError{Level: Warning, Message: "unused result", Ref: ref}
	formatted := reporter.FormatError(warningErr)
	assert.Contains(t, formatted, "warning:")
	assert.Contains(t, formatted, "unused result")
}
