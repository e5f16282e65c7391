package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"

	"compiler/internal/optree"
)

// CodeGenerator turns a verified, optimized Module operation into an LLVM
// module. The concrete instruction-selection backend lives outside this
// repository; Stub below only declares shape (functions, signatures, the
// two reserved externals) and leaves every function body empty.
type CodeGenerator interface {
	Generate(prog *optree.Operation) (*ir.Module, error)
}

// Stub is the seam's built-in CodeGenerator: it produces a structurally
// complete *ir.Module — the reserved externals plus one declaration per
// function in prog — with no basic blocks, so every *ir.Func it returns
// is an external declaration (len(Blocks) == 0) rather than a definition.
type Stub struct{}

// NewStub returns a Stub ready to use.
func NewStub() *Stub { return &Stub{} }

// Generate implements CodeGenerator.
func (Stub) Generate(prog *optree.Operation) (*ir.Module, error) {
	mod, ok := optree.AsModule(prog)
	if !ok {
		return nil, fmt.Errorf("codegen: expected a Module operation, got %s", prog.Name)
	}

	m := ir.NewModule()
	DeclareReservedFunctions(m)

	for _, child := range mod.Op.Body {
		fn, ok := optree.AsFunction(child)
		if !ok {
			return nil, fmt.Errorf("codegen: expected a Function operation in module body, got %s", child.Name)
		}
		if _, err := declareFunction(m, fn); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DeclareReservedFunctions declares printf and scanf (spec.md §6.3) as
// variadic externals taking a char* format string, returning i32, and
// returns both so a caller can wire calls against them. Neither is ever
// given a body: both are genuine external C library symbols the final
// linked binary resolves, not functions this compiler defines.
func DeclareReservedFunctions(m *ir.Module) (printf, scanf *ir.Func) {
	formatParam := ir.NewParam("", lltypes.NewPointer(lltypes.I8))
	printf = m.NewFunc("printf", lltypes.I32, formatParam)
	printf.Sig.Variadic = true
	scanf = m.NewFunc("scanf", lltypes.I32, ir.NewParam("", lltypes.NewPointer(lltypes.I8)))
	scanf.Sig.Variadic = true
	return printf, scanf
}

// declareFunction declares (not defines) fn's LLVM signature: one
// parameter per argument type, the mapped return type, and no blocks.
func declareFunction(m *ir.Module, fn optree.FunctionOp) (*ir.Func, error) {
	argTypes := fn.FuncType().Args()
	params := make([]*ir.Param, len(argTypes))
	for i, argType := range argTypes {
		llType, err := TypeOf(argType)
		if err != nil {
			return nil, err
		}
		params[i] = ir.NewParam(fmt.Sprintf("arg%d", i), llType)
	}
	resultType, err := TypeOf(fn.ReturnType())
	if err != nil {
		return nil, err
	}
	return m.NewFunc(fn.FuncName(), resultType, params...), nil
}
