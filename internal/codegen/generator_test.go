package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/stretchr/testify/require"

	"compiler/internal/optree"
	"compiler/internal/types"
)

func TestDeclareReservedFunctionsAreVariadicExternals(t *testing.T) {
	m := ir.NewModule()
	printf, scanf := DeclareReservedFunctions(m)

	require.Equal(t, "printf", printf.Name())
	require.True(t, printf.Sig.Variadic)
	require.Empty(t, printf.Blocks)

	require.Equal(t, "scanf", scanf.Name())
	require.True(t, scanf.Sig.Variadic)
	require.Empty(t, scanf.Blocks)
}

func TestStubGenerateDeclaresOneFunctionPerModuleMember(t *testing.T) {
	mod := optree.NewModule()
	fnType := types.Function([]*types.Type{types.Int64}, types.Int64)
	fnOp := optree.NewFunction("square", fnType)
	mod.AddToBody(fnOp)

	m, err := NewStub().Generate(mod)
	require.NoError(t, err)

	var found bool
	for _, f := range m.Funcs {
		if f.Name() == "square" {
			found = true
		}
	}
	require.True(t, found)

	for _, f := range m.Funcs {
		require.Empty(t, f.Blocks, "codegen stub must never emit a function body")
	}
}

func TestStubGenerateRejectsNonModuleRoot(t *testing.T) {
	notAModule := optree.NewFunction("f", types.Function(nil, types.None))
	_, err := NewStub().Generate(notAModule)
	require.Error(t, err)
}

func TestTypeOfMapsAtomicKinds(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   *types.Type
	}{
		{"none", types.None},
		{"bool", types.Bool},
		{"int64", types.Int64},
		{"float64", types.Float64},
		{"str", types.Str(8)},
		{"pointer", types.Pointer(types.Int64)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			llType, err := TypeOf(tc.in)
			require.NoError(t, err)
			require.NotNil(t, llType)
		})
	}
}

func TestTypeOfRejectsUnsupportedIntegerWidth(t *testing.T) {
	_, err := TypeOf(types.Integer(24))
	require.Error(t, err)
}
