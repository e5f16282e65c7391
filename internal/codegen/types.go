// Package codegen is the thin seam between a finished, optimized
// operation tree and the external LLVM code generator (spec.md §1, §6.3):
// it declares the module shape and the two reserved external functions
// the language's print()/input() builtins lower to, using
// github.com/llir/llvm's vocabulary. It never selects or emits a single
// instruction — that remains the out-of-repo backend's job.
package codegen

import (
	"fmt"

	lltypes "github.com/llir/llvm/ir/types"

	"compiler/internal/types"
)

// TypeOf maps an operation-tree type to its LLVM counterpart. Str uses an
// i8 pointer regardless of charWidth, matching the reserved printf/scanf
// functions' own char* convention; Tuple has no LLVM shape yet, since no
// SPEC_FULL component produces a Tuple-typed value reaching codegen.
func TypeOf(t *types.Type) (lltypes.Type, error) {
	switch t.Kind() {
	case types.KindNone:
		return lltypes.Void, nil
	case types.KindBool:
		return lltypes.I1, nil
	case types.KindInteger:
		return integerType(t.Width())
	case types.KindFloat:
		return floatType(t.Width())
	case types.KindStr:
		return lltypes.NewPointer(lltypes.I8), nil
	case types.KindPointer:
		elem, err := TypeOf(t.Pointee())
		if err != nil {
			return nil, err
		}
		return lltypes.NewPointer(elem), nil
	case types.KindFunction:
		return functionType(t)
	default:
		return nil, fmt.Errorf("codegen: no LLVM type for %s", t)
	}
}

func integerType(width uint32) (lltypes.Type, error) {
	switch width {
	case 8:
		return lltypes.I8, nil
	case 16:
		return lltypes.I16, nil
	case 32:
		return lltypes.I32, nil
	case 64:
		return lltypes.I64, nil
	default:
		return nil, fmt.Errorf("codegen: unsupported integer width %d", width)
	}
}

func floatType(width uint32) (lltypes.Type, error) {
	switch width {
	case 32:
		return lltypes.Float, nil
	case 64:
		return lltypes.Double, nil
	default:
		return nil, fmt.Errorf("codegen: unsupported float width %d", width)
	}
}

func functionType(t *types.Type) (lltypes.Type, error) {
	result, err := TypeOf(t.Result())
	if err != nil {
		return nil, err
	}
	params := make([]lltypes.Type, len(t.Args()))
	for i, arg := range t.Args() {
		p, err := TypeOf(arg)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return lltypes.NewFunc(result, params...), nil
}
