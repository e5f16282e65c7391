package errors

// Error codes, grouped by the ranges reserved in spec §7:
//
//	E0001-E0099: Converter errors (syntax tree -> operation tree lowering)
//	E0100-E0199: Semantizer errors (trait-verification failures)
//
// Internal invariant violations (e.g. erasing an operation with live
// uses, see optree.Operation.EraseSelf) are logic bugs, never
// user-facing, and are raised as panics rather than CompilerErrors —
// they have no code here.

const (
	// Converter errors

	ErrorUndeclaredVariable    = "E0001"
	ErrorRedeclaredVariable    = "E0002"
	ErrorUnsupportedExpression = "E0003"
	ErrorInvalidAssignTarget   = "E0004"
	ErrorMisusedInput          = "E0005"
	ErrorMisusedPrint          = "E0006"
	ErrorUndefinedFunctionCall = "E0007"

	// Semantizer errors: every trait-verification failure shares one
	// code, since the diagnostic message itself (built by the failing
	// trait) is what distinguishes one failure from another.

	ErrorTraitVerificationFailed = "E0100"
)

// Description returns a human-readable description of an error code.
func Description(code string) string {
	switch code {
	case ErrorUndeclaredVariable:
		return "variable used but not declared in any enclosing scope"
	case ErrorRedeclaredVariable:
		return "variable already declared in this scope"
	case ErrorUnsupportedExpression:
		return "syntax-tree node has no supported lowering"
	case ErrorInvalidAssignTarget:
		return "left-hand side of an assignment is not a variable"
	case ErrorMisusedInput:
		return "input() used outside an isolated assignment or declaration initializer"
	case ErrorMisusedPrint:
		return "print(...) used outside of a statement position"
	case ErrorUndefinedFunctionCall:
		return "call to a function with no matching definition"
	case ErrorTraitVerificationFailed:
		return "operation failed a semantic verification trait"
	default:
		return "unknown error code"
	}
}
