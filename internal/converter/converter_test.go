package converter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"compiler/internal/ast"
	"compiler/internal/opkind"
	"compiler/internal/optree"
	"compiler/internal/types"
)

func ref(line int) ast.SourceRef { return ast.SourceRef{Filename: "t.opc", Line: line, Column: 1} }

func typeNode(t ast.Type, s string, line int) *ast.Node { return ast.NewString(t, s, ref(line)) }

func argNode(typeName, varName string, line int) *ast.Node {
	n := ast.New(ast.FunctionArgument, ref(line))
	n.AddChild(typeNode(ast.TypeName, typeName, line))
	n.AddChild(typeNode(ast.VariableName, varName, line))
	return n
}

func branchRoot(stmts ...*ast.Node) *ast.Node {
	n := ast.NewBranchRoot(ast.VariablesTable{}, ref(0))
	for _, s := range stmts {
		n.AddChild(s)
	}
	return n
}

func fnDef(name, returnType string, args []*ast.Node, body *ast.Node, line int) *ast.Node {
	n := ast.New(ast.FunctionDefinition, ref(line))
	n.AddChild(typeNode(ast.FunctionName, name, line))
	argsNode := ast.New(ast.FunctionArguments, ref(line))
	for _, a := range args {
		argsNode.AddChild(a)
	}
	n.AddChild(argsNode)
	n.AddChild(typeNode(ast.FunctionReturnType, returnType, line))
	n.AddChild(body)
	return n
}

func program(fns ...*ast.Node) *ast.Node {
	n := ast.New(ast.ProgramRoot, ref(0))
	for _, f := range fns {
		n.AddChild(f)
	}
	return n
}

// stmtExpr wraps expr as a statement-position Expression node, the
// convention print() misuse detection and assignment-as-statement rely
// on.
func stmtExpr(expr *ast.Node) *ast.Node {
	n := ast.New(ast.Expression, expr.SourceRef)
	n.AddChild(expr)
	return n
}

func varDecl(typeName, name string, init *ast.Node, line int) *ast.Node {
	n := ast.New(ast.VariableDeclaration, ref(line))
	n.AddChild(typeNode(ast.TypeName, typeName, line))
	n.AddChild(typeNode(ast.VariableName, name, line))
	if init != nil {
		n.AddChild(init)
	}
	return n
}

func returnStmt(value *ast.Node, line int) *ast.Node {
	n := ast.New(ast.ReturnStatement, ref(line))
	if value != nil {
		n.AddChild(value)
	}
	return n
}

func binOp(op ast.BinaryOp, lhs, rhs *ast.Node, line int) *ast.Node {
	n := ast.NewBinaryOp(op, ref(line))
	n.AddChild(lhs)
	n.AddChild(rhs)
	return n
}

func varName(name string, line int) *ast.Node { return typeNode(ast.VariableName, name, line) }

func intLit(v int64, line int) *ast.Node { return ast.NewInt(v, ref(line)) }

func floatLit(v float64, line int) *ast.Node { return ast.NewFloat(v, ref(line)) }

func callNode(name string, args []*ast.Node, line int) *ast.Node {
	n := ast.New(ast.FunctionCall, ref(line))
	n.AddChild(typeNode(ast.FunctionName, name, line))
	argsNode := ast.New(ast.FunctionArguments, ref(line))
	for _, a := range args {
		argsNode.AddChild(a)
	}
	n.AddChild(argsNode)
	return n
}

func TestConvertFunctionReturningLiteral(t *testing.T) {
	fn := fnDef("main", "int", nil, branchRoot(returnStmt(intLit(42, 1), 1)), 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	module, ok := optree.AsModule(mod)
	require.True(t, ok)
	require.Len(t, module.Op.Body, 1)

	fnOp, ok := optree.AsFunction(module.Op.Body[0])
	require.True(t, ok)
	require.Equal(t, "main", fnOp.FuncName())
	require.True(t, fnOp.ReturnType().Equal(types.Int64))
	require.Len(t, fnOp.Op.Body, 2)

	constOp, ok := optree.AsConstant(fnOp.Op.Body[0])
	require.True(t, ok)
	require.Equal(t, int64(42), constOp.Value().AsInt())

	retOp, ok := optree.AsReturn(fnOp.Op.Body[1])
	require.True(t, ok)
	require.True(t, retOp.HasValue())
}

func TestConvertAppendsImplicitReturnWhenControlFallsThrough(t *testing.T) {
	fn := fnDef("noop", "None", nil, branchRoot(), 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	require.Len(t, fnOp.Op.Body, 1)
	retOp, ok := optree.AsReturn(fnOp.Op.Body[0])
	require.True(t, ok)
	require.False(t, retOp.HasValue())
}

func TestConvertVariableDeclarationAllocatesAndStores(t *testing.T) {
	body := branchRoot(
		varDecl("int", "x", intLit(5, 1), 1),
		returnStmt(varName("x", 2), 2),
	)
	fn := fnDef("f", "int", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	// Allocate, Constant(5), Store(init), Load(x for return), Return
	require.Len(t, fnOp.Op.Body, 5)
	_, ok := optree.AsAllocate(fnOp.Op.Body[0])
	require.True(t, ok)
	_, ok = optree.AsStore(fnOp.Op.Body[2])
	require.True(t, ok)
	_, ok = optree.AsLoad(fnOp.Op.Body[3])
	require.True(t, ok)
}

func TestConvertAssignmentStatementEmitsStore(t *testing.T) {
	body := branchRoot(
		varDecl("int", "x", intLit(1, 1), 1),
		stmtExpr(binOp(ast.Assign, varName("x", 2), intLit(9, 2), 2)),
		returnStmt(nil, 3),
	)
	fn := fnDef("f", "None", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	// Allocate, Constant(1), Store(init), Constant(9), Store(assign), Return
	require.Len(t, fnOp.Op.Body, 6)
	_, ok := optree.AsStore(fnOp.Op.Body[4])
	require.True(t, ok)
}

func TestConvertNumericPromotionInsertsIntToFloatCast(t *testing.T) {
	body := branchRoot(
		returnStmt(binOp(ast.Add, intLit(1, 1), floatLit(2.5, 1), 1), 1),
	)
	fn := fnDef("f", "float", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	castOp, ok := optree.AsArithCast(fnOp.Op.Body[2])
	require.True(t, ok)
	require.Equal(t, opkind.IntToFloat, castOp.Kind())

	arithOp, ok := optree.AsArithBinary(fnOp.Op.Body[3])
	require.True(t, ok)
	require.Equal(t, opkind.AddF, arithOp.Kind())
}

func TestConvertIfElseLowersToNestedIf(t *testing.T) {
	cond := binOp(ast.Greater, varName("x", 1), intLit(0, 1), 1)
	ifNode := ast.New(ast.IfStatement, ref(1))
	ifNode.AddChild(cond)
	ifNode.AddChild(branchRoot(returnStmt(intLit(1, 2), 2)))
	ifNode.AddChild(ast.New(ast.ElseStatement, ref(3)))
	ifNode.Children[2].AddChild(branchRoot(returnStmt(intLit(0, 3), 3)))

	body := branchRoot(
		varDecl("int", "x", intLit(5, 1), 1),
		ifNode,
	)
	fn := fnDef("f", "int", []*ast.Node{}, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	var ifOp *optree.Operation
	for _, op := range fnOp.Op.Body {
		if op.SpecId == optree.IfId {
			ifOp = op
		}
	}
	require.NotNil(t, ifOp)
	asIf, ok := optree.AsIf(ifOp)
	require.True(t, ok)
	require.NotNil(t, asIf.ThenOp())
	require.NotNil(t, asIf.ElseOp())
}

func TestConvertWhileLowersConditionAndBody(t *testing.T) {
	body := branchRoot(
		varDecl("int", "i", intLit(0, 1), 1),
	)
	whileNode := ast.New(ast.WhileStatement, ref(2))
	whileNode.AddChild(stmtExpr(binOp(ast.Less, varName("i", 2), intLit(10, 2), 2)))
	whileNode.AddChild(branchRoot(stmtExpr(binOp(ast.Assign, varName("i", 3), intLit(1, 3), 3))))
	body.AddChild(whileNode)
	body.AddChild(returnStmt(nil, 4))

	fn := fnDef("f", "None", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	var whileOp *optree.Operation
	for _, op := range fnOp.Op.Body {
		if op.SpecId == optree.WhileId {
			whileOp = op
		}
	}
	require.NotNil(t, whileOp)
	asWhile, ok := optree.AsWhile(whileOp)
	require.True(t, ok)
	condOp, ok := asWhile.ConditionOp()
	require.True(t, ok)
	require.NotEmpty(t, condOp.Op.Body)
}

func TestConvertUndeclaredVariableProducesAggregateError(t *testing.T) {
	body := branchRoot(returnStmt(varName("missing", 1), 1))
	fn := fnDef("f", "int", nil, body, 1)
	_, err := Convert(program(fn))
	require.Error(t, err)
	require.Contains(t, err.Error(), "undeclared variable 'missing'")
}

func TestConvertRedeclarationInSameScopeIsError(t *testing.T) {
	body := branchRoot(
		varDecl("int", "x", intLit(1, 1), 1),
		varDecl("int", "x", intLit(2, 2), 2),
		returnStmt(nil, 3),
	)
	fn := fnDef("f", "None", nil, body, 1)
	_, err := Convert(program(fn))
	require.Error(t, err)
	require.Contains(t, err.Error(), "already declared")
}

func TestConvertPrintOutsideStatementPositionIsError(t *testing.T) {
	body := branchRoot(
		returnStmt(binOp(ast.Add, callNode("print", []*ast.Node{intLit(1, 1)}, 1), intLit(1, 1), 1), 1),
	)
	fn := fnDef("f", "int", nil, body, 1)
	_, err := Convert(program(fn))
	require.Error(t, err)
}

func TestConvertPrintAsStatementEmitsPrintOp(t *testing.T) {
	body := branchRoot(
		stmtExpr(callNode("print", []*ast.Node{intLit(1, 1)}, 1)),
		returnStmt(nil, 2),
	)
	fn := fnDef("f", "None", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	_, ok := optree.AsPrint(fnOp.Op.Body[1])
	require.True(t, ok)
}

func TestConvertInputMisusedOutsideAssignmentIsError(t *testing.T) {
	body := branchRoot(
		returnStmt(binOp(ast.Add, callNode("input", nil, 1), intLit(1, 1), 1), 1),
	)
	fn := fnDef("f", "int", nil, body, 1)
	_, err := Convert(program(fn))
	require.Error(t, err)
}

func TestConvertInputAsDeclarationInitializerEmitsInputOp(t *testing.T) {
	body := branchRoot(
		varDecl("int", "x", stmtExpr(callNode("input", nil, 1)), 1),
		returnStmt(varName("x", 2), 2),
	)
	fn := fnDef("f", "int", nil, body, 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	_, ok := optree.AsInput(fnOp.Op.Body[1])
	require.True(t, ok)
}

func TestConvertCallToUndefinedFunctionIsError(t *testing.T) {
	body := branchRoot(returnStmt(callNode("doesNotExist", nil, 1), 1))
	fn := fnDef("f", "int", nil, body, 1)
	_, err := Convert(program(fn))
	require.Error(t, err)
	require.Contains(t, err.Error(), "doesNotExist")
}

func TestConvertForwardReferenceCallResolvesInSecondPass(t *testing.T) {
	caller := fnDef("caller", "int", nil, branchRoot(returnStmt(callNode("callee", nil, 1), 1)), 1)
	callee := fnDef("callee", "int", nil, branchRoot(returnStmt(intLit(7, 2), 2)), 2)
	mod, err := Convert(program(caller, callee))
	require.NoError(t, err)

	callerOp, _ := optree.AsFunction(mod.Body[0])
	callOp, ok := optree.AsFunctionCall(callerOp.Op.Body[0])
	require.True(t, ok)
	require.Equal(t, "callee", callOp.Name())
}

func TestConvertFunctionArgumentsBindAsNonLoadVariables(t *testing.T) {
	args := []*ast.Node{argNode("int", "a", 1)}
	fn := fnDef("f", "int", args, branchRoot(returnStmt(varName("a", 1), 1)), 1)
	mod, err := Convert(program(fn))
	require.NoError(t, err)

	fnOp, _ := optree.AsFunction(mod.Body[0])
	retOp, ok := optree.AsReturn(fnOp.Op.Body[0])
	require.True(t, ok)
	require.Same(t, fnOp.Args()[0], retOp.Value())
}
