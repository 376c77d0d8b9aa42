package cinit

// ReadInitializerElement parses one assignment-expression and leaves
// block holding it with HasInitValue set. It rejects void, enforces
// the load-time-constant rule for symbols with linkage, and, for
// symbols without linkage, materializes call expressions into a fresh
// temporary so that later reordering by offset never moves a side
// effect.
func ReadInitializerElement(def *Definition, block *Block, ts *TokenStream, env ExprEnv, sym *Symbol) *Block {
	if block.HasInitValue {
		panic("cinit: ReadInitializerElement called with a pending expression already queued")
	}

	opsBefore := len(block.Code)
	expr := ParseAssignmentExpression(ts, env)
	block.Expr = expr

	if expr.Type.IsVoid() {
		Diag().Fatalf("Cannot initialize with void value.")
	}

	if sym.Linkage.HasLinkage() {
		if len(block.Code) != opsBefore || !expr.IsIdentity() || !expr.IsLoadTimeConstant() {
			Diag().Fatalf("Initializer must be computable at load time.")
		}
	} else if expr.IsCall() {
		tmp := CreateVar(def, expr.Type)
		EvalAssign(def, block, VarDirect(tmp), expr)
		block.Expr = AsExpr(tmp)
	}

	block.HasInitValue = true
	return block
}
