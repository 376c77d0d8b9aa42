package cinit

// accessMember descends into member from target, at the given filled
// (pre-member) base offset. Only Type, FieldOffset, FieldWidth, and
// Offset change; the owning Sym and Kind are unchanged, since a
// Target is otherwise a value object.
func accessMember(target Target, member *Member, filled int64) Target {
	target.Type = member.Type
	target.FieldOffset = member.FieldOffset
	target.FieldWidth = member.FieldWidth
	target.Offset = filled + member.Offset
	return target
}

// ctx bundles the parse/evaluation collaborators every recursive
// member/object walk needs to pass down: the token stream, the
// identifier environment for the expression parser, and the
// Definition that scopes any call-materialization temporaries.
type ctx struct {
	ts  *TokenStream
	env ExprEnv
	def *Definition
}

// assignInitializerElement moves the pending expression from block
// into one IR_ASSIGN on values, addressed at target. Any statements
// the element reader queued directly onto block (a materialized call
// temporary) move over first, so they still precede the assignment
// that consumes them.
func assignInitializerElement(c *ctx, block, values *Block, target Target) {
	if target.Kind != TargetDirect {
		panic("cinit: assignInitializerElement on a non-direct target")
	}
	if !block.HasInitValue {
		panic("cinit: assignInitializerElement with no pending expression")
	}
	movePendingCode(block, values)
	EvalAssign(c.def, values, target, block.Expr)
	block.HasInitValue = false
}

// movePendingCode relocates any IR_ASSIGN statements the element
// reader queued onto block (call-materialization temporaries) onto
// values, preserving their order ahead of whatever assignment is
// about to be appended there.
func movePendingCode(block, values *Block) {
	if len(block.Code) == 0 {
		return
	}
	values.Code = append(values.Code, block.Code...)
	block.Code = block.Code[:0]
}

// InitializeMember is the central recursion point for any sub-object.
// It decides brace vs brace-elision, and for scalars reads (or reuses
// a pending) element and assigns it directly.
func InitializeMember(c *ctx, block, values *Block, target Target) *Block {
	if target.Kind != TargetDirect {
		panic("cinit: InitializeMember on a non-direct target")
	}

	switch {
	case target.Type.IsStructOrUnion():
		if !block.HasInitValue && c.ts.Peek().Kind == TokLBrace {
			c.ts.Next()
			if c.ts.Peek().Kind != TokRBrace { // `{}` : an empty brace pair is pure zero-fill
				block = initializeStructOrUnion(c, block, values, target, stateCurrent)
			}
			if c.ts.Peek().Kind == TokComma {
				c.ts.Next()
			}
			c.ts.Consume(TokRBrace)
		} else {
			block = initializeStructOrUnion(c, block, values, target, stateDesignator)
		}
	case target.Type.IsArray():
		if target.Type.SizeOf() == 0 {
			Diag().Fatalf("Invalid initialization of flexible array member.")
		}
		if !block.HasInitValue && c.ts.Peek().Kind == TokLBrace {
			c.ts.Next()
			if c.ts.Peek().Kind != TokRBrace { // `{}` : an empty brace pair is pure zero-fill
				block = InitializeArray(c, block, values, target, stateCurrent)
			}
			if c.ts.Peek().Kind == TokComma {
				c.ts.Next()
			}
			c.ts.Consume(TokRBrace)
		} else {
			block = InitializeArray(c, block, values, target, stateDesignator)
		}
	default:
		if !block.HasInitValue {
			if c.ts.Peek().Kind == TokLBrace {
				c.ts.Next()
				block = ReadInitializerElement(c.def, block, c.ts, c.env, target.Sym)
				c.ts.Consume(TokRBrace)
			} else {
				block = ReadInitializerElement(c.def, block, c.ts, c.env, target.Sym)
			}
		}
		assignInitializerElement(c, block, values, target)
	}
	return block
}

// initializeStructOrUnion reads the first element eagerly (to catch a
// whole-object aggregate assignment), then dispatches to the union or
// struct walk.
func initializeStructOrUnion(c *ctx, block, values *Block, target Target, state objectState) *Block {
	if !target.Type.IsStructOrUnion() || target.Type.NMembers() == 0 {
		panic("cinit: initializeStructOrUnion on a non-aggregate or empty-aggregate type")
	}

	if !block.HasInitValue {
		switch c.ts.Peek().Kind {
		case TokDot, TokLBrace, TokLBracket:
			// fall through: a designator or nested brace belongs to the sub-walk.
		default:
			block = ReadInitializerElement(c.def, block, c.ts, c.env, target.Sym)
		}
	}

	if block.HasInitValue && target.Type.IsCompatibleUnqualified(block.Expr.Type) {
		movePendingCode(block, values)
		EvalAssign(c.def, values, target, block.Expr)
		block.HasInitValue = false
		return block
	}
	if target.Type.IsUnion() {
		return InitializeUnion(c, block, values, target, state)
	}
	return InitializeStruct(c, block, values, target, state)
}

// InitializeObject is the brace-or-not entry used when the top-level
// driver must recurse into a nested `{` before it knows whether the
// target is scalar.
func InitializeObject(c *ctx, block, values *Block, target Target) *Block {
	if target.Kind != TargetDirect {
		panic("cinit: InitializeObject on a non-direct target")
	}
	if block.HasInitValue {
		panic("cinit: InitializeObject called with a pending expression already queued")
	}

	switch {
	case c.ts.Peek().Kind == TokLBrace:
		c.ts.Next()
		if c.ts.Peek().Kind != TokRBrace { // `{}` : an empty brace pair is pure zero-fill
			switch {
			case target.Type.IsStructOrUnion():
				block = initializeStructOrUnion(c, block, values, target, stateCurrent)
			case target.Type.IsArray():
				block = InitializeArray(c, block, values, target, stateCurrent)
			default:
				block = InitializeObject(c, block, values, target)
			}
		}
		if c.ts.Peek().Kind == TokComma {
			c.ts.Next()
		}
		c.ts.Consume(TokRBrace)
	case target.Type.IsArray():
		block = InitializeArray(c, block, values, target, stateMember)
	default:
		block = ReadInitializerElement(c.def, block, c.ts, c.env, target.Sym)
		assignInitializerElement(c, block, values, target)
	}
	return block
}
