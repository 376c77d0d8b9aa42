package cinit

// InitializeArray lowers an array initializer: the string-literal
// shortcut, incomplete-length (flexible array) patching, and the
// general elementwise walk with `[index]` designators.
func InitializeArray(c *ctx, block, values *Block, target Target, state objectState) *Block {
	if !target.Type.IsArray() || target.Kind != TargetDirect {
		panic("cinit: InitializeArray on a non-array or non-direct target")
	}

	i, hi := int64(0), int64(0)
	typ := target.Type
	count := typ.ArrayLen()
	elem := typ.Next()
	width := elem.SizeOf()
	initial := target.Offset

	// Need to read the expression to tell a string constant apart from
	// an elementwise brace list.
	if !block.HasInitValue {
		switch c.ts.Peek().Kind {
		case TokDot, TokLBrace, TokLBracket:
			// fall through to the elementwise walk.
		default:
			block = ReadInitializerElement(c.def, block, c.ts, c.env, target.Sym)
		}
	}

	if block.HasInitValue && isStringLiteralShortcut(elem, block.Expr) {
		movePendingCode(block, values)
		litTarget := target
		litLen := block.Expr.Type.ArrayLen()
		if block.Expr.Type.SizeOf() < target.Type.SizeOf() {
			// Narrow the write to the literal's own size so the
			// post-processor zero-fills whatever tail the destination
			// array has beyond it.
			litTarget.Type = block.Expr.Type
		}
		EvalAssign(c.def, values, litTarget, block.Expr)
		block.HasInitValue = false
		hi = litLen // a string-literal initializer patches a flexible array to the literal's length.
	} else {
		target.Type = elem
		for {
			if tryParseIndex(c.ts, &i) && c.ts.Peek().Kind == TokEquals {
				c.ts.Next()
			}
			target.Offset = initial + i*width
			block = InitializeMember(c, block, values, target)
			i++
			if i > hi {
				hi = i
			}
			hasNext, isDesignator := hasNextArrayElement(c.ts, state)
			if !hasNext {
				break
			}
			if !isDesignator && count >= 0 && hi >= count {
				break
			}
			c.ts.Consume(TokComma)
		}
	}

	if typ.SizeOf() == 0 {
		target.Sym.Type.SetArrayLength(hi)
	}
	return block
}

// isStringLiteralShortcut reports whether the pending expression is an
// identity reference to a symbol of literal kind whose type is an
// array, with an element type that is itself a character type.
func isStringLiteralShortcut(elem *Type, expr *Expr) bool {
	return elem.IsChar() &&
		expr.IsIdentity() &&
		expr.Type.IsArray() &&
		expr.Kind == ExprDirect &&
		expr.Sym != nil &&
		expr.Sym.Kind == SymLiteral
}

// tryParseIndex implements try_parse_index: consumes a leading
// `[ constant-expression ]` designator if present.
func tryParseIndex(ts *TokenStream, index *int64) bool {
	if ts.Peek().Kind != TokLBracket {
		return false
	}
	ts.Next()
	n := ParseConstantExpression(ts)
	ts.Consume(TokRBracket)
	*index = n
	return true
}
