package cinit

// Initializer is the engine's one public entry: given a symbol and
// the token stream positioned at its initializer, it consumes tokens
// up to and including the closing brace (or a single scalar
// expression) and appends the resulting assignments to block.
//
// Two paths: a braced or array initializer is lowered into a scratch
// values buffer, recursed into through the member dispatcher, then
// reordered by the post-processor before being concatenated onto the
// caller's block; a bare scalar initializer is read and assigned
// directly, since a single assignment needs no reordering.
func Initializer(def *Definition, ts *TokenStream, env ExprEnv, block *Block, sym *Symbol) *Block {
	target := VarDirect(sym)
	c := &ctx{ts: ts, env: env, def: def}

	if target.Type.IsArray() || ts.Peek().Kind == TokLBrace {
		work := AcquireBlock()
		values := AcquireBlock()
		work = InitializeObject(c, work, values, target)
		if work.HasInitValue {
			panic("cinit: Initializer left a pending expression unconsumed")
		}

		result := Postprocess(values, target, def.Cfg)
		block.Code = append(block.Code, result.Code...)

		result.Code = result.Code[:0]
		ReleaseBlock(result)
		ReleaseBlock(values)
		ReleaseBlock(work)
		return block
	}

	work := AcquireBlock()
	work = ReadInitializerElement(def, work, ts, env, sym)
	movePendingCode(work, block)
	EvalAssign(def, block, target, work.Expr)
	work.HasInitValue = false
	ReleaseBlock(work)
	return block
}
