package cinit

// InitializeUnion lowers a union initializer: a union has one active
// member at a time. With designators, the LAST designated member wins
// and any earlier partial initializer is discarded. Every iteration
// writes into one scratch buffer, which is emptied before each
// iteration runs; only the last iteration's contents are
// concatenated onto values.
func InitializeUnion(c *ctx, block, values *Block, target Target, state objectState) *Block {
	if !target.Type.IsUnion() || target.Type.NMembers() == 0 {
		panic("cinit: InitializeUnion on a non-union or empty union type")
	}

	filled := target.Offset
	typ := target.Type
	scratch := AcquireBlock()
	done := false

	for {
		switch {
		case c.ts.Peek().Kind == TokDot:
			c.ts.Next()
			name := c.ts.Consume(TokIdent).Text
			member, _, ok := typ.FindMember(name, 0)
			if !ok {
				Diag().Fatalf("%s has no member named %s.", typ, name)
			}
			target = accessMember(target, member, filled)
			if c.ts.Peek().Kind == TokEquals {
				c.ts.Next()
			}
		case !done:
			member := typ.Member(0)
			target = accessMember(target, member, filled)
		default:
			goto exit
		}

		scratch.Code = scratch.Code[:0]
		block = InitializeMember(c, block, scratch, target)
		done = true

		if !nextElement(c.ts, state) {
			break
		}
	}
exit:
	values.Code = append(values.Code, scratch.Code...)
	scratch.Code = scratch.Code[:0]
	ReleaseBlock(scratch)
	return block
}
