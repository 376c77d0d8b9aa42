package cinit

// InitializeStruct walks members left-to-right, either designated
// (`.name`) or positional. Positional walking skips any member whose
// (offset, field_offset) equals the previous member's: the
// anonymous-union-inside-struct overlap case, where the first
// overlapping member acts as the positional representative.
func InitializeStruct(c *ctx, block, values *Block, target Target, state objectState) *Block {
	if !target.Type.IsStruct() || target.Type.NMembers() == 0 {
		panic("cinit: InitializeStruct on a non-struct or empty struct type")
	}

	var prev *Member
	filled := target.Offset
	typ := target.Type
	m := typ.NMembers()
	i := 0

	for {
		if !block.HasInitValue && c.ts.Peek().Kind == TokDot {
			c.ts.Next()
			name := c.ts.Consume(TokIdent).Text
			member, idx, ok := typ.FindMember(name, i)
			if !ok {
				Diag().Fatalf("%s has no member named %s.", typ, name)
			}
			i = idx
			target = accessMember(target, member, filled)
			if c.ts.Peek().Kind == TokEquals {
				c.ts.Next()
			}
			block = InitializeMember(c, block, values, target)
			prev = member
			i++
		} else {
			var member *Member
			for {
				member = typ.Member(i)
				i++
				if prev == nil || prev.Offset != member.Offset || prev.FieldOffset != member.FieldOffset {
					break
				}
			}
			prev = member
			target = accessMember(target, member, filled)
			block = InitializeMember(c, block, values, target)
			if i >= m {
				break
			}
		}

		if !nextElement(c.ts, state) {
			break
		}
	}
	return block
}
