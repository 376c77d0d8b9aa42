package cinit

// ZeroInitialize emits zero-valued assignments for one object given
// its type. Structs and unions are reinterpreted as an array of long
// (when their size is a multiple of 8 and cfg allows it) or char, and
// zero-filled element by element; arrays decompose into elements;
// scalars and pointers are one zero-valued immediate. A target already
// carrying a nonzero FieldWidth (a bit-field slot) flows through the
// scalar case unchanged, since its Type is already the storage unit's
// scalar type.
func ZeroInitialize(block *Block, target Target, cfg *Config) {
	switch {
	case target.Type.IsStructOrUnion():
		unit := CharType
		if target.Type.SizeOf()%8 == 0 && preferLong(cfg) {
			unit = LongType
		}
		n := target.Type.SizeOf() / unit.SizeOf()
		base := target.Offset
		for i := int64(0); i < n; i++ {
			zeroAssign(block, Target{Sym: target.Sym, Offset: base + i*unit.SizeOf(), Type: unit, Kind: TargetDirect}, unit)
		}
	case target.Type.IsArray():
		n := target.Type.ArrayLen()
		elem := target.Type.Next()
		width := elem.SizeOf()
		base := target.Offset
		for i := int64(0); i < n; i++ {
			et := target
			et.Type = elem
			et.Offset = base + i*width
			ZeroInitialize(block, et, cfg)
		}
	case target.Type.IsIntegerOrPointer() || target.Type.Kind == KindFloat || target.Type.Kind == KindDouble:
		zeroAssign(block, target, target.Type)
	default:
		Diag().Fatalf("Cannot zero-initialize object of type %s", target.Type)
	}
}

// ZeroInitializeBytes fills n bytes starting at target.Offset,
// choosing the largest power-of-two size at most 8 that fits at each
// step (8/4/2/1, in that order) to produce compact IR, and zeroing
// each chunk through ZeroInitialize. When cfg disables
// "zerofill.prefer_long" the descent never reaches for an 8-byte
// store, matching a backend that only has word-sized stores cheaply
// available.
func ZeroInitializeBytes(block *Block, target Target, n int64, cfg *Config) {
	off := target.Offset
	end := off + n
	long := preferLong(cfg)
	for off < end {
		t := pickZeroFillType(end-off, long)
		chunk := Target{Sym: target.Sym, Offset: off, Type: t, Kind: TargetDirect}
		ZeroInitialize(block, chunk, cfg)
		off += t.SizeOf()
	}
}

func preferLong(cfg *Config) bool {
	return cfg == nil || cfg.GetBool("zerofill.prefer_long")
}

func pickZeroFillType(remaining int64, long bool) *Type {
	switch {
	case long && remaining >= 8:
		return LongType
	case remaining >= 4:
		return IntType
	case remaining >= 2:
		return ShortType
	default:
		return CharType
	}
}

func zeroAssign(block *Block, target Target, t *Type) {
	block.Code = append(block.Code, IRAssign{Target: target, Expr: &Expr{Kind: ExprImmediate, Type: t}})
}
