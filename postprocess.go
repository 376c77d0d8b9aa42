package cinit

// Postprocess sorts values by (offset, field_offset), dedupes so the
// later write of an equal-key pair wins, then walks the result
// filling every gap, including mid-bit-field and trailing padding,
// with typed zero stores. Returns a freshly acquired Block holding the
// final, gap-free assignment list; the caller is responsible for
// releasing values back to the pool. cfg selects two dials: whether
// the debug coverage invariant is re-checked, and whether zero-fill
// prefers 8-byte `long` chunks.
func Postprocess(values *Block, root Target, cfg *Config) *Block {
	sortAndDedupe(values)

	out := AcquireBlock()
	cursor := root
	cursor.Offset = 0
	cursor.FieldOffset = 0
	cursor.FieldWidth = 0
	var bitUnitType *Type // storage-unit type of the bit-field the cursor is mid-way through, if any

	for _, a := range values.Code {
		t := a.Target
		switch {
		case t.Offset > cursor.Offset:
			if bitUnitType != nil {
				padBitTail(out, cursor, bitUnitType)
				cursor.Offset += bitUnitType.SizeOf()
				cursor.FieldOffset = 0
				bitUnitType = nil
			}
			if t.Offset > cursor.Offset {
				ZeroInitializeBytes(out, cursor, t.Offset-cursor.Offset, cfg)
			}
		case t.Offset == cursor.Offset && t.FieldOffset > cursor.FieldOffset:
			padBitRange(out, cursor, t.FieldOffset-cursor.FieldOffset, t.Type)
		}

		out.Code = append(out.Code, a)

		if a.Target.FieldWidth > 0 {
			bitUnitType = a.Target.Type
			cursor.Offset = a.Target.Offset
			cursor.FieldOffset = a.Target.FieldOffset + a.Target.FieldWidth
			if int64(cursor.FieldOffset) == bitUnitType.SizeOf()*8 {
				cursor.Offset += bitUnitType.SizeOf()
				cursor.FieldOffset = 0
				bitUnitType = nil
			}
		} else {
			bitUnitType = nil
			cursor.FieldOffset = 0
			cursor.Offset = a.Target.Offset + a.Target.Type.SizeOf()
		}
	}

	if bitUnitType != nil {
		padBitTail(out, cursor, bitUnitType)
		cursor.Offset += bitUnitType.SizeOf()
		cursor.FieldOffset = 0
	}
	if cursor.Offset < root.Type.SizeOf() {
		ZeroInitializeBytes(out, cursor, root.Type.SizeOf()-cursor.Offset, cfg)
	}

	if cfg == nil || cfg.GetBool("postprocess.validate") {
		assertCoverage(out.Code, root)
	}
	return out
}

// sortAndDedupe is phase 1: an in-place insertion sort by
// (offset, field_offset), acceptable since values is sized by the
// number of explicit initializer elements, followed by a linear pass
// erasing the earlier of any two equal-key assignments so that
// later-wins is preserved.
func sortAndDedupe(values *Block) {
	code := values.Code
	for i := 1; i < len(code); i++ {
		j := i
		for j > 0 && less(code[j], code[j-1]) {
			code[j], code[j-1] = code[j-1], code[j]
			j--
		}
	}

	kept := code[:0]
	for i := 0; i < len(code); i++ {
		if i+1 < len(code) && sameKey(code[i], code[i+1]) {
			if code[i].Target.Type.SizeOf() != code[i+1].Target.Type.SizeOf() {
				panic("cinit: duplicate assignment at same offset has mismatched width")
			}
			continue // erase the earlier duplicate; the later one wins
		}
		kept = append(kept, code[i])
	}
	values.Code = kept
}

func less(a, b IRAssign) bool {
	if a.Target.Offset != b.Target.Offset {
		return a.Target.Offset < b.Target.Offset
	}
	return a.Target.FieldOffset < b.Target.FieldOffset
}

func sameKey(a, b IRAssign) bool {
	return a.Target.Offset == b.Target.Offset && a.Target.FieldOffset == b.Target.FieldOffset
}

// padBitTail zero-fills the remaining bits of the storage unit (typed
// unit) the cursor is sitting in the middle of.
func padBitTail(out *Block, cursor Target, unit *Type) {
	padBitRange(out, cursor, int(unit.SizeOf()*8)-cursor.FieldOffset, unit)
}

// padBitRange zero-fills a width-bit-wide bit-field slice at the
// cursor's current (offset, field_offset), typed as unit: the
// storage-unit type of the bit-field being padded, not of the
// enclosing aggregate.
func padBitRange(out *Block, cursor Target, width int, unit *Type) {
	if width <= 0 {
		return
	}
	t := cursor
	t.Type = unit
	t.FieldWidth = width
	out.Code = append(out.Code, IRAssign{Target: t, Expr: &Expr{Kind: ExprImmediate, Type: unit}})
}

// assertCoverage reasserts the invariant a finished assignment list
// must hold: strictly increasing (offset, field_offset), adjacency
// with no gap or overlap between consecutive assignments, and full
// coverage of [0, sizeof(root)).
func assertCoverage(code []IRAssign, root Target) {
	var at int64
	var bitAt int
	for _, a := range code {
		t := a.Target
		if t.Offset < at || (t.Offset == at && t.FieldOffset < bitAt) {
			panic("cinit: postprocess invariant violated: assignment out of order")
		}
		if t.FieldWidth > 0 {
			if t.Offset != at || t.FieldOffset != bitAt {
				panic("cinit: postprocess invariant violated: bit-field gap or overlap")
			}
			bitAt += t.FieldWidth
			unitBits := int(t.Type.SizeOf() * 8)
			if bitAt == unitBits {
				at += t.Type.SizeOf()
				bitAt = 0
			}
		} else {
			if t.Offset != at || bitAt != 0 {
				panic("cinit: postprocess invariant violated: byte gap or overlap")
			}
			at += t.Type.SizeOf()
		}
	}
	if at != root.Type.SizeOf() || bitAt != 0 {
		panic("cinit: postprocess invariant violated: incomplete coverage")
	}
}
