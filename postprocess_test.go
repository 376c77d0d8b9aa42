package cinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imm(off int64, t *Type, v int64) IRAssign {
	return IRAssign{Target: Target{Offset: off, Type: t, Kind: TargetDirect}, Expr: &Expr{Kind: ExprImmediate, Type: t, IntVal: v}}
}

func TestPostprocess_SourceOrderIrrelevantExceptDuplicates(t *testing.T) {
	root := Target{Type: NewArrayType(IntType, 3), Kind: TargetDirect}

	forward := AcquireBlock()
	forward.Code = []IRAssign{imm(0, IntType, 1), imm(4, IntType, 2), imm(8, IntType, 3)}
	reversed := AcquireBlock()
	reversed.Code = []IRAssign{imm(8, IntType, 3), imm(0, IntType, 1), imm(4, IntType, 2)}

	a := Postprocess(forward, root, nil)
	b := Postprocess(reversed, root, nil)

	require.Equal(t, len(a.Code), len(b.Code))
	for i := range a.Code {
		assert.Equal(t, a.Code[i].Target.Offset, b.Code[i].Target.Offset)
		assert.Equal(t, a.Code[i].Expr.IntVal, b.Code[i].Expr.IntVal)
	}
}

func TestPostprocess_LaterDuplicateWins(t *testing.T) {
	root := Target{Type: IntType, Kind: TargetDirect}
	values := AcquireBlock()
	values.Code = []IRAssign{imm(0, IntType, 1), imm(0, IntType, 99)}

	out := Postprocess(values, root, nil)
	require.Len(t, out.Code, 1)
	assert.EqualValues(t, 99, out.Code[0].Expr.IntVal)
}

func TestPostprocess_FillsGapsAndTrailingPadding(t *testing.T) {
	root := Target{Type: NewArrayType(IntType, 3), Kind: TargetDirect} // 12 bytes
	values := AcquireBlock()
	values.Code = []IRAssign{imm(0, IntType, 7)} // only a[0] written

	out := Postprocess(values, root, nil)
	require.Len(t, out.Code, 2) // a[0]=7, then one 8-byte zero-fill for a[1..2]
	assert.EqualValues(t, 0, out.Code[0].Target.Offset)
	assert.EqualValues(t, 4, out.Code[1].Target.Offset)
	assert.EqualValues(t, 8, out.Code[1].Target.Type.SizeOf())
}

func TestPostprocess_PreferLongDisabledSplitsIntoIntChunks(t *testing.T) {
	root := Target{Type: NewArrayType(IntType, 2), Kind: TargetDirect} // 8 bytes, fully unwritten
	values := AcquireBlock()

	cfg := NewConfig()
	cfg.SetBool("zerofill.prefer_long", false)
	out := Postprocess(values, root, cfg)

	require.Len(t, out.Code, 2) // two 4-byte int chunks, not one 8-byte long chunk
	assert.EqualValues(t, 0, out.Code[0].Target.Offset)
	assert.EqualValues(t, 4, out.Code[0].Target.Type.SizeOf())
	assert.EqualValues(t, 4, out.Code[1].Target.Offset)
	assert.EqualValues(t, 4, out.Code[1].Target.Type.SizeOf())
}

func TestPostprocess_BitfieldTailAndBytePadding(t *testing.T) {
	st := bitfieldStruct() // a:3, b:5 share byte 0; c:8 is byte 1; struct size 2
	root := Target{Type: st, Kind: TargetDirect}
	values := AcquireBlock()
	values.Code = []IRAssign{
		{Target: Target{Offset: 0, Type: CharType, FieldOffset: 0, FieldWidth: 3, Kind: TargetDirect}, Expr: &Expr{Kind: ExprImmediate, Type: CharType, IntVal: 1}},
		// b (bits 3..8) and c's whole byte are left unset, forcing both pad paths.
	}

	out := Postprocess(values, root, nil)
	require.True(t, len(out.Code) >= 2)
	assert.EqualValues(t, 0, out.Code[0].Target.Offset)
	assert.Equal(t, 0, out.Code[0].Target.FieldOffset)
	// the remaining 5 bits of byte 0 get zero-filled before byte 1 starts.
	assert.EqualValues(t, 0, out.Code[1].Target.Offset)
	assert.Equal(t, 3, out.Code[1].Target.FieldOffset)
	assert.Equal(t, 5, out.Code[1].Target.FieldWidth)
}
