package cinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lower is the test harness's front door: build a symbol/type, hand it
// an initializer text, and get back the final assignment list exactly
// as a real driver call site would receive it.
func lower(t *testing.T, sym *Symbol, env ExprEnv, text string) []IRAssign {
	t.Helper()
	defer FinalizePool()

	def := NewDefinition(sym)
	ts := NewTokenStream(text)
	block := AcquireBlock()
	block = Initializer(def, ts, env, block, sym)
	code := append([]IRAssign(nil), block.Code...)
	block.Code = block.Code[:0]
	ReleaseBlock(block)
	return code
}

func bitfieldStruct() *Type {
	return BuildStruct("", []FieldSpec{
		{Name: "a", Type: CharType, BitWidth: 3},
		{Name: "b", Type: CharType, BitWidth: 5},
		{Name: "c", Type: CharType, BitWidth: 8},
	})
}

func TestScenario1_SimpleArray(t *testing.T) {
	sym := &Symbol{Name: "a", Type: NewArrayType(IntType, 3)}
	code := lower(t, sym, ExprEnv{}, "{1, 2, 3}")

	require.Len(t, code, 3)
	for i, want := range []int64{1, 2, 3} {
		assert.EqualValues(t, int64(i)*4, code[i].Target.Offset)
		assert.EqualValues(t, want, code[i].Expr.IntVal)
	}
}

func TestScenario2_DesignatedArray(t *testing.T) {
	sym := &Symbol{Name: "a", Type: NewArrayType(IntType, 5)}
	code := lower(t, sym, ExprEnv{}, "{[4]=9, [1]=2}")

	require.Len(t, code, 4) // a[0]=0, a[1]=2, one 8-byte zero store over a[2..3], a[4]=9
	want := []struct{ off, size, val int64 }{
		{0, 4, 0},
		{4, 4, 2},
		{8, 8, 0},
		{16, 4, 9},
	}
	for i, w := range want {
		assert.EqualValues(t, w.off, code[i].Target.Offset)
		assert.EqualValues(t, w.size, code[i].Target.Type.SizeOf())
		assert.EqualValues(t, w.val, code[i].Expr.IntVal)
	}
}

func TestScenario3_StructWithPadding(t *testing.T) {
	st := BuildStruct("S", []FieldSpec{
		{Name: "x", Type: IntType},
		{Name: "c", Type: CharType},
		{Name: "y", Type: IntType},
	})
	sym := &Symbol{Name: "s", Type: st}
	code := lower(t, sym, ExprEnv{}, "{1, 'a', 2}")

	require.Len(t, code, 5) // x, c, the 3-byte gap as a 2-byte and a 1-byte zero store, y
	assert.EqualValues(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 1, code[0].Expr.IntVal)
	assert.EqualValues(t, 4, code[1].Target.Offset)
	assert.EqualValues(t, 'a', code[1].Expr.IntVal)
	assert.EqualValues(t, 5, code[2].Target.Offset)
	assert.EqualValues(t, 2, code[2].Target.Type.SizeOf())
	assert.EqualValues(t, 7, code[3].Target.Offset)
	assert.EqualValues(t, 1, code[3].Target.Type.SizeOf())
	assert.EqualValues(t, 8, code[4].Target.Offset)
	assert.EqualValues(t, 2, code[4].Expr.IntVal)
}

func TestScenario4_UnionLastDesignatorWins(t *testing.T) {
	p := BuildStruct("", []FieldSpec{
		{Name: "x", Type: IntType},
		{Name: "y", Type: IntType},
	})
	ut := BuildUnion("U", []FieldSpec{
		{Name: "p", Type: p},
		{Name: "q", Type: IntType},
	})
	sym := &Symbol{Name: "u", Type: ut}
	code := lower(t, sym, ExprEnv{}, "{{1,2}, .q = 3}")

	require.Len(t, code, 2) // q=3, then zero-fill of the remaining bytes up to sizeof(U)
	assert.EqualValues(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 3, code[0].Expr.IntVal)
	assert.EqualValues(t, IntType, code[0].Target.Type)
	assert.EqualValues(t, 4, code[1].Target.Offset)
}

func TestScenario5_StringLiteralShortcut(t *testing.T) {
	sym := &Symbol{Name: "s", Type: NewArrayType(CharType, 5)}
	code := lower(t, sym, ExprEnv{}, `"Hi"`)

	require.Len(t, code, 2) // one whole-object string store, then s[3], s[4] zero-fill
	assert.EqualValues(t, 0, code[0].Target.Offset)
	assert.True(t, code[0].Target.Type.IsArray())
	assert.EqualValues(t, 3, code[1].Target.Offset)
	assert.EqualValues(t, 2, code[1].Target.Type.SizeOf())
}

func TestScenario6_BitfieldPacking(t *testing.T) {
	sym := &Symbol{Name: "x", Type: bitfieldStruct()}
	code := lower(t, sym, ExprEnv{}, "{1, 2, 3}")

	require.Len(t, code, 3)
	type want struct{ off int64; fieldOff, width int; val int64 }
	wants := []want{
		{0, 0, 3, 1},
		{0, 3, 5, 2},
		{1, 0, 8, 3},
	}
	for i, w := range wants {
		assert.EqualValues(t, w.off, code[i].Target.Offset)
		assert.Equal(t, w.fieldOff, code[i].Target.FieldOffset)
		assert.Equal(t, w.width, code[i].Target.FieldWidth)
		assert.EqualValues(t, w.val, code[i].Expr.IntVal)
	}
}

func TestEmptyBracePair_IsZeroInitialization(t *testing.T) {
	st := BuildStruct("S", []FieldSpec{
		{Name: "x", Type: IntType},
		{Name: "y", Type: IntType},
	})
	sym := &Symbol{Name: "s", Type: st}
	code := lower(t, sym, ExprEnv{}, "{}")

	require.Len(t, code, 1)
	assert.EqualValues(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 8, code[0].Target.Type.SizeOf())
	assert.EqualValues(t, 0, code[0].Expr.IntVal)
}

func TestAnonymousUnionOverlapInStruct(t *testing.T) {
	inner := BuildUnion("", []FieldSpec{
		{Name: "i", Type: IntType},
		{Name: "f", Type: FloatType},
	})
	st := BuildStruct("S", []FieldSpec{
		{Name: "tag", Type: IntType},
		{Name: "i", Type: inner}, // anonymous-union style overlap: shares storage with "f"
	})
	st.Members[1].Offset = 4
	st.Members = append(st.Members, Member{Name: "f", Type: FloatType, Offset: 4})

	sym := &Symbol{Name: "s", Type: st}
	code := lower(t, sym, ExprEnv{}, "{1, 2}")

	require.Len(t, code, 2)
	assert.EqualValues(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 1, code[0].Expr.IntVal)
	assert.EqualValues(t, 4, code[1].Target.Offset)
	assert.EqualValues(t, 2, code[1].Expr.IntVal)
}

func TestFlexibleArrayLengthPatchedFromElementwiseInit(t *testing.T) {
	typ := NewArrayType(IntType, -1)
	sym := &Symbol{Name: "a", Type: typ}
	_ = lower(t, sym, ExprEnv{}, "{1, 2, 3, 4}")

	assert.EqualValues(t, 4, typ.ArrayLen())
}

func TestCallExpressionMaterializedAsTemporary(t *testing.T) {
	fn := &Symbol{Name: "f", Type: &Type{Kind: KindFunction, Elem: IntType}, Kind: SymFunction}
	sym := &Symbol{Name: "n", Type: IntType} // automatic storage: no linkage, so a call is legal
	code := lower(t, sym, ExprEnv{"f": fn}, "f()")

	require.Len(t, code, 2) // tmp := f(); n = tmp
	assert.True(t, code[0].Expr.IsCall())
	assert.False(t, code[1].Expr.IsCall())
}
