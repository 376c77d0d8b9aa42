package main

import "github.com/krocki/cinit"

// scenario bundles one worked initializer example: the symbol being
// declared, the initializer text that follows its `=`, and the
// identifier environment the expression parser needs (empty for every
// scenario here, since none references another object).
type scenario struct {
	source string
	build  func() (*cinit.Symbol, cinit.ExprEnv, string)
}

var scenarios = []scenario{
	{
		source: "int a[3] = {1, 2, 3};",
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			sym := &cinit.Symbol{Name: "a", Type: cinit.NewArrayType(cinit.IntType, 3)}
			return sym, cinit.ExprEnv{}, "{1, 2, 3}"
		},
	},
	{
		source: "int a[5] = {[4]=9, [1]=2};",
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			sym := &cinit.Symbol{Name: "a", Type: cinit.NewArrayType(cinit.IntType, 5)}
			return sym, cinit.ExprEnv{}, "{[4]=9, [1]=2}"
		},
	},
	{
		source: "struct S { int x; char c; int y; } s = {1, 'a', 2};",
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			t := cinit.BuildStruct("S", []cinit.FieldSpec{
				{Name: "x", Type: cinit.IntType},
				{Name: "c", Type: cinit.CharType},
				{Name: "y", Type: cinit.IntType},
			})
			return &cinit.Symbol{Name: "s", Type: t}, cinit.ExprEnv{}, "{1, 'a', 2}"
		},
	},
	{
		source: "union U { struct { int x, y; } p; int q; } u = {{1,2}, .q = 3};",
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			p := cinit.BuildStruct("", []cinit.FieldSpec{
				{Name: "x", Type: cinit.IntType},
				{Name: "y", Type: cinit.IntType},
			})
			t := cinit.BuildUnion("U", []cinit.FieldSpec{
				{Name: "p", Type: p},
				{Name: "q", Type: cinit.IntType},
			})
			return &cinit.Symbol{Name: "u", Type: t}, cinit.ExprEnv{}, `{{1,2}, .q = 3}`
		},
	},
	{
		source: `char s[5] = "Hi";`,
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			sym := &cinit.Symbol{Name: "s", Type: cinit.NewArrayType(cinit.CharType, 5)}
			return sym, cinit.ExprEnv{}, `"Hi"`
		},
	},
	{
		source: "struct { int a:3, b:5, c:8; } x = {1, 2, 3};",
		build: func() (*cinit.Symbol, cinit.ExprEnv, string) {
			t := cinit.BuildStruct("", []cinit.FieldSpec{
				{Name: "a", Type: cinit.CharType, BitWidth: 3},
				{Name: "b", Type: cinit.CharType, BitWidth: 5},
				{Name: "c", Type: cinit.CharType, BitWidth: 8},
			})
			return &cinit.Symbol{Name: "x", Type: t}, cinit.ExprEnv{}, "{1, 2, 3}"
		},
	},
}
