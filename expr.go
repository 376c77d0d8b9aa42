package cinit

import "strconv"

// ExprKind distinguishes the identity-expression categories the
// initializer engine needs to classify: an immediate constant, a
// direct symbol reference (possibly an array/function that decays to
// an address), the address of a symbol, and a call (which is never a
// load-time constant and must be materialized into a temporary
// outside static storage).
type ExprKind int

const (
	ExprImmediate ExprKind = iota
	ExprDirect
	ExprAddress
	ExprCall
)

// Expr is the minimal expression node the parser produces: enough for
// the load-time-constant test and the string-literal shortcut,
// without a general expression evaluator (constant folding is
// explicitly out of scope).
type Expr struct {
	Kind     ExprKind
	Type     *Type
	Sym      *Symbol
	IntVal   int64
	FloatVal float64
	Args     []*Expr
}

// IsIdentity mirrors is_identity(expr): true for anything that isn't
// a call.
func (e *Expr) IsIdentity() bool { return e.Kind != ExprCall }

func (e *Expr) IsCall() bool { return e.Kind == ExprCall }

// IsLoadTimeConstant mirrors initializer.c's is_loadtime_constant: an
// identity expression that is either an immediate, an address of a
// linked symbol, or a direct array/function reference (which decays
// to an address) of a linked symbol.
func (e *Expr) IsLoadTimeConstant() bool {
	if !e.IsIdentity() {
		return false
	}
	switch e.Kind {
	case ExprImmediate:
		return true
	case ExprDirect:
		if !e.Type.IsArray() && !e.Type.IsFunction() {
			return false
		}
		fallthrough
	case ExprAddress:
		return e.Sym != nil && e.Sym.Linkage.HasLinkage()
	default:
		return false
	}
}

// ExprEnv resolves identifiers that an initializer's expression text
// refers to, the tiny slice of a real symbol table the parser needs.
// Tests and the CLI populate it with whichever globals/functions a
// given scenario's initializer text mentions.
type ExprEnv map[string]*Symbol

var literalSeq int

func newLiteralSymbol(text string) *Symbol {
	literalSeq++
	return &Symbol{
		Name:    ".L" + strconv.Itoa(literalSeq),
		Type:    NewArrayType(CharType, int64(len(text))+1),
		Linkage: LinkInternal,
		Kind:    SymLiteral,
	}
}

// ParseAssignmentExpression reads exactly one expression from ts and
// returns it. The grammar supported is deliberately narrow: literals,
// string literals, identifiers, &identifier, parenthesized
// sub-expressions, and calls, since expression parsing beyond what
// the initializer engine needs to classify is out of scope.
func ParseAssignmentExpression(ts *TokenStream, env ExprEnv) *Expr {
	if ts.Peek().Kind == TokAmp {
		ts.Next()
		inner := parsePrimaryExpr(ts, env)
		if inner.Kind != ExprDirect {
			Diag().Fatalf("Cannot take the address of a non-symbol expression @ %s", ts.Peek().Span.Start)
		}
		return &Expr{Kind: ExprAddress, Type: NewPointerType(inner.Type), Sym: inner.Sym}
	}
	return parsePrimaryExpr(ts, env)
}

func parsePrimaryExpr(ts *TokenStream, env ExprEnv) *Expr {
	t := ts.Peek()
	switch t.Kind {
	case TokInt:
		ts.Next()
		return &Expr{Kind: ExprImmediate, Type: IntType, IntVal: t.Int}
	case TokChar:
		ts.Next()
		return &Expr{Kind: ExprImmediate, Type: CharType, IntVal: t.Int}
	case TokFloat:
		ts.Next()
		v, _ := strconv.ParseFloat(t.Text, 64)
		return &Expr{Kind: ExprImmediate, Type: DoubleType, FloatVal: v}
	case TokString:
		ts.Next()
		sym := newLiteralSymbol(t.Text)
		return &Expr{Kind: ExprDirect, Type: sym.Type, Sym: sym}
	case TokLParen:
		ts.Next()
		inner := ParseAssignmentExpression(ts, env)
		ts.Consume(TokRParen)
		return inner
	case TokIdent:
		ts.Next()
		sym, ok := env[t.Text]
		if !ok {
			Diag().Fatalf("Undefined identifier `%s` @ %s", t.Text, t.Span.Start)
		}
		if ts.Peek().Kind == TokLParen {
			return parseCall(ts, env, sym)
		}
		return &Expr{Kind: ExprDirect, Type: sym.Type, Sym: sym}
	default:
		Diag().Fatalf("Unexpected token %s in initializer expression @ %s", t.Kind, t.Span.Start)
		panic("unreachable")
	}
}

func parseCall(ts *TokenStream, env ExprEnv, callee *Symbol) *Expr {
	ts.Consume(TokLParen)
	var args []*Expr
	if ts.Peek().Kind != TokRParen {
		for {
			args = append(args, ParseAssignmentExpression(ts, env))
			if ts.Peek().Kind == TokComma {
				ts.Next()
				continue
			}
			break
		}
	}
	ts.Consume(TokRParen)
	retType := callee.Type
	if callee.Type.IsFunction() {
		retType = callee.Type.Elem
	}
	return &Expr{Kind: ExprCall, Type: retType, Sym: callee, Args: args}
}

// ParseConstantExpression is used by array designators: it evaluates
// a restricted literal/parenthesized/+- integer grammar without
// delegating to a general constant folder.
func ParseConstantExpression(ts *TokenStream) int64 {
	return parseConstSum(ts)
}

func parseConstSum(ts *TokenStream) int64 {
	v := parseConstUnary(ts)
	for {
		switch ts.Peek().Kind {
		case TokPlus:
			ts.Next()
			v += parseConstUnary(ts)
		case TokMinus:
			ts.Next()
			v -= parseConstUnary(ts)
		default:
			return v
		}
	}
}

func parseConstUnary(ts *TokenStream) int64 {
	if ts.Peek().Kind == TokMinus {
		ts.Next()
		return -parseConstUnary(ts)
	}
	return parseConstPrimary(ts)
}

func parseConstPrimary(ts *TokenStream) int64 {
	t := ts.Peek()
	switch t.Kind {
	case TokInt:
		ts.Next()
		return t.Int
	case TokChar:
		ts.Next()
		return t.Int
	case TokLParen:
		ts.Next()
		v := parseConstSum(ts)
		ts.Consume(TokRParen)
		return v
	default:
		Diag().Fatalf("Array designator must have integer value.")
		panic("unreachable")
	}
}
