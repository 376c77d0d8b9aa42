package cinit

// objectState is a three-valued current-object-state tag, threaded
// through recursive calls by value (never as a global).
type objectState int

const (
	stateCurrent    objectState = iota // directly inside this aggregate's own brace pair
	stateDesignator                    // entered via a designator chain; the brace pair is further out
	stateMember                        // walking positional elements of an outer aggregate, no own braces
)

// nextElement decides whether a struct or union walk continues past a
// comma: peek `,` then the token after it.
//   - `,}` → false: a trailing comma before the closing brace ends the list.
//   - `,.` → continuation only if state == stateCurrent; a designator
//     at any other nesting belongs to an enclosing aggregate, so the
//     comma is left unconsumed.
//   - anything else after `,` → consume the comma, continue.
func nextElement(ts *TokenStream, state objectState) bool {
	if ts.Peek().Kind != TokComma {
		return false
	}
	switch ts.PeekN(2).Kind {
	case TokRBrace:
		return false
	case TokDot:
		if state != stateCurrent {
			return false
		}
	}
	ts.Next()
	return true
}

// hasNextArrayElement is the array-specific variant of nextElement:
// a `[` designator at the current nesting is reported back via
// isDesignator so the array walk's known-length early-exit can be
// suppressed when an explicit index extends past it.
func hasNextArrayElement(ts *TokenStream, state objectState) (hasNext bool, isDesignator bool) {
	if ts.Peek().Kind != TokComma {
		return false, false
	}
	switch ts.PeekN(2).Kind {
	case TokRBrace, TokDot:
		return false, false
	case TokLBracket:
		if state != stateCurrent {
			return false, false
		}
		return true, true
	}
	return true, false
}
