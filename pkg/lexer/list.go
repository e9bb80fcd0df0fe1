package lexer

import "strings"

// List is a cursor over a token sequence.
//
// Components follow one convention: on entry Idx points at the first token
// they may consume, and on return Idx points at the last token they consumed,
// so that the caller's loop increment lands on the first unconsumed token.
type List struct {
	Tokens []*Token
	Idx    int
	Count  int
}

// NewList wraps tokens in a List positioned at the first token.
func NewList(tokens []*Token) *List {
	return &List{Tokens: tokens, Count: len(tokens)}
}

// Current returns the token under the cursor, or nil past the end.
func (l *List) Current() *Token {
	if l.Idx < 0 || l.Idx >= l.Count {
		return nil
	}
	return l.Tokens[l.Idx]
}

// Done reports whether the cursor is past the last token.
func (l *List) Done() bool {
	return l.Idx >= l.Count
}

// Advance moves the cursor forward by one token.
func (l *List) Advance() {
	if l.Idx < l.Count {
		l.Idx++
	}
}

// Peek returns the token offset positions away from the cursor without
// moving it, or nil when out of range.
func (l *List) Peek(offset int) *Token {
	i := l.Idx + offset
	if i < 0 || i >= l.Count {
		return nil
	}
	return l.Tokens[i]
}

// Rewind moves the cursor to idx, clamped to the list bounds.
func (l *List) Rewind(idx int) {
	switch {
	case idx < 0:
		l.Idx = 0
	case idx > l.Count:
		l.Idx = l.Count
	default:
		l.Idx = idx
	}
}

// Next returns the next significant token starting at the cursor and leaves
// the cursor just past it. It returns nil when none is left.
func (l *List) Next() *Token {
	for ; l.Idx < l.Count; l.Idx++ {
		if tok := l.Tokens[l.Idx]; tok.IsSignificant() {
			l.Idx++
			return tok
		}
	}
	return nil
}

// NextOfType returns the next significant token if it has type typ.
// Otherwise the cursor is left on that token and nil is returned.
func (l *List) NextOfType(typ TokenType) *Token {
	start := l.Idx
	tok := l.Next()
	if tok == nil || tok.Type != typ {
		if tok != nil {
			l.Idx--
		} else {
			l.Idx = start
		}
		return nil
	}
	return tok
}

// NextOfTypeAndValue is NextOfType restricted to tokens with the given value.
func (l *List) NextOfTypeAndValue(typ TokenType, value string) *Token {
	start := l.Idx
	tok := l.Next()
	if tok == nil || tok.Type != typ || tok.Value != value {
		if tok != nil {
			l.Idx--
		} else {
			l.Idx = start
		}
		return nil
	}
	return tok
}

// PeekSignificant returns the first significant token after the cursor
// without moving it.
func (l *List) PeekSignificant() *Token {
	for i := l.Idx + 1; i < l.Count; i++ {
		if l.Tokens[i].IsSignificant() {
			return l.Tokens[i]
		}
	}
	return nil
}

// Previous returns the last significant token before the cursor.
func (l *List) Previous() *Token {
	for i := l.Idx - 1; i >= 0 && i < l.Count+1; i-- {
		if i < l.Count && l.Tokens[i].IsSignificant() {
			return l.Tokens[i]
		}
	}
	return nil
}

// Slice returns the tokens in [from, to).
func (l *List) Slice(from, to int) []*Token {
	if from < 0 {
		from = 0
	}
	if to > l.Count {
		to = l.Count
	}
	if from >= to {
		return nil
	}
	return l.Tokens[from:to]
}

// Build concatenates the raw text of every token.
func (l *List) Build() string {
	return Build(l.Tokens)
}

// Build concatenates the raw text of tokens.
func Build(tokens []*Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Raw)
	}
	return b.String()
}
