// Package statements parses whole SQL statements. Each statement is built
// from the sub-parsers in package components and renders back to SQL with
// Build.
//
// Statements share one parse loop: a grammar lists the clauses a statement
// accepts in their canonical order, and the loop dispatches each clause
// keyword to its parser while checking for repeated and misplaced clauses.
package statements

import (
	"fmt"
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Statement is a parsed SQL statement.
type Statement interface {
	// Keyword returns the keyword the statement starts with, such as SELECT
	// or START TRANSACTION.
	Keyword() string
	// Build renders the statement without a trailing delimiter.
	Build() string
	// Bounds returns the indexes of the first and the last significant token
	// of the statement in the token list it was parsed from.
	Bounds() (first, last int)
}

// Span records where a statement lies in its token list.
type Span struct {
	First int `json:"first" yaml:"first"`
	Last  int `json:"last" yaml:"last"`
}

// Bounds returns the first and last token indexes.
func (s *Span) Bounds() (int, int) {
	return s.First, s.Last
}

func (s *Span) span() *Span {
	return s
}

type spanned interface {
	span() *Span
}

// clause describes one clause of a statement grammar.
type clause[T any] struct {
	name     string
	keywords []string
	// keep leaves the cursor on the clause keyword when parse is called.
	keep bool
	// repeat allows the clause more than once.
	repeat bool
	// anywhere exempts the clause from the ordering check.
	anywhere bool
	parse    func(s T, c *sqlerr.Collector, list *lexer.List)
}

// grammar is the ordered clause table of a statement.
type grammar[T any] struct {
	clauses []clause[T]
	index   map[string]int
}

func newGrammar[T any](clauses ...clause[T]) *grammar[T] {
	g := &grammar[T]{clauses: clauses, index: map[string]int{}}
	for i, cl := range clauses {
		for _, kw := range cl.keywords {
			g.index[kw] = i
		}
	}
	return g
}

// parse runs the clause loop from the cursor up to the end of the statement.
// A nested statement, such as the SELECT of an INSERT, ends at the first
// token its grammar does not know instead of reporting it.
func (g *grammar[T]) parse(s T, c *sqlerr.Collector, list *lexer.List, nested bool) {
	last := -1
	seen := map[int]bool{}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}

		i, ok := -1, false
		if tok.Type == lexer.TypeKeyword {
			i, ok = g.index[tok.Value]
		}
		if !ok {
			if nested || startsStatement(tok) {
				break
			}
			c.Add(sqlerr.UnexpectedToken, "Unexpected token.", tok)
			continue
		}

		cl := g.clauses[i]
		switch {
		case seen[i] && !cl.repeat:
			c.Add(sqlerr.DuplicateClause, fmt.Sprintf("This %s clause was already parsed.", cl.name), tok)
		case i < last && !cl.anywhere:
			c.Add(sqlerr.ClauseOrder, fmt.Sprintf("Unexpected ordering of clauses: %s.", cl.name), tok)
		}
		seen[i] = true
		if !cl.anywhere && i > last {
			last = i
		}
		if !cl.keep {
			list.Idx++
		}
		cl.parse(s, c, list)
	}
	list.Idx--
}

// startsStatement reports whether tok begins a new statement.
func startsStatement(tok *lexer.Token) bool {
	return tok.Type == lexer.TypeKeyword && dialect.IsStatementKeyword(tok.Value)
}

// peek returns the next significant token after the cursor without moving.
func peek(list *lexer.List) *lexer.Token {
	for i := list.Idx + 1; i < list.Count; i++ {
		if tok := list.Tokens[i]; tok.IsSignificant() {
			return tok
		}
	}
	return nil
}

// advance moves the cursor onto the next significant token, which it
// returns. At a delimiter or the end it stays put and returns nil.
func advance(list *lexer.List) *lexer.Token {
	for i := list.Idx + 1; i < list.Count; i++ {
		tok := list.Tokens[i]
		if tok.Type == lexer.TypeDelimiter {
			return nil
		}
		if tok.IsSignificant() {
			list.Idx = i
			return tok
		}
	}
	return nil
}

// skip moves the cursor onto the significant token at or after it, which it
// returns. At a delimiter or the end it returns nil.
func skip(list *lexer.List) *lexer.Token {
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			return nil
		}
		if tok.IsSignificant() {
			return tok
		}
	}
	return nil
}

// here returns the token to anchor a diagnostic at the cursor.
func here(list *lexer.List) *lexer.Token {
	if tok := peekFrom(list); tok != nil {
		return tok
	}
	return current(list)
}

// current returns the token under the cursor, or the last token.
func current(list *lexer.List) *lexer.Token {
	if tok := list.Current(); tok != nil {
		return tok
	}
	if list.Count > 0 {
		return list.Tokens[list.Count-1]
	}
	return nil
}

// rest collects the tokens from the cursor up to the delimiter and leaves
// the cursor on the last of them.
func rest(list *lexer.List) []*lexer.Token {
	start := list.Idx
	for ; list.Idx < list.Count; list.Idx++ {
		if list.Tokens[list.Idx].Type == lexer.TypeDelimiter {
			break
		}
	}
	tokens := list.Slice(start, list.Idx)
	list.Idx--
	return tokens
}

// buildRest renders collected tokens without surrounding whitespace.
func buildRest(tokens []*lexer.Token) string {
	return strings.TrimSpace(lexer.Build(tokens))
}

// expectEnd reports the first significant token left before the delimiter
// and skips the rest of the statement. A new statement keyword ends the
// statement without an error.
func expectEnd(c *sqlerr.Collector, list *lexer.List) {
	reported := false
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		if !reported && startsStatement(tok) {
			break
		}
		if !reported {
			c.Add(sqlerr.UnexpectedToken, "Unexpected token.", tok)
			reported = true
		}
	}
	list.Idx--
}

// join concatenates the non-empty parts with single spaces.
func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// prefix returns kw followed by s, or nothing when s is empty.
func prefix(kw, s string) string {
	if s == "" {
		return ""
	}
	return kw + " " + s
}
