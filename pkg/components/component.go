// Package components holds the reusable sub-parsers every statement is built
// from: expressions, option lists, conditions, joins, column definitions and
// the like.
//
// Every Parse function follows the same cursor contract. On entry list.Idx
// points at the first token the component may consume. On return list.Idx
// points at the last token it consumed, one before the first token it left
// for the caller, so that the caller's loop increment moves on correctly.
//
// Diagnostics go to the given *sqlerr.Collector, which may be nil.
package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
)

// Component is a parsed fragment that renders back to SQL.
type Component interface {
	Build() string
}

// BuildAll renders items and joins them with sep. Items that render to
// nothing, such as nil components, are skipped.
func BuildAll[T Component](items []T, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := item.Build(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// skipInsignificant moves the cursor onto the next significant token, which
// it returns, or past the end, returning nil.
func skipInsignificant(list *lexer.List) *lexer.Token {
	for ; list.Idx < list.Count; list.Idx++ {
		if tok := list.Tokens[list.Idx]; tok.IsSignificant() {
			return tok
		}
	}
	return nil
}

// last returns the token before the cursor, used to anchor diagnostics
// reported at the end of the input.
func last(list *lexer.List) *lexer.Token {
	if list.Idx > 0 && list.Idx <= list.Count {
		return list.Tokens[list.Idx-1]
	}
	if list.Count > 0 {
		return list.Tokens[list.Count-1]
	}
	return nil
}

// at returns the token under the cursor, or the last token past the end.
func at(list *lexer.List) *lexer.Token {
	if tok := list.Current(); tok != nil {
		return tok
	}
	return last(list)
}
