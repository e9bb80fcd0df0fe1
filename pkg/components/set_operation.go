package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// SetOperation is one assignment of a SET list: column = value.
type SetOperation struct {
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
	// Bare is set for NAMES and CHARACTER SET items, which take no =.
	Bare bool `json:"bare,omitempty" yaml:"bare,omitempty"`
}

// NewSetOperation creates an assignment.
func NewSetOperation(column, value string) *SetOperation {
	return &SetOperation{Column: column, Value: value}
}

// Build renders the assignment.
func (s *SetOperation) Build() string {
	if s == nil {
		return ""
	}
	if s.Bare {
		return s.Column + " " + s.Value
	}
	return s.Column + " = " + s.Value
}

// BuildSetOperations renders a comma separated assignment list.
func BuildSetOperations(ops []*SetOperation) string {
	return BuildAll(ops, ", ")
}

// ParseSetOperations parses a comma separated list of assignments.
func ParseSetOperations(c *sqlerr.Collector, list *lexer.List) []*SetOperation {
	return parseSetOperations(c, list, false)
}

// ParseSetVariables parses the list of a SET statement. Besides assignments
// it accepts NAMES charset [COLLATE collation] and CHARACTER SET charset
// items anywhere in the list.
func ParseSetVariables(c *sqlerr.Collector, list *lexer.List) []*SetOperation {
	return parseSetOperations(c, list, true)
}

func parseSetOperations(c *sqlerr.Collector, list *lexer.List, charsets bool) []*SetOperation {
	var (
		ret     []*SetOperation
		column  strings.Builder
		pending string
		// comma is the last comma not yet followed by an assignment.
		comma *lexer.Token
	)
	// 0: a column is expected, 1: a value is expected.
	state := 0

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			if column.Len() > 0 {
				pending = " "
			}
			continue
		}

		if state == 0 {
			if charsets && column.Len() == 0 && isCharsetItem(list) {
				if op := parseCharsetItem(c, list); op != nil {
					ret = append(ret, op)
					comma = nil
				}
				pending = ""
				continue
			}
			if tok.IsReserved() {
				break
			}
			switch {
			case tok.IsOperator("=") || tok.IsOperator(":="):
				state = 1
			case tok.IsOperator(","):
				comma = tok
			default:
				column.WriteString(pending)
				column.WriteString(tok.Raw)
			}
			pending = ""
			continue
		}

		value := ""
		if expr := ParseExpression(c, list, ExpressionOptions{BreakOnAlias: true}); expr != nil {
			value = expr.Build()
		} else if next := list.Peek(1); next != nil && next.Type == lexer.TypeKeyword {
			// SET autocommit = ON takes a bare keyword.
			list.Idx++
			value = next.Raw
		} else {
			c.Add(sqlerr.MissingExpression, "Missing expression.", tok)
			list.Idx++
			break
		}
		ret = append(ret, &SetOperation{Column: strings.TrimSpace(column.String()), Value: value})
		column.Reset()
		pending = ""
		comma = nil
		state = 0
	}

	if state == 1 {
		c.Add(sqlerr.MissingExpression, "Missing expression.", at(list))
	}
	if comma != nil {
		c.Add(sqlerr.UnexpectedToken, "Unexpected token.", comma)
	}
	list.Idx--
	return ret
}

// isCharsetItem reports whether the cursor is on NAMES, CHARSET or
// CHARACTER SET used as a SET item rather than as a variable name.
func isCharsetItem(list *lexer.List) bool {
	tok := list.Current()
	switch {
	case tok.IsKeyword("CHARACTER SET", "CHARSET"):
	case tok.Type == lexer.TypeNone && tok.Upper() == "NAMES":
	default:
		return false
	}
	next := list.PeekSignificant()
	return next == nil || !(next.IsOperator("=") || next.IsOperator(":=") || next.IsOperator("."))
}

// parseCharsetItem parses NAMES charset [COLLATE collation] or
// CHARACTER SET charset. The cursor is left on the last token of the item.
func parseCharsetItem(c *sqlerr.Collector, list *lexer.List) *SetOperation {
	kw := list.Current()
	op := &SetOperation{Column: kw.Upper(), Bare: true}

	value := charsetValue(list)
	if value == nil {
		c.Add(sqlerr.MissingExpression, "A character set name was expected.", at(list))
		return nil
	}
	op.Value = value.Raw

	if op.Column == "NAMES" {
		if next := list.PeekSignificant(); next != nil && next.IsKeyword("COLLATE") {
			list.Idx++
			skipInsignificant(list)
			collation := charsetValue(list)
			if collation == nil {
				c.Add(sqlerr.MissingExpression, "A collation name was expected.", at(list))
				return op
			}
			op.Value += " COLLATE " + collation.Raw
		}
	}
	return op
}

// charsetValue moves the cursor onto the name after it and returns it, or
// returns nil without moving when no name follows.
func charsetValue(list *lexer.List) *lexer.Token {
	next := list.PeekSignificant()
	if next == nil || next.Type == lexer.TypeDelimiter || next.Type == lexer.TypeOperator ||
		(next.IsReserved() && !next.IsKeyword("DEFAULT", "BINARY")) {
		return nil
	}
	list.Idx++
	skipInsignificant(list)
	return next
}
