package parser

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Fragment is a component parsed on its own, with the diagnostics found
// while parsing it.
type Fragment[T any] struct {
	Value  T
	Errors []*sqlerr.ParseError
}

// parseFragment lexes sql and runs fn from its first token. When fn reported
// nothing, the first token it left is reported.
func parseFragment[T any](p *Parser, sql string, fn func(*sqlerr.Collector, *lexer.List) T) (*Fragment[T], error) {
	list, err := p.lexer().Lex(sql)
	if err != nil {
		return nil, err
	}
	c := sqlerr.NewCollector(sql, p.maxErrors)
	v := fn(c, list)
	if c.HasErrors() {
		return &Fragment[T]{Value: v, Errors: c.Errors()}, nil
	}

	for list.Idx++; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.IsSignificant() && tok.Type != lexer.TypeDelimiter {
			c.Add(sqlerr.UnexpectedToken, "Unexpected token.", tok)
			break
		}
	}
	return &Fragment[T]{Value: v, Errors: c.Errors()}, nil
}

// ParseExpression parses a single expression such as "db.tbl.col AS x".
func (p *Parser) ParseExpression(sql string, opts components.ExpressionOptions) (*Fragment[*components.Expression], error) {
	return parseFragment(p, sql, func(c *sqlerr.Collector, list *lexer.List) *components.Expression {
		return components.ParseExpression(c, list, opts)
	})
}

// ParseOptions parses a list of options defined by spec.
func (p *Parser) ParseOptions(sql string, spec components.OptionSpec) (*Fragment[*components.OptionsArray], error) {
	return parseFragment(p, sql, func(c *sqlerr.Collector, list *lexer.List) *components.OptionsArray {
		return components.ParseOptionsArray(c, list, spec)
	})
}

// ParseCreateDefinitions parses the bracketed column and key list of a
// CREATE TABLE.
func (p *Parser) ParseCreateDefinitions(sql string) (*Fragment[[]*components.CreateDefinition], error) {
	return parseFragment(p, sql, components.ParseCreateDefinitions)
}

// ParseCondition parses a condition list such as the body of a WHERE.
func (p *Parser) ParseCondition(sql string) (*Fragment[[]*components.Condition], error) {
	return parseFragment(p, sql, components.ParseConditions)
}

// ParseDataType parses a column data type such as "DECIMAL(10,2) UNSIGNED".
func (p *Parser) ParseDataType(sql string) (*Fragment[*components.DataType], error) {
	return parseFragment(p, sql, components.ParseDataType)
}
