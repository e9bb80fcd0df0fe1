package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Field selects which part of a qualified reference a bare name fills.
type Field uint8

const (
	FieldNone Field = iota
	FieldColumn
	FieldTable
	FieldDatabase
)

// ExpressionOptions tune ParseExpression for the context it is used in.
type ExpressionOptions struct {
	// Field restricts parsing to a plain (optionally qualified) name whose
	// last part fills Field. Operators, literals, brackets and reserved
	// keywords other than AS end the expression.
	Field Field
	// SkipColumn makes a bare name fill the table part instead of the column.
	SkipColumn bool
	// BreakOnAlias ends the expression where an alias would start.
	BreakOnAlias bool
	// BreakOnParentheses ends the expression at any bracket.
	BreakOnParentheses bool
	// BracketsDelimited ends the expression at the bracket that closes the
	// first one, which is consumed.
	BracketsDelimited bool
	// Nested is set when the caller owns an enclosing bracket. An unmatched
	// ) then ends the expression instead of being reported.
	Nested bool
}

func (o ExpressionOptions) target() Field {
	switch {
	case o.Field != FieldNone:
		return o.Field
	case o.SkipColumn:
		return FieldTable
	}
	return FieldColumn
}

// allowedKeywords are the reserved keywords that may appear inside an
// expression at bracket depth zero. Any other reserved keyword starts the
// next clause.
var allowedKeywords = map[string]bool{
	"AND": true, "AS": true, "BETWEEN": true, "BINARY": true, "CASE": true, "COLLATE": true,
	"DIV": true, "DUAL": true, "EXISTS": true, "IN": true, "INTERVAL": true, "IS": true,
	"LIKE": true, "MOD": true, "NOT": true, "NOT NULL": true, "NULL": true, "OR": true,
	"OVER": true, "REGEXP": true, "RLIKE": true, "XOR": true,
}

// Expression is either a qualified reference (database, table, column) or a
// free-form expression, optionally aliased. Expr always holds the source
// text of what was parsed; for a reference it is the reference as written.
type Expression struct {
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
	Table    string `json:"table,omitempty" yaml:"table,omitempty"`
	Column   string `json:"column,omitempty" yaml:"column,omitempty"`
	Expr     string `json:"expr,omitempty" yaml:"expr,omitempty"`
	Alias    string `json:"alias,omitempty" yaml:"alias,omitempty"`
	// Function is the name of the first function called in the expression.
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
	// Subquery is the keyword of a statement nested in brackets.
	Subquery string `json:"subquery,omitempty" yaml:"subquery,omitempty"`
}

// NewExpression builds an expression from positional parts:
//
//	NewExpression(expr)
//	NewExpression(expr, alias)
//	NewExpression(database, table, column)
//	NewExpression(database, table, column, alias)
func NewExpression(parts ...string) *Expression {
	e := &Expression{}
	switch len(parts) {
	case 1:
		e.Expr = parts[0]
	case 2:
		e.Expr, e.Alias = parts[0], parts[1]
	case 3:
		e.Database, e.Table, e.Column = parts[0], parts[1], parts[2]
	case 4:
		e.Database, e.Table, e.Column, e.Alias = parts[0], parts[1], parts[2], parts[3]
	}
	return e
}

// IsReference reports whether the expression is a plain qualified name.
func (e *Expression) IsReference() bool {
	return e.Column != "" || e.Table != "" || e.Database != ""
}

// Build renders the expression.
func (e *Expression) Build() string {
	if e == nil {
		return ""
	}
	ret := e.Expr
	if ret == "" {
		var fields []string
		for _, f := range []string{e.Database, e.Table, e.Column} {
			if f != "" {
				fields = append(fields, dialect.EscapeIdentifier(f))
			}
		}
		ret = strings.Join(fields, ".")
	}
	if e.Alias != "" {
		ret += " AS " + dialect.EscapeIdentifier(e.Alias)
	}
	return ret
}

// ParseExpression parses one expression. It returns nil when no expression
// starts at the cursor.
func ParseExpression(c *sqlerr.Collector, list *lexer.List, opts ExpressionOptions) *Expression {
	ret := &Expression{}

	var (
		// isExpr is set once the tokens can no longer be a qualified name.
		isExpr bool
		// dot is set right after a . in a qualified name.
		dot bool
		// alias is set after AS, when the next token must be the alias.
		alias    bool
		as       *lexer.Token
		brackets int
		// prev holds the last two significant tokens, prev[1] being the latest.
		prev    [2]*lexer.Token
		expr    strings.Builder
		pending strings.Builder
	)

	field := opts.target()
	parseField := opts.Field != FieldNone
	breakOnParentheses := opts.BreakOnParentheses || parseField

	write := func(raw string) {
		if expr.Len() > 0 {
			expr.WriteString(pending.String())
		}
		pending.Reset()
		expr.WriteString(raw)
	}
	setAlias := func(tok *lexer.Token) {
		ret.Alias = tok.Identifier()
		pending.Reset()
	}

loop:
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		wasExpr := isExpr

		if tok.Type == lexer.TypeDelimiter {
			break loop
		}
		if !tok.IsSignificant() {
			if tok.Type != lexer.TypeComment || !tok.Has(lexer.FlagCommentMySQLCmd) {
				pending.WriteString(tok.Raw)
			}
			continue
		}
		if ret.Alias != "" {
			break loop
		}
		if alias && !isExplicitAlias(tok) {
			c.Add(sqlerr.MissingAlias, "An alias was expected.", tok)
			alias = false
			break loop
		}

		if tok.Type == lexer.TypeKeyword {
			switch {
			case brackets > 0:
				if ret.Subquery == "" && dialect.IsStatementKeyword(tok.Value) &&
					prev[1] != nil && prev[1].IsOperator("(") {
					if next := list.PeekSignificant(); next == nil || !next.IsOperator("(") {
						ret.Subquery = tok.Value
					}
				}
			case tok.IsKeyword("AS"):
				if opts.BreakOnAlias {
					break loop
				}
				alias = true
				as = tok
				pending.Reset()
				continue
			case alias:
			case parseField:
				if tok.IsReserved() || endsOperand(expr.Len(), prev) {
					break loop
				}
			case tok.Has(lexer.FlagKeywordFunction) && (tok.IsReserved() || nextIsBracket(list)):
				isExpr = true
			case tok.IsReserved():
				if !allowedKeywords[tok.Value] {
					break loop
				}
				// DEFAULT 0 NOT NULL: a column attribute, not an operand.
				if tok.IsKeyword("NULL", "NOT NULL") && endsOperand(expr.Len(), prev) {
					break loop
				}
				if tok.Value == "CASE" {
					cs := ParseCaseExpression(c, list)
					write(cs.Build())
					isExpr = true
					prev[0], prev[1] = prev[1], list.Current()
					continue
				}
				isExpr = true
			default:
				if endsOperand(expr.Len(), prev) {
					break loop
				}
			}
		}

		if tok.Type == lexer.TypeOperator {
			if breakOnParentheses && (tok.Value == "(" || tok.Value == ")") {
				break loop
			}
			if parseField && tok.Value != "." {
				break loop
			}
			switch tok.Value {
			case "(":
				brackets++
				if ret.Function == "" && prev[1] != nil && isFunctionName(prev[1]) {
					ret.Function = prev[1].Value
					if !wasExpr {
						ret.Database, ret.Table, ret.Column = "", "", ""
					}
				}
			case ")":
				if brackets == 0 {
					if opts.Nested {
						break loop
					}
					c.Add(sqlerr.UnexpectedBracket, "Unexpected closing bracket.", tok)
					continue
				}
				brackets--
				if brackets == 0 && opts.BracketsDelimited {
					write(tok.Raw)
					list.Idx++
					break loop
				}
			case ",":
				if brackets == 0 {
					break loop
				}
			}
		}

		switch {
		case tok.Type == lexer.TypeNumber, tok.Type == lexer.TypeBool,
			tok.Type == lexer.TypeSymbol && isVariable(tok),
			tok.Type == lexer.TypeOperator && tok.Value != ".":
			if parseField {
				break loop
			}
			isExpr = true
		case tok.Type == lexer.TypeString:
			if !parseField {
				isExpr = true
			}
		}

		prev[0], prev[1] = prev[1], tok

		switch {
		case alias:
			setAlias(tok)
			alias = false
		case isExpr:
			if brackets == 0 && expr.Len() > 0 && isAliasCandidate(tok) &&
				prev[0] != nil && completesOperand(prev[0]) {
				if opts.BreakOnAlias {
					break loop
				}
				setAlias(tok)
				continue
			}
			write(tok.Raw)
		case tok.IsOperator("."):
			if ret.Database != "" || dot {
				c.Add(sqlerr.UnexpectedDot, "Unexpected dot.", tok)
			}
			ret.Database, ret.Table, ret.Column = ret.Table, ret.Column, ""
			dot = true
			write(tok.Raw)
		default:
			slot := ret.slot(field)
			if *slot == "" {
				*slot = tok.Identifier()
				write(tok.Raw)
				dot = false
				continue
			}
			if opts.BreakOnAlias {
				break loop
			}
			setAlias(tok)
		}
	}

	if alias {
		c.Add(sqlerr.MissingAlias, "An alias was expected.", as)
	}

	list.Idx--
	ret.Expr = strings.TrimSpace(expr.String())
	if ret.Expr == "" {
		return nil
	}
	return ret
}

func (e *Expression) slot(f Field) *string {
	switch f {
	case FieldTable:
		return &e.Table
	case FieldDatabase:
		return &e.Database
	}
	return &e.Column
}

func isVariable(tok *lexer.Token) bool {
	return tok.Flags&(lexer.FlagSymbolVariable|lexer.FlagSymbolSystemVariable|lexer.FlagSymbolParameter) != 0
}

// isFunctionName reports whether tok, followed by (, names a function.
func isFunctionName(tok *lexer.Token) bool {
	switch tok.Type {
	case lexer.TypeNone:
		return true
	case lexer.TypeSymbol:
		return !isVariable(tok)
	case lexer.TypeKeyword:
		return tok.Has(lexer.FlagKeywordFunction)
	}
	return false
}

// isAliasCandidate reports whether tok may be an alias written without AS.
func isAliasCandidate(tok *lexer.Token) bool {
	switch tok.Type {
	case lexer.TypeString, lexer.TypeNone:
		return true
	case lexer.TypeSymbol:
		return !isVariable(tok)
	}
	return false
}

// isExplicitAlias reports whether tok may be the alias written after AS.
func isExplicitAlias(tok *lexer.Token) bool {
	if tok.Type == lexer.TypeKeyword {
		return !tok.IsReserved() || tok.Has(lexer.FlagKeywordFunction)
	}
	return isAliasCandidate(tok)
}

// completesOperand reports whether tok can end an operand, so that a name
// after it is not an operand itself.
func completesOperand(tok *lexer.Token) bool {
	switch tok.Type {
	case lexer.TypeOperator:
		return tok.Value == ")"
	case lexer.TypeKeyword:
		return !tok.IsReserved() || tok.Has(lexer.FlagKeywordFunction) ||
			tok.IsKeyword("NULL", "NOT NULL", "END", "DUAL")
	}
	return true
}

// endsOperand reports whether a non-reserved keyword seen now starts the
// next clause: the expression is not empty and its last token completes an
// operand. The unit after INTERVAL n is part of the expression.
func endsOperand(size int, prev [2]*lexer.Token) bool {
	if size == 0 || prev[1] == nil || !completesOperand(prev[1]) {
		return false
	}
	return prev[0] == nil || !prev[0].IsKeyword("INTERVAL")
}

func nextIsBracket(list *lexer.List) bool {
	next := list.PeekSignificant()
	return next != nil && next.IsOperator("(")
}

// ParseExpressionArray parses a comma separated list of expressions.
func ParseExpressionArray(c *sqlerr.Collector, list *lexer.List, opts ExpressionOptions) []*Expression {
	var ret []*Expression
	// 0: an expression is expected, 1: a comma is expected.
	state := 0

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		if tok.IsReserved() && !tok.Has(lexer.FlagKeywordFunction) && !allowedKeywords[tok.Value] {
			break
		}

		if state == 0 {
			expr := ParseExpression(c, list, opts)
			if expr == nil {
				// The cursor was left one before tok.
				list.Idx++
				break
			}
			ret = append(ret, expr)
			state = 1
			continue
		}
		if !tok.IsOperator(",") {
			break
		}
		state = 0
	}

	if state == 0 {
		c.Add(sqlerr.MissingExpression, "An expression was expected.", at(list))
	}
	list.Idx--
	return ret
}

// BuildExpressions renders a comma separated expression list.
func BuildExpressions(exprs []*Expression) string {
	return BuildAll(exprs, ", ")
}
