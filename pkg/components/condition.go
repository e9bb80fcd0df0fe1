package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// conditionDelimiters separate the conditions of a WHERE, HAVING or ON
// clause.
var conditionDelimiters = map[string]bool{
	"&&": true, "||": true, "AND": true, "OR": true, "XOR": true,
}

// conditionKeywords are the reserved keywords allowed inside a condition.
var conditionKeywords = map[string]bool{
	"ALL": true, "AND": true, "BETWEEN": true, "BINARY": true, "CASE": true, "COLLATE": true,
	"DIV": true, "ELSE": true, "END": true, "EXISTS": true, "IN": true, "INTERVAL": true,
	"IS": true, "LIKE": true, "MOD": true, "NOT": true, "NOT NULL": true, "NULL": true,
	"OR": true, "REGEXP": true, "RLIKE": true, "THEN": true, "WHEN": true, "XOR": true,
}

// Condition is one operand of a boolean clause, or the logical operator
// between two operands.
type Condition struct {
	// Identifiers are the names referenced by the condition.
	Identifiers []string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	IsOperator  bool     `json:"is_operator,omitempty" yaml:"is_operator,omitempty"`
	Expr        string   `json:"expr" yaml:"expr"`
}

// NewCondition creates a condition from raw text.
func NewCondition(expr string) *Condition {
	return &Condition{Expr: expr}
}

// Build renders the condition.
func (c *Condition) Build() string {
	if c == nil {
		return ""
	}
	return c.Expr
}

// BuildConditions renders a condition list.
func BuildConditions(conds []*Condition) string {
	return BuildAll(conds, " ")
}

// ParseConditions parses the conditions of a WHERE, HAVING or ON clause.
// It stops at a reserved keyword that starts another clause, or at a comma
// or closing bracket outside brackets.
func ParseConditions(c *sqlerr.Collector, list *lexer.List) []*Condition {
	var ret []*Condition

	var (
		expr     strings.Builder
		pending  strings.Builder
		idents   []string
		seen     = map[string]bool{}
		brackets int
		// between is set after BETWEEN, until the AND that belongs to it.
		between bool
		// cases counts open CASE expressions.
		cases int
	)
	flush := func() {
		if expr.Len() == 0 {
			return
		}
		ret = append(ret, &Condition{Identifiers: idents, Expr: expr.String()})
		expr.Reset()
		pending.Reset()
		idents = nil
		seen = map[string]bool{}
	}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			if expr.Len() > 0 {
				pending.WriteString(tok.Raw)
			}
			continue
		}

		if brackets == 0 && cases == 0 {
			if tok.IsOperator(",") || tok.IsOperator(")") {
				break
			}
			if (tok.Type == lexer.TypeKeyword || tok.Type == lexer.TypeOperator) && conditionDelimiters[tok.Value] {
				if between && tok.Value == "AND" {
					between = false
				} else {
					flush()
					ret = append(ret, &Condition{IsOperator: true, Expr: tok.Value})
					continue
				}
			}
			if tok.IsReserved() && !tok.Has(lexer.FlagKeywordFunction) && !conditionKeywords[tok.Value] {
				break
			}
		}

		switch {
		case tok.IsKeyword("BETWEEN"):
			between = true
		case tok.IsKeyword("CASE"):
			cases++
		case tok.Upper() == "END" && cases > 0:
			cases--
		case tok.IsOperator("("):
			brackets++
		case tok.IsOperator(")"):
			brackets--
		case tok.Type == lexer.TypeNone || tok.Type == lexer.TypeSymbol && !isVariable(tok):
			if next := list.PeekSignificant(); next == nil || !next.IsOperator("(") {
				name := tok.Identifier()
				if !seen[name] {
					seen[name] = true
					idents = append(idents, name)
				}
			}
		}

		if expr.Len() > 0 {
			expr.WriteString(pending.String())
		}
		pending.Reset()
		expr.WriteString(tok.Raw)
	}

	if brackets > 0 {
		c.Add(sqlerr.UnexpectedEnd, "A closing bracket was expected.", at(list))
	}
	flush()
	if n := len(ret); n > 0 && ret[n-1].IsOperator {
		c.Add(sqlerr.MissingExpression, "An expression was expected.", at(list))
	}
	list.Idx--
	return ret
}
