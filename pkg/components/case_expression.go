package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// CaseWhen is one WHEN ... THEN ... branch.
type CaseWhen struct {
	Condition *Expression `json:"condition" yaml:"condition"`
	Result    *Expression `json:"result" yaml:"result"`
}

// CaseExpression is CASE [value] WHEN ... THEN ... [ELSE ...] END.
type CaseExpression struct {
	// Value is set for the simple form that compares one value.
	Value *Expression `json:"value,omitempty" yaml:"value,omitempty"`
	Whens []CaseWhen  `json:"whens" yaml:"whens"`
	Else  *Expression `json:"else,omitempty" yaml:"else,omitempty"`
}

// Build renders the CASE expression.
func (e *CaseExpression) Build() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("CASE ")
	if e.Value != nil {
		b.WriteString(e.Value.Build())
		b.WriteString(" ")
	}
	for _, w := range e.Whens {
		b.WriteString("WHEN ")
		b.WriteString(w.Condition.Build())
		b.WriteString(" THEN ")
		b.WriteString(w.Result.Build())
		b.WriteString(" ")
	}
	if e.Else != nil {
		b.WriteString("ELSE ")
		b.WriteString(e.Else.Build())
		b.WriteString(" ")
	}
	b.WriteString("END")
	return b.String()
}

// ParseCaseExpression parses a CASE expression. The cursor must be on CASE.
func ParseCaseExpression(c *sqlerr.Collector, list *lexer.List) *CaseExpression {
	ret := &CaseExpression{}
	start := list.Current()
	list.Idx++

	// 0: value or WHEN, 1: WHEN, ELSE or END after a result,
	// 2: THEN after a condition, 3: END after ELSE.
	state := 0
	var cond *Expression

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}

		switch {
		case tok.Upper() == "END" && state != 2:
			if len(ret.Whens) == 0 {
				c.Add(sqlerr.UnexpectedToken, "Unexpected end of CASE expression.", tok)
			}
			return ret
		case tok.IsKeyword("WHEN") && state <= 1:
			list.Idx++
			cond = ParseExpression(c, list, ExpressionOptions{})
			if cond == nil {
				c.Add(sqlerr.MissingExpression, "An expression was expected.", at(list))
			}
			state = 2
		case tok.IsKeyword("THEN") && state == 2:
			list.Idx++
			result := ParseExpression(c, list, ExpressionOptions{})
			if result == nil {
				c.Add(sqlerr.MissingExpression, "An expression was expected.", at(list))
			}
			ret.Whens = append(ret.Whens, CaseWhen{Condition: cond, Result: result})
			state = 1
		case tok.IsKeyword("ELSE") && state == 1:
			list.Idx++
			ret.Else = ParseExpression(c, list, ExpressionOptions{})
			state = 3
		case state == 0 && ret.Value == nil:
			if tok.IsOperator(")") || tok.IsOperator(",") {
				c.Add(sqlerr.MissingExpression, "An expression was expected.", tok)
				list.Idx--
				return ret
			}
			ret.Value = ParseExpression(c, list, ExpressionOptions{})
			if ret.Value == nil {
				// The cursor was left one before a token that ends the expression.
				c.Add(sqlerr.MissingExpression, "An expression was expected.", tok)
				return ret
			}
		default:
			c.Add(sqlerr.UnexpectedToken, "Unexpected keyword.", tok)
			list.Idx--
			return ret
		}
	}

	c.Add(sqlerr.UnexpectedEnd, "Unexpected end of CASE expression.", start)
	list.Idx--
	return ret
}
