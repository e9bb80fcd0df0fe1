package components

import (
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// OrderKeyword is one item of an ORDER BY clause.
type OrderKeyword struct {
	Expr *Expression `json:"expr" yaml:"expr"`
	// Type is ASC, DESC or empty.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Build renders the item.
func (o *OrderKeyword) Build() string {
	if o == nil {
		return ""
	}
	if o.Type != "" {
		return o.Expr.Build() + " " + o.Type
	}
	return o.Expr.Build()
}

// GroupKeyword is one item of a GROUP BY clause.
type GroupKeyword struct {
	Expr *Expression `json:"expr" yaml:"expr"`
	// Type is ASC, DESC or empty; sort directions in GROUP BY are accepted by
	// older MySQL servers.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Build renders the item.
func (g *GroupKeyword) Build() string {
	if g == nil {
		return ""
	}
	if g.Type != "" {
		return g.Expr.Build() + " " + g.Type
	}
	return g.Expr.Build()
}

// ParseOrderKeywords parses the items of an ORDER BY clause.
func ParseOrderKeywords(c *sqlerr.Collector, list *lexer.List) []*OrderKeyword {
	var ret []*OrderKeyword
	for _, item := range parseSortItems(c, list) {
		ret = append(ret, &OrderKeyword{Expr: item.expr, Type: item.dir})
	}
	return ret
}

// ParseGroupKeywords parses the items of a GROUP BY clause.
func ParseGroupKeywords(c *sqlerr.Collector, list *lexer.List) []*GroupKeyword {
	var ret []*GroupKeyword
	for _, item := range parseSortItems(c, list) {
		ret = append(ret, &GroupKeyword{Expr: item.expr, Type: item.dir})
	}
	return ret
}

type sortItem struct {
	expr *Expression
	dir  string
}

func parseSortItems(c *sqlerr.Collector, list *lexer.List) []sortItem {
	var (
		ret     []sortItem
		current *sortItem
	)
	// 0: an expression is expected, 1: a direction or a comma is expected.
	state := 0

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}

		if state == 0 {
			expr := ParseExpression(c, list, ExpressionOptions{})
			if expr == nil {
				list.Idx++
				break
			}
			ret = append(ret, sortItem{expr: expr})
			current = &ret[len(ret)-1]
			state = 1
			continue
		}
		if tok.IsKeyword("ASC", "DESC") && current.dir == "" {
			current.dir = tok.Value
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
