package components

import (
	"sort"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// joinTypes maps join keywords to the canonical join type.
var joinTypes = map[string]string{
	"CROSS JOIN":               "CROSS",
	"FULL JOIN":                "FULL",
	"FULL OUTER JOIN":          "FULL",
	"INNER JOIN":               "INNER",
	"JOIN":                     "JOIN",
	"LEFT JOIN":                "LEFT",
	"LEFT OUTER JOIN":          "LEFT",
	"RIGHT JOIN":               "RIGHT",
	"RIGHT OUTER JOIN":         "RIGHT",
	"NATURAL JOIN":             "NATURAL",
	"NATURAL LEFT JOIN":        "NATURAL LEFT",
	"NATURAL RIGHT JOIN":       "NATURAL RIGHT",
	"NATURAL LEFT OUTER JOIN":  "NATURAL LEFT OUTER",
	"NATURAL RIGHT OUTER JOIN": "NATURAL RIGHT OUTER",
	"STRAIGHT_JOIN":            "STRAIGHT",
}

// IsJoin reports whether tok starts a join.
func IsJoin(tok *lexer.Token) bool {
	if tok == nil || tok.Type != lexer.TypeKeyword {
		return false
	}
	_, ok := joinTypes[tok.Value]
	return ok
}

// JoinKeywords returns every keyword that starts a join.
func JoinKeywords() []string {
	ret := make([]string, 0, len(joinTypes))
	for kw := range joinTypes {
		ret = append(ret, kw)
	}
	sort.Strings(ret)
	return ret
}

// JoinKeyword is one JOIN of a FROM clause.
type JoinKeyword struct {
	// Type is the canonical join type: JOIN, LEFT, INNER, NATURAL LEFT...
	Type  string       `json:"type" yaml:"type"`
	Expr  *Expression  `json:"expr" yaml:"expr"`
	On    []*Condition `json:"on,omitempty" yaml:"on,omitempty"`
	Using *ArrayObj    `json:"using,omitempty" yaml:"using,omitempty"`
}

// Build renders the join.
func (j *JoinKeyword) Build() string {
	if j == nil {
		return ""
	}
	var ret string
	switch j.Type {
	case "JOIN":
		ret = "JOIN "
	case "STRAIGHT":
		ret = "STRAIGHT_JOIN "
	default:
		ret = j.Type + " JOIN "
	}
	ret += j.Expr.Build()
	if len(j.On) > 0 {
		ret += " ON " + BuildConditions(j.On)
	}
	if j.Using != nil {
		ret += " USING " + j.Using.Build()
	}
	return ret
}

// ParseJoins parses consecutive joins. The cursor must be on the first join
// keyword.
func ParseJoins(c *sqlerr.Collector, list *lexer.List) []*JoinKeyword {
	var (
		ret     []*JoinKeyword
		current *JoinKeyword
	)
	// 0: a join keyword is expected, 1: the joined table is expected,
	// 2: ON, USING or another join is expected, 3: conditions are expected,
	// 4: a column list is expected.
	state := 0

loop:
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}

		switch state {
		case 0:
			if !IsJoin(tok) {
				break loop
			}
			current = &JoinKeyword{Type: joinTypes[tok.Value]}
			ret = append(ret, current)
			state = 1
		case 1:
			current.Expr = ParseTableReference(c, list)
			if current.Expr == nil {
				c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", tok)
			}
			state = 2
		case 2:
			switch {
			case tok.IsKeyword("ON"):
				state = 3
			case tok.IsKeyword("USING"):
				state = 4
			case IsJoin(tok):
				current = &JoinKeyword{Type: joinTypes[tok.Value]}
				ret = append(ret, current)
				state = 1
			default:
				break loop
			}
		case 3:
			current.On = ParseConditions(c, list)
			state = 0
		case 4:
			current.Using = ParseArrayObj(c, list)
			state = 0
		}
	}

	if state == 1 || state == 3 || state == 4 {
		c.Add(sqlerr.UnexpectedEnd, "Unexpected end of JOIN.", at(list))
	}
	list.Idx--
	return ret
}

// ParseTableReference parses a table name with an optional alias, or a
// derived table in brackets.
func ParseTableReference(c *sqlerr.Collector, list *lexer.List) *Expression {
	tok := skipInsignificant(list)
	switch {
	case tok == nil:
	case tok.IsOperator("("):
		return ParseExpression(c, list, ExpressionOptions{})
	case tok.IsKeyword("DUAL"):
		return &Expression{Table: tok.Value, Expr: tok.Raw}
	}
	return ParseExpression(c, list, ExpressionOptions{Field: FieldTable})
}

// ParseTableReferences parses a comma separated list of table references.
func ParseTableReferences(c *sqlerr.Collector, list *lexer.List) []*Expression {
	var ret []*Expression
	// 0: a table is expected, 1: a comma is expected.
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
			expr := ParseTableReference(c, list)
			if expr == nil {
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
		c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", at(list))
	}
	list.Idx--
	return ret
}
