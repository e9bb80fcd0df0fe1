package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// ArrayObj is a bracketed, comma separated list of values such as a column
// list or a VALUES row.
type ArrayObj struct {
	// Raw holds each value as written.
	Raw []string `json:"raw" yaml:"raw"`
	// Values holds each value with quotes removed.
	Values []string `json:"values" yaml:"values"`
}

// Build renders the list in brackets.
func (a *ArrayObj) Build() string {
	if a == nil {
		return ""
	}
	return "(" + strings.Join(a.Raw, ", ") + ")"
}

// ParseArrayObj parses a bracketed list. The cursor must be on (, possibly
// preceded by whitespace. Nil is returned when no bracket opens the list.
func ParseArrayObj(c *sqlerr.Collector, list *lexer.List) *ArrayObj {
	first := skipInsignificant(list)
	if first == nil || !first.IsOperator("(") {
		c.Add(sqlerr.UnexpectedToken, "An opening bracket was expected.", at(list))
		list.Idx--
		return nil
	}
	list.Idx++

	ret := &ArrayObj{Raw: []string{}, Values: []string{}}
	var (
		raw   strings.Builder
		value strings.Builder
		// brackets counts nesting inside one value.
		brackets int
		commas   int
	)
	push := func() {
		r := strings.TrimSpace(raw.String())
		if r != "" || commas > 0 {
			ret.Raw = append(ret.Raw, r)
			ret.Values = append(ret.Values, strings.TrimSpace(value.String()))
		}
		raw.Reset()
		value.Reset()
	}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			if raw.Len() > 0 {
				raw.WriteString(tok.Raw)
				value.WriteString(" ")
			}
			continue
		}
		switch {
		case tok.IsOperator("("):
			brackets++
		case tok.IsOperator(")"):
			if brackets == 0 {
				push()
				return ret
			}
			brackets--
		case tok.IsOperator(",") && brackets == 0:
			commas++
			push()
			continue
		}
		raw.WriteString(tok.Raw)
		value.WriteString(tok.Value)
	}

	c.Add(sqlerr.UnexpectedEnd, "A closing bracket was expected.", first)
	push()
	list.Idx--
	return ret
}

// ParseArrayObjList parses comma separated bracketed lists, such as the rows
// following VALUES.
func ParseArrayObjList(c *sqlerr.Collector, list *lexer.List) []*ArrayObj {
	var ret []*ArrayObj
	// 0: a list is expected, 1: a comma is expected.
	state := 0

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		if state == 1 {
			if !tok.IsOperator(",") {
				break
			}
			state = 0
			continue
		}
		if !tok.IsOperator("(") {
			break
		}
		if arr := ParseArrayObj(c, list); arr != nil {
			ret = append(ret, arr)
		}
		state = 1
	}

	if state == 0 {
		c.Add(sqlerr.MissingExpression, "A list of values in brackets was expected.", at(list))
	}
	list.Idx--
	return ret
}
