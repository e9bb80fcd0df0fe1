package components

import (
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Limit is the argument of a LIMIT clause. Values are kept as text because
// they may be placeholders or variables.
type Limit struct {
	Offset   string `json:"offset,omitempty" yaml:"offset,omitempty"`
	RowCount string `json:"row_count" yaml:"row_count"`
}

// NewLimit creates a limit. An empty offset is omitted when building.
func NewLimit(rowCount, offset string) *Limit {
	return &Limit{RowCount: rowCount, Offset: offset}
}

// Build renders the limit as "offset, count" or "count".
func (l *Limit) Build() string {
	if l == nil {
		return ""
	}
	if l.Offset != "" {
		return l.Offset + ", " + l.RowCount
	}
	return l.RowCount
}

// ParseLimit parses "count", "offset, count" or "count OFFSET offset".
func ParseLimit(c *sqlerr.Collector, list *lexer.List) *Limit {
	ret := &Limit{}
	offset := false

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		if tok.IsReserved() {
			break
		}
		if tok.IsKeyword("OFFSET") {
			if offset {
				c.Add(sqlerr.UnexpectedToken, "An offset was expected.", tok)
			}
			offset = true
			continue
		}
		if tok.IsOperator(",") && !offset {
			ret.Offset, ret.RowCount = ret.RowCount, ""
			continue
		}
		if tok.Type != lexer.TypeNumber && tok.Type != lexer.TypeSymbol {
			break
		}
		if offset {
			ret.Offset = tok.Raw
			offset = false
		} else {
			ret.RowCount = tok.Raw
		}
	}

	if offset {
		c.Add(sqlerr.UnexpectedEnd, "An offset was expected.", at(list))
	}
	if ret.RowCount == "" {
		c.Add(sqlerr.MissingExpression, "A row count was expected.", at(list))
	}
	list.Idx--
	return ret
}
