package components

import (
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// RenameOperation is one "old TO new" pair of RENAME TABLE.
type RenameOperation struct {
	Old *Expression `json:"old" yaml:"old"`
	New *Expression `json:"new" yaml:"new"`
}

// Build renders the pair.
func (r *RenameOperation) Build() string {
	if r == nil {
		return ""
	}
	return r.Old.Build() + " TO " + r.New.Build()
}

// ParseRenameOperations parses a comma separated list of renames.
func ParseRenameOperations(c *sqlerr.Collector, list *lexer.List) []*RenameOperation {
	var (
		ret     []*RenameOperation
		current *RenameOperation
	)
	// 0: the old name is expected, 1: TO is expected, 2: the new name is
	// expected, 3: a comma is expected.
	state := 0
	failed := false

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
			expr := ParseExpression(c, list, ExpressionOptions{Field: FieldTable, BreakOnAlias: true})
			if expr == nil {
				c.Add(sqlerr.ExpectedIdentifier, "The old name of the table was expected.", tok)
				list.Idx++
				failed = true
				break loop
			}
			current = &RenameOperation{Old: expr}
			state = 1
		case 1:
			if !tok.IsKeyword("TO") {
				c.Add(sqlerr.MissingKeyword, "Keyword \"TO\" was expected.", tok)
				failed = true
				break loop
			}
			state = 2
		case 2:
			expr := ParseExpression(c, list, ExpressionOptions{Field: FieldTable, BreakOnAlias: true})
			if expr == nil {
				c.Add(sqlerr.ExpectedIdentifier, "The new name of the table was expected.", tok)
				list.Idx++
				failed = true
				break loop
			}
			current.New = expr
			ret = append(ret, current)
			current = nil
			state = 3
		case 3:
			if !tok.IsOperator(",") {
				break loop
			}
			state = 0
		}
	}

	if !failed {
		switch state {
		case 0:
			c.Add(sqlerr.UnexpectedEnd, "A rename operation was expected.", at(list))
		case 1, 2:
			c.Add(sqlerr.UnexpectedEnd, "The new name of the table was expected.", at(list))
		}
	}
	list.Idx--
	return ret
}
