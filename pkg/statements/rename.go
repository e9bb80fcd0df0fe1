package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// RenameStatement is RENAME TABLE a TO b, ...
type RenameStatement struct {
	Span `json:"span" yaml:"span"`

	Renames []*components.RenameOperation `json:"renames" yaml:"renames"`
}

func (s *RenameStatement) Keyword() string { return "RENAME" }

func (s *RenameStatement) Build() string {
	return join("RENAME TABLE", components.BuildAll(s.Renames, ", "))
}

func parseRename(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &RenameStatement{}
	next := advance(list)
	if next == nil || !next.IsKeyword("TABLE") {
		c.Add(sqlerr.MissingKeyword, "Keyword \"TABLE\" was expected.", current(list))
		if next == nil {
			list.Idx++
		}
		rest(list)
		return s
	}
	list.Idx++
	s.Renames = components.ParseRenameOperations(c, list)
	list.Idx++
	expectEnd(c, list)
	return s
}

// TruncateStatement is TRUNCATE [TABLE] name.
type TruncateStatement struct {
	Span `json:"span" yaml:"span"`

	Table *components.Expression `json:"table" yaml:"table"`
}

func (s *TruncateStatement) Keyword() string { return "TRUNCATE" }

func (s *TruncateStatement) Build() string {
	return join("TRUNCATE TABLE", s.Table.Build())
}

func parseTruncate(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &TruncateStatement{}
	start := list.Current()
	list.Idx++
	if next := peekFrom(list); next != nil && next.IsKeyword("TABLE") {
		skip(list)
		list.Idx++
	}
	s.Table = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	if s.Table == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", start)
	}
	list.Idx++
	expectEnd(c, list)
	return s
}
