package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// AlterOptions are the keywords between ALTER and the object name.
var AlterOptions = components.OptionSpec{
	"ONLINE":    {ID: 1},
	"OFFLINE":   {ID: 1},
	"IGNORE":    {ID: 2},
	"ALGORITHM": {ID: 3, Kind: components.KindVarEq},
	"DEFINER": {ID: 4, Kind: components.KindExpr,
		Expr: components.ExpressionOptions{BreakOnAlias: true}},
	"SQL SECURITY DEFINER": {ID: 5},
	"SQL SECURITY INVOKER": {ID: 5},

	"DATABASE":  {ID: objectID},
	"SCHEMA":    {ID: objectID},
	"TABLE":     {ID: objectID},
	"VIEW":      {ID: objectID},
	"EVENT":     {ID: objectID},
	"FUNCTION":  {ID: objectID},
	"PROCEDURE": {ID: objectID},
}

// AlterStatement is an ALTER of a table, database, view or stored program.
type AlterStatement struct {
	Span `json:"span" yaml:"span"`

	Options    *components.OptionsArray     `json:"options,omitempty" yaml:"options,omitempty"`
	Table      *components.Expression       `json:"table,omitempty" yaml:"table,omitempty"`
	Operations []*components.AlterOperation `json:"operations,omitempty" yaml:"operations,omitempty"`

	// Columns and Select hold the new definition of ALTER VIEW.
	Columns []string         `json:"columns,omitempty" yaml:"columns,omitempty"`
	Select  *SelectStatement `json:"select,omitempty" yaml:"select,omitempty"`

	// Body is the raw remainder of other objects.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}

func (s *AlterStatement) Keyword() string { return "ALTER" }

// Object returns the kind of object altered, such as TABLE.
func (s *AlterStatement) Object() string {
	return optionWithID(s.Options, objectID)
}

func (s *AlterStatement) Build() string {
	ret := join("ALTER", s.Options.Build(), s.Table.Build())
	if s.Object() == "VIEW" {
		cols := ""
		if len(s.Columns) > 0 {
			cols = "(" + escapeAll(s.Columns) + ")"
		}
		return join(ret, cols, prefix("AS", buildSelect(s.Select)))
	}
	return join(ret, components.BuildAll(s.Operations, ", "), s.Body)
}

// parseAlter parses an ALTER. The cursor must be on ALTER.
func parseAlter(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &AlterStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, AlterOptions)
	list.Idx++

	object := s.Object()
	if object == "" {
		c.Add(sqlerr.MissingKeyword, "The type of the object to alter was expected.", start)
		s.Body = buildRest(rest(list))
		return s
	}

	s.Table = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	if s.Table == nil && object != "DATABASE" && object != "SCHEMA" {
		c.Add(sqlerr.ExpectedIdentifier, "The name of the entity was expected.", here(list))
	}
	list.Idx++

	switch object {
	case "TABLE":
		s.Operations = components.ParseAlterOperations(c, list, components.AlterTableOptions)
		list.Idx++
		expectEnd(c, list)
	case "DATABASE", "SCHEMA":
		s.Operations = components.ParseAlterOperations(c, list, components.DatabaseOptions)
		list.Idx++
		expectEnd(c, list)
	case "VIEW":
		parseViewBody(c, list, &s.Columns, &s.Select)
		expectEnd(c, list)
	default:
		s.Body = buildRest(rest(list))
	}
	return s
}
