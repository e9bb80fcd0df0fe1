package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// DropOptions are the keywords between DROP and the dropped names.
var DropOptions = components.OptionSpec{
	"TEMPORARY": {ID: 1},

	"DATABASE":  {ID: objectID},
	"SCHEMA":    {ID: objectID},
	"TABLE":     {ID: objectID},
	"TABLES":    {ID: objectID},
	"VIEW":      {ID: objectID},
	"INDEX":     {ID: objectID},
	"PROCEDURE": {ID: objectID},
	"FUNCTION":  {ID: objectID},
	"TRIGGER":   {ID: objectID},
	"EVENT":     {ID: objectID},
	"USER":      {ID: objectID},

	"IF EXISTS": {ID: 7},
}

// DropEndOptions may close a DROP TABLE or DROP VIEW.
var DropEndOptions = components.OptionSpec{
	"RESTRICT": {ID: 1},
	"CASCADE":  {ID: 1},
}

// DropStatement is a DROP of one or more objects.
type DropStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	Fields  []*components.Expression `json:"fields" yaml:"fields"`
	// Table is the table of DROP INDEX ... ON table.
	Table      *components.Expression   `json:"table,omitempty" yaml:"table,omitempty"`
	EndOptions *components.OptionsArray `json:"end_options,omitempty" yaml:"end_options,omitempty"`
}

func (s *DropStatement) Keyword() string { return "DROP" }

// Object returns the kind of object dropped, such as TABLE.
func (s *DropStatement) Object() string {
	return optionWithID(s.Options, objectID)
}

func (s *DropStatement) Build() string {
	return join(
		"DROP",
		s.Options.Build(),
		components.BuildExpressions(s.Fields),
		prefix("ON", s.Table.Build()),
		s.EndOptions.Build(),
	)
}

// parseDrop parses a DROP. The cursor must be on DROP.
func parseDrop(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &DropStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, DropOptions)
	list.Idx++

	if s.Object() == "" {
		c.Add(sqlerr.MissingKeyword, "The type of the object to drop was expected.", start)
	}
	s.Fields = components.ParseExpressionArray(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	list.Idx++

	if next := peekFrom(list); next != nil && next.IsKeyword("ON") {
		skip(list)
		list.Idx++
		s.Table = components.ParseExpression(c, list, components.ExpressionOptions{
			Field: components.FieldTable, BreakOnAlias: true,
		})
		if s.Table == nil {
			c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", here(list))
		}
		list.Idx++
	}
	s.EndOptions = components.ParseOptionsArray(c, list, DropEndOptions)
	list.Idx++
	expectEnd(c, list)
	return s
}
