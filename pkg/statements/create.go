package statements

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// objectID is the option ID of the object keyword (TABLE, VIEW...) in the
// CREATE, ALTER and DROP option specs.
const objectID = 6

// CreateOptions are the keywords between CREATE and the object name.
var CreateOptions = components.OptionSpec{
	"OR REPLACE": {ID: 1},
	"TEMPORARY":  {ID: 2},
	"ALGORITHM":  {ID: 3, Kind: components.KindVarEq},
	"DEFINER": {ID: 4, Kind: components.KindExpr,
		Expr: components.ExpressionOptions{BreakOnAlias: true}},
	"SQL SECURITY DEFINER": {ID: 5},
	"SQL SECURITY INVOKER": {ID: 5},

	"DATABASE":       {ID: objectID},
	"SCHEMA":         {ID: objectID},
	"TABLE":          {ID: objectID},
	"VIEW":           {ID: objectID},
	"INDEX":          {ID: objectID},
	"UNIQUE INDEX":   {ID: objectID},
	"FULLTEXT INDEX": {ID: objectID},
	"SPATIAL INDEX":  {ID: objectID},
	"PROCEDURE":      {ID: objectID},
	"FUNCTION":       {ID: objectID},
	"TRIGGER":        {ID: objectID},
	"EVENT":          {ID: objectID},

	"IF NOT EXISTS": {ID: 7},
}

// CreateStatement is a CREATE of a database, table, view, index or stored
// program. Which fields are set depends on the object.
type CreateStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	Name    *components.Expression   `json:"name,omitempty" yaml:"name,omitempty"`

	// Fields are the column and key definitions of CREATE TABLE.
	Fields []*components.CreateDefinition `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Like is the source table of CREATE TABLE ... LIKE.
	Like *components.Expression `json:"like,omitempty" yaml:"like,omitempty"`
	// EntityOptions are the table, database or index options.
	EntityOptions *components.OptionsArray `json:"entity_options,omitempty" yaml:"entity_options,omitempty"`
	// Partition is the raw PARTITION BY clause.
	Partition string `json:"partition,omitempty" yaml:"partition,omitempty"`

	// Columns is the column list of CREATE VIEW.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Duplicates is IGNORE or REPLACE in CREATE TABLE ... SELECT.
	Duplicates string           `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
	Select     *SelectStatement `json:"select,omitempty" yaml:"select,omitempty"`

	// Table and Parts describe CREATE INDEX ... ON table (parts).
	Table *components.Expression `json:"table,omitempty" yaml:"table,omitempty"`
	Parts []*components.KeyPart  `json:"parts,omitempty" yaml:"parts,omitempty"`
	// IndexType is the USING clause written before ON.
	IndexType *components.OptionsArray `json:"index_type,omitempty" yaml:"index_type,omitempty"`

	// Body is the raw remainder of stored programs.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`
}

func (s *CreateStatement) Keyword() string { return "CREATE" }

// Object returns the kind of object created, such as TABLE or UNIQUE INDEX.
func (s *CreateStatement) Object() string {
	return optionWithID(s.Options, objectID)
}

func (s *CreateStatement) Build() string {
	ret := join("CREATE", s.Options.Build(), s.Name.Build())
	switch {
	case isIndex(s.Object()):
		return join(ret, s.IndexType.Build(), prefix("ON", s.Table.Build()), "("+components.BuildAll(s.Parts, ", ")+")",
			s.EntityOptions.Build())
	case s.Object() == "VIEW":
		cols := ""
		if len(s.Columns) > 0 {
			cols = "(" + escapeAll(s.Columns) + ")"
		}
		return join(ret, cols, prefix("AS", buildSelect(s.Select)))
	}

	fields := ""
	if len(s.Fields) > 0 {
		fields = components.BuildCreateDefinitions(s.Fields)
	}
	as := ""
	if s.Select != nil {
		as = join(s.Duplicates, "AS", s.Select.Build())
	}
	return join(ret, fields, prefix("LIKE", s.Like.Build()), s.EntityOptions.Build(), s.Partition, as, s.Body)
}

// parseCreate parses a CREATE. The cursor must be on CREATE.
func parseCreate(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &CreateStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, CreateOptions)
	list.Idx++

	object := s.Object()
	if object == "" {
		c.Add(sqlerr.MissingKeyword, "The type of the object to create was expected.", start)
		s.Body = buildRest(rest(list))
		return s
	}

	s.Name = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	if s.Name == nil && object != "DATABASE" && object != "SCHEMA" {
		c.Add(sqlerr.ExpectedIdentifier, "The name of the entity was expected.", here(list))
	}
	list.Idx++

	switch {
	case object == "TABLE":
		parseCreateTable(c, list, s)
	case object == "VIEW":
		parseViewBody(c, list, &s.Columns, &s.Select)
		expectEnd(c, list)
	case object == "DATABASE" || object == "SCHEMA":
		s.EntityOptions = components.ParseOptionsArray(c, list, components.DatabaseOptions)
		list.Idx++
		expectEnd(c, list)
	case isIndex(object):
		parseCreateIndex(c, list, s)
	default:
		s.Body = buildRest(rest(list))
	}
	return s
}

func parseCreateTable(c *sqlerr.Collector, list *lexer.List, s *CreateStatement) {
	if next := peekFrom(list); next != nil {
		switch {
		case next.IsOperator("("):
			s.Fields = components.ParseCreateDefinitions(c, list)
			list.Idx++
		case next.IsKeyword("LIKE"):
			skip(list)
			list.Idx++
			s.Like = components.ParseExpression(c, list, components.ExpressionOptions{
				Field: components.FieldTable, BreakOnAlias: true,
			})
			if s.Like == nil {
				c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", here(list))
			}
			list.Idx++
		}
	}

	s.EntityOptions = components.ParseOptionsArray(c, list, components.TableOptions)
	list.Idx++

	if next := peekFrom(list); next != nil && next.IsKeyword("PARTITION BY") {
		skip(list)
		s.Partition = buildPartition(list)
		list.Idx++
	}
	if next := peekFrom(list); next != nil && next.IsKeyword("IGNORE", "REPLACE") {
		skip(list)
		s.Duplicates = next.Value
		list.Idx++
	}
	if next := peekFrom(list); next != nil && next.IsKeyword("AS") {
		skip(list)
		list.Idx++
	}
	if next := peekFrom(list); next != nil && next.IsKeyword("SELECT") {
		skip(list)
		s.Select = parseSelectStatement(c, list, true)
		list.Idx++
	}

	if s.Fields == nil && s.Like == nil && s.Select == nil {
		c.Add(sqlerr.UnexpectedToken, "A column list, LIKE or a SELECT was expected.", here(list))
	}
	expectEnd(c, list)
}

// buildPartition reads PARTITION BY up to the end of the statement or an
// AS/SELECT at bracket depth zero. The cursor is left on its last token.
func buildPartition(list *lexer.List) string {
	start := list.Idx
	depth := 0
loop:
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		switch {
		case tok.Type == lexer.TypeDelimiter:
			break loop
		case tok.IsOperator("("):
			depth++
		case tok.IsOperator(")"):
			depth--
		case depth == 0 && tok.IsKeyword("AS", "SELECT", "IGNORE", "REPLACE"):
			break loop
		}
	}
	tokens := list.Slice(start, list.Idx)
	list.Idx--
	return buildRest(tokens)
}

// parseViewBody parses [(columns)] AS SELECT ... of CREATE and ALTER VIEW.
// The cursor is left on the first token it did not consume.
func parseViewBody(c *sqlerr.Collector, list *lexer.List, columns *[]string, sel **SelectStatement) {
	next := peekFrom(list)
	if next != nil && next.IsOperator("(") {
		if arr := components.ParseArrayObj(c, list); arr != nil {
			*columns = arr.Values
		}
		list.Idx++
		next = peekFrom(list)
	}
	if next == nil || !next.IsKeyword("AS") {
		c.Add(sqlerr.MissingKeyword, "Keyword \"AS\" was expected.", here(list))
		return
	}
	skip(list)
	list.Idx++
	if next = peekFrom(list); next == nil || !next.IsKeyword("SELECT") {
		c.Add(sqlerr.UnexpectedToken, "A SELECT statement was expected.", here(list))
		return
	}
	skip(list)
	*sel = parseSelectStatement(c, list, true)
	list.Idx++
}

func parseCreateIndex(c *sqlerr.Collector, list *lexer.List, s *CreateStatement) {
	s.IndexType = components.ParseOptionsArray(c, list, components.IndexTypeOptions)
	list.Idx++
	if next := peekFrom(list); next == nil || !next.IsKeyword("ON") {
		c.Add(sqlerr.MissingKeyword, "Keyword \"ON\" was expected.", here(list))
		expectEnd(c, list)
		return
	}
	skip(list)
	list.Idx++
	s.Table = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	if s.Table == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", here(list))
	}
	list.Idx++
	s.Parts = components.ParseKeyParts(c, list)
	list.Idx++
	s.EntityOptions = components.ParseOptionsArray(c, list, components.KeyOptions)
	list.Idx++
	expectEnd(c, list)
}

func isIndex(object string) bool {
	return strings.HasSuffix(object, "INDEX")
}

// optionWithID returns the name of the option with the given ID.
func optionWithID(opts *components.OptionsArray, id int) string {
	for _, o := range opts.Entries() {
		if o.ID == id {
			return o.Name
		}
	}
	return ""
}

func escapeAll(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = dialect.EscapeIdentifier(n)
	}
	return strings.Join(out, ", ")
}
