package statements

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// UseStatement selects the default database.
type UseStatement struct {
	Span `json:"span" yaml:"span"`

	Database *components.Expression `json:"database" yaml:"database"`
}

func (s *UseStatement) Keyword() string { return "USE" }

func (s *UseStatement) Build() string { return join("USE", s.Database.Build()) }

func parseUse(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &UseStatement{}
	start := list.Current()
	list.Idx++
	s.Database = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldDatabase, BreakOnAlias: true,
	})
	if s.Database == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A database name was expected.", start)
	}
	list.Idx++
	expectEnd(c, list)
	return s
}

// CallStatement calls a stored procedure.
type CallStatement struct {
	Span `json:"span" yaml:"span"`

	Call *components.Expression `json:"call" yaml:"call"`
}

func (s *CallStatement) Keyword() string { return "CALL" }

func (s *CallStatement) Build() string { return join("CALL", s.Call.Build()) }

func parseCall(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &CallStatement{}
	start := list.Current()
	list.Idx++
	s.Call = components.ParseExpression(c, list, components.ExpressionOptions{BreakOnAlias: true})
	if s.Call == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A procedure name was expected.", start)
	}
	list.Idx++
	expectEnd(c, list)
	return s
}

// ExplainOptions are the modifiers of EXPLAIN.
var ExplainOptions = components.OptionSpec{
	"EXTENDED":   {ID: 1},
	"PARTITIONS": {ID: 1},
	"ANALYZE":    {ID: 1},
	"FORMAT":     {ID: 2, Kind: components.KindVarEq},
}

// ExplainStatement is EXPLAIN, DESCRIBE or DESC of a statement or a table.
type ExplainStatement struct {
	Span `json:"span" yaml:"span"`

	// Kind is EXPLAIN, DESCRIBE or DESC.
	Kind    string                   `json:"kind" yaml:"kind"`
	Options *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	// Statement is the explained statement; otherwise Table and Column are
	// set.
	Statement Statement              `json:"statement,omitempty" yaml:"statement,omitempty"`
	Table     *components.Expression `json:"table,omitempty" yaml:"table,omitempty"`
	Column    *components.Expression `json:"column,omitempty" yaml:"column,omitempty"`
}

func (s *ExplainStatement) Keyword() string { return s.Kind }

func (s *ExplainStatement) Build() string {
	ret := join(s.Kind, s.Options.Build())
	if s.Statement != nil {
		return join(ret, s.Statement.Build())
	}
	return join(ret, s.Table.Build(), s.Column.Build())
}

func parseExplain(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &ExplainStatement{Kind: start.Value}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, ExplainOptions)
	list.Idx++

	next := peekFrom(list)
	if next != nil && next.Type == lexer.TypeKeyword {
		if _, ok := Lookup(next.Value); ok {
			skip(list)
			s.Statement = Parse(c, list)
			return s
		}
	}

	s.Table = components.ParseExpression(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	if s.Table == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A statement or a table name was expected.", start)
	}
	list.Idx++
	s.Column = components.ParseExpression(c, list, components.ExpressionOptions{BreakOnAlias: true})
	list.Idx++
	expectEnd(c, list)
	return s
}

// ShowOptions are the modifiers that may follow SHOW.
var ShowOptions = components.OptionSpec{
	"FULL":     {ID: 1},
	"EXTENDED": {ID: 1},
	"GLOBAL":   {ID: 2},
	"SESSION":  {ID: 2},
}

// ShowStatement is a SHOW. Its body is kept as written.
type ShowStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	// What names what is shown, such as TABLES or CREATE TABLE.
	What string `json:"what" yaml:"what"`
	Rest string `json:"rest" yaml:"rest"`
}

func (s *ShowStatement) Keyword() string { return "SHOW" }

func (s *ShowStatement) Build() string { return join("SHOW", s.Options.Build(), s.Rest) }

func parseShow(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &ShowStatement{}
	start := list.Current()
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, ShowOptions)
	list.Idx++

	tokens := rest(list)
	s.Rest = buildRest(tokens)
	var words []string
	for _, tok := range tokens {
		if !tok.IsSignificant() {
			continue
		}
		words = append(words, tok.Upper())
		if len(words) == 2 || words[0] != "CREATE" {
			break
		}
	}
	s.What = strings.Join(words, " ")
	if s.What == "" {
		c.Add(sqlerr.UnexpectedEnd, "What to show was expected.", start)
	}
	return s
}

// TransactionStatement starts or ends a transaction.
type TransactionStatement struct {
	Span `json:"span" yaml:"span"`

	// Kind is START TRANSACTION, BEGIN, COMMIT or ROLLBACK.
	Kind string `json:"kind" yaml:"kind"`
	// Rest holds modifiers such as WORK or AND NO CHAIN, as written.
	Rest string `json:"rest,omitempty" yaml:"rest,omitempty"`
}

func (s *TransactionStatement) Keyword() string { return s.Kind }

func (s *TransactionStatement) Build() string { return join(s.Kind, s.Rest) }

// IsBegin reports whether the statement opens a transaction.
func (s *TransactionStatement) IsBegin() bool {
	return s.Kind == "START TRANSACTION" || s.Kind == "BEGIN"
}

func parseTransaction(_ *sqlerr.Collector, list *lexer.List) Statement {
	s := &TransactionStatement{Kind: list.Current().Value}
	list.Idx++
	s.Rest = buildRest(rest(list))
	return s
}

// MaintenanceOptions are the modifiers of table maintenance statements.
var MaintenanceOptions = components.OptionSpec{
	"NO_WRITE_TO_BINLOG": {ID: 1},
	"LOCAL":              {ID: 1},
	"TABLE":              {ID: 2},
}

// MaintenanceEndOptions may follow the tables of CHECK, CHECKSUM and REPAIR.
var MaintenanceEndOptions = components.OptionSpec{
	"QUICK":    {ID: 1},
	"FAST":     {ID: 2},
	"MEDIUM":   {ID: 3},
	"EXTENDED": {ID: 4},
	"CHANGED":  {ID: 5},
	"USE_FRM":  {ID: 6},
}

// MaintenanceStatement is ANALYZE, CHECK, CHECKSUM, OPTIMIZE or REPAIR TABLE.
type MaintenanceStatement struct {
	Span `json:"span" yaml:"span"`

	Kind       string                   `json:"kind" yaml:"kind"`
	Options    *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	Tables     []*components.Expression `json:"tables" yaml:"tables"`
	EndOptions *components.OptionsArray `json:"end_options,omitempty" yaml:"end_options,omitempty"`
}

func (s *MaintenanceStatement) Keyword() string { return s.Kind }

func (s *MaintenanceStatement) Build() string {
	return join(s.Kind, s.Options.Build(), components.BuildExpressions(s.Tables), s.EndOptions.Build())
}

func parseMaintenance(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &MaintenanceStatement{Kind: start.Value}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, MaintenanceOptions)
	list.Idx++
	if !s.Options.Has("TABLE") {
		c.Add(sqlerr.MissingKeyword, "Keyword \"TABLE\" was expected.", start)
	}
	s.Tables = components.ParseExpressionArray(c, list, components.ExpressionOptions{
		Field: components.FieldTable, BreakOnAlias: true,
	})
	list.Idx++
	s.EndOptions = components.ParseOptionsArray(c, list, MaintenanceEndOptions)
	list.Idx++
	expectEnd(c, list)
	return s
}
