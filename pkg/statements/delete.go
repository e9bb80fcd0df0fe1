package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// DeleteOptions are the modifiers of DELETE.
var DeleteOptions = components.OptionSpec{
	"LOW_PRIORITY": {ID: 1},
	"QUICK":        {ID: 2},
	"IGNORE":       {ID: 3},
}

// DeleteStatement is a DELETE. Columns holds the target tables of a
// multi-table delete written before FROM.
type DeleteStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray   `json:"options,omitempty" yaml:"options,omitempty"`
	Columns []*components.Expression   `json:"columns,omitempty" yaml:"columns,omitempty"`
	From    []*components.Expression   `json:"from" yaml:"from"`
	Using   []*components.Expression   `json:"using,omitempty" yaml:"using,omitempty"`
	Joins   []*components.JoinKeyword  `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where   []*components.Condition    `json:"where,omitempty" yaml:"where,omitempty"`
	Order   []*components.OrderKeyword `json:"order,omitempty" yaml:"order,omitempty"`
	Limit   *components.Limit          `json:"limit,omitempty" yaml:"limit,omitempty"`
}

func (s *DeleteStatement) Keyword() string { return "DELETE" }

func (s *DeleteStatement) Build() string {
	return join(
		"DELETE",
		s.Options.Build(),
		components.BuildExpressions(s.Columns),
		prefix("FROM", components.BuildExpressions(s.From)),
		prefix("USING", components.BuildExpressions(s.Using)),
		components.BuildAll(s.Joins, " "),
		prefix("WHERE", components.BuildConditions(s.Where)),
		prefix("ORDER BY", components.BuildAll(s.Order, ", ")),
		prefix("LIMIT", s.Limit.Build()),
	)
}

var deleteGrammar *grammar[*DeleteStatement]

func init() {
	deleteGrammar = newGrammar(
		clause[*DeleteStatement]{
			name: "FROM", keywords: []string{"FROM"},
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.From = components.ParseTableReferences(c, list)
			},
		},
		clause[*DeleteStatement]{
			name: "USING", keywords: []string{"USING"},
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Using = components.ParseTableReferences(c, list)
			},
		},
		clause[*DeleteStatement]{
			name: "JOIN", keywords: components.JoinKeywords(), keep: true,
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Joins = append(s.Joins, components.ParseJoins(c, list)...)
			},
		},
		clause[*DeleteStatement]{
			name: "WHERE", keywords: []string{"WHERE"},
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Where = components.ParseConditions(c, list)
			},
		},
		clause[*DeleteStatement]{
			name: "ORDER BY", keywords: []string{"ORDER BY"},
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Order = components.ParseOrderKeywords(c, list)
			},
		},
		clause[*DeleteStatement]{
			name: "LIMIT", keywords: []string{"LIMIT"},
			parse: func(s *DeleteStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Limit = components.ParseLimit(c, list)
			},
		},
	)
}

func parseDelete(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &DeleteStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, DeleteOptions)
	list.Idx++
	if next := peekFrom(list); next != nil && !next.IsKeyword("FROM") {
		s.Columns = components.ParseTableReferences(c, list)
		list.Idx++
	}
	deleteGrammar.parse(s, c, list, false)

	if len(s.From) == 0 {
		c.Add(sqlerr.MissingKeyword, "Keyword \"FROM\" was expected.", start)
	}
	return s
}
