package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// UpdateOptions are the modifiers of UPDATE.
var UpdateOptions = components.OptionSpec{
	"LOW_PRIORITY": {ID: 1},
	"IGNORE":       {ID: 2},
}

// UpdateStatement is an UPDATE.
type UpdateStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray   `json:"options,omitempty" yaml:"options,omitempty"`
	Tables  []*components.Expression   `json:"tables" yaml:"tables"`
	Joins   []*components.JoinKeyword  `json:"joins,omitempty" yaml:"joins,omitempty"`
	Set     []*components.SetOperation `json:"set" yaml:"set"`
	Where   []*components.Condition    `json:"where,omitempty" yaml:"where,omitempty"`
	Order   []*components.OrderKeyword `json:"order,omitempty" yaml:"order,omitempty"`
	Limit   *components.Limit          `json:"limit,omitempty" yaml:"limit,omitempty"`
}

func (s *UpdateStatement) Keyword() string { return "UPDATE" }

func (s *UpdateStatement) Build() string {
	return join(
		"UPDATE",
		s.Options.Build(),
		components.BuildExpressions(s.Tables),
		components.BuildAll(s.Joins, " "),
		prefix("SET", components.BuildSetOperations(s.Set)),
		prefix("WHERE", components.BuildConditions(s.Where)),
		prefix("ORDER BY", components.BuildAll(s.Order, ", ")),
		prefix("LIMIT", s.Limit.Build()),
	)
}

var updateGrammar *grammar[*UpdateStatement]

func init() {
	updateGrammar = newGrammar(
		clause[*UpdateStatement]{
			name: "JOIN", keywords: components.JoinKeywords(), keep: true,
			parse: func(s *UpdateStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Joins = append(s.Joins, components.ParseJoins(c, list)...)
			},
		},
		clause[*UpdateStatement]{
			name: "SET", keywords: []string{"SET"},
			parse: func(s *UpdateStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Set = components.ParseSetOperations(c, list)
			},
		},
		clause[*UpdateStatement]{
			name: "WHERE", keywords: []string{"WHERE"},
			parse: func(s *UpdateStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Where = components.ParseConditions(c, list)
			},
		},
		clause[*UpdateStatement]{
			name: "ORDER BY", keywords: []string{"ORDER BY"},
			parse: func(s *UpdateStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Order = components.ParseOrderKeywords(c, list)
			},
		},
		clause[*UpdateStatement]{
			name: "LIMIT", keywords: []string{"LIMIT"},
			parse: func(s *UpdateStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Limit = components.ParseLimit(c, list)
			},
		},
	)
}

func parseUpdate(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &UpdateStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, UpdateOptions)
	list.Idx++
	s.Tables = components.ParseTableReferences(c, list)
	list.Idx++
	updateGrammar.parse(s, c, list, false)

	if len(s.Set) == 0 {
		c.Add(sqlerr.MissingKeyword, "Keyword \"SET\" was expected.", start)
	}
	return s
}
