package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// InsertOptions are the modifiers of INSERT and REPLACE.
var InsertOptions = components.OptionSpec{
	"LOW_PRIORITY":  {ID: 1},
	"DELAYED":       {ID: 1},
	"HIGH_PRIORITY": {ID: 1},
	"IGNORE":        {ID: 2},
}

// InsertStatement is an INSERT or a REPLACE.
type InsertStatement struct {
	Span `json:"span" yaml:"span"`

	// Kind is INSERT or REPLACE.
	Kind    string                   `json:"kind" yaml:"kind"`
	Options *components.OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
	Into    *components.IntoKeyword  `json:"into" yaml:"into"`
	// Exactly one of Values, Set and Select is set.
	Values []*components.ArrayObj     `json:"values,omitempty" yaml:"values,omitempty"`
	Set    []*components.SetOperation `json:"set,omitempty" yaml:"set,omitempty"`
	Select *SelectStatement           `json:"select,omitempty" yaml:"select,omitempty"`
	// OnDuplicate holds the ON DUPLICATE KEY UPDATE assignments.
	OnDuplicate []*components.SetOperation `json:"on_duplicate,omitempty" yaml:"on_duplicate,omitempty"`
}

func (s *InsertStatement) Keyword() string { return s.Kind }

func (s *InsertStatement) Build() string {
	return join(
		s.Kind,
		s.Options.Build(),
		s.Into.Build(),
		prefix("VALUES", components.BuildAll(s.Values, ", ")),
		prefix("SET", components.BuildSetOperations(s.Set)),
		buildSelect(s.Select),
		prefix("ON DUPLICATE KEY UPDATE", components.BuildSetOperations(s.OnDuplicate)),
	)
}

// Rows returns the number of rows the statement lists explicitly, or -1
// when the rows come from a query.
func (s *InsertStatement) Rows() int {
	switch {
	case s.Select != nil:
		return -1
	case len(s.Set) > 0:
		return 1
	}
	return len(s.Values)
}

var insertGrammar *grammar[*InsertStatement]

func init() {
	insertGrammar = newGrammar(
		clause[*InsertStatement]{
			name: "INTO", keywords: []string{"INTO"}, keep: true,
			parse: func(s *InsertStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Into = components.ParseIntoKeyword(c, list)
			},
		},
		clause[*InsertStatement]{
			name: "VALUES", keywords: []string{"VALUES", "VALUE"},
			parse: func(s *InsertStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Values = components.ParseArrayObjList(c, list)
			},
		},
		clause[*InsertStatement]{
			name: "SET", keywords: []string{"SET"},
			parse: func(s *InsertStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Set = components.ParseSetOperations(c, list)
			},
		},
		clause[*InsertStatement]{
			name: "SELECT", keywords: []string{"SELECT"}, keep: true,
			parse: func(s *InsertStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Select = parseSelectStatement(c, list, true)
			},
		},
		clause[*InsertStatement]{
			name: "ON DUPLICATE KEY UPDATE", keywords: []string{"ON DUPLICATE KEY UPDATE"},
			parse: func(s *InsertStatement, c *sqlerr.Collector, list *lexer.List) {
				s.OnDuplicate = components.ParseSetOperations(c, list)
			},
		},
	)
}

// parseInsert parses INSERT and REPLACE. The cursor must be on the keyword.
func parseInsert(c *sqlerr.Collector, list *lexer.List) Statement {
	start := list.Current()
	s := &InsertStatement{Kind: start.Value}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, InsertOptions)
	list.Idx++

	if next := peekFrom(list); next != nil && !next.IsKeyword("INTO") {
		s.Into = components.ParseIntoTable(c, list)
		list.Idx++
	}
	insertGrammar.parse(s, c, list, false)

	switch {
	case s.Into == nil:
		c.Add(sqlerr.MissingKeyword, "Keyword \"INTO\" was expected.", start)
	case len(s.Values) == 0 && len(s.Set) == 0 && s.Select == nil:
		c.Add(sqlerr.MissingKeyword, "Keyword \"VALUES\", \"SET\" or \"SELECT\" was expected.", start)
	}
	if s.Kind == "REPLACE" && len(s.OnDuplicate) > 0 {
		c.Add(sqlerr.UnexpectedKeyword, "REPLACE does not accept ON DUPLICATE KEY UPDATE.", start)
	}
	return s
}

func buildSelect(s *SelectStatement) string {
	if s == nil {
		return ""
	}
	return s.Build()
}
