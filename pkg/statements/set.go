package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// SetOptions are the keywords that may follow SET.
var SetOptions = components.OptionSpec{
	"GLOBAL":       {ID: 1},
	"SESSION":      {ID: 1},
	"LOCAL":        {ID: 1},
	"PERSIST":      {ID: 1},
	"PERSIST_ONLY": {ID: 1},
	"TRANSACTION":  {ID: 2},
}

// SetStatement assigns variables, or sets the connection character set or
// the transaction characteristics.
type SetStatement struct {
	Span `json:"span" yaml:"span"`

	Options *components.OptionsArray   `json:"options,omitempty" yaml:"options,omitempty"`
	Set     []*components.SetOperation `json:"set,omitempty" yaml:"set,omitempty"`
	// Rest is the raw text after SET TRANSACTION.
	Rest string `json:"rest,omitempty" yaml:"rest,omitempty"`
}

func (s *SetStatement) Keyword() string { return "SET" }

func (s *SetStatement) Build() string {
	return join("SET", s.Options.Build(), components.BuildSetOperations(s.Set), s.Rest)
}

func parseSet(c *sqlerr.Collector, list *lexer.List) Statement {
	s := &SetStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, SetOptions)
	list.Idx++

	if s.Options.Has("TRANSACTION") {
		s.Rest = buildRest(rest(list))
		return s
	}
	s.Set = components.ParseSetVariables(c, list)
	list.Idx++
	expectEnd(c, list)
	return s
}
