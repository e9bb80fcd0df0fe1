package statements

import (
	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// SelectOptions are the modifiers that may follow SELECT.
var SelectOptions = components.OptionSpec{
	"ALL":                 {ID: 1},
	"DISTINCT":            {ID: 1},
	"DISTINCTROW":         {ID: 1},
	"HIGH_PRIORITY":       {ID: 2},
	"MAX_STATEMENT_TIME":  {ID: 3, Kind: components.KindVarEq},
	"STRAIGHT_JOIN":       {ID: 4},
	"SQL_SMALL_RESULT":    {ID: 5},
	"SQL_BIG_RESULT":      {ID: 6},
	"SQL_BUFFER_RESULT":   {ID: 7},
	"SQL_CACHE":           {ID: 8},
	"SQL_NO_CACHE":        {ID: 8},
	"SQL_CALC_FOUND_ROWS": {ID: 9},
}

// Union is a SELECT combined with the previous one by UNION, EXCEPT or
// INTERSECT.
type Union struct {
	// Type is the combining keyword, such as UNION ALL.
	Type   string           `json:"type" yaml:"type"`
	Select *SelectStatement `json:"select" yaml:"select"`
}

// SelectStatement is a SELECT query.
type SelectStatement struct {
	Span    `json:"span" yaml:"span"`
	Options *components.OptionsArray   `json:"options,omitempty" yaml:"options,omitempty"`
	Exprs   []*components.Expression   `json:"exprs" yaml:"exprs"`
	Into    *components.IntoKeyword    `json:"into,omitempty" yaml:"into,omitempty"`
	From    []*components.Expression   `json:"from,omitempty" yaml:"from,omitempty"`
	Joins   []*components.JoinKeyword  `json:"joins,omitempty" yaml:"joins,omitempty"`
	Where   []*components.Condition    `json:"where,omitempty" yaml:"where,omitempty"`
	Group   []*components.GroupKeyword `json:"group,omitempty" yaml:"group,omitempty"`
	// Rollup is set by GROUP BY ... WITH ROLLUP.
	Rollup bool                       `json:"rollup,omitempty" yaml:"rollup,omitempty"`
	Having []*components.Condition    `json:"having,omitempty" yaml:"having,omitempty"`
	Order  []*components.OrderKeyword `json:"order,omitempty" yaml:"order,omitempty"`
	Limit  *components.Limit          `json:"limit,omitempty" yaml:"limit,omitempty"`
	// Lock is FOR UPDATE or LOCK IN SHARE MODE.
	Lock   string   `json:"lock,omitempty" yaml:"lock,omitempty"`
	Unions []*Union `json:"unions,omitempty" yaml:"unions,omitempty"`
}

func (s *SelectStatement) Keyword() string { return "SELECT" }

// Build renders the query. INTO is always placed after the select list.
func (s *SelectStatement) Build() string {
	ret := join(
		"SELECT",
		s.Options.Build(),
		components.BuildExpressions(s.Exprs),
		s.Into.Build(),
		prefix("FROM", components.BuildExpressions(s.From)),
		components.BuildAll(s.Joins, " "),
		prefix("WHERE", components.BuildConditions(s.Where)),
		prefix("GROUP BY", components.BuildAll(s.Group, ", ")),
	)
	if s.Rollup {
		ret += " WITH ROLLUP"
	}
	ret = join(
		ret,
		prefix("HAVING", components.BuildConditions(s.Having)),
		prefix("ORDER BY", components.BuildAll(s.Order, ", ")),
		prefix("LIMIT", s.Limit.Build()),
		s.Lock,
	)
	for _, u := range s.Unions {
		ret = join(ret, u.Type, u.Select.Build())
	}
	return ret
}

// Tables returns the tables named in FROM and the joins, in order.
func (s *SelectStatement) Tables() []*components.Expression {
	ret := append([]*components.Expression{}, s.From...)
	for _, j := range s.Joins {
		if j.Expr != nil {
			ret = append(ret, j.Expr)
		}
	}
	return ret
}

var selectGrammar *grammar[*SelectStatement]

func init() {
	selectGrammar = newGrammar(
		clause[*SelectStatement]{
			name: "INTO", keywords: []string{"INTO", "INTO OUTFILE", "INTO DUMPFILE"}, keep: true, anywhere: true,
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Into = components.ParseIntoKeyword(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "FROM", keywords: []string{"FROM"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.From = components.ParseTableReferences(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "JOIN", keywords: components.JoinKeywords(), keep: true,
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Joins = append(s.Joins, components.ParseJoins(c, list)...)
			},
		},
		clause[*SelectStatement]{
			name: "WHERE", keywords: []string{"WHERE"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Where = components.ParseConditions(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "GROUP BY", keywords: []string{"GROUP BY"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Group = components.ParseGroupKeywords(c, list)
				if next := peek(list); next != nil && next.IsKeyword("WITH ROLLUP") {
					advance(list)
					s.Rollup = true
				}
			},
		},
		clause[*SelectStatement]{
			name: "HAVING", keywords: []string{"HAVING"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Having = components.ParseConditions(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "ORDER BY", keywords: []string{"ORDER BY"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Order = components.ParseOrderKeywords(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "LIMIT", keywords: []string{"LIMIT"},
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Limit = components.ParseLimit(c, list)
			},
		},
		clause[*SelectStatement]{
			name: "lock", keywords: []string{"FOR UPDATE", "LOCK IN SHARE MODE"}, keep: true,
			parse: func(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
				s.Lock = list.Current().Value
			},
		},
		clause[*SelectStatement]{
			name: "UNION", keywords: []string{"UNION", "UNION ALL", "UNION DISTINCT", "EXCEPT", "INTERSECT"},
			keep: true, repeat: true,
			parse: parseUnion,
		},
	)
}

// parseUnion parses the SELECT after a combining keyword. The unions of the
// nested query are lifted so that the chain stays flat.
func parseUnion(s *SelectStatement, c *sqlerr.Collector, list *lexer.List) {
	kw := list.Current()
	next := advance(list)
	if next == nil || !next.IsKeyword("SELECT") {
		c.Add(sqlerr.UnexpectedToken, "A SELECT statement was expected after "+kw.Value+".", current(list))
		return
	}
	sel := parseSelectStatement(c, list, true)
	s.Unions = append(s.Unions, &Union{Type: kw.Value, Select: sel})
	s.Unions = append(s.Unions, sel.Unions...)
	sel.Unions = nil
}

func parseSelect(c *sqlerr.Collector, list *lexer.List) Statement {
	return parseSelectStatement(c, list, false)
}

// parseSelectStatement parses a SELECT. The cursor must be on SELECT.
func parseSelectStatement(c *sqlerr.Collector, list *lexer.List, nested bool) *SelectStatement {
	s := &SelectStatement{}
	list.Idx++
	s.Options = components.ParseOptionsArray(c, list, SelectOptions)
	list.Idx++
	if next := peekFrom(list); next != nil && !next.IsKeyword("FROM") {
		s.Exprs = components.ParseExpressionArray(c, list, components.ExpressionOptions{})
	} else {
		c.Add(sqlerr.MissingExpression, "An expression was expected.", current(list))
		list.Idx--
	}
	list.Idx++
	selectGrammar.parse(s, c, list, nested)
	return s
}

// peekFrom returns the significant token at or after the cursor, stopping at
// a delimiter.
func peekFrom(list *lexer.List) *lexer.Token {
	for i := list.Idx; i < list.Count; i++ {
		tok := list.Tokens[i]
		if tok.Type == lexer.TypeDelimiter {
			return nil
		}
		if tok.IsSignificant() {
			return tok
		}
	}
	return nil
}
