package components

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

type expressionCase struct {
	SQL          string        `yaml:"sql"`
	Field        string        `yaml:"field"`
	BreakOnAlias bool          `yaml:"break_on_alias"`
	Want         *Expression   `yaml:"want"`
	Build        string        `yaml:"build"`
	Errors       []sqlerr.Code `yaml:"errors"`
}

func lex(t *testing.T, sql string) (*lexer.List, *sqlerr.Collector) {
	t.Helper()
	list, err := lexer.Lex(sql)
	require.NoError(t, err, sql)
	return list, sqlerr.NewCollector(sql, 0)
}

func codes(c *sqlerr.Collector) []sqlerr.Code {
	var ret []sqlerr.Code
	for _, err := range c.Errors() {
		ret = append(ret, err.Code)
	}
	return ret
}

func TestParseExpression(t *testing.T) {
	yamlData, err := os.ReadFile("testdata/expression.yaml")
	require.NoError(t, err)
	var testCases []expressionCase
	require.NoError(t, yaml.Unmarshal(yamlData, &testCases))

	for _, tc := range testCases {
		t.Run(tc.SQL, func(t *testing.T) {
			list, c := lex(t, tc.SQL)
			opts := ExpressionOptions{BreakOnAlias: tc.BreakOnAlias}
			switch tc.Field {
			case "table":
				opts.Field = FieldTable
			case "column":
				opts.Field = FieldColumn
			}

			got := ParseExpression(c, list, opts)
			require.Equal(t, tc.Want, got)
			require.Equal(t, tc.Build, got.Build())
			require.Equal(t, tc.Errors, codes(c))
		})
	}
}

func TestParseExpressionCursor(t *testing.T) {
	list, c := lex(t, "a + b FROM t")
	expr := ParseExpression(c, list, ExpressionOptions{})
	require.Equal(t, "a + b", expr.Expr)
	// The cursor stays on the last consumed token.
	require.Equal(t, "FROM", list.Tokens[list.Idx+1].Value)
	require.Empty(t, c.Errors())

	list, c = lex(t, "FROM t")
	require.Nil(t, ParseExpression(c, list, ExpressionOptions{}))
	require.Equal(t, -1, list.Idx)
}

func TestParseExpressionMissingAlias(t *testing.T) {
	list, c := lex(t, "a AS , b")
	expr := ParseExpression(c, list, ExpressionOptions{})
	require.Equal(t, "a", expr.Build())
	require.Len(t, c.Errors(), 1)
	require.Equal(t, 5, c.Errors()[0].Offset)
	require.Equal(t, ",", list.Tokens[list.Idx+1].Value)

	list, c = lex(t, "a AS")
	ParseExpression(c, list, ExpressionOptions{})
	require.Len(t, c.Errors(), 1)
	require.Equal(t, 2, c.Errors()[0].Offset)
}

func TestParseExpressionNested(t *testing.T) {
	list, c := lex(t, "a, b) c")
	exprs := ParseExpressionArray(c, list, ExpressionOptions{Nested: true})
	require.Len(t, exprs, 2)
	require.Equal(t, ")", list.Tokens[list.Idx+1].Value)
	require.Empty(t, c.Errors())
}

func TestParseExpressionArray(t *testing.T) {
	list, c := lex(t, "a, b AS x, COUNT(*) total FROM t")
	exprs := ParseExpressionArray(c, list, ExpressionOptions{})
	require.Len(t, exprs, 3)
	require.Equal(t, "a, b AS x, COUNT(*) AS total", BuildExpressions(exprs))
	require.Empty(t, c.Errors())

	list, c = lex(t, "a, FROM t")
	exprs = ParseExpressionArray(c, list, ExpressionOptions{})
	require.Len(t, exprs, 1)
	require.Equal(t, []sqlerr.Code{sqlerr.MissingExpression}, codes(c))
}

func TestExpressionBuild(t *testing.T) {
	require.Equal(t, "`select`.`order`", NewExpression("", "select", "order").Build())
	require.Equal(t, "db.t.c AS `x y`", NewExpression("db", "t", "c", "x y").Build())
	require.Equal(t, "1 + 1 AS two", NewExpression("1 + 1", "two").Build())
	var nilExpr *Expression
	require.Equal(t, "", nilExpr.Build())
}

func TestParseCaseExpression(t *testing.T) {
	list, c := lex(t, "CASE status WHEN 1 THEN 'on' WHEN 0 THEN 'off' END")
	cs := ParseCaseExpression(c, list)
	require.NotNil(t, cs.Value)
	require.Len(t, cs.Whens, 2)
	require.Nil(t, cs.Else)
	require.Equal(t, "CASE status WHEN 1 THEN 'on' WHEN 0 THEN 'off' END", cs.Build())
	require.Equal(t, "END", list.Current().Value)
	require.Empty(t, c.Errors())

	list, c = lex(t, "CASE WHEN a THEN b")
	ParseCaseExpression(c, list)
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedEnd}, codes(c))
}
