package parser

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/components"
	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

type parseCase struct {
	Name     string        `yaml:"name"`
	SQL      string        `yaml:"sql"`
	Keywords []string      `yaml:"keywords"`
	Build    string        `yaml:"build"`
	Errors   []sqlerr.Code `yaml:"errors"`
}

func codes(errs []*sqlerr.ParseError) []sqlerr.Code {
	var ret []sqlerr.Code
	for _, err := range errs {
		ret = append(ret, err.Code)
	}
	return ret
}

func keywords(r *Result) []string {
	var ret []string
	for _, stmt := range r.Statements {
		ret = append(ret, stmt.Keyword())
	}
	return ret
}

func TestParse(t *testing.T) {
	yamlData, err := os.ReadFile("testdata/parse.yaml")
	require.NoError(t, err)
	var testCases []parseCase
	require.NoError(t, yaml.Unmarshal(yamlData, &testCases))

	p := New()
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			result, err := p.Parse(tc.SQL)
			require.NoError(t, err)
			require.Equal(t, tc.Errors, codes(result.Errors))
			require.Equal(t, tc.Keywords, keywords(result))
			require.Equal(t, tc.Build, result.Build())
			require.Equal(t, len(tc.Errors) > 0, result.HasErrors())

			if len(tc.Errors) > 0 {
				return
			}
			again, err := p.Parse(result.Build())
			require.NoError(t, err)
			require.Empty(t, again.Errors)
			require.Equal(t, tc.Build, again.Build())
		})
	}
}

func TestParseLexError(t *testing.T) {
	result, err := New().Parse("SELECT \\ 1")
	require.Nil(t, result)
	var lexErr *lexer.LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 7, lexErr.Offset)
}

func TestParseStrict(t *testing.T) {
	result, err := New(WithStrict(true)).Parse("FROBNICATE x")
	require.Error(t, err)
	require.NotNil(t, result)
	var parseErr *sqlerr.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, sqlerr.UnrecognizedStatement, parseErr.Code)
	require.Len(t, result.Statements, 1)

	_, err = New(WithStrict(true)).Parse("SELECT 1")
	require.NoError(t, err)
}

func TestParseMaxErrors(t *testing.T) {
	result, err := New(WithMaxErrors(2)).Parse("A; B; C; D")
	require.NoError(t, err)
	assert.Len(t, result.Errors, 2)
	assert.Len(t, result.Statements, 4)
}

func TestParseOptions(t *testing.T) {
	result, err := New(WithDelimiter("//")).Parse("SELECT 1// SELECT 2//")
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, "SELECT 1//\nSELECT 2//", result.Build())

	result, err = New(WithMode(dialect.ANSIQuotes)).Parse(`SELECT "col" FROM "t"`)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	assert.Equal(t, `SELECT "col" FROM "t";`, result.Build())
}

func TestBounds(t *testing.T) {
	result, err := New().Parse("SELECT 1;\nUPDATE t SET a = 2;")
	require.NoError(t, err)
	require.Len(t, result.Statements, 2)

	first, last := result.Statements[1].Bounds()
	assert.Equal(t, "UPDATE t SET a = 2", lexer.Build(result.Tokens.Slice(first, last+1)))
}

func TestBuild(t *testing.T) {
	result, err := New().Parse("select 1; select 2")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1$$\nSELECT 2$$", Build(result.Statements, "$$"))
}

func TestParseExpression(t *testing.T) {
	frag, err := New().ParseExpression("db.tbl.col AS x", components.ExpressionOptions{})
	require.NoError(t, err)
	require.Empty(t, frag.Errors)
	assert.Equal(t, "db", frag.Value.Database)
	assert.Equal(t, "tbl", frag.Value.Table)
	assert.Equal(t, "col", frag.Value.Column)
	assert.Equal(t, "x", frag.Value.Alias)

	frag, err = New().ParseExpression("COUNT(*) AS total", components.ExpressionOptions{})
	require.NoError(t, err)
	assert.Equal(t, "COUNT", frag.Value.Function)
	assert.Equal(t, "COUNT(*)", frag.Value.Expr)
	assert.Equal(t, "total", frag.Value.Alias)
}

func TestParseOptionsConflict(t *testing.T) {
	spec := components.OptionSpec{"ALL": {ID: 1}, "DISTINCT": {ID: 1}}
	frag, err := New().ParseOptions("ALL DISTINCT", spec)
	require.NoError(t, err)
	assert.Equal(t, []sqlerr.Code{sqlerr.DuplicateOption}, codes(frag.Errors))
	assert.Len(t, frag.Value.Entries(), 2)
}

func TestParseComponents(t *testing.T) {
	p := New()

	defs, err := p.ParseCreateDefinitions("(id INT, name VARCHAR(10) NOT NULL)")
	require.NoError(t, err)
	require.Empty(t, defs.Errors)
	require.Len(t, defs.Value, 2)
	assert.Equal(t, "name", defs.Value[1].Name)

	conds, err := p.ParseCondition("a = 1 AND b BETWEEN 2 AND 3")
	require.NoError(t, err)
	require.Empty(t, conds.Errors)
	assert.Equal(t, "a = 1 AND b BETWEEN 2 AND 3", components.BuildConditions(conds.Value))

	typ, err := p.ParseDataType("DECIMAL(10,2) UNSIGNED")
	require.NoError(t, err)
	require.Empty(t, typ.Errors)
	assert.Equal(t, "DECIMAL", typ.Value.Name)
	assert.Equal(t, []string{"10", "2"}, typ.Value.Parameters)

	typ, err = p.ParseDataType("INT, x")
	require.NoError(t, err)
	assert.Equal(t, []sqlerr.Code{sqlerr.UnexpectedToken}, codes(typ.Errors))
}

func parseWithTimeout(t *testing.T, sql string) *Result {
	t.Helper()
	done := make(chan *Result, 1)
	go func() {
		result, _ := New().Parse(sql)
		done <- result
	}()
	select {
	case result := <-done:
		return result
	case <-time.After(2 * time.Second):
		t.Fatalf("Parse(%q) did not return", sql)
		return nil
	}
}

func TestParseMalformedCase(t *testing.T) {
	tests := []struct {
		sql      string
		contains string
		code     sqlerr.Code
	}{
		{"SELECT CASE FROM t", "FROM t", sqlerr.MissingExpression},
		{"SELECT CASE , END", "SELECT CASE END", sqlerr.MissingExpression},
		{"SELECT CASE ) END", "SELECT CASE END", sqlerr.MissingExpression},
		{"SELECT CASE WHEN a THEN b FROM t", "CASE WHEN a THEN b END FROM t", sqlerr.UnexpectedToken},
		{"SELECT CASE WHEN FROM t", "FROM t", sqlerr.MissingExpression},
		{"SELECT CASE UNION SELECT 1", "SELECT CASE END", sqlerr.MissingExpression},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			result := parseWithTimeout(t, tt.sql)
			require.NotNil(t, result)
			assert.Contains(t, result.Build(), tt.contains)
			assert.Contains(t, codes(result.Errors), tt.code)

			again := parseWithTimeout(t, result.Build())
			assert.Equal(t, result.Build(), again.Build())
		})
	}
}
