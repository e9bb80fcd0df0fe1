package statements

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

type statementCase struct {
	SQL     string        `yaml:"sql"`
	Keyword string        `yaml:"keyword"`
	Build   string        `yaml:"build"`
	Errors  []sqlerr.Code `yaml:"errors"`
}

func parse(t *testing.T, sql string) (Statement, *sqlerr.Collector) {
	t.Helper()
	list, err := lexer.Lex(sql)
	require.NoError(t, err, sql)
	c := sqlerr.NewCollector(sql, 0)
	return Parse(c, list), c
}

func codes(c *sqlerr.Collector) []sqlerr.Code {
	var ret []sqlerr.Code
	for _, err := range c.Errors() {
		ret = append(ret, err.Code)
	}
	return ret
}

func TestParse(t *testing.T) {
	yamlData, err := os.ReadFile("testdata/statements.yaml")
	require.NoError(t, err)
	var testCases []statementCase
	require.NoError(t, yaml.Unmarshal(yamlData, &testCases))

	for _, tc := range testCases {
		t.Run(tc.SQL, func(t *testing.T) {
			stmt, c := parse(t, tc.SQL)
			require.NotNil(t, stmt)
			require.Equal(t, tc.Errors, codes(c))
			require.Equal(t, tc.Keyword, stmt.Keyword())
			require.Equal(t, tc.Build, stmt.Build())

			if len(tc.Errors) > 0 {
				return
			}
			again, c := parse(t, stmt.Build())
			require.Empty(t, codes(c), "rebuilt statement reports errors")
			require.Equal(t, tc.Build, again.Build())
		})
	}
}

func TestBounds(t *testing.T) {
	stmt, c := parse(t, "SELECT a FROM t ;")
	require.False(t, c.HasErrors())
	first, last := stmt.Bounds()
	assert.Equal(t, 0, first)
	assert.Equal(t, 6, last)
}

func TestParseStopsAtNextStatement(t *testing.T) {
	list, err := lexer.Lex("SELECT 1 SELECT 2")
	require.NoError(t, err)
	c := sqlerr.NewCollector("", 0)

	stmt := Parse(c, list)
	require.Equal(t, "SELECT 1", stmt.Build())
	_, last := stmt.Bounds()
	assert.Equal(t, 2, last)
	assert.False(t, c.HasErrors())
}

func TestParseEmpty(t *testing.T) {
	list, err := lexer.Lex("")
	require.NoError(t, err)
	assert.Nil(t, Parse(sqlerr.NewCollector("", 0), list))
}

func TestLookup(t *testing.T) {
	for _, kw := range []string{"SELECT", "REPLACE", "START TRANSACTION", "DESC", "CHECKSUM"} {
		_, ok := Lookup(kw)
		assert.True(t, ok, kw)
	}
	_, ok := Lookup("FROM")
	assert.False(t, ok)
}

func TestSelectTables(t *testing.T) {
	stmt, c := parse(t, "SELECT * FROM a, b x JOIN c ON c.id = x.id")
	require.False(t, c.HasErrors())
	sel := stmt.(*SelectStatement)

	var tables []string
	for _, e := range sel.Tables() {
		tables = append(tables, e.Table)
	}
	assert.Equal(t, []string{"a", "b", "c"}, tables)
}

func TestInsertRows(t *testing.T) {
	testCases := []struct {
		sql  string
		rows int
	}{
		{"INSERT INTO t VALUES (1), (2), (3)", 3},
		{"INSERT INTO t SET a = 1", 1},
		{"INSERT INTO t SELECT a FROM u", -1},
	}
	for _, tc := range testCases {
		stmt, c := parse(t, tc.sql)
		require.False(t, c.HasErrors(), tc.sql)
		assert.Equal(t, tc.rows, stmt.(*InsertStatement).Rows(), tc.sql)
	}
}

func TestCreateTableFields(t *testing.T) {
	stmt, c := parse(t, "CREATE TABLE t (id INT NOT NULL, name VARCHAR(32), KEY idx_name (name))")
	require.False(t, c.HasErrors())
	create := stmt.(*CreateStatement)
	require.Equal(t, "TABLE", create.Object())
	require.Len(t, create.Fields, 3)
	assert.Equal(t, "id", create.Fields[0].Name)
	assert.Equal(t, "name", create.Fields[1].Name)
	assert.NotNil(t, create.Fields[2].Key)
}

func TestUnion(t *testing.T) {
	stmt, c := parse(t, "SELECT a FROM t UNION SELECT b FROM u UNION ALL SELECT c FROM v")
	require.False(t, c.HasErrors())
	sel := stmt.(*SelectStatement)
	require.Len(t, sel.Unions, 2)
	assert.Equal(t, "UNION", sel.Unions[0].Type)
	assert.Equal(t, "UNION ALL", sel.Unions[1].Type)
	assert.Empty(t, sel.Unions[0].Select.Unions)
}

func TestExplainNested(t *testing.T) {
	stmt, c := parse(t, "EXPLAIN FORMAT=JSON DELETE FROM t")
	require.False(t, c.HasErrors())
	explain := stmt.(*ExplainStatement)
	require.NotNil(t, explain.Statement)
	assert.Equal(t, "DELETE", explain.Statement.Keyword())
}

func TestUnknown(t *testing.T) {
	stmt, c := parse(t, "FROBNICATE the widgets")
	unknown, ok := stmt.(*UnknownStatement)
	require.True(t, ok)
	assert.Equal(t, "FROBNICATE the widgets", unknown.Raw)
	require.Equal(t, []sqlerr.Code{sqlerr.UnrecognizedStatement}, codes(c))

	stmt, c = parse(t, "42 + 1")
	require.IsType(t, &UnknownStatement{}, stmt)
	require.Equal(t, []sqlerr.Code{sqlerr.UnexpectedBeginning}, codes(c))
}
