package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

func parse(t *testing.T, sql string) statements.Statement {
	t.Helper()
	result, err := parser.New().Parse(sql)
	require.NoError(t, err)
	require.Empty(t, result.Errors, sql)
	require.Len(t, result.Statements, 1)
	return result.Statements[0]
}

func TestGetFlags(t *testing.T) {
	testCases := []struct {
		sql  string
		want Flags
	}{
		{
			sql:  "SELECT COUNT(*) FROM t",
			want: Flags{QueryType: TypeSelect, IsSelect: true, IsCount: true, IsFunc: true, IsGroup: true},
		},
		{
			sql: "SELECT DISTINCT a FROM t JOIN u ON t.id = u.id ORDER BY a LIMIT 10, 5",
			want: Flags{QueryType: TypeSelect, IsSelect: true, Distinct: true, Join: true,
				Order: true, Limit: true, Offset: true},
		},
		{
			sql:  "SELECT a FROM t WHERE id IN (SELECT id FROM u) UNION SELECT b FROM v",
			want: Flags{QueryType: TypeSelect, IsSelect: true, IsSubquery: true, Union: true},
		},
		{
			sql:  "SELECT a, SUM(b) FROM t GROUP BY a HAVING SUM(b) > 1",
			want: Flags{QueryType: TypeSelect, IsSelect: true, IsFunc: true, IsGroup: true, Having: true},
		},
		{
			sql:  "SELECT * FROM t INTO OUTFILE '/tmp/t.csv'",
			want: Flags{QueryType: TypeSelect, IsSelect: true, IsExport: true},
		},
		{
			sql:  "REPLACE INTO t VALUES (1)",
			want: Flags{QueryType: TypeReplace, IsReplace: true, IsAffected: true},
		},
		{
			sql:  "DELETE FROM t WHERE a = 1 LIMIT 1",
			want: Flags{QueryType: TypeDelete, IsDelete: true, IsAffected: true, Limit: true},
		},
		{
			sql:  "DROP DATABASE db",
			want: Flags{QueryType: TypeDrop, DropDatabase: true, Reload: true},
		},
		{
			sql:  "CALL p()",
			want: Flags{QueryType: TypeCall, IsProcedure: true},
		},
		{
			sql:  "SHOW TABLES",
			want: Flags{QueryType: TypeShow, IsShow: true},
		},
		{
			sql:  "OPTIMIZE TABLE t",
			want: Flags{QueryType: TypeMaintenance, IsMaint: true},
		},
		{
			sql:  "EXPLAIN SELECT 1",
			want: Flags{QueryType: TypeExplain, IsExplain: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.sql, func(t *testing.T) {
			assert.Equal(t, &tc.want, GetFlags(parse(t, tc.sql)))
		})
	}
}

func TestGetTables(t *testing.T) {
	testCases := []struct {
		sql  string
		want []string
	}{
		{"SELECT * FROM db.a, b JOIN c ON b.id = c.id", []string{"db.a", "b", "c"}},
		{"SELECT * FROM a UNION SELECT * FROM b UNION SELECT * FROM a", []string{"a", "b"}},
		{"INSERT INTO a SELECT * FROM b", []string{"a", "b"}},
		{"UPDATE a JOIN b ON a.id = b.id SET a.x = b.x", []string{"a", "b"}},
		{"DELETE FROM a WHERE id = 1", []string{"a"}},
		{"RENAME TABLE a TO b, c TO d", []string{"a", "b", "c", "d"}},
		{"DROP TABLE a, b", []string{"a", "b"}},
		{"CREATE INDEX i ON a (x)", []string{"a"}},
		{"EXPLAIN UPDATE a SET x = 1", []string{"a"}},
		{"SELECT 1", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.sql, func(t *testing.T) {
			assert.Equal(t, tc.want, GetTables(parse(t, tc.sql)))
		})
	}
}

func TestReplaceLimit(t *testing.T) {
	got, err := ReplaceLimit(parse(t, "SELECT a FROM t ORDER BY a"), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t ORDER BY a LIMIT 10", got)

	got, err = ReplaceLimit(parse(t, "SELECT a FROM t LIMIT 5 FOR UPDATE"), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t LIMIT 20, 10 FOR UPDATE", got)

	got, err = ReplaceLimit(parse(t, "SELECT a FROM t UNION SELECT b FROM u"), 0, 1)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t UNION SELECT b FROM u LIMIT 1", got)

	_, err = ReplaceLimit(parse(t, "DELETE FROM t"), 0, 1)
	assert.Error(t, err)
	_, err = ReplaceLimit(parse(t, "SELECT 1"), -1, 1)
	assert.Error(t, err)
}

func TestStripComments(t *testing.T) {
	testCases := []struct {
		sql  string
		want string
	}{
		{"SELECT /* c */ 1 -- tail\nFROM t # x", "SELECT 1 FROM t"},
		{"SELECT a/* glued */FROM t", "SELECT a FROM t"},
		{"/*!40101 SET NAMES utf8 */;", "/*!40101 SET NAMES utf8 */;"},
		{"SELECT '-- not a comment'", "SELECT '-- not a comment'"},
	}
	for _, tc := range testCases {
		got, err := StripComments(tc.sql)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := StripComments("SELECT \\")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	typ, err := Detect("  -- leading\n;update t set a = 1")
	require.NoError(t, err)
	assert.Equal(t, TypeUpdate, typ)

	typ, err = Detect("")
	require.NoError(t, err)
	assert.Equal(t, TypeUnknown, typ)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "SELECT a\nFROM t", Normalize("  SELECT   a\n\n   FROM\tt  "))
}

func TestHighlight(t *testing.T) {
	assert.Equal(t, colorBlue+"SELECT 1"+colorReset, Highlight(parse(t, "select 1")))
	assert.Equal(t, colorWhite, Color(parse(t, "SELECT a FROM t FOR UPDATE")))
	assert.Equal(t, colorRed, Color(parse(t, "ROLLBACK")))
	assert.Equal(t, colorMagenta, Color(parse(t, "DROP TABLE t")))
}
