package lexer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/dialect"
)

// significant drops whitespace and comments.
func significant(list *List) []*Token {
	var out []*Token
	for _, tok := range list.Tokens {
		if tok.IsSignificant() {
			out = append(out, tok)
		}
	}
	return out
}

func TestLexRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"SELECT 1",
		"select a, b from t where a = 'x''y' and b <> \"z\\\"\" -- trailing",
		"SELECT /* c */ `weird``name` FROM db.tbl # bash\n;",
		"INSERT INTO t VALUES (0x1F, b'0101', x'AF', .5, 1e-3, 3.14)",
		"SET @a := 1, @@session.sql_mode = 'ANSI'",
		"SELECT 'unterminated",
		"/*!40101 SET NAMES utf8 */;",
		"SELECT ä, 'ünïcode' FROM tëst",
		"DELIMITER //\nCREATE PROCEDURE p() BEGIN SELECT 1; END//\nDELIMITER ;\n",
		"SELECT a->>'$.x' FROM t WHERE b <=> ? AND c = :name",
	}
	for _, sql := range tests {
		list, err := Lex(sql)
		require.NoError(t, err, sql)
		require.Equal(t, sql, list.Build(), sql)
	}
}

func TestLexRoundTripEdges(t *testing.T) {
	tests := []string{
		"/* unterminated",
		"SELECT 1 /* unterminated\n; SELECT 2",
		"/*!40101 SELECT 1",
		"/*!",
		"/*M!100100 SET x = 1",
		"*/",
		"SELECT 1 */",
		"--",
		"-- ",
		"--x",
		"SELECT 1 -- \r\n",
		"#",
		"'",
		"`unterminated",
		"\"unterminated \\",
		"x'",
		"b'01",
		"@",
		"@@",
		"@'q",
		"@`",
		":",
		"a.b.c",
		".5e",
		"1e",
		"0x",
		"SELECT 1;;",
		"DELIMITER",
		"DELIMITER ",
		"DELIMITER\n",
		"DELIMITER;",
		"DELIMITER $$",
		"DELIMITER $$\nSELECT 1$$\nDELIMITER ;",
		"delimiter //\nSELECT 1//\n",
		"DELIMITER // SELECT 1//",
		"SELECT 1; DELIMITER ;;\nSELECT 2;;",
		"DELIMITER $$\n$$$$",
	}
	for _, sql := range tests {
		list, err := Lex(sql)
		require.NoError(t, err, sql)
		require.Equal(t, sql, list.Build(), sql)
		for _, tok := range list.Tokens {
			require.NotEmpty(t, tok.Raw, sql)
		}
	}
}

var lexFragments = []string{
	"SELECT", "select", "FROM", "DELIMITER", "delimiter", "CHARACTER SET", "a", "t1", "_x",
	" ", "  ", "\n", "\r\n", "\t",
	"'", "''", "\"", "`", "``", "\\'", "'\\", "'x'", "\"y\"", "`z`",
	"/*", "*/", "/*!", "/*!50100", "/*M!100100", "--", "-- ", "#",
	";", ";;", "//", "$$", ",", "(", ")", ".", "=", ":=", "<=>", "->>", "*", "-", "+",
	"1", "1.5", ".5", "1e3", "0x1F", "x'", "b'", "X'AF'",
	"@", "@@", "@a", "@@session.x", "?", ":name", ":",
	"ä", "ü", "{", "}",
}

func TestLexRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	lexers := [][]Option{
		nil,
		{WithDelimiter("$$")},
		{WithMode(dialect.ANSIQuotes | dialect.NoBackslashEscapes)},
	}

	for i := 0; i < 5000; i++ {
		var b strings.Builder
		for n := rnd.Intn(12) + 1; n > 0; n-- {
			b.WriteString(lexFragments[rnd.Intn(len(lexFragments))])
		}
		sql := b.String()

		for _, opts := range lexers {
			list, err := Lex(sql, opts...)
			if err != nil {
				var lexErr *LexError
				require.ErrorAs(t, err, &lexErr, sql)
				continue
			}
			require.Equal(t, sql, list.Build(), "%q", sql)
		}
	}
}

func TestLexTokens(t *testing.T) {
	tests := []struct {
		sql   string
		types []TokenType
		vals  []string
	}{
		{
			sql:   "SELECT a FROM t",
			types: []TokenType{TypeKeyword, TypeNone, TypeKeyword, TypeNone},
			vals:  []string{"SELECT", "a", "FROM", "t"},
		},
		{
			sql:   "select 'it''s', \"a\\nb\"",
			types: []TokenType{TypeKeyword, TypeString, TypeOperator, TypeString},
			vals:  []string{"SELECT", "it's", ",", "a\nb"},
		},
		{
			sql:   "SELECT TRUE, false",
			types: []TokenType{TypeKeyword, TypeBool, TypeOperator, TypeBool},
			vals:  []string{"SELECT", "TRUE", ",", "FALSE"},
		},
		{
			sql:   "a <=> b",
			types: []TokenType{TypeNone, TypeOperator, TypeNone},
			vals:  []string{"a", "<=>", "b"},
		},
		{
			sql:   "db.select",
			types: []TokenType{TypeNone, TypeOperator, TypeNone},
			vals:  []string{"db", ".", "select"},
		},
		{
			sql:   "@x @`y z` @@global.max_connections",
			types: []TokenType{TypeSymbol, TypeSymbol, TypeSymbol},
			vals:  []string{"x", "y z", "global.max_connections"},
		},
		{
			sql:   "1col",
			types: []TokenType{TypeNone},
			vals:  []string{"1col"},
		},
	}
	for _, tc := range tests {
		list, err := Lex(tc.sql)
		require.NoError(t, err, tc.sql)
		toks := significant(list)
		require.Len(t, toks, len(tc.types), tc.sql)
		for i, tok := range toks {
			assert.Equal(t, tc.types[i], tok.Type, "%s: token %d", tc.sql, i)
			assert.Equal(t, tc.vals[i], tok.Value, "%s: token %d", tc.sql, i)
		}
	}
}

func TestLexCompoundKeywords(t *testing.T) {
	list, err := Lex("SELECT a FROM t GROUP   BY a ORDER\nBY a")
	require.NoError(t, err)

	var keywords []string
	for _, tok := range significant(list) {
		if tok.Type == TypeKeyword {
			keywords = append(keywords, tok.Value)
		}
	}
	require.Equal(t, []string{"SELECT", "FROM", "GROUP BY", "ORDER BY"}, keywords)

	// A compound never swallows a function call.
	list, err = Lex("SELECT CHARACTER SET(x)")
	require.NoError(t, err)
	for _, tok := range list.Tokens {
		require.NotEqual(t, "CHARACTER SET", tok.Value)
	}

	list, err = Lex("PRIMARY KEY(id)")
	require.NoError(t, err)
	require.Equal(t, "PRIMARY KEY", list.Tokens[0].Value)
	require.True(t, list.Tokens[0].Has(FlagKeywordKey))
}

func TestLexKeywordFlags(t *testing.T) {
	list, err := Lex("SELECT COUNT(*) FROM t")
	require.NoError(t, err)
	toks := significant(list)
	require.True(t, toks[0].IsReserved())
	require.True(t, toks[1].Has(FlagKeywordFunction))
	require.Equal(t, "COUNT", toks[1].Value)
	require.Equal(t, "COUNT", toks[1].Raw)
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		sql   string
		value string
		flags Flag
	}{
		{"42", "42", 0},
		{"3.14", "3.14", FlagNumberFloat},
		{".5", ".5", FlagNumberFloat},
		{"1e10", "1e10", FlagNumberApproximate},
		{"2.5E-3", "2.5E-3", FlagNumberFloat | FlagNumberApproximate},
		{"0x1F", "0x1F", FlagNumberHex},
		{"0b101", "0b101", FlagNumberBinary},
		{"X'AF'", "X'AF'", FlagNumberHex},
	}
	for _, tc := range tests {
		list, err := Lex(tc.sql)
		require.NoError(t, err, tc.sql)
		require.Len(t, list.Tokens, 1, tc.sql)
		tok := list.Tokens[0]
		assert.Equal(t, TypeNumber, tok.Type, tc.sql)
		assert.Equal(t, tc.value, tok.Value, tc.sql)
		assert.Equal(t, tc.flags, tok.Flags, tc.sql)
	}
}

func TestLexComments(t *testing.T) {
	list, err := Lex("-- sql\n# bash\n/* c */SELECT 1 --")
	require.NoError(t, err)
	var flags []Flag
	for _, tok := range list.Tokens {
		if tok.Type == TypeComment {
			flags = append(flags, tok.Flags)
		}
	}
	require.Equal(t, []Flag{FlagCommentSQL, FlagCommentBash, FlagCommentC, FlagCommentSQL}, flags)

	// Without a following blank, -- is two minus operators.
	list, err = Lex("1--2")
	require.NoError(t, err)
	require.Len(t, list.Tokens, 4)
	require.Equal(t, TypeOperator, list.Tokens[1].Type)
}

func TestLexExecutableComment(t *testing.T) {
	list, err := Lex("/*!40101 SET NAMES utf8 */")
	require.NoError(t, err)
	first := list.Tokens[0]
	last := list.Tokens[list.Count-1]
	require.True(t, first.Has(FlagCommentMySQLCmd))
	require.Equal(t, "/*!40101", first.Raw)
	require.True(t, last.Has(FlagCommentMySQLCmd))
	require.Equal(t, "*/", last.Raw)

	toks := significant(list)
	require.Equal(t, "SET", toks[0].Value)
}

func TestLexDiagnostics(t *testing.T) {
	l := New()
	list, err := l.Lex("SELECT 'abc")
	require.NoError(t, err)
	require.Len(t, l.Diagnostics(), 1)
	require.Equal(t, "Ending quote ' was expected.", l.Diagnostics()[0].Message)
	require.Equal(t, "'abc", list.Tokens[list.Count-1].Raw)

	_, err = l.Lex("SELECT 1 /* open")
	require.NoError(t, err)
	require.Len(t, l.Diagnostics(), 1)
	require.Equal(t, "Ending comment sequence was expected.", l.Diagnostics()[0].Message)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		sql    string
		offset int
	}{
		{"SELECT \x01", 7},
		{"SELECT \\", 7},
		{"SELECT '\xff'", 8},
	}
	for _, tc := range tests {
		list, err := Lex(tc.sql)
		require.Nil(t, list)
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr, tc.sql)
		require.Equal(t, tc.offset, lexErr.Offset, tc.sql)
	}
}

func TestLexDelimiter(t *testing.T) {
	l := New()
	list, err := l.Lex("DELIMITER $$\nSELECT 1; SELECT 2$$\nDELIMITER ;\nSELECT 3;")
	require.NoError(t, err)
	require.Equal(t, ";", l.Delimiter())

	var delimiters []*Token
	for _, tok := range list.Tokens {
		if tok.Type == TypeDelimiter {
			delimiters = append(delimiters, tok)
		}
	}
	require.Len(t, delimiters, 4)
	require.True(t, delimiters[0].Has(FlagDelimiterDefinition))
	require.Equal(t, "$$", delimiters[0].Value)
	require.Equal(t, "$$", delimiters[1].Value)
	require.False(t, delimiters[1].Has(FlagDelimiterDefinition))
	require.True(t, delimiters[2].Has(FlagDelimiterDefinition))
	require.Equal(t, ";", delimiters[3].Value)

	list, err = Lex("SELECT 1 // SELECT 2", WithDelimiter("//"))
	require.NoError(t, err)
	require.Equal(t, TypeDelimiter, significant(list)[2].Type)
}

func TestLexModes(t *testing.T) {
	list, err := Lex(`SELECT "col"`, WithMode(dialect.ANSIQuotes))
	require.NoError(t, err)
	tok := significant(list)[1]
	require.Equal(t, TypeSymbol, tok.Type)
	require.True(t, tok.Has(FlagSymbolDoubleQuoted))
	require.Equal(t, "col", tok.Value)

	list, err = Lex(`SELECT 'a\nb'`, WithMode(dialect.NoBackslashEscapes))
	require.NoError(t, err)
	require.Equal(t, `a\nb`, significant(list)[1].Value)
}

func TestLexPositions(t *testing.T) {
	sql := "SELECT  a,\n b"
	list, err := Lex(sql)
	require.NoError(t, err)
	for _, tok := range list.Tokens {
		require.Equal(t, tok.Raw, sql[tok.Position:tok.Position+len(tok.Raw)])
	}
}
