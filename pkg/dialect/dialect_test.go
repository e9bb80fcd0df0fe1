package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKeyword(t *testing.T) {
	tests := []struct {
		text     string
		want     KeywordFlag
		wantOK   bool
		reserved bool
	}{
		{text: "select", want: Reserved, wantOK: true, reserved: true},
		{text: "COUNT", want: Function, wantOK: true},
		{text: "varchar", want: Reserved | DataType, wantOK: true, reserved: true},
		{text: "group by", want: Reserved | Compound, wantOK: true, reserved: true},
		{text: "primary key", want: Reserved | Key | Compound, wantOK: true, reserved: true},
		{text: "engine", want: 0, wantOK: true},
		{text: "frobnicate", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			flags, ok := IsKeyword(tc.text)
			require.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, flags)
			assert.Equal(t, tc.reserved, IsReserved(tc.text))
		})
	}
}

func TestCompounds(t *testing.T) {
	list := Compounds("natural")
	require.NotEmpty(t, list)
	// Longest compounds come first so the lexer matches greedily.
	assert.Equal(t, 4, len(splitWords(list[0])))
	assert.Contains(t, list, "NATURAL JOIN")
	assert.Empty(t, Compounds("SELECT"))
}

func splitWords(s string) []string {
	var words []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ' ' {
			words = append(words, s[start:i])
			start = i + 1
		}
	}
	return words
}

func TestIsOperator(t *testing.T) {
	flags, ok := IsOperator("<=>")
	require.True(t, ok)
	assert.True(t, flags.Has(Logical))

	flags, ok = IsOperator(",")
	require.True(t, ok)
	assert.Equal(t, SQL, flags)

	_, ok = IsOperator("=>")
	assert.False(t, ok)
	assert.Equal(t, 3, MaxOperatorLen())
}

func TestIsStatementKeyword(t *testing.T) {
	assert.True(t, IsStatementKeyword("select"))
	assert.True(t, IsStatementKeyword("START TRANSACTION"))
	assert.False(t, IsStatementKeyword("FROM"))
}

func TestEscapeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "users", want: "users"},
		{name: "order", want: "`order`"},
		{name: "first name", want: "`first name`"},
		{name: "we`ird", want: "`we``ird`"},
		{name: "123", want: "`123`"},
		{name: "1abc", want: "1abc"},
		{name: "", want: "``"},
		{name: "café", want: "café"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EscapeIdentifier(tc.name))
		})
	}
}

func TestQuoteString(t *testing.T) {
	assert.Equal(t, `'it''s'`, QuoteString("it's"))
	assert.Equal(t, `'a\\b\n'`, QuoteString("a\\b\n"))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("ansi_quotes, NO_BACKSLASH_ESCAPES")
	require.NoError(t, err)
	assert.True(t, mode.Has(ANSIQuotes))
	assert.True(t, mode.Has(NoBackslashEscapes))
	assert.Equal(t, "ANSI_QUOTES,NO_BACKSLASH_ESCAPES", mode.String())

	mode, err = ParseMode("ANSI", "")
	require.NoError(t, err)
	assert.Equal(t, ANSIQuotes, mode)

	_, err = ParseMode("STRICT_ALL_TABLES_PLEASE")
	require.Error(t, err)
}
