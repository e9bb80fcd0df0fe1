package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/parser"
)

func TestLoadFromFile(t *testing.T) {
	config, err := LoadFromFile("testdata/full.yaml")
	require.NoError(t, err)
	assert.Equal(t, "$$", config.Delimiter)
	assert.Equal(t, dialect.ANSIQuotes|dialect.NoBackslashEscapes, config.Mode())
	assert.Equal(t, 10, config.MaxErrors)
	assert.True(t, config.Strict)
	assert.True(t, config.ValidateSQL)
	assert.Equal(t, OutputJSON, config.Output)
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	config, err := LoadFromFile("testdata/partial.json")
	require.NoError(t, err)
	assert.Equal(t, ";", config.Delimiter)
	assert.Equal(t, dialect.ANSIQuotes, config.Mode())
	assert.Equal(t, OutputYAML, config.Output)
	assert.False(t, config.Strict)
}

func TestLoadFromFileErrors(t *testing.T) {
	tests := []struct {
		filename string
		contains string
	}{
		{filename: "testdata/missing.yaml", contains: "failed to read config file"},
		{filename: "testdata/bad_mode.yaml", contains: `unsupported sql mode "STRICT_EVERYTHING"`},
		{filename: "testdata/bad_output.yaml", contains: `unsupported output format "xml"`},
	}
	for _, test := range tests {
		_, err := LoadFromFile(test.filename)
		require.Error(t, err, test.filename)
		assert.Contains(t, err.Error(), test.contains)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	config := DefaultConfig()
	config.Delimiter = ""
	require.Error(t, config.Validate())

	config = DefaultConfig()
	config.MaxErrors = -1
	require.Error(t, config.Validate())
}

func TestParserOptions(t *testing.T) {
	config := DefaultConfig()
	config.Delimiter = "//"
	config.SQLMode = []string{"ANSI_QUOTES"}

	p := parser.New(config.ParserOptions()...)
	require.Equal(t, "//", p.Delimiter())

	result, err := p.Parse(`SELECT "a" FROM t// SELECT 1//`)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Len(t, result.Statements, 2)
}
