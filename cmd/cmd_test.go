package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/analyzer"
	"github.com/nsxbet/sql-parser/pkg/config"
)

func writeSQL(t *testing.T, sql string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.sql")
	require.NoError(t, os.WriteFile(path, []byte(sql), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFormatCommand(t *testing.T) {
	path := writeSQL(t, "select a from t where b = 1;\nINSERT INTO t (a) VALUES (1)")
	stdout, stderr, err := execute(t, "format", path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t WHERE b = 1;\nINSERT INTO t (a) VALUES (1);\n", stdout)
	assert.Empty(t, stderr)
}

func TestParseCommandDiagnostics(t *testing.T) {
	path := writeSQL(t, "SELECT 1; FROBNICATE x;")
	stdout, stderr, err := execute(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1\tSELECT\tSELECT\tSELECT 1\n")
	assert.Contains(t, stderr, "error 301")
}

func TestReadInput(t *testing.T) {
	path := writeSQL(t, "SELECT 1")
	sql, err := readInput([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", sql)

	_, err = readInput([]string{filepath.Join(t.TempDir(), "missing.sql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read SQL file")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, config.OutputYAML, map[string]int{"statements": 2}))
	assert.Equal(t, "statements: 2\n", buf.String())

	buf.Reset()
	require.NoError(t, encode(&buf, config.OutputJSON, map[string]int{"statements": 2}))
	assert.Equal(t, "{\n  \"statements\": 2\n}\n", buf.String())

	require.Error(t, encode(&buf, "xml", nil))
}

func TestOutputResults(t *testing.T) {
	result, err := analyzer.New().Analyze(context.Background(), "SELECT 1;\nFROBNICATE x;")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, outputResults(&buf, result, config.OutputText))
	assert.Contains(t, buf.String(), "parser")
	assert.Contains(t, buf.String(), "301")
	assert.Contains(t, buf.String(), "Summary: 2 statement(s), 1 error(s), 0 warning(s)")

	clean, err := analyzer.New().Analyze(context.Background(), "SELECT 1")
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, outputResults(&buf, clean, config.OutputText))
	assert.Equal(t, "No issues found in 1 statement(s).\n", buf.String())
}

func TestLoadSchema(t *testing.T) {
	path := writeSQL(t, "CREATE TABLE users (id INT PRIMARY KEY);")
	finder, err := loadSchema(config.DefaultConfig(), path, "app")
	require.NoError(t, err)
	require.NotNil(t, finder.Final.Table("users"))

	path = writeSQL(t, "CREATE TABLE users (id INT); CREATE TABLE users (id INT);")
	_, err = loadSchema(config.DefaultConfig(), path, "app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Table `users` already exists")
}

func TestReplShell(t *testing.T) {
	var out, errOut bytes.Buffer
	shell := &replShell{cfg: config.DefaultConfig(), out: &out, errOut: &errOut}

	require.True(t, shell.handle("select a"))
	assert.Empty(t, out.String())
	require.True(t, shell.handle("from t;"))
	assert.Contains(t, out.String(), "SELECT a FROM t")
	assert.Contains(t, out.String(), "type: SELECT")
	assert.Zero(t, shell.buffer.Len())

	out.Reset()
	require.True(t, shell.handle(`\t`))
	require.True(t, shell.handle("DELETE FROM orders;"))
	assert.Contains(t, out.String(), "tables: orders")

	require.True(t, shell.handle("FROBNICATE;"))
	assert.Contains(t, errOut.String(), "error 301")

	require.True(t, shell.handle("SELECT"))
	require.True(t, shell.handle(`\c`))
	assert.Zero(t, shell.buffer.Len())

	require.False(t, shell.handle(`\q`))
}
