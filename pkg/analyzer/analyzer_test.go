package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/catalog"
	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/logger"
	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/query"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

func TestNew(t *testing.T) {
	a := New()
	require.NotNil(t, a.config)
	assert.False(t, a.validate)
	assert.Nil(t, a.finder)

	cfg := config.DefaultConfig()
	cfg.ValidateSQL = true
	a = New(WithConfig(cfg), WithLogger(logger.NewDiscard()))
	assert.Same(t, cfg, a.config)
	assert.True(t, a.validate)

	a = New(WithConfig(nil))
	require.NotNil(t, a.config)
}

func TestAnalyze(t *testing.T) {
	sql := "SELECT a, COUNT(*) FROM t JOIN u ON t.id = u.id GROUP BY a;\nDELETE FROM t WHERE a = 1;"
	result, err := New().Analyze(context.Background(), sql)
	require.NoError(t, err)
	require.True(t, result.IsClean())
	require.Len(t, result.Statements, 2)
	assert.Equal(t, 2, result.Summary.Statements)

	first := result.Statements[0]
	assert.Equal(t, "SELECT", first.Keyword)
	assert.Equal(t, 1, first.Line)
	assert.Equal(t, query.TypeSelect, first.Flags.QueryType)
	assert.True(t, first.Flags.Join)
	assert.True(t, first.Flags.IsGroup)
	assert.Equal(t, []string{"t", "u"}, first.Tables)

	second := result.Statements[1]
	assert.Equal(t, "DELETE", second.Keyword)
	assert.Equal(t, 2, second.Line)
	assert.True(t, second.Flags.IsDelete)
	assert.True(t, second.Flags.IsAffected)
}

func TestAnalyze_ParserDiagnostics(t *testing.T) {
	result, err := New().Analyze(context.Background(), "SELECT 1;\nFROBNICATE x;")
	require.NoError(t, err)
	require.True(t, result.HasErrors())
	require.Len(t, result.Statements, 2)

	diags := result.FilterByCode(sqlerr.UnrecognizedStatement.Int())
	require.Len(t, diags, 1)
	assert.Equal(t, SourceParser, diags[0].Source)
	assert.Equal(t, sqlerr.Error, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 1, diags[0].Column)
	assert.Equal(t, 1, diags[0].Statement)
}

func TestAnalyze_LexError(t *testing.T) {
	result, err := New().Analyze(context.Background(), "SELECT \\ 1")
	require.Nil(t, result)
	var lexErr *lexer.LexError
	require.True(t, errors.As(err, &lexErr))
}

func TestAnalyze_Config(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Delimiter = "$$"
	cfg.Strict = true

	// Strict mode only changes the parser error; the analyzer still
	// reports the diagnostics.
	result, err := New(WithConfig(cfg)).Analyze(context.Background(), "SELECT 1$$ FROBNICATE$$")
	require.NoError(t, err)
	require.Len(t, result.Statements, 2)
	assert.Equal(t, 1, result.Summary.Errors)
}

func TestAnalyze_Validation(t *testing.T) {
	sql := "SELECT a FROM t WHERE b = 1; CREATE TABLE t (id INT PRIMARY KEY);"
	result, err := New(WithValidation(true)).Analyze(context.Background(), sql)
	require.NoError(t, err)
	assert.True(t, result.IsClean(), "%v", result.Diagnostics)
}

func TestAnalyze_ValidationLine(t *testing.T) {
	sql := "SELECT 1;\n\nSELECT CASE END FROM t;"
	result, err := New(WithValidation(true)).Analyze(context.Background(), sql)
	require.NoError(t, err)

	var validation []*Diagnostic
	for _, d := range result.Diagnostics {
		if d.Source == SourceValidation {
			validation = append(validation, d)
		}
	}
	require.Len(t, validation, 1)
	assert.Equal(t, 3, validation[0].Line)
	assert.Equal(t, 1, validation[0].Statement)
	assert.Contains(t, validation[0].Message, "Syntax error at line 3:")
}

func TestAnalyze_Catalog(t *testing.T) {
	schema, err := parser.New().Parse("CREATE TABLE users (id INT PRIMARY KEY, email VARCHAR(100));")
	require.NoError(t, err)
	finder := catalog.NewFinder("app", &catalog.FinderContext{CheckIntegrity: true})
	require.NoError(t, finder.Seed(schema.Statements))

	sql := "ALTER TABLE users ADD COLUMN name VARCHAR(50);\nALTER TABLE users DROP COLUMN missing;\nDROP TABLE orders;"
	result, err := New(WithCatalog(finder)).Analyze(context.Background(), sql)
	require.NoError(t, err)

	diags := result.FilterBySeverity(sqlerr.Error)
	require.Len(t, diags, 2)
	assert.Equal(t, SourceCatalog, diags[0].Source)
	assert.Equal(t, catalog.ErrorTypeColumnNotExists, diags[0].Code)
	assert.Equal(t, "Column `missing` does not exist in table `users`", diags[0].Message)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 1, diags[0].Statement)
	assert.Equal(t, catalog.ErrorTypeTableNotExists, diags[1].Code)
	assert.Equal(t, 3, diags[1].Line)

	require.NotNil(t, finder.Final.Table("users").Column("name"))
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Analyze(ctx, "SELECT 1")
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, result)
}
