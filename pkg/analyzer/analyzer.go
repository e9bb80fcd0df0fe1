// Package analyzer provides a high-level API to parse SQL scripts and collect
// everything worth reporting about them.
//
// # Quick Start
//
//	a := analyzer.New()
//	result, err := a.Analyze(context.Background(), "SELECT id FROM users; DELETE FROM users")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result)
//	for _, d := range result.Diagnostics {
//	    fmt.Println(d)
//	}
//
// # Cross-checking with the MySQL grammar
//
//	a := analyzer.New(analyzer.WithValidation(true))
//
// # With Database Schema Context
//
//	finder := catalog.NewFinder("app", &catalog.FinderContext{CheckIntegrity: true})
//	_ = finder.Seed(schema.Statements)
//	a := analyzer.New(analyzer.WithCatalog(finder))
package analyzer

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/nsxbet/sql-parser/pkg/catalog"
	"github.com/nsxbet/sql-parser/pkg/config"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/logger"
	"github.com/nsxbet/sql-parser/pkg/mysqlparser"
	"github.com/nsxbet/sql-parser/pkg/parser"
	"github.com/nsxbet/sql-parser/pkg/query"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
	"github.com/nsxbet/sql-parser/pkg/statements"
	"github.com/nsxbet/sql-parser/pkg/types"
)

// Analyzer parses SQL and reports diagnostics together with a summary of
// every statement.
//
// An Analyzer without a catalog is safe for concurrent use by multiple
// goroutines. WithCatalog makes Analyze mutate the finder.
type Analyzer struct {
	config   *config.Config
	validate bool
	finder   *catalog.Finder
	log      logger.Interface
}

// New creates an Analyzer with the default configuration.
//
// Example:
//
//	a := analyzer.New(analyzer.WithValidation(true))
//	result, err := a.Analyze(ctx, "CREATE TABLE users (id INT);")
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		config: config.DefaultConfig(),
		log:    logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze parses sql and inspects every statement.
//
// The context is checked between statements. When it is cancelled the
// statements inspected so far are returned together with ctx.Err().
//
// Returns an error only if the analysis itself fails: input that cannot be
// tokenized or a cancelled context. Parse problems are diagnostics.
func (a *Analyzer) Analyze(ctx context.Context, sql string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := append(a.config.ParserOptions(), parser.WithLogger(a.log))
	parsed, err := parser.New(opts...).Parse(sql)
	if parsed == nil {
		a.log.Debug("analysis aborted", logger.Error(err))
		return nil, pkgerrors.Wrap(err, "failed to tokenize SQL")
	}

	index := types.NewLineIndex(sql)
	result := &Result{}
	for _, e := range parsed.Errors {
		result.Diagnostics = append(result.Diagnostics, parseDiagnostic(e, statementAt(parsed, e.Offset)))
	}

	for i, stmt := range parsed.Statements {
		// Check for context cancellation
		if err := ctx.Err(); err != nil {
			result.Summary = calculateSummary(result)
			return result, err
		}

		line := statementLine(parsed.Tokens, index, stmt)
		result.Statements = append(result.Statements, &Statement{
			Keyword: stmt.Keyword(),
			SQL:     stmt.Build(),
			Line:    line,
			Flags:   query.GetFlags(stmt),
			Tables:  query.GetTables(stmt),
		})

		if a.validate {
			if d := a.validateStatement(stmt, line); d != nil {
				d.Statement = i
				result.Diagnostics = append(result.Diagnostics, d)
			}
		}
		if a.finder != nil {
			if d := a.walkStatement(stmt); d != nil {
				d.Line, d.Statement = line, i
				result.Diagnostics = append(result.Diagnostics, d)
			}
		}
	}

	result.Summary = calculateSummary(result)
	a.log.Debug("analysis finished", "statements", result.Summary.Statements, "diagnostics", result.Summary.Total)
	return result, nil
}

func (a *Analyzer) validateStatement(stmt statements.Statement, line int) *Diagnostic {
	err := mysqlparser.ValidateStatement(stmt, line)
	if err == nil {
		return nil
	}
	a.log.Debug("validation failed", logger.Statement(stmt.Keyword()), logger.Error(err))
	d := &Diagnostic{
		Source:   SourceValidation,
		Severity: sqlerr.Error,
		Message:  err.Error(),
		Line:     line,
	}
	var syntaxErr *mysqlparser.SyntaxError
	if pkgerrors.As(err, &syntaxErr) && syntaxErr.Position != nil {
		d.Line = int(syntaxErr.Position.Line)
	}
	return d
}

func (a *Analyzer) walkStatement(stmt statements.Statement) *Diagnostic {
	err := a.finder.WalkThrough([]statements.Statement{stmt})
	if err == nil {
		return nil
	}
	a.log.Debug("catalog walk failed", logger.Statement(stmt.Keyword()), logger.Error(err))
	d := &Diagnostic{
		Source:   SourceCatalog,
		Severity: sqlerr.Error,
		Message:  err.Error(),
	}
	var walkErr *catalog.WalkThroughError
	if errors.As(err, &walkErr) {
		d.Code = int(walkErr.Type)
		d.Message = walkErr.Content
	}
	return d
}

func parseDiagnostic(e *sqlerr.ParseError, stmt int) *Diagnostic {
	d := &Diagnostic{
		Source:    SourceParser,
		Code:      e.Code.Int(),
		Severity:  e.Severity,
		Message:   e.Message,
		Statement: stmt,
	}
	if e.Position != nil {
		d.Line = int(e.Position.Line)
		d.Column = int(e.Position.Column)
	}
	return d
}

// statementAt returns the index of the statement whose tokens cover offset,
// or -1.
func statementAt(r *parser.Result, offset int) int {
	if offset < 0 || r.Tokens == nil {
		return -1
	}
	for i, stmt := range r.Statements {
		first, last := stmt.Bounds()
		if first < 0 || last >= len(r.Tokens.Tokens) || first > last {
			continue
		}
		end := r.Tokens.Tokens[last]
		if offset >= r.Tokens.Tokens[first].Position && offset < end.Position+len(end.Raw) {
			return i
		}
	}
	return -1
}

func statementLine(list *lexer.List, index *types.LineIndex, stmt statements.Statement) int {
	first, _ := stmt.Bounds()
	if list == nil || first < 0 || first >= len(list.Tokens) {
		return 0
	}
	return int(index.Position(list.Tokens[first].Position).Line)
}
