// Package pkg provides a fault-tolerant MySQL parser for Go applications.
//
// The parser reads whole scripts, never stops at the first problem and
// rebuilds every statement it recovered into canonical SQL. Diagnostics are
// collected next to the statements instead of aborting the parse.
//
// # Package Structure
//
// The pkg directory contains several specialized packages:
//
//   - parser: Entry point: lexes, splits and parses scripts (recommended starting point)
//   - analyzer: High-level API combining parsing, flags, validation and schema checks
//   - lexer: Tokenizer and token stream
//   - dialect: Keyword and operator tables, SQL modes, identifier quoting
//   - components: Sub-parsers for expressions, options, conditions and clauses
//   - statements: Statement syntax trees and the clause parse loop
//   - sqlerr: Diagnostics, error codes and the error collector
//   - query: Statement flags, table extraction, LIMIT injection, comment stripping
//   - catalog: Schema state built by walking DDL statements
//   - mysqlparser: ANTLR MySQL grammar cross-check
//   - config: Configuration loading and management
//   - logger: Logging abstraction layer
//   - types: Positions and line indexes
//
// # Getting Started
//
// For most use cases, start with the parser package:
//
//	import "github.com/nsxbet/sql-parser/pkg/parser"
//
//	func main() {
//	    result, err := parser.New().Parse(sqlStatements)
//	    // Process result.Statements and result.Errors...
//	}
//
// # Statements
//
// Recognized statements:
//
//   - Data manipulation: SELECT (with UNION, EXCEPT and INTERSECT), INSERT,
//     REPLACE, UPDATE, DELETE
//   - Data definition: CREATE, ALTER, DROP, RENAME, TRUNCATE
//   - Session and transactions: SET, USE, START TRANSACTION, BEGIN, COMMIT,
//     ROLLBACK
//   - Inspection: EXPLAIN, DESCRIBE, SHOW
//   - Maintenance: ANALYZE, CHECK, CHECKSUM, OPTIMIZE, REPAIR
//   - Routines: CALL
//
// Anything else becomes an unknown statement that keeps its original text.
//
// # Configuration
//
// Parser settings can be loaded from YAML/JSON files or set programmatically:
//
//	cfg, err := config.LoadFromFile("sql-parser.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := parser.New(cfg.ParserOptions()...)
//
// # Advanced Features
//
// Schema-aware validation:
//
//	finder := catalog.NewFinder("mydb", &catalog.FinderContext{CheckIntegrity: true})
//	_ = finder.Seed(schema.Statements)
//	result, err := analyzer.New(analyzer.WithCatalog(finder)).Analyze(ctx, sql)
//
// Grammar cross-check:
//
//	result, err := analyzer.New(analyzer.WithValidation(true)).Analyze(ctx, sql)
//
// Result filtering:
//
//	errors := result.FilterBySeverity(sqlerr.Error)
//	missing := result.FilterByCode(sqlerr.MissingDelimiter.Int())
//
// # Thread Safety
//
// Parsers are safe for concurrent use by multiple goroutines. Statements and
// tokens are not modified after a parse returns.
//
// # Error Handling
//
// Parse operations distinguish between:
//   - Diagnostics (returned as *sqlerr.ParseError in Result.Errors)
//   - Input that cannot be tokenized (returned as *lexer.LexError)
//
// Strict mode turns the first diagnostic into the returned error while still
// returning the best-effort result.
//
// # Documentation
//
// Complete documentation and examples:
//   - Package documentation: https://pkg.go.dev/github.com/nsxbet/sql-parser/pkg
//   - Examples: examples/library-usage/
//   - Main README: README.md
package pkg
