// Package parser is the entry point of the library. It lexes SQL text, splits
// it into statements, parses each one and collects every diagnostic found on
// the way.
//
// # Quick Start
//
//	p := parser.New()
//	result, err := p.Parse("SELECT id FROM users WHERE active = 1;")
//	if err != nil {
//	    log.Fatal(err) // the input could not be tokenized
//	}
//	for _, stmt := range result.Statements {
//	    fmt.Println(stmt.Keyword(), stmt.Build())
//	}
//	for _, diag := range result.Errors {
//	    fmt.Println(diag)
//	}
//
// A parse never stops at the first problem: the result always holds the
// statements that could be recovered next to the list of diagnostics. Only
// input the lexer rejects makes Parse fail, unless strict mode is enabled.
package parser

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/logger"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
	"github.com/nsxbet/sql-parser/pkg/statements"
)

// Option is a functional option for customizing a Parser.
type Option func(*Parser)

// WithDelimiter sets the statement delimiter used until a DELIMITER command
// changes it. The default is ";".
func WithDelimiter(delimiter string) Option {
	return func(p *Parser) {
		if delimiter != "" {
			p.delimiter = delimiter
		}
	}
}

// WithMode sets the SQL mode, which changes how quotes and backslashes are
// read.
//
// Example:
//
//	p := parser.New(parser.WithMode(dialect.ANSIQuotes))
func WithMode(mode dialect.Mode) Option {
	return func(p *Parser) {
		p.mode = mode
	}
}

// WithMaxErrors bounds the number of diagnostics kept per parse. Zero or a
// negative value selects sqlerr.DefaultMaxErrors.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		p.maxErrors = n
	}
}

// WithStrict makes Parse return the first diagnostic as its error. The
// best-effort result is still returned.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger used for debug output. By default nothing is
// logged.
func WithLogger(log logger.Interface) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// Parser parses SQL scripts. A Parser holds only its configuration and is
// safe for concurrent use by multiple goroutines.
type Parser struct {
	delimiter string
	mode      dialect.Mode
	maxErrors int
	strict    bool
	log       logger.Interface
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		delimiter: lexer.DefaultDelimiter,
		log:       logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Delimiter returns the initial statement delimiter.
func (p *Parser) Delimiter() string {
	return p.delimiter
}

func (p *Parser) lexer() *lexer.Lexer {
	return lexer.New(lexer.WithDelimiter(p.delimiter), lexer.WithMode(p.mode))
}

// Parse parses every statement of sql.
//
// The returned error is a *lexer.LexError when sql cannot be tokenized, in
// which case the result is nil. In strict mode it is the first collected
// *sqlerr.ParseError.
func (p *Parser) Parse(sql string) (*Result, error) {
	lx := p.lexer()
	list, err := lx.Lex(sql)
	if err != nil {
		p.log.Debug("lexing failed", logger.Error(err))
		return nil, err
	}
	p.log.Debug("lexed input", "tokens", list.Count)

	c := sqlerr.NewCollector(sql, p.maxErrors)
	for _, d := range lx.Diagnostics() {
		code := sqlerr.UnterminatedString
		if d.Token.Type == lexer.TypeComment {
			code = sqlerr.UnterminatedComment
		}
		c.Add(code, d.Message, d.Token)
	}

	result := &Result{Tokens: list, delimiter: p.delimiter}
	current := p.delimiter
	terminated := true
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		switch {
		case tok.Type == lexer.TypeDelimiter:
			if tok.Has(lexer.FlagDelimiterDefinition) {
				current = tok.Value
			}
			terminated = true
			continue
		case !tok.IsSignificant(), tok.IsKeyword("DELIMITER"):
			continue
		case tok.IsKeyword("UNION", "UNION ALL", "UNION DISTINCT"):
			c.Add(sqlerr.UnexpectedKeyword, "Unexpected UNION.", tok)
			continue
		}

		if !terminated {
			c.Add(sqlerr.MissingDelimiter,
				"A new statement was found, but no delimiter between it and the previous one.", tok)
		}
		stmt := statements.Parse(c, list)
		p.log.Debug("parsed statement", logger.Statement(stmt.Keyword()), logger.Offset(tok.Position))
		result.Statements = append(result.Statements, stmt)
		result.delimiters = append(result.delimiters, current)
		terminated = false
	}

	result.Errors = c.Errors()
	for _, e := range result.Errors {
		p.log.Debug("collected diagnostic", "code", e.Code.Int(), logger.Offset(e.Offset), "message", e.Message)
	}
	if p.strict && len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

// Result is the outcome of a parse.
type Result struct {
	Statements []statements.Statement `json:"statements" yaml:"statements"`
	Errors     []*sqlerr.ParseError   `json:"errors,omitempty" yaml:"errors,omitempty"`
	// Tokens is the token list the statements index into through Bounds.
	Tokens *lexer.List `json:"-" yaml:"-"`

	delimiter  string
	delimiters []string
}

// HasErrors reports whether any diagnostic of Error severity was collected.
func (r *Result) HasErrors() bool {
	for _, e := range r.Errors {
		if e.Severity >= sqlerr.Error {
			return true
		}
	}
	return false
}

// Build renders the statements back to SQL, one per line, each followed by
// the delimiter it was written with. DELIMITER commands are emitted where the
// delimiter changed.
func (r *Result) Build() string {
	lines := make([]string, 0, len(r.Statements))
	current := r.delimiter
	for i, stmt := range r.Statements {
		d := current
		if i < len(r.delimiters) {
			d = r.delimiters[i]
		}
		if d != current {
			lines = append(lines, "DELIMITER "+d)
			current = d
		}
		lines = append(lines, stmt.Build()+d)
	}
	if current != r.delimiter && len(lines) > 0 {
		lines = append(lines, "DELIMITER "+r.delimiter)
	}
	return strings.Join(lines, "\n")
}

// Build renders stmts, each followed by delimiter, one per line.
func Build(stmts []statements.Statement, delimiter string) string {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, stmt.Build()+delimiter)
	}
	return strings.Join(lines, "\n")
}
