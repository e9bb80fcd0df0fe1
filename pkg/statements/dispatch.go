package statements

import (
	"fmt"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// Factory parses a statement. The cursor must be on the statement keyword;
// it is left on the last token of the statement.
type Factory func(c *sqlerr.Collector, list *lexer.List) Statement

var factories map[string]Factory

func init() {
	factories = map[string]Factory{
		"SELECT":   parseSelect,
		"INSERT":   parseInsert,
		"REPLACE":  parseInsert,
		"UPDATE":   parseUpdate,
		"DELETE":   parseDelete,
		"CREATE":   parseCreate,
		"ALTER":    parseAlter,
		"DROP":     parseDrop,
		"RENAME":   parseRename,
		"TRUNCATE": parseTruncate,
		"SET":      parseSet,
		"USE":      parseUse,
		"CALL":     parseCall,
		"EXPLAIN":  parseExplain,
		"DESCRIBE": parseExplain,
		"DESC":     parseExplain,
		"SHOW":     parseShow,

		"START TRANSACTION": parseTransaction,
		"BEGIN":             parseTransaction,
		"COMMIT":            parseTransaction,
		"ROLLBACK":          parseTransaction,

		"ANALYZE":  parseMaintenance,
		"CHECK":    parseMaintenance,
		"CHECKSUM": parseMaintenance,
		"OPTIMIZE": parseMaintenance,
		"REPAIR":   parseMaintenance,
	}
}

// Lookup returns the parser of the statement starting with keyword.
func Lookup(keyword string) (Factory, bool) {
	f, ok := factories[keyword]
	return f, ok
}

// Parse parses the statement at the cursor, which must be on a significant
// token. Input that starts no known statement is reported and returned as
// an *UnknownStatement covering everything up to the delimiter. Parse
// returns nil past the end of the list.
func Parse(c *sqlerr.Collector, list *lexer.List) Statement {
	first := list.Idx
	tok := list.Current()
	if tok == nil {
		return nil
	}

	var stmt Statement
	switch f, ok := lookupToken(tok); {
	case ok:
		stmt = f(c, list)
	case tok.Type == lexer.TypeKeyword || tok.Type == lexer.TypeNone:
		c.Add(sqlerr.UnrecognizedStatement, fmt.Sprintf("Unrecognized statement type %q.", tok.Upper()), tok)
		stmt = parseUnknown(c, list)
	default:
		c.Add(sqlerr.UnexpectedBeginning, "Unexpected beginning of statement.", tok)
		stmt = parseUnknown(c, list)
	}

	// Every statement consumes at least its first token.
	if list.Idx < first {
		list.Idx = first
	}
	last := list.Idx
	for last > first && last < list.Count && !list.Tokens[last].IsSignificant() {
		last--
	}
	if sp, ok := stmt.(spanned); ok {
		*sp.span() = Span{First: first, Last: last}
	}
	return stmt
}

func lookupToken(tok *lexer.Token) (Factory, bool) {
	if tok == nil || tok.Type != lexer.TypeKeyword {
		return nil, false
	}
	return Lookup(tok.Value)
}

// UnknownStatement keeps the tokens of input no parser recognized.
type UnknownStatement struct {
	Span `json:"span" yaml:"span"`

	Tokens []*lexer.Token `json:"-" yaml:"-"`
	Raw    string         `json:"raw" yaml:"raw"`
}

// Keyword returns the first word of the statement.
func (s *UnknownStatement) Keyword() string {
	for _, tok := range s.Tokens {
		if tok.IsSignificant() {
			return tok.Upper()
		}
	}
	return ""
}

func (s *UnknownStatement) Build() string { return s.Raw }

func parseUnknown(_ *sqlerr.Collector, list *lexer.List) Statement {
	tokens := rest(list)
	return &UnknownStatement{Tokens: tokens, Raw: buildRest(tokens)}
}
