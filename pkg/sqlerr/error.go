// Package sqlerr defines the diagnostics produced while parsing SQL and the
// Collector that accumulates them without aborting the parse.
package sqlerr

import (
	"fmt"
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/types"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	}
	return "error"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Category is the stage that detected a problem.
type Category string

const (
	Lexical  Category = "lexical"
	Syntax   Category = "syntax"
	Dispatch Category = "dispatch"
)

// ParseError is a non-fatal diagnostic: the parse continues past it and the
// caller receives it next to the best-effort result.
type ParseError struct {
	Code     Code         `json:"code" yaml:"code"`
	Message  string       `json:"message" yaml:"message"`
	Severity Severity     `json:"severity" yaml:"severity"`
	Category Category     `json:"category" yaml:"category"`
	Token    *lexer.Token `json:"token,omitempty" yaml:"token,omitempty"`
	// Offset is the byte offset of the problem, -1 when unknown.
	Offset   int             `json:"offset" yaml:"offset"`
	Position *types.Position `json:"position,omitempty" yaml:"position,omitempty"`
}

// New creates a ParseError pointing at tok, which may be nil.
func New(code Code, message string, tok *lexer.Token) *ParseError {
	offset := -1
	if tok != nil {
		offset = tok.Position
	}
	return &ParseError{
		Code:     code,
		Message:  message,
		Severity: Error,
		Category: code.Category(),
		Token:    tok,
		Offset:   offset,
	}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	switch {
	case e.Position != nil:
		fmt.Fprintf(&b, " at line %d, column %d", e.Position.Line, e.Position.Column)
	case e.Offset >= 0:
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}
	if e.Token != nil && e.Token.Raw != "" {
		fmt.Fprintf(&b, " (near %q)", near(e.Token.Raw))
	}
	return b.String()
}

// near shortens long token text for messages.
func near(raw string) string {
	const max = 32
	if len(raw) <= max {
		return raw
	}
	cut := max
	for cut > 0 && raw[cut]&0xc0 == 0x80 {
		cut--
	}
	return raw[:cut] + "..."
}
