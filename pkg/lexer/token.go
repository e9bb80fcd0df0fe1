// Package lexer turns SQL text into a lossless sequence of typed tokens and
// provides List, the cursor-based token stream every parser consumes.
package lexer

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
)

// TokenType is the lexical class of a token.
type TokenType uint8

const (
	// TypeNone is used for identifiers and anything without a better class.
	TypeNone TokenType = iota
	TypeWhitespace
	TypeComment
	TypeKeyword
	TypeOperator
	TypeNumber
	TypeString
	TypeSymbol
	TypeDelimiter
	TypeBool
)

var typeNames = [...]string{
	TypeNone:       "none",
	TypeWhitespace: "whitespace",
	TypeComment:    "comment",
	TypeKeyword:    "keyword",
	TypeOperator:   "operator",
	TypeNumber:     "number",
	TypeString:     "string",
	TypeSymbol:     "symbol",
	TypeDelimiter:  "delimiter",
	TypeBool:       "bool",
}

func (t TokenType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Flag qualifies a token. The meaning of each bit depends on the token type.
type Flag uint16

// Keyword flags mirror dialect.KeywordFlag.
const (
	FlagKeywordReserved = Flag(dialect.Reserved)
	FlagKeywordFunction = Flag(dialect.Function)
	FlagKeywordDataType = Flag(dialect.DataType)
	FlagKeywordKey      = Flag(dialect.Key)
	FlagKeywordCompound = Flag(dialect.Compound)
)

// Operator flags mirror dialect.OperatorFlag.
const (
	FlagOperatorArithmetic = Flag(dialect.Arithmetic)
	FlagOperatorLogical    = Flag(dialect.Logical)
	FlagOperatorBitwise    = Flag(dialect.Bitwise)
	FlagOperatorAssignment = Flag(dialect.Assignment)
	FlagOperatorSQL        = Flag(dialect.SQL)
)

const (
	FlagNumberHex Flag = 1 << iota
	FlagNumberFloat
	FlagNumberApproximate
	FlagNumberBinary
)

const (
	FlagStringSingleQuotes Flag = 1 << iota
	FlagStringDoubleQuotes
)

const (
	// FlagSymbolVariable marks user variables such as @name.
	FlagSymbolVariable Flag = 1 << iota
	// FlagSymbolSystemVariable marks server variables such as @@sql_mode.
	FlagSymbolSystemVariable
	// FlagSymbolBacktick marks `quoted` identifiers.
	FlagSymbolBacktick
	// FlagSymbolParameter marks placeholders: ? and :name.
	FlagSymbolParameter
	// FlagSymbolDoubleQuoted marks "quoted" identifiers under ANSI_QUOTES.
	FlagSymbolDoubleQuoted
)

const (
	FlagCommentBash Flag = 1 << iota
	FlagCommentC
	FlagCommentSQL
	// FlagCommentMySQLCmd marks the opening and closing of /*!...*/ blocks
	// whose body MySQL executes.
	FlagCommentMySQLCmd
)

// FlagDelimiterDefinition marks the delimiter set by a DELIMITER command.
const FlagDelimiterDefinition Flag = 1

// Token is the smallest classified unit of SQL text. Tokens are never
// modified once the lexer has produced them.
type Token struct {
	Type TokenType `json:"type" yaml:"type"`
	// Value is the normalized text: keywords are upper-cased, strings and
	// quoted identifiers are unquoted and unescaped, variables lose their @.
	Value string `json:"value" yaml:"value"`
	// Raw is the exact source text of the token.
	Raw   string `json:"raw" yaml:"raw"`
	Flags Flag   `json:"flags,omitempty" yaml:"flags,omitempty"`
	// Position is the byte offset of the token in the source.
	Position int `json:"position" yaml:"position"`
}

// Has reports whether all bits of f are set.
func (t *Token) Has(f Flag) bool {
	return t.Flags&f == f
}

// IsSignificant reports whether the token is neither whitespace nor a comment.
func (t *Token) IsSignificant() bool {
	return t.Type != TypeWhitespace && t.Type != TypeComment
}

// IsKeyword reports whether the token is a keyword equal to one of kws.
// With no arguments it reports whether the token is a keyword at all.
func (t *Token) IsKeyword(kws ...string) bool {
	if t.Type != TypeKeyword {
		return false
	}
	if len(kws) == 0 {
		return true
	}
	for _, kw := range kws {
		if t.Value == kw {
			return true
		}
	}
	return false
}

// IsOperator reports whether the token is the operator op.
func (t *Token) IsOperator(op string) bool {
	return t.Type == TypeOperator && t.Value == op
}

// IsReserved reports whether the token is a reserved keyword.
func (t *Token) IsReserved() bool {
	return t.Type == TypeKeyword && t.Has(FlagKeywordReserved)
}

// Identifier returns the name the token denotes when it is used as an
// identifier. Keywords keep their original spelling.
func (t *Token) Identifier() string {
	if t.Type == TypeKeyword {
		return t.Raw
	}
	return t.Value
}

// Upper returns the upper-cased raw text, used to match option keywords.
func (t *Token) Upper() string {
	if t.Type == TypeKeyword {
		return t.Value
	}
	return strings.ToUpper(t.Raw)
}
