// Package dialect holds the static lookup tables of the MySQL-family SQL
// dialect: keywords with their reserved/function/data type flags, operators,
// statement starters and identifier quoting rules.
//
// All tables are built once at package initialization and are read-only
// afterwards, so every function here is safe for concurrent use.
package dialect

import (
	"sort"
	"strings"
)

// KeywordFlag describes how a keyword behaves in the grammar.
type KeywordFlag uint16

const (
	// Reserved keywords cannot be used as unquoted identifiers.
	Reserved KeywordFlag = 1 << iota
	// Function keywords may be followed by an argument list.
	Function
	// DataType keywords name a column type.
	DataType
	// Key keywords introduce an index definition.
	Key
	// Compound keywords are made of several words, e.g. GROUP BY.
	Compound
)

// Has reports whether all bits of other are set.
func (f KeywordFlag) Has(other KeywordFlag) bool {
	return f&other == other
}

// OperatorFlag describes the family an operator belongs to.
type OperatorFlag uint8

const (
	Arithmetic OperatorFlag = 1 << iota
	Logical
	Bitwise
	Assignment
	// SQL marks punctuation such as brackets, commas and the dot.
	SQL
)

// Has reports whether all bits of other are set.
func (f OperatorFlag) Has(other OperatorFlag) bool {
	return f&other == other
}

var (
	// compounds maps the first word of a compound keyword to every compound
	// starting with it, longest first.
	compounds = map[string][]string{}
	// maxOperatorLen is the length of the longest operator.
	maxOperatorLen int
)

func init() {
	for kw, flags := range keywords {
		if !strings.Contains(kw, " ") {
			continue
		}
		keywords[kw] = flags | Compound
		first := kw[:strings.IndexByte(kw, ' ')]
		compounds[first] = append(compounds[first], kw)
	}
	for first, list := range compounds {
		sort.Slice(list, func(i, j int) bool {
			wi, wj := strings.Count(list[i], " "), strings.Count(list[j], " ")
			if wi != wj {
				return wi > wj
			}
			return list[i] < list[j]
		})
		compounds[first] = list
	}
	for op := range operators {
		if len(op) > maxOperatorLen {
			maxOperatorLen = len(op)
		}
	}
}

// IsKeyword returns the flags of text when it is a known keyword. The lookup
// is case-insensitive and expects single spaces between compound words.
func IsKeyword(text string) (KeywordFlag, bool) {
	flags, ok := keywords[strings.ToUpper(text)]
	return flags, ok
}

// IsReserved reports whether text is a reserved keyword.
func IsReserved(text string) bool {
	flags, ok := IsKeyword(text)
	return ok && flags.Has(Reserved)
}

// Compounds returns the compound keywords whose first word is first, longest
// first. The returned slice must not be modified.
func Compounds(first string) []string {
	return compounds[strings.ToUpper(first)]
}

// IsOperator returns the flags of text when it is a known operator.
func IsOperator(text string) (OperatorFlag, bool) {
	flags, ok := operators[text]
	return flags, ok
}

// MaxOperatorLen is the length in bytes of the longest known operator.
func MaxOperatorLen() int {
	return maxOperatorLen
}

// IsStatementKeyword reports whether kw can start a statement. It is used to
// recognize subqueries inside brackets.
func IsStatementKeyword(kw string) bool {
	_, ok := statementStarters[strings.ToUpper(kw)]
	return ok
}

// IsWhitespace reports whether c is a whitespace byte.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// IsIdentifierByte reports whether c may appear in an unquoted identifier.
// Bytes above 0x7f belong to multi-byte UTF-8 letters, which MySQL accepts.
func IsIdentifierByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c >= 0x80
}
