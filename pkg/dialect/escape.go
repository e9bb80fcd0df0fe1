package dialect

import "strings"

// EscapeIdentifier quotes name with backticks only when it has to be quoted:
// the name is empty, is a reserved keyword, consists only of digits or
// contains a byte that is not allowed in an unquoted identifier.
func EscapeIdentifier(name string) string {
	if NeedsQuoting(name) {
		return Escape(name, '`')
	}
	return name
}

// NeedsQuoting reports whether name cannot be written as a bare identifier.
func NeedsQuoting(name string) bool {
	if name == "" || IsReserved(name) {
		return true
	}
	digits := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !IsIdentifierByte(c) {
			return true
		}
		if c < '0' || c > '9' {
			digits = false
		}
	}
	return digits
}

// Escape always quotes name with quote, doubling any embedded quote.
func Escape(name string, quote byte) string {
	q := string(quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// QuoteString renders value as a single-quoted SQL string literal.
func QuoteString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '\'':
			b.WriteString("''")
		case '\\':
			b.WriteString(`\\`)
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
