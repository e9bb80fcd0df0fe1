package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nsxbet/sql-parser/pkg/dialect"
)

// DefaultDelimiter is the statement delimiter used when none is configured.
const DefaultDelimiter = ";"

// LexError is returned when the input contains bytes no token rule accepts.
// It aborts tokenization; no partial token list is returned.
type LexError struct {
	Offset  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Message)
}

// Diagnostic is a recoverable lexer problem, such as an unterminated string.
// The offending token is still produced and covers the rest of the input.
type Diagnostic struct {
	Message string
	Token   *Token
}

// Option configures a Lexer.
type Option func(*Lexer)

// WithDelimiter sets the initial statement delimiter.
func WithDelimiter(delimiter string) Option {
	return func(l *Lexer) {
		if delimiter != "" {
			l.delimiter = delimiter
		}
	}
}

// WithMode sets the SQL mode used to interpret quotes and escapes.
func WithMode(mode dialect.Mode) Option {
	return func(l *Lexer) {
		l.mode = mode
	}
}

// Lexer tokenizes SQL text. A Lexer keeps per-call state and must not be
// shared between goroutines.
type Lexer struct {
	delimiter string
	mode      dialect.Mode

	str         string
	pos         int
	tokens      []*Token
	diagnostics []*Diagnostic
	// inCommand is set between the opening and the closing of a /*! block.
	inCommand bool
	// delimiterCommand is set after a DELIMITER keyword that starts a
	// statement, until its argument is read or the line ends.
	delimiterCommand bool
}

// New creates a lexer.
func New(opts ...Option) *Lexer {
	l := &Lexer{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lex tokenizes sql with a lexer configured by opts.
func Lex(sql string, opts ...Option) (*List, error) {
	return New(opts...).Lex(sql)
}

// Diagnostics returns the recoverable problems found by the last Lex call.
func (l *Lexer) Diagnostics() []*Diagnostic {
	return l.diagnostics
}

// Delimiter returns the current delimiter, which DELIMITER commands change.
func (l *Lexer) Delimiter() string {
	return l.delimiter
}

// Lex tokenizes sql. The raw text of the returned tokens concatenates back to
// sql exactly.
func (l *Lexer) Lex(sql string) (*List, error) {
	l.str = sql
	l.pos = 0
	l.tokens = l.tokens[:0]
	l.diagnostics = nil
	l.inCommand = false
	l.delimiterCommand = false

	if !utf8.ValidString(sql) {
		for i := 0; i < len(sql); {
			r, size := utf8.DecodeRuneInString(sql[i:])
			if r == utf8.RuneError && size <= 1 {
				return nil, &LexError{Offset: i, Message: fmt.Sprintf("invalid UTF-8 byte 0x%02x", sql[i])}
			}
			i += size
		}
	}

	for l.pos < len(l.str) {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}

	tokens := make([]*Token, len(l.tokens))
	copy(tokens, l.tokens)
	return NewList(tokens), nil
}

func (l *Lexer) emit(typ TokenType, end int, value string, flags Flag) *Token {
	tok := &Token{
		Type:     typ,
		Value:    value,
		Raw:      l.str[l.pos:end],
		Flags:    flags,
		Position: l.pos,
	}
	l.pos = end
	return tok
}

func (l *Lexer) diagnose(tok *Token, format string, args ...any) {
	l.diagnostics = append(l.diagnostics, &Diagnostic{Message: fmt.Sprintf(format, args...), Token: tok})
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset < len(l.str) {
		return l.str[l.pos+offset]
	}
	return 0
}

// previous returns the last emitted token.
func (l *Lexer) previous() *Token {
	if len(l.tokens) == 0 {
		return nil
	}
	return l.tokens[len(l.tokens)-1]
}

// previousSignificant returns the last emitted token that is neither
// whitespace nor a comment.
func (l *Lexer) previousSignificant() *Token {
	for i := len(l.tokens) - 1; i >= 0; i-- {
		if l.tokens[i].IsSignificant() {
			return l.tokens[i]
		}
	}
	return nil
}

func (l *Lexer) next() (*Token, error) {
	c := l.str[l.pos]

	if l.delimiterCommand && !dialect.IsWhitespace(c) {
		l.delimiterCommand = false
		if prev := l.previous(); prev != nil && prev.Type == TypeWhitespace {
			return l.delimiterDefinition(), nil
		}
	}

	if strings.HasPrefix(l.str[l.pos:], l.delimiter) {
		return l.emit(TypeDelimiter, l.pos+len(l.delimiter), l.delimiter, 0), nil
	}

	switch {
	case dialect.IsWhitespace(c):
		end := l.pos
		for end < len(l.str) && dialect.IsWhitespace(l.str[end]) {
			end++
		}
		tok := l.emit(TypeWhitespace, end, " ", 0)
		if strings.ContainsAny(tok.Raw, "\r\n") {
			l.delimiterCommand = false
		}
		return tok, nil
	case c == '#':
		return l.lineComment(FlagCommentBash), nil
	case c == '-' && l.peekByte(1) == '-' && (l.pos+2 == len(l.str) || l.peekByte(2) <= ' '):
		return l.lineComment(FlagCommentSQL), nil
	case c == '/' && l.peekByte(1) == '*':
		return l.blockComment(), nil
	case c == '*' && l.peekByte(1) == '/' && l.inCommand:
		l.inCommand = false
		return l.emit(TypeComment, l.pos+2, "*/", FlagCommentC|FlagCommentMySQLCmd), nil
	case c == '\'':
		return l.quoted(TypeString, '\'', FlagStringSingleQuotes, true), nil
	case c == '"':
		if l.mode.Has(dialect.ANSIQuotes) {
			return l.quoted(TypeSymbol, '"', FlagSymbolDoubleQuoted, false), nil
		}
		return l.quoted(TypeString, '"', FlagStringDoubleQuotes, true), nil
	case c == '`':
		return l.quoted(TypeSymbol, '`', FlagSymbolBacktick, false), nil
	case c == '@':
		return l.variable(), nil
	case c == '?':
		return l.emit(TypeSymbol, l.pos+1, "?", FlagSymbolParameter), nil
	case c == ':' && isIdentStart(l.peekByte(1)):
		end := l.pos + 1
		for end < len(l.str) && dialect.IsIdentifierByte(l.str[end]) {
			end++
		}
		return l.emit(TypeSymbol, end, l.str[l.pos:end], FlagSymbolParameter), nil
	case (c == 'x' || c == 'X' || c == 'b' || c == 'B') && l.peekByte(1) == '\'':
		return l.quotedNumber(), nil
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1)) && !l.followsName()):
		return l.number(), nil
	case dialect.IsIdentifierByte(c):
		return l.word(), nil
	}

	for n := dialect.MaxOperatorLen(); n > 0; n-- {
		if l.pos+n > len(l.str) {
			continue
		}
		op := l.str[l.pos : l.pos+n]
		if flags, ok := dialect.IsOperator(op); ok {
			return l.emit(TypeOperator, l.pos+n, op, Flag(flags)), nil
		}
	}

	switch c {
	case '{', '}', '[', ']', ':', ';':
		return l.emit(TypeNone, l.pos+1, string(c), 0), nil
	case '\\':
		return nil, &LexError{Offset: l.pos, Message: "unexpected backslash outside of a quoted string"}
	}
	return nil, &LexError{Offset: l.pos, Message: fmt.Sprintf("unexpected character 0x%02x", c)}
}

func (l *Lexer) lineComment(flag Flag) *Token {
	end := strings.IndexAny(l.str[l.pos:], "\r\n")
	if end < 0 {
		end = len(l.str)
	} else {
		end += l.pos
	}
	return l.emit(TypeComment, end, l.str[l.pos:end], flag)
}

func (l *Lexer) blockComment() *Token {
	// /*!50100 and /*M!100100 open a block whose body is executable SQL.
	body := 2
	if l.peekByte(2) == 'M' && l.peekByte(3) == '!' {
		body = 3
	}
	if l.peekByte(body) == '!' {
		end := l.pos + body + 1
		for end < len(l.str) && isDigit(l.str[end]) {
			end++
		}
		l.inCommand = true
		return l.emit(TypeComment, end, l.str[l.pos:end], FlagCommentC|FlagCommentMySQLCmd)
	}

	idx := strings.Index(l.str[l.pos+2:], "*/")
	if idx < 0 {
		tok := l.emit(TypeComment, len(l.str), l.str[l.pos:], FlagCommentC)
		l.diagnose(tok, "Ending comment sequence was expected.")
		return tok
	}
	end := l.pos + 2 + idx + 2
	return l.emit(TypeComment, end, l.str[l.pos:end], FlagCommentC)
}

// quoted scans text enclosed in quote. Doubled quotes stand for a single
// quote; backslash escapes apply to strings unless NO_BACKSLASH_ESCAPES.
func (l *Lexer) quoted(typ TokenType, quote byte, flag Flag, isString bool) *Token {
	escapes := isString && !l.mode.Has(dialect.NoBackslashEscapes)
	var value strings.Builder
	i := l.pos + 1
	for i < len(l.str) {
		c := l.str[i]
		switch {
		case escapes && c == '\\' && i+1 < len(l.str):
			value.WriteString(unescape(l.str[i+1]))
			i += 2
			continue
		case c == quote:
			if i+1 < len(l.str) && l.str[i+1] == quote {
				value.WriteByte(quote)
				i += 2
				continue
			}
			return l.emit(typ, i+1, value.String(), flag)
		}
		value.WriteByte(c)
		i++
	}
	tok := l.emit(typ, len(l.str), value.String(), flag)
	l.diagnose(tok, "Ending quote %s was expected.", string(quote))
	return tok
}

func unescape(c byte) string {
	switch c {
	case '0':
		return "\x00"
	case 'b':
		return "\b"
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	case 'Z':
		return "\x1a"
	case '%', '_':
		// Kept escaped so LIKE patterns stay intact.
		return "\\" + string(c)
	}
	return string(c)
}

func (l *Lexer) variable() *Token {
	if l.peekByte(1) == '@' {
		end := l.pos + 2
		for end < len(l.str) && (dialect.IsIdentifierByte(l.str[end]) || l.str[end] == '.') {
			end++
		}
		return l.emit(TypeSymbol, end, l.str[l.pos+2:end], FlagSymbolSystemVariable)
	}
	switch q := l.peekByte(1); q {
	case '\'', '"', '`':
		start := l.pos
		l.pos++
		tok := l.quoted(TypeSymbol, q, FlagSymbolVariable, q != '`')
		tok.Raw = l.str[start:l.pos]
		tok.Position = start
		return tok
	}
	end := l.pos + 1
	for end < len(l.str) && (dialect.IsIdentifierByte(l.str[end]) || l.str[end] == '.') {
		end++
	}
	if end == l.pos+1 {
		return l.emit(TypeNone, end, "@", 0)
	}
	return l.emit(TypeSymbol, end, l.str[l.pos+1:end], FlagSymbolVariable)
}

// quotedNumber scans x'0F' and b'0101' literals.
func (l *Lexer) quotedNumber() *Token {
	flag := FlagNumberHex
	if c := l.str[l.pos]; c == 'b' || c == 'B' {
		flag = FlagNumberBinary
	}
	idx := strings.IndexByte(l.str[l.pos+2:], '\'')
	if idx < 0 {
		tok := l.emit(TypeNumber, len(l.str), l.str[l.pos:], flag)
		l.diagnose(tok, "Ending quote ' was expected.")
		return tok
	}
	end := l.pos + 2 + idx + 1
	return l.emit(TypeNumber, end, l.str[l.pos:end], flag)
}

func (l *Lexer) number() *Token {
	s := l.str
	i := l.pos

	if s[i] == '0' && i+1 < len(s) && (s[i+1] == 'x' || s[i+1] == 'b') {
		isHex := s[i+1] == 'x'
		j := i + 2
		for j < len(s) && ((isHex && isHexDigit(s[j])) || (!isHex && (s[j] == '0' || s[j] == '1'))) {
			j++
		}
		if j > i+2 && (j == len(s) || !dialect.IsIdentifierByte(s[j])) {
			if isHex {
				return l.emit(TypeNumber, j, s[i:j], FlagNumberHex)
			}
			return l.emit(TypeNumber, j, s[i:j], FlagNumberBinary)
		}
	}

	var flags Flag
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		flags |= FlagNumberFloat
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			flags |= FlagNumberApproximate
			i = j
		}
	}

	// MySQL accepts identifiers that start with digits, such as 1col.
	if i < len(s) && dialect.IsIdentifierByte(s[i]) && !l.atDelimiter(i) && flags == 0 {
		return l.word()
	}
	return l.emit(TypeNumber, i, s[l.pos:i], flags)
}

// followsName reports whether the previous token is a name directly attached
// to the current position, so that a dot introduces a qualified name.
func (l *Lexer) followsName() bool {
	prev := l.previous()
	if prev == nil {
		return false
	}
	switch prev.Type {
	case TypeNone, TypeSymbol, TypeKeyword:
		return true
	case TypeOperator:
		return prev.Value == ")"
	}
	return false
}

func (l *Lexer) word() *Token {
	end := l.pos
	for end < len(l.str) && dialect.IsIdentifierByte(l.str[end]) && !l.atDelimiter(end) {
		end++
	}
	text := l.str[l.pos:end]
	upper := strings.ToUpper(text)

	prev := l.previous()
	qualified := (prev != nil && prev.IsOperator(".")) ||
		(end < len(l.str) && l.str[end] == '.' && end+1 < len(l.str) &&
			(dialect.IsIdentifierByte(l.str[end+1]) || l.str[end+1] == '`' || l.str[end+1] == '*'))
	if qualified {
		return l.emit(TypeNone, end, text, 0)
	}

	if upper == "DELIMITER" {
		if p := l.previousSignificant(); p == nil || p.Type == TypeDelimiter {
			l.delimiterCommand = true
			return l.emit(TypeKeyword, end, upper, 0)
		}
	}

	if upper == "TRUE" || upper == "FALSE" {
		return l.emit(TypeBool, end, upper, 0)
	}

	for _, compound := range dialect.Compounds(upper) {
		if stop, ok := l.matchCompound(end, compound); ok {
			flags, _ := dialect.IsKeyword(compound)
			return l.emit(TypeKeyword, stop, compound, Flag(flags))
		}
	}

	if flags, ok := dialect.IsKeyword(upper); ok {
		return l.emit(TypeKeyword, end, upper, Flag(flags))
	}
	return l.emit(TypeNone, end, text, 0)
}

// matchCompound checks whether the words of compound after the first one
// follow end, separated by whitespace. It returns the end of the match.
func (l *Lexer) matchCompound(end int, compound string) (int, bool) {
	words := strings.Split(compound, " ")[1:]
	p := end
	for _, w := range words {
		start := p
		for p < len(l.str) && dialect.IsWhitespace(l.str[p]) {
			p++
		}
		if p == start || p+len(w) > len(l.str) || !strings.EqualFold(l.str[p:p+len(w)], w) {
			return 0, false
		}
		p += len(w)
		if p < len(l.str) && dialect.IsIdentifierByte(l.str[p]) {
			return 0, false
		}
	}
	// A bracket right after the last word makes it a function call, except
	// for key definitions such as PRIMARY KEY(id).
	if p < len(l.str) && l.str[p] == '(' {
		if flags, _ := dialect.IsKeyword(compound); !flags.Has(dialect.Key) {
			return 0, false
		}
	}
	return p, true
}

// delimiterDefinition consumes the argument of a DELIMITER command and makes
// it the current delimiter.
func (l *Lexer) delimiterDefinition() *Token {
	end := l.pos
	for end < len(l.str) && !dialect.IsWhitespace(l.str[end]) {
		end++
	}
	l.delimiter = l.str[l.pos:end]
	return l.emit(TypeDelimiter, end, l.delimiter, FlagDelimiterDefinition)
}

// atDelimiter reports whether the current delimiter starts at offset i.
// Delimiters such as $$ would otherwise be read as part of a name.
func (l *Lexer) atDelimiter(i int) bool {
	return i > l.pos && strings.HasPrefix(l.str[i:], l.delimiter)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
