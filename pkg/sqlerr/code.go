package sqlerr

// Code is the error code of a parse diagnostic.
type Code int

// Diagnostic codes.
const (
	Ok Code = 0

	// 1 ~ 99 general error.
	Internal      Code = 1
	TooManyErrors Code = 2

	// 101 ~ 199 lexical error.
	UnterminatedString  Code = 101
	UnterminatedComment Code = 102
	InvalidCharacter    Code = 103

	// 201 ~ 299 syntax error.
	UnexpectedToken    Code = 201
	UnexpectedBracket  Code = 202
	UnexpectedDot      Code = 203
	MissingAlias       Code = 204
	DuplicateOption    Code = 205
	UnexpectedKeyword  Code = 206
	DuplicateClause    Code = 207
	ClauseOrder        Code = 208
	MissingDelimiter   Code = 209
	MissingExpression  Code = 210
	UnexpectedEnd      Code = 211
	ExpectedIdentifier Code = 212
	MissingKeyword     Code = 213

	// 301 ~ 399 statement dispatch error.
	UnrecognizedStatement Code = 301
	UnexpectedBeginning   Code = 302
)

// Int returns the int type of code.
func (c Code) Int() int {
	return int(c)
}

// Category returns the class of problem the code belongs to.
func (c Code) Category() Category {
	switch {
	case c > 100 && c < 200:
		return Lexical
	case c > 300 && c < 400:
		return Dispatch
	}
	return Syntax
}
