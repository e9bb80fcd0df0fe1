package dialect

var operators = map[string]OperatorFlag{
	// Arithmetic.
	"%": Arithmetic, "*": Arithmetic, "+": Arithmetic, "-": Arithmetic, "/": Arithmetic,

	// Logical and comparison.
	"!": Logical, "!=": Logical, "&&": Logical, "<": Logical, "<=": Logical, "<=>": Logical,
	"<>": Logical, "=": Logical, ">": Logical, ">=": Logical, "||": Logical,

	// Bitwise.
	"&": Bitwise, "<<": Bitwise, ">>": Bitwise, "^": Bitwise, "|": Bitwise, "~": Bitwise,

	// Assignment.
	":=": Assignment,

	// JSON column path operators.
	"->": Arithmetic, "->>": Arithmetic,

	// Punctuation.
	"(": SQL, ")": SQL, ",": SQL, ".": SQL,
}
