package query

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
)

// StripComments removes comments from sql. Executable comments such as
// /*!50100 ... */ are kept because MySQL runs their body. Whitespace left
// behind by a removed comment is collapsed, and tokens a comment separated
// stay separated.
func StripComments(sql string, opts ...lexer.Option) (string, error) {
	list, err := lexer.Lex(sql, opts...)
	if err != nil {
		return "", err
	}

	var (
		b    strings.Builder
		prev *lexer.Token
		gap  bool
	)
	for _, tok := range list.Tokens {
		if tok.Type == lexer.TypeComment && !tok.Has(lexer.FlagCommentMySQLCmd) {
			gap = true
			continue
		}
		if tok.Type == lexer.TypeWhitespace && gap && prev != nil && prev.Type == lexer.TypeWhitespace {
			continue
		}
		if gap && prev != nil && prev.Type != lexer.TypeWhitespace && tok.Type != lexer.TypeWhitespace {
			b.WriteByte(' ')
		}
		gap = false
		b.WriteString(tok.Raw)
		prev = tok
	}
	return strings.TrimSpace(b.String()), nil
}
