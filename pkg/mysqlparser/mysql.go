// Package mysqlparser cross-checks SQL against the ANTLR MySQL grammar. The
// parser of this module is permissive and recovers from errors; running the
// statements it rebuilds through a full grammar catches what it let through.
package mysqlparser

import (
	"github.com/antlr4-go/antlr/v4"
	mysql "github.com/gedhean/mysql-parser"
	"github.com/pkg/errors"

	"github.com/nsxbet/sql-parser/pkg/statements"
)

// Validate parses statement, a single statement with or without its
// trailing semicolon, with the ANTLR MySQL grammar. The error is a
// *SyntaxError for input the grammar rejects.
func Validate(statement string) error {
	return validateAt(statement, 1)
}

// ValidateStatement validates the SQL stmt rebuilds to. line is the line of
// the script the statement starts on; error positions are counted from it.
// Statements the parser did not recognize are skipped since their text is
// not canonical.
func ValidateStatement(stmt statements.Statement, line int) error {
	if _, ok := stmt.(*statements.UnknownStatement); ok {
		return nil
	}
	if err := validateAt(stmt.Build(), line); err != nil {
		return errors.Wrapf(err, "%s statement", stmt.Keyword())
	}
	return nil
}

func validateAt(statement string, line int) error {
	_, err := parseSingleStatement(max(line, 1)-1, addSemicolonIfNeeded(statement))
	return err
}

func parseSingleStatement(baseLine int, statement string) (antlr.Tree, error) {
	lexer := mysql.NewMySQLLexer(antlr.NewInputStream(statement))
	lexerErrors := newErrorListener(baseLine)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(lexerErrors)

	p := mysql.NewMySQLParser(antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel))
	parserErrors := newErrorListener(baseLine)
	p.RemoveErrorListeners()
	p.AddErrorListener(parserErrors)
	p.BuildParseTrees = true

	tree := p.Script()
	switch {
	case lexerErrors.err != nil:
		return nil, lexerErrors.err
	case parserErrors.err != nil:
		return nil, parserErrors.err
	}
	return tree, nil
}

// addSemicolonIfNeeded appends a semicolon after the last token of the
// default channel unless it already is one.
func addSemicolonIfNeeded(sql string) string {
	lexer := mysql.NewMySQLLexer(antlr.NewInputStream(sql))
	lexerErrors := newErrorListener(0)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(lexerErrors)
	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	stream.Fill()
	if lexerErrors.err != nil {
		// The parser reports the lexer error again.
		return sql
	}
	tokens := stream.GetAllTokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].GetChannel() != antlr.TokenDefaultChannel || tokens[i].GetTokenType() == mysql.MySQLParserEOF {
			continue
		}

		if tokens[i].GetTokenType() == mysql.MySQLParserSEMICOLON_SYMBOL {
			return sql
		}

		head := stream.GetTextFromInterval(antlr.NewInterval(0, tokens[i].GetTokenIndex()))
		tail := stream.GetTextFromInterval(antlr.NewInterval(tokens[i].GetTokenIndex()+1, tokens[len(tokens)-1].GetTokenIndex()))
		return head + ";" + tail
	}
	return sql
}
