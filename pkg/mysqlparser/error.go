package mysqlparser

import (
	"fmt"

	"github.com/antlr4-go/antlr/v4"

	"github.com/nsxbet/sql-parser/pkg/types"
)

// nearWindow is how many bytes before the offending token Near shows.
const nearWindow = 40

// SyntaxError is a syntax error reported by the ANTLR MySQL grammar.
type SyntaxError struct {
	// Position is the line and column of the offending token, counted in the
	// script the statement came from.
	Position *types.Position
	Message  string
	// Cause is the message of the ANTLR recognizer.
	Cause string
	// Near is the text up to and including the offending token.
	Near string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return e.Message
	}
	return fmt.Sprintf("%s near %q", e.Message, e.Near)
}

// errorListener keeps the first error reported by a lexer or parser.
// baseLine is added to every line so positions point into the script.
type errorListener struct {
	*antlr.DefaultErrorListener
	baseLine int
	err      *SyntaxError
}

func newErrorListener(baseLine int) *errorListener {
	return &errorListener{DefaultErrorListener: antlr.NewDefaultErrorListener(), baseLine: baseLine}
}

func (l *errorListener) SyntaxError(_ antlr.Recognizer, offending any, line, column int, msg string, _ antlr.RecognitionException) {
	if l.err != nil {
		return
	}
	line += l.baseLine
	l.err = &SyntaxError{
		Position: &types.Position{Line: int32(line), Column: int32(column)},
		Message:  fmt.Sprintf("Syntax error at line %d:%d", line, column),
		Cause:    msg,
	}
	if tok, ok := offending.(*antlr.CommonToken); ok {
		l.err.Near = nearText(tok)
	}
}

func nearText(tok *antlr.CommonToken) string {
	stream := tok.GetInputStream()
	if stream == nil {
		return ""
	}
	start := max(tok.GetStart()-nearWindow, 0)
	stop := min(tok.GetStop(), stream.Size()-1)
	if stop < start {
		return ""
	}
	return stream.GetTextFromInterval(antlr.NewInterval(start, stop))
}
