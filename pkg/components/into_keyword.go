package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// FieldsOptions are the FIELDS/COLUMNS options of SELECT ... INTO OUTFILE.
var FieldsOptions = OptionSpec{
	"TERMINATED BY":          {ID: 1, Kind: KindExpr},
	"OPTIONALLY ENCLOSED BY": {ID: 2, Kind: KindExpr},
	"ENCLOSED BY":            {ID: 2, Kind: KindExpr},
	"ESCAPED BY":             {ID: 3, Kind: KindExpr},
}

// LinesOptions are the LINES options of SELECT ... INTO OUTFILE.
var LinesOptions = OptionSpec{
	"STARTING BY":   {ID: 1, Kind: KindExpr},
	"TERMINATED BY": {ID: 2, Kind: KindExpr},
}

// IntoKeyword is the target of INSERT INTO, REPLACE INTO or SELECT INTO.
type IntoKeyword struct {
	// Type is OUTFILE, DUMPFILE or empty for tables and variables.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Dest is the table or the file name.
	Dest *Expression `json:"dest,omitempty" yaml:"dest,omitempty"`
	// Columns is the column list of an INSERT target.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	// Variables are the targets of SELECT ... INTO @a, @b.
	Variables     []*Expression `json:"variables,omitempty" yaml:"variables,omitempty"`
	FieldsKeyword string        `json:"fields_keyword,omitempty" yaml:"fields_keyword,omitempty"`
	FieldsOptions *OptionsArray `json:"fields_options,omitempty" yaml:"fields_options,omitempty"`
	LinesOptions  *OptionsArray `json:"lines_options,omitempty" yaml:"lines_options,omitempty"`
}

// Build renders the target, starting with INTO.
func (i *IntoKeyword) Build() string {
	if i == nil {
		return ""
	}
	if i.Type != "" {
		ret := "INTO " + i.Type + " " + i.Dest.Build()
		if !i.FieldsOptions.IsEmpty() {
			ret += " " + i.FieldsKeyword + " " + i.FieldsOptions.Build()
		}
		if !i.LinesOptions.IsEmpty() {
			ret += " LINES " + i.LinesOptions.Build()
		}
		return ret
	}
	if len(i.Variables) > 0 {
		return "INTO " + BuildExpressions(i.Variables)
	}
	ret := "INTO " + i.Dest.Build()
	if i.Columns != nil {
		cols := make([]string, len(i.Columns))
		for n, col := range i.Columns {
			cols[n] = dialect.EscapeIdentifier(col)
		}
		ret += " (" + strings.Join(cols, ", ") + ")"
	}
	return ret
}

// ParseIntoKeyword parses an INTO target. The cursor must be on INTO,
// INTO OUTFILE or INTO DUMPFILE.
func ParseIntoKeyword(c *sqlerr.Collector, list *lexer.List) *IntoKeyword {
	ret := &IntoKeyword{}
	start := list.Current()
	switch start.Value {
	case "INTO OUTFILE":
		ret.Type = "OUTFILE"
	case "INTO DUMPFILE":
		ret.Type = "DUMPFILE"
	}
	list.Idx++

	tok := skipInsignificant(list)
	switch {
	case tok == nil:
		c.Add(sqlerr.UnexpectedEnd, "A target was expected after INTO.", start)
		list.Idx--
		return ret
	case ret.Type != "":
		ret.Dest = ParseExpression(c, list, ExpressionOptions{BreakOnAlias: true})
		list.Idx++
		parseExportOptions(c, list, ret)
		return ret
	case tok.Type == lexer.TypeSymbol && isVariable(tok):
		ret.Variables = ParseExpressionArray(c, list, ExpressionOptions{BreakOnAlias: true})
		return ret
	}

	parseIntoTable(c, list, ret, tok)
	return ret
}

// ParseIntoTable parses an INSERT target written without INTO: a table and
// an optional column list.
func ParseIntoTable(c *sqlerr.Collector, list *lexer.List) *IntoKeyword {
	ret := &IntoKeyword{}
	tok := skipInsignificant(list)
	if tok == nil {
		c.Add(sqlerr.UnexpectedEnd, "A table name was expected.", last(list))
		list.Idx--
		return ret
	}
	parseIntoTable(c, list, ret, tok)
	return ret
}

func parseIntoTable(c *sqlerr.Collector, list *lexer.List, ret *IntoKeyword, tok *lexer.Token) {
	ret.Dest = ParseExpression(c, list, ExpressionOptions{Field: FieldTable, BreakOnAlias: true})
	if ret.Dest == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", tok)
		return
	}
	list.Idx++
	if next := skipInsignificant(list); next != nil && next.IsOperator("(") && !startsSelect(list) {
		cols := ParseArrayObj(c, list)
		ret.Columns = []string{}
		if cols != nil {
			for _, v := range cols.Values {
				ret.Columns = append(ret.Columns, unquoteIdentifier(v))
			}
		}
		return
	}
	list.Idx--
}

func parseExportOptions(c *sqlerr.Collector, list *lexer.List, ret *IntoKeyword) {
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		switch {
		case tok.IsKeyword("FIELDS", "COLUMNS") && ret.FieldsOptions == nil:
			ret.FieldsKeyword = tok.Value
			list.Idx++
			ret.FieldsOptions = ParseOptionsArray(c, list, FieldsOptions)
		case tok.IsKeyword("LINES") && ret.LinesOptions == nil:
			list.Idx++
			ret.LinesOptions = ParseOptionsArray(c, list, LinesOptions)
		default:
			list.Idx--
			return
		}
	}
	list.Idx--
}

// startsSelect reports whether the bracket under the cursor opens a SELECT.
func startsSelect(list *lexer.List) bool {
	next := list.PeekSignificant()
	return next != nil && next.IsKeyword("SELECT")
}

// unquoteIdentifier strips the quotes a column list value may carry.
func unquoteIdentifier(name string) string {
	if len(name) >= 2 {
		if q := name[0]; (q == '`' || q == '"') && name[len(name)-1] == q {
			inner := name[1 : len(name)-1]
			return strings.ReplaceAll(inner, string(q)+string(q), string(q))
		}
	}
	return name
}
