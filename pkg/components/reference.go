package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// ReferencesOptions are the options of a REFERENCES clause.
var ReferencesOptions = OptionSpec{
	"MATCH":     {ID: 1, Kind: KindVar},
	"ON DELETE": {ID: 2, Kind: KindVar},
	"ON UPDATE": {ID: 3, Kind: KindVar},
}

// Reference is the target of a foreign key.
type Reference struct {
	Table   *Expression   `json:"table" yaml:"table"`
	Columns []string      `json:"columns" yaml:"columns"`
	Options *OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
}

// Build renders the reference without the REFERENCES keyword.
func (r *Reference) Build() string {
	if r == nil {
		return ""
	}
	cols := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		cols[i] = dialect.EscapeIdentifier(col)
	}
	ret := r.Table.Build() + " (" + strings.Join(cols, ", ") + ")"
	if !r.Options.IsEmpty() {
		ret += " " + r.Options.Build()
	}
	return ret
}

// ParseReference parses what follows REFERENCES.
func ParseReference(c *sqlerr.Collector, list *lexer.List) *Reference {
	ret := &Reference{}
	skipInsignificant(list)
	ret.Table = ParseExpression(c, list, ExpressionOptions{Field: FieldTable, BreakOnAlias: true})
	if ret.Table == nil {
		c.Add(sqlerr.ExpectedIdentifier, "A table name was expected.", at(list))
		return ret
	}
	list.Idx++
	if cols := ParseArrayObj(c, list); cols != nil {
		ret.Columns = cols.Values
	}
	list.Idx++
	ret.Options = ParseOptionsArray(c, list, ReferencesOptions)
	return ret
}
