package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// DataTypeOptions are the attributes that may follow a data type.
var DataTypeOptions = OptionSpec{
	"BINARY":        {ID: 1},
	"CHARACTER SET": {ID: 2, Kind: KindVar},
	"CHARSET":       {ID: 2, Kind: KindVar},
	"COLLATE":       {ID: 3, Kind: KindVar},
	"UNSIGNED":      {ID: 4},
	"ZEROFILL":      {ID: 5},
}

// DataType is a column type such as VARCHAR(255) CHARACTER SET utf8mb4.
type DataType struct {
	Name string `json:"name" yaml:"name"`
	// Parameters are the bracketed arguments as written: lengths, precision
	// or ENUM and SET members.
	Parameters []string      `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Options    *OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewDataType creates a data type.
func NewDataType(name string, parameters ...string) *DataType {
	return &DataType{Name: strings.ToUpper(name), Parameters: parameters}
}

// Build renders the type with its parameters and attributes.
func (d *DataType) Build() string {
	if d == nil {
		return ""
	}
	ret := d.Name
	if len(d.Parameters) > 0 {
		ret += "(" + strings.Join(d.Parameters, ",") + ")"
	}
	if !d.Options.IsEmpty() {
		ret += " " + d.Options.Build()
	}
	return ret
}

// IsDataType reports whether tok names a data type.
func IsDataType(tok *lexer.Token) bool {
	return tok != nil && tok.Type == lexer.TypeKeyword && tok.Has(lexer.FlagKeywordDataType)
}

// ParseDataType parses a data type. Nil is returned, with nothing consumed,
// when the cursor is not on a data type keyword.
func ParseDataType(c *sqlerr.Collector, list *lexer.List) *DataType {
	tok := skipInsignificant(list)
	if !IsDataType(tok) {
		c.Add(sqlerr.UnexpectedToken, "Unrecognized data type.", at(list))
		list.Idx--
		return nil
	}
	ret := &DataType{Name: tok.Value}
	list.Idx++

	if next := skipInsignificant(list); next != nil && next.IsOperator("(") {
		if params := ParseArrayObj(c, list); params != nil {
			ret.Parameters = params.Raw
		}
		list.Idx++
	}
	ret.Options = ParseOptionsArray(c, list, DataTypeOptions)
	return ret
}
