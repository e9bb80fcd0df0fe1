package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// FieldOptions are the column attributes that may follow a data type.
var FieldOptions = OptionSpec{
	"NOT NULL":         {ID: 1},
	"NULL":             {ID: 1},
	"DEFAULT":          {ID: 2, Kind: KindExpr, Expr: ExpressionOptions{BreakOnAlias: true}},
	"AUTO_INCREMENT":   {ID: 3},
	"PRIMARY":          {ID: 4},
	"PRIMARY KEY":      {ID: 4},
	"UNIQUE":           {ID: 4},
	"UNIQUE KEY":       {ID: 4},
	"COMMENT":          {ID: 5, Kind: KindVar},
	"COLUMN_FORMAT":    {ID: 6, Kind: KindVar},
	"ON UPDATE":        {ID: 7, Kind: KindExpr, Expr: ExpressionOptions{BreakOnAlias: true}},
	"GENERATED ALWAYS": {ID: 8},
	"AS":               {ID: 9, Kind: KindExpr, Expr: ExpressionOptions{BracketsDelimited: true}},
	"VIRTUAL":          {ID: 10},
	"STORED":           {ID: 11},
	"PERSISTENT":       {ID: 11},
	"CHECK":            {ID: 12, Kind: KindExpr, Expr: ExpressionOptions{BracketsDelimited: true}},
	"INVISIBLE":        {ID: 13},
	"VISIBLE":          {ID: 13},
	"STORAGE":          {ID: 14, Kind: KindVar},
	"SRID":             {ID: 15, Kind: KindVar},
	"COLLATE":          {ID: 16, Kind: KindVar},
}

// CreateDefinition is one entry of the bracketed body of CREATE TABLE: a
// column, a key, a foreign key or a check constraint.
type CreateDefinition struct {
	// Name is the column name, or the constraint symbol when IsConstraint.
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	IsConstraint bool          `json:"is_constraint,omitempty" yaml:"is_constraint,omitempty"`
	Type         *DataType     `json:"type,omitempty" yaml:"type,omitempty"`
	Key          *Key          `json:"key,omitempty" yaml:"key,omitempty"`
	Check        *Expression   `json:"check,omitempty" yaml:"check,omitempty"`
	References   *Reference    `json:"references,omitempty" yaml:"references,omitempty"`
	Options      *OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsColumn reports whether the definition declares a column.
func (d *CreateDefinition) IsColumn() bool {
	return d.Type != nil
}

// Build renders the definition.
func (d *CreateDefinition) Build() string {
	if d == nil {
		return ""
	}
	var parts []string
	if d.IsConstraint {
		parts = append(parts, "CONSTRAINT")
		if d.Name != "" {
			parts = append(parts, dialect.EscapeIdentifier(d.Name))
		}
	}
	switch {
	case d.Type != nil:
		parts = append(parts, dialect.EscapeIdentifier(d.Name), d.Type.Build())
		if !d.Options.IsEmpty() {
			parts = append(parts, d.Options.Build())
		}
	case d.Key != nil:
		parts = append(parts, d.Key.Build())
	case d.Check != nil:
		parts = append(parts, "CHECK "+d.Check.Build())
	}
	if d.References != nil {
		parts = append(parts, "REFERENCES "+d.References.Build())
	}
	return strings.Join(parts, " ")
}

// BuildCreateDefinitions renders the bracketed body of CREATE TABLE.
func BuildCreateDefinitions(defs []*CreateDefinition) string {
	return "(\n  " + BuildAll(defs, ",\n  ") + "\n)"
}

// isColumnName reports whether tok may name a column.
func isColumnName(tok *lexer.Token) bool {
	switch tok.Type {
	case lexer.TypeNone:
		return true
	case lexer.TypeSymbol:
		return !isVariable(tok)
	case lexer.TypeKeyword:
		return !tok.IsReserved() && !tok.Has(lexer.FlagKeywordKey)
	}
	return false
}

// ParseCreateDefinitions parses the bracketed body of CREATE TABLE. The
// cursor must be on (, possibly preceded by whitespace, and is left on the
// closing bracket.
func ParseCreateDefinitions(c *sqlerr.Collector, list *lexer.List) []*CreateDefinition {
	first := skipInsignificant(list)
	if first == nil || !first.IsOperator("(") {
		c.Add(sqlerr.UnexpectedToken, "An opening bracket was expected.", at(list))
		list.Idx--
		return nil
	}
	list.Idx++

	var (
		ret      []*CreateDefinition
		current  = &CreateDefinition{}
		brackets int
	)
	// 1: a definition is expected, 2: the constraint symbol or its body is
	// expected, 3: REFERENCES, a comma or the closing bracket is expected,
	// 4: skipping a malformed definition.
	state := 1

	push := func() {
		if current.Name != "" || current.Key != nil || current.Check != nil || current.IsConstraint {
			ret = append(ret, current)
		}
		current = &CreateDefinition{}
	}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}

		switch state {
		case 1, 2:
			switch {
			case state == 1 && tok.IsKeyword("CONSTRAINT"):
				current.IsConstraint = true
				state = 2
			case IsKey(tok):
				current.Key = ParseKey(c, list)
				state = 3
			case tok.IsKeyword("CHECK"):
				list.Idx++
				skipInsignificant(list)
				current.Check = ParseExpression(c, list, ExpressionOptions{BracketsDelimited: true})
				if current.Check == nil {
					c.Add(sqlerr.MissingExpression, "A check condition was expected.", tok)
				}
				state = 3
			case state == 2 && current.Name == "" && isColumnName(tok):
				current.Name = tok.Identifier()
			case state == 1 && isColumnName(tok):
				current.Name = tok.Identifier()
				list.Idx++
				current.Type = ParseDataType(c, list)
				if current.Type == nil {
					state = 4
					continue
				}
				list.Idx++
				current.Options = ParseOptionsArray(c, list, FieldOptions)
				state = 3
			case tok.IsOperator(")") && state == 1 && len(ret) == 0:
				return ret
			default:
				c.Add(sqlerr.ExpectedIdentifier, "A symbol name was expected.", tok)
				state = 4
				list.Idx--
			}
		case 3:
			switch {
			case tok.IsKeyword("REFERENCES") && current.References == nil:
				list.Idx++
				current.References = ParseReference(c, list)
			case tok.IsOperator(","):
				push()
				state = 1
			case tok.IsOperator(")"):
				push()
				return ret
			default:
				c.Add(sqlerr.UnexpectedToken, "A comma or a closing bracket was expected.", tok)
				state = 4
				list.Idx--
			}
		case 4:
			switch {
			case tok.IsOperator("("):
				brackets++
			case tok.IsOperator(")") && brackets > 0:
				brackets--
			case tok.IsOperator(")"):
				push()
				return ret
			case tok.IsOperator(",") && brackets == 0:
				push()
				state = 1
			}
		}
	}

	c.Add(sqlerr.UnexpectedEnd, "A closing bracket was expected.", first)
	push()
	list.Idx--
	return ret
}
