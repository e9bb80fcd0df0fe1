package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/dialect"
	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// KeyOptions are the index options that may follow the key parts.
var KeyOptions = OptionSpec{
	"KEY_BLOCK_SIZE": {ID: 1, Kind: KindVarEq},
	"USING":          {ID: 2, Kind: KindVar},
	"WITH PARSER":    {ID: 3, Kind: KindVar},
	"COMMENT":        {ID: 4, Kind: KindVar},
	"VISIBLE":        {ID: 5},
	"INVISIBLE":      {ID: 5},
}

// IndexTypeOptions are the options CREATE INDEX accepts between the index
// name and ON.
var IndexTypeOptions = OptionSpec{
	"USING": {ID: 2, Kind: KindVar},
}

// KeyPart is one column, or bracketed expression, of an index.
type KeyPart struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Length is the prefix length of a string column.
	Length string `json:"length,omitempty" yaml:"length,omitempty"`
	// Expr is set for functional key parts.
	Expr  string `json:"expr,omitempty" yaml:"expr,omitempty"`
	Order string `json:"order,omitempty" yaml:"order,omitempty"`
}

// Build renders the key part.
func (p *KeyPart) Build() string {
	if p == nil {
		return ""
	}
	ret := p.Expr
	if ret == "" {
		ret = dialect.EscapeIdentifier(p.Name)
		if p.Length != "" {
			ret += "(" + p.Length + ")"
		}
	}
	if p.Order != "" {
		ret += " " + p.Order
	}
	return ret
}

// Key is an index definition: PRIMARY KEY (id), UNIQUE KEY name (a, b)...
type Key struct {
	// Type is the key keyword as normalized by the lexer: KEY, INDEX,
	// PRIMARY KEY, UNIQUE KEY, FOREIGN KEY, FULLTEXT INDEX and so on.
	Type    string        `json:"type" yaml:"type"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Parts   []*KeyPart    `json:"parts" yaml:"parts"`
	Options *OptionsArray `json:"options,omitempty" yaml:"options,omitempty"`
}

// Columns returns the names of the column key parts.
func (k *Key) Columns() []string {
	var ret []string
	for _, p := range k.Parts {
		if p.Name != "" {
			ret = append(ret, p.Name)
		}
	}
	return ret
}

// IsPrimary reports whether the key is the primary key.
func (k *Key) IsPrimary() bool {
	return k.Type == "PRIMARY KEY"
}

// IsUnique reports whether the key enforces uniqueness.
func (k *Key) IsUnique() bool {
	return k.IsPrimary() || strings.HasPrefix(k.Type, "UNIQUE")
}

// Build renders the key.
func (k *Key) Build() string {
	if k == nil {
		return ""
	}
	ret := k.Type
	if k.Name != "" {
		ret += " " + dialect.EscapeIdentifier(k.Name)
	}
	ret += " (" + BuildAll(k.Parts, ", ") + ")"
	if !k.Options.IsEmpty() {
		ret += " " + k.Options.Build()
	}
	return ret
}

// IsKey reports whether tok starts a key definition.
func IsKey(tok *lexer.Token) bool {
	return tok != nil && tok.Type == lexer.TypeKeyword && tok.Has(lexer.FlagKeywordKey)
}

// ParseKey parses a key definition. The cursor must be on the key keyword.
func ParseKey(c *sqlerr.Collector, list *lexer.List) *Key {
	tok := skipInsignificant(list)
	if !IsKey(tok) {
		c.Add(sqlerr.MissingKeyword, "A key type was expected.", at(list))
		list.Idx--
		return nil
	}
	ret := &Key{Type: tok.Value}
	list.Idx++
	parseKeyBody(c, list, ret)
	return ret
}

// parseKeyBody parses what follows the key keyword: an optional name, the
// key parts and the index options.
func parseKeyBody(c *sqlerr.Collector, list *lexer.List, ret *Key) {
	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		if tok.IsOperator("(") {
			ret.Parts = parseKeyParts(c, list)
			list.Idx++
			ret.Options = ParseOptionsArray(c, list, KeyOptions)
			return
		}
		// UNIQUE INDEX written with a bracket that blocked the compound.
		if tok.IsKeyword("KEY", "INDEX") && ret.Name == "" && !strings.HasSuffix(ret.Type, "KEY") && !strings.HasSuffix(ret.Type, "INDEX") {
			ret.Type += " " + tok.Value
			continue
		}
		if ret.Name != "" || (tok.Type == lexer.TypeKeyword && tok.IsReserved()) || tok.Type == lexer.TypeOperator {
			break
		}
		ret.Name = tok.Identifier()
	}
	c.Add(sqlerr.UnexpectedToken, "An opening bracket was expected.", at(list))
	list.Idx--
}

// ParseKeyParts parses the bracketed column list of an index, as in
// CREATE INDEX. The cursor is left on the closing bracket.
func ParseKeyParts(c *sqlerr.Collector, list *lexer.List) []*KeyPart {
	tok := skipInsignificant(list)
	if tok == nil || !tok.IsOperator("(") {
		c.Add(sqlerr.UnexpectedToken, "An opening bracket was expected.", at(list))
		list.Idx--
		return nil
	}
	return parseKeyParts(c, list)
}

// parseKeyParts parses the bracketed key parts. The cursor must be on ( and
// is left on the closing bracket.
func parseKeyParts(c *sqlerr.Collector, list *lexer.List) []*KeyPart {
	open := list.Current()
	list.Idx++

	var (
		ret     []*KeyPart
		current = &KeyPart{}
	)
	push := func() {
		if current.Name != "" || current.Expr != "" {
			ret = append(ret, current)
		}
		current = &KeyPart{}
	}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if !tok.IsSignificant() {
			continue
		}
		switch {
		case tok.IsOperator(")"):
			push()
			return ret
		case tok.IsOperator(","):
			push()
		case tok.IsOperator("(") && current.Name == "" && current.Expr == "":
			if e := ParseExpression(c, list, ExpressionOptions{BracketsDelimited: true}); e != nil {
				current.Expr = e.Expr
			}
		case tok.IsOperator("("):
			current.Length = parseKeyLength(list)
		case tok.IsKeyword("ASC", "DESC"):
			current.Order = tok.Value
		default:
			if current.Name != "" {
				c.Add(sqlerr.UnexpectedToken, "Unexpected token.", tok)
				continue
			}
			current.Name = tok.Identifier()
		}
	}

	c.Add(sqlerr.UnexpectedEnd, "A closing bracket was expected.", open)
	push()
	list.Idx--
	return ret
}

// parseKeyLength reads the prefix length in col(10). The cursor is left on
// the closing bracket.
func parseKeyLength(list *lexer.List) string {
	var b strings.Builder
	for list.Idx++; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.IsOperator(")") || tok.Type == lexer.TypeDelimiter {
			break
		}
		if tok.IsSignificant() {
			b.WriteString(tok.Raw)
		}
	}
	if list.Idx >= list.Count || list.Tokens[list.Idx].Type == lexer.TypeDelimiter {
		list.Idx--
	}
	return b.String()
}
