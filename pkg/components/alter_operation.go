package components

import (
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// TableOptions are the table options of CREATE TABLE and ALTER TABLE.
var TableOptions = OptionSpec{
	"ENGINE":                {ID: 1, Kind: KindVarEq},
	"AUTO_INCREMENT":        {ID: 2, Kind: KindVarEq},
	"AVG_ROW_LENGTH":        {ID: 3, Kind: KindVar},
	"CHARACTER SET":         {ID: 4, Kind: KindVarEq},
	"CHARSET":               {ID: 4, Kind: KindVarEq},
	"DEFAULT CHARACTER SET": {ID: 4, Kind: KindVarEq},
	"DEFAULT CHARSET":       {ID: 4, Kind: KindVarEq},
	"CHECKSUM":              {ID: 5, Kind: KindVar},
	"COLLATE":               {ID: 6, Kind: KindVarEq},
	"DEFAULT COLLATE":       {ID: 6, Kind: KindVarEq},
	"COMMENT":               {ID: 7, Kind: KindVarEq},
	"CONNECTION":            {ID: 8, Kind: KindVar},
	"DELAY_KEY_WRITE":       {ID: 10, Kind: KindVar},
	"INSERT_METHOD":         {ID: 12, Kind: KindVar},
	"KEY_BLOCK_SIZE":        {ID: 13, Kind: KindVar},
	"MAX_ROWS":              {ID: 14, Kind: KindVar},
	"MIN_ROWS":              {ID: 15, Kind: KindVar},
	"PACK_KEYS":             {ID: 16, Kind: KindVar},
	"PASSWORD":              {ID: 17, Kind: KindVar},
	"ROW_FORMAT":            {ID: 18, Kind: KindVar},
	"TABLESPACE":            {ID: 19, Kind: KindVar},
	"STORAGE":               {ID: 20, Kind: KindVar},
	"UNION":                 {ID: 21, Kind: KindVar},
	"COMPRESSION":           {ID: 22, Kind: KindVar},
	"STATS_AUTO_RECALC":     {ID: 23, Kind: KindVar},
	"STATS_PERSISTENT":      {ID: 24, Kind: KindVar},
	"STATS_SAMPLE_PAGES":    {ID: 25, Kind: KindVar},
}

// AlterTableOptions are the keywords that open an ALTER TABLE operation. The
// verb has ID 1 and the object it applies to ID 2.
var AlterTableOptions = mergeSpecs(OptionSpec{
	"ADD": {ID: 1}, "ALTER": {ID: 1}, "ANALYZE": {ID: 1}, "CHANGE": {ID: 1}, "CHECK": {ID: 1},
	"COALESCE": {ID: 1}, "CONVERT": {ID: 1}, "DISABLE": {ID: 1}, "DISCARD": {ID: 1}, "DROP": {ID: 1},
	"ENABLE": {ID: 1}, "IMPORT": {ID: 1}, "MODIFY": {ID: 1}, "OPTIMIZE": {ID: 1}, "ORDER": {ID: 1},
	"ORDER BY": {ID: 1}, "RENAME": {ID: 1}, "REORGANIZE": {ID: 1}, "REPAIR": {ID: 1},
	"FORCE": {ID: 1},

	"COLUMN": {ID: 2}, "CONSTRAINT": {ID: 2}, "FOREIGN KEY": {ID: 2}, "FULLTEXT": {ID: 2},
	"FULLTEXT INDEX": {ID: 2}, "FULLTEXT KEY": {ID: 2}, "INDEX": {ID: 2}, "KEY": {ID: 2},
	"KEYS": {ID: 2}, "PARTITION": {ID: 2}, "PRIMARY KEY": {ID: 2}, "SPATIAL": {ID: 2},
	"SPATIAL INDEX": {ID: 2}, "SPATIAL KEY": {ID: 2}, "TABLESPACE": {ID: 2}, "UNIQUE": {ID: 2},
	"UNIQUE INDEX": {ID: 2}, "UNIQUE KEY": {ID: 2}, "TO": {ID: 2},
}, TableOptions, 100)

// DatabaseOptions are the options of CREATE DATABASE and ALTER DATABASE.
var DatabaseOptions = OptionSpec{
	"CHARACTER SET":         {ID: 1, Kind: KindVarEq},
	"CHARSET":               {ID: 1, Kind: KindVarEq},
	"DEFAULT CHARACTER SET": {ID: 1, Kind: KindVarEq},
	"DEFAULT CHARSET":       {ID: 1, Kind: KindVarEq},
	"COLLATE":               {ID: 2, Kind: KindVarEq},
	"DEFAULT COLLATE":       {ID: 2, Kind: KindVarEq},
	"ENCRYPTION":            {ID: 3, Kind: KindVarEq},
}

// mergeSpecs returns base extended with extra, whose IDs are shifted by
// offset to stay apart from those of base.
func mergeSpecs(base, extra OptionSpec, offset int) OptionSpec {
	ret := OptionSpec{}
	for name, def := range base {
		ret[name] = def
	}
	for name, def := range extra {
		if _, ok := ret[name]; ok {
			continue
		}
		def.ID += offset
		ret[name] = def
	}
	return ret
}

// AlterOperation is one comma separated operation of ALTER TABLE or ALTER
// DATABASE. The part of the operation the parser does not model is kept as
// tokens.
type AlterOperation struct {
	Options *OptionsArray `json:"options" yaml:"options"`
	// Field is the column, index or table the operation names.
	Field   *Expression    `json:"field,omitempty" yaml:"field,omitempty"`
	Unknown []*lexer.Token `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Verb returns the keyword of the operation: ADD, DROP, MODIFY, ENGINE...
func (a *AlterOperation) Verb() string {
	if entries := a.Options.Entries(); len(entries) > 0 {
		return entries[0].Name
	}
	return ""
}

// Object returns what the verb applies to: COLUMN, INDEX, PRIMARY KEY...
func (a *AlterOperation) Object() string {
	for _, o := range a.Options.Entries() {
		if o.ID == 2 {
			return o.Name
		}
	}
	return ""
}

// Rest returns the unmodeled tail of the operation as written.
func (a *AlterOperation) Rest() string {
	return strings.TrimSpace(lexer.Build(a.Unknown))
}

// Build renders the operation.
func (a *AlterOperation) Build() string {
	if a == nil {
		return ""
	}
	var parts []string
	if !a.Options.IsEmpty() {
		parts = append(parts, a.Options.Build())
	}
	if a.Field != nil {
		parts = append(parts, a.Field.Build())
	}
	if rest := a.Rest(); rest != "" {
		parts = append(parts, rest)
	}
	return strings.Join(parts, " ")
}

// Position returns where an ADD, MODIFY or CHANGE operation places its
// column: first for FIRST, or the column named by AFTER.
func (a *AlterOperation) Position() (first bool, after string) {
	var prev *lexer.Token
	for _, tok := range a.Unknown {
		if !tok.IsSignificant() {
			continue
		}
		switch {
		case tok.IsKeyword("FIRST"):
			first = true
		case prev != nil && prev.IsKeyword("AFTER"):
			after = tok.Identifier()
		}
		prev = tok
	}
	return first, after
}

// ColumnDefinition parses the column an ADD, MODIFY or CHANGE operation
// declares. It returns nil for any other operation.
func (a *AlterOperation) ColumnDefinition() *CreateDefinition {
	if obj := a.Object(); a.Field == nil || (obj != "" && obj != "COLUMN") {
		return nil
	}
	var body string
	switch a.Verb() {
	case "ADD", "MODIFY":
		body = a.Field.Build() + " " + a.Rest()
	case "CHANGE":
		body = a.Rest()
	default:
		return nil
	}
	return firstDefinition(body)
}

// KeyDefinition parses the index or constraint an ADD operation declares.
func (a *AlterOperation) KeyDefinition() *CreateDefinition {
	obj := a.Object()
	if a.Verb() != "ADD" || obj == "" || obj == "COLUMN" {
		return nil
	}
	body := obj
	if a.Field != nil {
		body += " " + a.Field.Build()
	}
	return firstDefinition(body + " " + a.Rest())
}

func firstDefinition(body string) *CreateDefinition {
	list, err := lexer.Lex("(" + body + ")")
	if err != nil {
		return nil
	}
	defs := ParseCreateDefinitions(nil, list)
	if len(defs) == 0 {
		return nil
	}
	return defs[0]
}

// ParseAlterOperations parses comma separated operations using spec for the
// leading keywords.
func ParseAlterOperations(c *sqlerr.Collector, list *lexer.List, spec OptionSpec) []*AlterOperation {
	var ret []*AlterOperation

	for list.Idx < list.Count {
		tok := skipInsignificant(list)
		if tok == nil || tok.Type == lexer.TypeDelimiter {
			break
		}
		op := &AlterOperation{}
		op.Options = ParseOptionsArray(c, list, spec)
		list.Idx++

		if next := skipInsignificant(list); next != nil && !next.IsOperator(",") && next.Type != lexer.TypeDelimiter {
			op.Field = ParseExpression(c, list, ExpressionOptions{Field: FieldColumn, BreakOnAlias: true})
			list.Idx++
		}

		brackets := 0
	tail:
		for ; list.Idx < list.Count; list.Idx++ {
			tok := list.Tokens[list.Idx]
			switch {
			case tok.Type == lexer.TypeDelimiter:
				break tail
			case tok.IsOperator("("):
				brackets++
			case tok.IsOperator(")"):
				brackets--
			case tok.IsOperator(",") && brackets <= 0:
				break tail
			}
			op.Unknown = append(op.Unknown, tok)
		}

		if op.Options.IsEmpty() && op.Field == nil && len(op.Unknown) == 0 {
			c.Add(sqlerr.UnexpectedToken, "Missing alter operation.", at(list))
		} else {
			ret = append(ret, op)
		}
		if list.Idx >= list.Count || list.Tokens[list.Idx].Type == lexer.TypeDelimiter {
			break
		}
		// Step over the comma.
		list.Idx++
	}

	list.Idx--
	return ret
}
