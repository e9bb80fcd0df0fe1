package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/sqlerr"
)

// OptionKind tells how an option keyword takes a value.
type OptionKind uint8

const (
	// KindFlag options are a bare keyword.
	KindFlag OptionKind = iota
	// KindVar options take a value after an optional =.
	KindVar
	// KindVarEq options take a value and are always rendered with =.
	KindVarEq
	// KindExpr options take an expression after an optional =.
	KindExpr
)

// OptionDef declares one option keyword. Synonyms and mutually exclusive
// keywords share an ID.
type OptionDef struct {
	ID   int
	Kind OptionKind
	// Expr configures the expression parser for KindExpr options.
	Expr ExpressionOptions
}

// OptionSpec maps upper-cased option keywords to their definition.
type OptionSpec map[string]OptionDef

func (s OptionSpec) maxID() int {
	max := 0
	for _, def := range s {
		if def.ID > max {
			max = def.ID
		}
	}
	return max
}

// Option is one parsed option.
type Option struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Flag is set for options that take no value.
	Flag  bool `json:"flag,omitempty" yaml:"flag,omitempty"`
	Equal bool `json:"equal,omitempty" yaml:"equal,omitempty"`
	// Value is the value as written; Normalized has quotes and outer
	// brackets removed.
	Value      string      `json:"value,omitempty" yaml:"value,omitempty"`
	Normalized string      `json:"normalized,omitempty" yaml:"normalized,omitempty"`
	Expr       *Expression `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Build renders the option.
func (o *Option) Build() string {
	if o == nil {
		return ""
	}
	if o.Flag {
		return o.Name
	}
	value := o.Value
	if o.Expr != nil {
		value = o.Expr.Build()
	}
	if o.Equal {
		return o.Name + "=" + value
	}
	return o.Name + " " + value
}

// OptionsArray is a set of options kept in ascending ID order.
type OptionsArray struct {
	Options []*Option `json:"options,omitempty" yaml:"options,omitempty"`
}

// NewOptionsArray creates a set of flag options with consecutive IDs.
func NewOptionsArray(flags ...string) *OptionsArray {
	ret := &OptionsArray{}
	for i, name := range flags {
		ret.Options = append(ret.Options, &Option{ID: i + 1, Name: name, Flag: true})
	}
	return ret
}

// ParseOptionsArray parses as many options of spec as follow the cursor.
func ParseOptionsArray(c *sqlerr.Collector, list *lexer.List, spec OptionSpec) *OptionsArray {
	ret := &OptionsArray{}
	byID := map[int]*Option{}
	nextSynthetic := spec.maxID() + 1

	var (
		current  *Option
		def      OptionDef
		brackets int
		raw      strings.Builder
		value    strings.Builder
	)
	// 0: an option keyword is expected, 1: an optional = is expected,
	// 2: the value is expected.
	state := 0

	finish := func() {
		current.Value = strings.TrimSpace(raw.String())
		current.Normalized = strings.TrimSpace(value.String())
		raw.Reset()
		value.Reset()
		current = nil
		state = 0
	}

	for ; list.Idx < list.Count; list.Idx++ {
		tok := list.Tokens[list.Idx]
		if tok.Type == lexer.TypeDelimiter {
			break
		}
		if tok.Type == lexer.TypeComment {
			continue
		}
		if tok.Type == lexer.TypeWhitespace {
			if state == 2 && brackets > 0 {
				raw.WriteString(tok.Raw)
				value.WriteString(" ")
			}
			continue
		}

		if state == 0 {
			name := tok.Upper()
			d, ok := spec[name]
			if !ok {
				break
			}
			def = d
			id := def.ID
			if prior, dup := byID[id]; dup {
				c.Add(sqlerr.DuplicateOption, fmt.Sprintf("This option conflicts with %q.", prior.Name), tok)
				id = nextSynthetic
				nextSynthetic++
			}
			current = &Option{ID: id, Name: name}
			byID[id] = current
			ret.Options = append(ret.Options, current)
			if def.Kind == KindFlag {
				current.Flag = true
				current = nil
				continue
			}
			current.Equal = def.Kind == KindVarEq
			state = 1
			continue
		}

		if state == 1 {
			state = 2
			if tok.IsOperator("=") {
				current.Equal = true
				continue
			}
		}

		if def.Kind == KindExpr {
			current.Expr = ParseExpression(c, list, def.Expr)
			if current.Expr != nil {
				current.Value = current.Expr.Expr
				current.Normalized = current.Expr.Expr
			} else {
				c.Add(sqlerr.MissingExpression, fmt.Sprintf("Value/Expression for the option %s was expected.", current.Name), tok)
			}
			current = nil
			state = 0
			continue
		}

		outer := false
		switch {
		case tok.IsOperator("("):
			brackets++
			outer = brackets == 1
		case tok.IsOperator(")"):
			brackets--
			outer = brackets == 0
		}
		raw.WriteString(tok.Raw)
		if !outer {
			value.WriteString(tok.Value)
		}
		if brackets <= 0 {
			brackets = 0
			finish()
		}
	}

	if current != nil {
		c.Add(sqlerr.MissingExpression, fmt.Sprintf("Value/Expression for the option %s was expected.", current.Name), last(list))
		if state == 2 {
			finish()
		}
	}

	ret.sort()
	list.Idx--
	return ret
}

func (a *OptionsArray) sort() {
	sort.SliceStable(a.Options, func(i, j int) bool {
		return a.Options[i].ID < a.Options[j].ID
	})
}

// Build renders the options separated by spaces.
func (a *OptionsArray) Build() string {
	if a == nil {
		return ""
	}
	return BuildAll(a.Options, " ")
}

// IsEmpty reports whether no option is set.
func (a *OptionsArray) IsEmpty() bool {
	return a == nil || len(a.Options) == 0
}

// Entries returns the options in ID order.
func (a *OptionsArray) Entries() []*Option {
	if a == nil {
		return nil
	}
	return a.Options
}

// Get returns the first option named name.
func (a *OptionsArray) Get(name string) *Option {
	if a == nil {
		return nil
	}
	name = strings.ToUpper(name)
	for _, o := range a.Options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Has reports whether the option name is set.
func (a *OptionsArray) Has(name string) bool {
	return a.Get(name) != nil
}

// Value returns the normalized value of the option name. Flag options
// report their own name; absent options report "" and false.
func (a *OptionsArray) Value(name string) (string, bool) {
	o := a.Get(name)
	switch {
	case o == nil:
		return "", false
	case o.Flag:
		return o.Name, true
	}
	return o.Normalized, true
}

// Add appends an option, keeping the ID order.
func (a *OptionsArray) Add(o *Option) {
	a.Options = append(a.Options, o)
	a.sort()
}

// Remove deletes the first option named name and reports whether one was
// found.
func (a *OptionsArray) Remove(name string) bool {
	if a == nil {
		return false
	}
	name = strings.ToUpper(name)
	for i, o := range a.Options {
		if o.Name == name {
			a.Options = append(a.Options[:i], a.Options[i+1:]...)
			return true
		}
	}
	return false
}

// Merge copies the options of other into a. An option of other replaces the
// option of a with the same ID.
func (a *OptionsArray) Merge(other *OptionsArray) {
	if other == nil {
		return
	}
	for _, o := range other.Options {
		replaced := false
		for i, mine := range a.Options {
			if mine.ID == o.ID {
				a.Options[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			a.Options = append(a.Options, o)
		}
	}
	a.sort()
}
