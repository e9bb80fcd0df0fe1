package sqlerr

import (
	"sort"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/types"
)

// DefaultMaxErrors bounds a collector created with a non-positive limit.
const DefaultMaxErrors = 100

// Collector accumulates diagnostics during a parse. All methods are safe to
// call on a nil *Collector, which discards everything; components use that
// when a caller does not care about diagnostics.
type Collector struct {
	errors    []*ParseError
	maxErrors int
	dropped   int
	index     *types.LineIndex
}

// NewCollector creates a collector for diagnostics about source. Positions
// are resolved to lines and columns against source.
func NewCollector(source string, maxErrors int) *Collector {
	if maxErrors <= 0 {
		maxErrors = DefaultMaxErrors
	}
	return &Collector{
		maxErrors: maxErrors,
		index:     types.NewLineIndex(source),
	}
}

// Add records an error about tok.
func (c *Collector) Add(code Code, message string, tok *lexer.Token) *ParseError {
	err := New(code, message, tok)
	c.AddError(err)
	return err
}

// Warn records a warning about tok.
func (c *Collector) Warn(code Code, message string, tok *lexer.Token) *ParseError {
	err := New(code, message, tok)
	err.Severity = Warning
	c.AddError(err)
	return err
}

// AddError records err. It returns false once the limit is reached; later
// errors are counted but not kept.
func (c *Collector) AddError(err *ParseError) bool {
	if c == nil || err == nil {
		return false
	}
	if len(c.errors) >= c.maxErrors {
		c.dropped++
		return false
	}
	if err.Position == nil && err.Offset >= 0 && c.index != nil {
		pos := c.index.Position(err.Offset)
		err.Position = &pos
	}
	c.errors = append(c.errors, err)
	return len(c.errors) < c.maxErrors
}

// Errors returns the collected diagnostics ordered by offset. Diagnostics at
// the same offset keep the order they were reported in.
func (c *Collector) Errors() []*ParseError {
	if c == nil || len(c.errors) == 0 {
		return nil
	}
	out := make([]*ParseError, len(c.errors))
	copy(out, c.errors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// HasErrors reports whether anything of at least Error severity was recorded.
func (c *Collector) HasErrors() bool {
	if c == nil {
		return false
	}
	for _, err := range c.errors {
		if err.Severity >= Error {
			return true
		}
	}
	return false
}

// Count returns the number of kept diagnostics.
func (c *Collector) Count() int {
	if c == nil {
		return 0
	}
	return len(c.errors)
}

// Dropped returns how many diagnostics were discarded past the limit.
func (c *Collector) Dropped() int {
	if c == nil {
		return 0
	}
	return c.dropped
}

// First returns the earliest diagnostic by offset, or nil.
func (c *Collector) First() *ParseError {
	errs := c.Errors()
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Mark returns the current number of kept diagnostics, to be passed to
// Since.
func (c *Collector) Mark() int {
	return c.Count()
}

// Since returns the diagnostics recorded after mark, in report order.
func (c *Collector) Since(mark int) []*ParseError {
	if c == nil || mark >= len(c.errors) {
		return nil
	}
	return c.errors[mark:]
}
