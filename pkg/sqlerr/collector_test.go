package sqlerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsxbet/sql-parser/pkg/lexer"
	"github.com/nsxbet/sql-parser/pkg/types"
)

func TestCollectorOrdersByOffset(t *testing.T) {
	c := NewCollector("SELECT a,\n  b FROM", 0)
	late := &lexer.Token{Raw: "FROM", Position: 14}
	early := &lexer.Token{Raw: "a", Position: 7}

	c.Add(UnexpectedEnd, "An expression was expected.", late)
	c.Warn(UnexpectedToken, "Unexpected token.", early)

	errs := c.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, early, errs[0].Token)
	assert.Equal(t, Warning, errs[0].Severity)
	assert.Equal(t, &types.Position{Line: 2, Column: 5}, errs[1].Position)
	assert.Equal(t, `An expression was expected. at line 2, column 5 (near "FROM")`, errs[1].Error())
	assert.True(t, c.HasErrors())
	assert.Equal(t, early, c.First().Token)
}

func TestCollectorLimit(t *testing.T) {
	c := NewCollector("x", 2)
	require.True(t, c.AddError(New(UnexpectedToken, "one", nil)))
	require.False(t, c.AddError(New(UnexpectedToken, "two", nil)))
	require.False(t, c.AddError(New(UnexpectedToken, "three", nil)))
	require.Equal(t, 2, c.Count())
	require.Equal(t, 1, c.Dropped())
}

func TestCollectorNil(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.Add(UnexpectedToken, "ignored", nil)
	})
	require.Nil(t, c.Errors())
	require.False(t, c.HasErrors())
	require.Zero(t, c.Count())
	require.Nil(t, c.First())
}

func TestCollectorSince(t *testing.T) {
	c := NewCollector("", 0)
	c.Add(UnexpectedToken, "one", nil)
	mark := c.Mark()
	c.Add(UnexpectedDot, "two", nil)
	since := c.Since(mark)
	require.Len(t, since, 1)
	require.Equal(t, "two", since[0].Message)
	require.Equal(t, "two", since[0].Error())
}

func TestCodeCategory(t *testing.T) {
	assert.Equal(t, Lexical, UnterminatedString.Category())
	assert.Equal(t, Syntax, DuplicateClause.Category())
	assert.Equal(t, Dispatch, UnrecognizedStatement.Category())
	assert.Equal(t, Syntax, Internal.Category())
}

func TestWarningsAreNotErrors(t *testing.T) {
	c := NewCollector("", 0)
	c.Warn(UnexpectedToken, "w", nil)
	require.False(t, c.HasErrors())
	require.Equal(t, 1, c.Count())
}
