package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineIndexPosition(t *testing.T) {
	source := "SELECT 1;\r\nSELECT\n  'é', x;\rEND"
	x := NewLineIndex(source)
	require.Equal(t, 4, x.LineCount())

	tests := []struct {
		name   string
		offset int
		want   Position
	}{
		{name: "start", offset: 0, want: Position{Line: 1, Column: 1}},
		{name: "delimiter", offset: 8, want: Position{Line: 1, Column: 9}},
		{name: "after crlf", offset: 11, want: Position{Line: 2, Column: 1}},
		{name: "after multibyte rune", offset: 23, want: Position{Line: 3, Column: 5}},
		{name: "after lone cr", offset: 29, want: Position{Line: 4, Column: 1}},
		{name: "past the end", offset: 100, want: Position{Line: 4, Column: 4}},
		{name: "negative", offset: -3, want: Position{Line: 1, Column: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, x.Position(tc.offset))
		})
	}
}

func TestLineIndexLine(t *testing.T) {
	x := NewLineIndex("a\r\nbb\nccc")
	assert.Equal(t, "a", x.Line(1))
	assert.Equal(t, "bb", x.Line(2))
	assert.Equal(t, "ccc", x.Line(3))
	assert.Equal(t, "", x.Line(4))
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
}
