package types

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position represents a position in the source code. Line and Column are
// 1-based; Column counts runes, not bytes.
type Position struct {
	Line   int32 `json:"line" yaml:"line"`
	Column int32 `json:"column" yaml:"column"`
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex converts byte offsets of a source text into positions. Line starts
// are computed on first use and cached.
type LineIndex struct {
	source     string
	lineStarts []int
}

// NewLineIndex creates a line index over source. The source is not copied.
func NewLineIndex(source string) *LineIndex {
	return &LineIndex{source: source}
}

func (x *LineIndex) calculateLineStarts() {
	if x.lineStarts != nil {
		return
	}
	x.lineStarts = []int{0}
	for i := 0; i < len(x.source); i++ {
		switch x.source[i] {
		case '\n':
			x.lineStarts = append(x.lineStarts, i+1)
		case '\r':
			if i+1 < len(x.source) && x.source[i+1] == '\n' {
				i++
			}
			x.lineStarts = append(x.lineStarts, i+1)
		}
	}
}

// Position returns the position of the byte at offset. Offsets past the end
// of the source map to the position right after the last character.
func (x *LineIndex) Position(offset int) Position {
	x.calculateLineStarts()
	if offset < 0 {
		return Position{Line: 1, Column: 1}
	}
	if offset > len(x.source) {
		offset = len(x.source)
	}
	line := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	start := x.lineStarts[line]
	column := utf8.RuneCountInString(x.source[start:offset]) + 1
	return Position{Line: int32(line + 1), Column: int32(column)}
}

// Line returns the text of the 1-based line without its line terminator.
func (x *LineIndex) Line(line int) string {
	x.calculateLineStarts()
	if line < 1 || line > len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[line-1]
	end := len(x.source)
	if line < len(x.lineStarts) {
		end = x.lineStarts[line]
	}
	for end > start && (x.source[end-1] == '\n' || x.source[end-1] == '\r') {
		end--
	}
	return x.source[start:end]
}

// LineCount returns the number of lines in the source.
func (x *LineIndex) LineCount() int {
	x.calculateLineStarts()
	return len(x.lineStarts)
}
